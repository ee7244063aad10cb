//go:build gocv
// +build gocv

package vision

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"roadscan/config"
	"roadscan/internal/domain/entity"
)

// YOLODetector запускает предобученную YOLO-модель через DNN-модуль OpenCV.
// Сеть загружается один раз при старте процесса и передаётся по ссылке.
type YOLODetector struct {
	net           gocv.Net
	labels        []string
	confThreshold float32
	nmsThreshold  float32
	inputSize     int
	mu            sync.Mutex // Forward не потокобезопасен
}

// NewYOLODetector загружает веса модели и имена классов с диска.
func NewYOLODetector(cfg config.ModelConfig) (*YOLODetector, error) {
	net := gocv.ReadNetFromONNX(cfg.Path)
	if net.Empty() {
		return nil, fmt.Errorf("failed to load model from %s", cfg.Path)
	}

	labels, err := loadLabels(cfg.LabelsPath)
	if err != nil {
		net.Close()
		return nil, err
	}

	return &YOLODetector{
		net:           net,
		labels:        labels,
		confThreshold: float32(cfg.ConfThreshold),
		nmsThreshold:  float32(cfg.NMSThreshold),
		inputSize:     cfg.InputSize,
	}, nil
}

// Detect выполняет один прямой проход модели по снимку.
// Порог уверенности и NMS применяются здесь же, на границе модели.
func (d *YOLODetector) Detect(ctx context.Context, imageData []byte) ([]entity.Detection, error) {
	_ = ctx

	mat, err := decodeToMat(imageData)
	if err != nil {
		return nil, &entity.MalformedImageError{Reason: err.Error()}
	}
	defer mat.Close()

	blob := gocv.BlobFromImage(mat, 1.0/255.0, image.Pt(d.inputSize, d.inputSize),
		gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.mu.Lock()
	d.net.SetInput(blob, "")
	output := d.net.Forward("")
	d.mu.Unlock()
	defer output.Close()

	return d.parseOutput(output, mat.Cols(), mat.Rows())
}

// parseOutput разбирает выход YOLO вида [1, 4+классы, N]: первые четыре
// строки — центр и размеры рамки в координатах входного тензора, дальше
// по строке на класс.
func (d *YOLODetector) parseOutput(output gocv.Mat, origW, origH int) ([]entity.Detection, error) {
	sizes := output.Size()
	if len(sizes) != 3 || sizes[1] < 5 {
		return nil, fmt.Errorf("unexpected model output shape %v", sizes)
	}
	rows := sizes[1]
	cols := sizes[2]

	reshaped := output.Reshape(1, rows)
	defer reshaped.Close()

	xScale := float32(origW) / float32(d.inputSize)
	yScale := float32(origH) / float32(d.inputSize)
	numClasses := rows - 4

	var boxes []image.Rectangle
	var scores []float32
	var classIDs []int
	for j := 0; j < cols; j++ {
		best := float32(0)
		bestClass := 0
		for c := 0; c < numClasses; c++ {
			if score := reshaped.GetFloatAt(4+c, j); score > best {
				best = score
				bestClass = c
			}
		}
		if best < d.confThreshold {
			continue
		}

		cx := reshaped.GetFloatAt(0, j)
		cy := reshaped.GetFloatAt(1, j)
		w := reshaped.GetFloatAt(2, j)
		h := reshaped.GetFloatAt(3, j)

		x := int((cx - w/2) * xScale)
		y := int((cy - h/2) * yScale)
		rect := image.Rect(x, y, x+int(w*xScale), y+int(h*yScale)).
			Intersect(image.Rect(0, 0, origW, origH))
		if rect.Empty() {
			continue
		}

		boxes = append(boxes, rect)
		scores = append(scores, best)
		classIDs = append(classIDs, bestClass)
	}

	if len(boxes) == 0 {
		return []entity.Detection{}, nil
	}

	indices := gocv.NMSBoxes(boxes, scores, d.confThreshold, d.nmsThreshold)
	detections := make([]entity.Detection, 0, len(indices))
	for _, idx := range indices {
		rect := boxes[idx]
		det, err := entity.NewDetection(d.labelFor(classIDs[idx]), float64(scores[idx]), entity.BoundingBox{
			X:      rect.Min.X,
			Y:      rect.Min.Y,
			Width:  rect.Dx(),
			Height: rect.Dy(),
		})
		if err != nil {
			// Вырожденные рамки после отсечения границами снимка пропускаем.
			continue
		}
		detections = append(detections, det)
	}

	return detections, nil
}

// Close освобождает ресурсы сети.
func (d *YOLODetector) Close() error {
	return d.net.Close()
}

func (d *YOLODetector) labelFor(class int) string {
	if class >= 0 && class < len(d.labels) {
		return d.labels[class]
	}
	return fmt.Sprintf("class_%d", class)
}

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), errors.New("failed to decode image")
}

// loadLabels читает имена классов, по одному на строку.
func loadLabels(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open labels file: %w", err)
	}
	defer f.Close()

	var labels []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			labels = append(labels, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read labels file: %w", err)
	}

	return labels, nil
}
