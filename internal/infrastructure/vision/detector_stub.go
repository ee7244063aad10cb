//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"

	"roadscan/config"
	"roadscan/internal/domain/entity"
)

// YOLODetector-заглушка для сборки без OpenCV.
type YOLODetector struct {
	confThreshold float32
	nmsThreshold  float32
	inputSize     int
}

// NewYOLODetector создаёт детектор-заглушку (без OpenCV).
func NewYOLODetector(cfg config.ModelConfig) (*YOLODetector, error) {
	return &YOLODetector{
		confThreshold: float32(cfg.ConfThreshold),
		nmsThreshold:  float32(cfg.NMSThreshold),
		inputSize:     cfg.InputSize,
	}, nil
}

// Detect возвращает ошибку, если сборка без тега gocv.
func (d *YOLODetector) Detect(ctx context.Context, imageData []byte) ([]entity.Detection, error) {
	_ = ctx
	_ = imageData
	return nil, errors.New("gocv build tag is not enabled")
}

// Close ничего не освобождает в сборке без OpenCV.
func (d *YOLODetector) Close() error {
	return nil
}
