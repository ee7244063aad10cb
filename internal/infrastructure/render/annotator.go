package render

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"

	"roadscan/internal/domain/entity"
	"roadscan/internal/domain/port"
)

// BoxAnnotator рисует рамки и подписи дефектов поверх копии снимка.
type BoxAnnotator struct {
	LineWidth float64 // толщина рамки
	Quality   int     // качество итогового JPEG
}

// NewBoxAnnotator создаёт аннотатор с настройками по умолчанию.
func NewBoxAnnotator() *BoxAnnotator {
	return &BoxAnnotator{
		LineWidth: 3,
		Quality:   90,
	}
}

// Annotate рисует по одной рамке на дефект в порядке списка и возвращает
// новую картинку. Исходные байты не изменяются; результат детерминирован.
func (a *BoxAnnotator) Annotate(imageData []byte, detections []entity.Detection) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, &entity.MalformedImageError{Reason: fmt.Sprintf("decode: %v", err)}
	}

	// NewContextForImage копирует пиксели, оригинал остаётся нетронутым.
	dc := gg.NewContextForImage(img)

	for _, det := range detections {
		x := float64(det.Box.X)
		y := float64(det.Box.Y)
		w := float64(det.Box.Width)
		h := float64(det.Box.Height)

		dc.SetRGBA255(0, 255, 0, 255)
		dc.SetLineWidth(a.LineWidth)
		dc.DrawRectangle(x, y, w, h)
		dc.Stroke()

		caption := det.String()
		tw, th := dc.MeasureString(caption)

		// Подложка под подпись, чтобы текст читался на любом фоне.
		ty := y - th - 4
		if ty < 0 {
			ty = y
		}
		dc.DrawRectangle(x, ty, tw+6, th+4)
		dc.Fill()

		dc.SetRGBA255(0, 0, 0, 255)
		dc.DrawString(caption, x+3, ty+th)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dc.Image(), &jpeg.Options{Quality: a.Quality}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Проверка реализации интерфейса
var _ port.Annotator = (*BoxAnnotator)(nil)
