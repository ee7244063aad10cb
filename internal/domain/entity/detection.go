package entity

import (
	"errors"
	"fmt"
)

// BoundingBox описывает прямоугольник вокруг найденного дефекта
type BoundingBox struct {
	X      int // координата X левого верхнего угла
	Y      int // координата Y левого верхнего угла
	Width  int // ширина области в пикселях
	Height int // высота области в пикселях
}

// Center возвращает координаты центра области
func (b BoundingBox) Center() (x, y int) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// Area возвращает площадь области в пикселях
func (b BoundingBox) Area() int {
	return b.Width * b.Height
}

// Detection — один дефект, найденный моделью. После создания не изменяется.
type Detection struct {
	Label      string      // класс дефекта, например "pothole"
	Confidence float64     // уверенность модели, от 0 до 1
	Box        BoundingBox // положение дефекта на снимке
}

// NewDetection валидирует выход модели и собирает Detection.
// Модель — внешний компонент, поэтому проверяем её выход на границе.
func NewDetection(label string, confidence float64, box BoundingBox) (Detection, error) {
	if label == "" {
		return Detection{}, errors.New("detection label is empty")
	}
	if confidence < 0 || confidence > 1 {
		return Detection{}, fmt.Errorf("confidence %v is out of [0, 1]", confidence)
	}
	if box.Width <= 0 || box.Height <= 0 {
		return Detection{}, fmt.Errorf("bounding box %dx%d is degenerate", box.Width, box.Height)
	}
	return Detection{Label: label, Confidence: confidence, Box: box}, nil
}

// String форматирует дефект для отчёта и сообщений: "pothole (0.87)".
func (d Detection) String() string {
	return fmt.Sprintf("%s (%.2f)", d.Label, d.Confidence)
}
