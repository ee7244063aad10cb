package entity

import (
	"fmt"
	"time"
)

// Coordinates — географические координаты, полученные геокодером.
type Coordinates struct {
	Lat float64
	Lng float64
}

// MapsURL возвращает ссылку на точку в Google Maps.
func (c Coordinates) MapsURL() string {
	return fmt.Sprintf("https://www.google.com/maps?q=%f,%f", c.Lat, c.Lng)
}

// DetectionRecord хранит итог одного запроса: адрес, снимок и найденные дефекты.
// Запись создаётся только если и загрузка снимка, и инференс прошли успешно.
type DetectionRecord struct {
	Address    string      // адрес, введённый пользователем
	Location   Coordinates // координаты после геокодирования
	Image      []byte      // исходный снимок Street View
	Annotated  []byte      // снимок с подсветкой дефектов (JPEG)
	Detections []Detection // список найденных дефектов, порядок фиксирован
	CreatedAt  time.Time   // момент завершения детекции
}

// HasDefects сообщает, нашла ли модель хотя бы один дефект.
func (r *DetectionRecord) HasDefects() bool {
	return len(r.Detections) > 0
}
