package port

import (
	"roadscan/internal/domain/entity"
)

// ReportGenerator интерфейс генератора PDF-отчётов
type ReportGenerator interface {
	// Generate сохраняет отчёт по записи на диск и возвращает путь к файлу.
	Generate(record *entity.DetectionRecord) (string, error)
}
