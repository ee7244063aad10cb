package app

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"roadscan/internal/domain/entity"
	"roadscan/internal/domain/port"
)

// ScanService проводит запрос через весь конвейер: адрес → снимок →
// детекция → подсветка → запись в журнал → PDF-отчёт.
type ScanService struct {
	sessions  *SessionService
	imagery   port.ImageryProvider
	detector  port.DefectDetector
	annotator port.Annotator
	reports   port.ReportGenerator
	log       *zap.Logger
	now       func() time.Time
}

// ScanOutput содержит итог одного запроса.
type ScanOutput struct {
	Record      *entity.DetectionRecord
	RecordIndex int    // индекс записи в журнале сессии
	ReportPath  string // путь к PDF-отчёту на диске
}

// NewScanService собирает сервис сканирования из портов.
func NewScanService(sessions *SessionService, imagery port.ImageryProvider, detector port.DefectDetector, annotator port.Annotator, reports port.ReportGenerator, log *zap.Logger) *ScanService {
	return &ScanService{
		sessions:  sessions,
		imagery:   imagery,
		detector:  detector,
		annotator: annotator,
		reports:   reports,
		log:       log,
		now:       time.Now,
	}
}

// Scan выполняет один запрос от начала до конца. Шаги идут строго
// последовательно, без повторов; первая же ошибка возвращается вызывающему.
// Запись попадает в журнал только после успешной загрузки снимка и инференса.
func (s *ScanService) Scan(ctx context.Context, sessionID string, chatID int64, address string) (*ScanOutput, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, entity.ErrEmptyAddress
	}

	location, err := s.imagery.Locate(ctx, address)
	if err != nil {
		return nil, err
	}

	imageData, err := s.imagery.FetchImage(ctx, location)
	if err != nil {
		return nil, err
	}

	detections, err := s.detector.Detect(ctx, imageData)
	if err != nil {
		return nil, err
	}

	annotated, err := s.annotator.Annotate(imageData, detections)
	if err != nil {
		return nil, err
	}

	record := entity.DetectionRecord{
		Address:    address,
		Location:   location,
		Image:      imageData,
		Annotated:  annotated,
		Detections: detections,
		CreatedAt:  s.now(),
	}

	index, err := s.sessions.Append(ctx, sessionID, chatID, record)
	if err != nil {
		return nil, err
	}

	reportPath, err := s.reports.Generate(&record)
	if err != nil {
		return nil, err
	}

	s.log.Info("scan completed",
		zap.String("address", address),
		zap.Int("defects", len(detections)),
		zap.String("report", reportPath))

	return &ScanOutput{
		Record:      &record,
		RecordIndex: index,
		ReportPath:  reportPath,
	}, nil
}
