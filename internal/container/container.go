package container

import (
	"go.uber.org/zap"

	app "roadscan/internal/application"
	"roadscan/internal/domain/port"
)

type Container struct {
	SessionService *app.SessionService
	ScanService    *app.ScanService
}

func New(sessionRepo port.SessionRepository, imagery port.ImageryProvider, detector port.DefectDetector, annotator port.Annotator, reports port.ReportGenerator, log *zap.Logger) *Container {
	sessionService := app.NewSessionService(sessionRepo)
	scanService := app.NewScanService(sessionService, imagery, detector, annotator, reports, log)

	return &Container{
		SessionService: sessionService,
		ScanService:    scanService,
	}
}
