package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"roadscan/config"
	"roadscan/internal/container"
)

type Server struct {
	httpServer *http.Server
	cfg        *config.Config
	log        *zap.Logger
}

func New(cfg *config.Config, log *zap.Logger, c *container.Container) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.LoadHTMLGlob("web/templates/*")

	h := NewHandler(c.ScanService, c.SessionService, cfg, log)
	RegisterRoutes(router, h)

	server := &Server{
		httpServer: &http.Server{
			Addr:    cfg.Server.Host + ":" + cfg.Server.Port,
			Handler: router,
			// Запрос ждёт геокодер, сервис снимков и инференс модели.
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   60 * time.Second,
			MaxHeaderBytes: 1 << 20, // 1 MB
		},
		cfg: cfg,
		log: log,
	}

	log.Info("Server created successfully",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port))

	return server
}

// RegisterRoutes привязывает обработчики к маршрутам.
func RegisterRoutes(router *gin.Engine, h *Handler) {
	router.GET("/", h.Index)
	router.GET("/health", h.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/detect", h.Detect)
		api.GET("/history", h.History)
		api.GET("/annotated/:index", h.Annotated)
	}

	router.GET("/reports/:name", h.DownloadReport)
}

func (s *Server) Run() error {
	s.log.Info("Server is running",
		zap.String("address", s.httpServer.Addr))

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down server")
	return s.httpServer.Shutdown(ctx)
}
