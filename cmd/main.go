package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"roadscan/config"
	"roadscan/internal/api/telegram"
	"roadscan/internal/api/web"
	"roadscan/internal/container"
	"roadscan/internal/infrastructure/imagery"
	"roadscan/internal/infrastructure/render"
	"roadscan/internal/infrastructure/report"
	"roadscan/internal/infrastructure/storage"
	"roadscan/internal/infrastructure/vision"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	if cfg.Google.APIKey == "" {
		logger.Fatal("GOOGLE_API_KEY is required")
	}

	// Внешний сервис снимков
	streetView, err := imagery.NewGoogleStreetView(cfg.Google, logger)
	if err != nil {
		logger.Fatal("Failed to create imagery provider", zap.Error(err))
	}

	// Модель загружается один раз и передаётся по ссылке
	detector, err := vision.NewYOLODetector(cfg.Model)
	if err != nil {
		logger.Fatal("Failed to load detection model", zap.Error(err))
	}
	defer detector.Close()

	// Собираем сервисы приложения
	appContainer := container.New(
		storage.NewMemorySessionRepository(),
		streetView,
		detector,
		render.NewBoxAnnotator(),
		report.NewPDFGenerator(cfg.Reports),
		logger,
	)

	srv := web.New(cfg, logger, appContainer)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Run(); err != nil {
			logger.Error("Server failed", zap.Error(err))
		}
	}()

	// Бот запускается только при наличии токена
	if cfg.Telegram.Token != "" {
		bot, err := telegram.NewBot(cfg.Telegram.Token, appContainer, logger)
		if err != nil {
			logger.Fatal("Failed to create bot", zap.Error(err))
		}

		go func() {
			if err := bot.Run(); err != nil {
				logger.Error("Bot error", zap.Error(err))
			}
		}()
	}

	<-ctx.Done()

	logger.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
