package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Google   GoogleConfig
	Model    ModelConfig
	Reports  ReportsConfig
	Telegram TelegramConfig
}

type ServerConfig struct {
	Host string
	Port string
}

type GoogleConfig struct {
	APIKey        string
	StreetViewURL string // эндпоинт статических снимков, переопределяется в тестах
	GeocodeURL    string // базовый URL геокодера, пустой — боевой
}

type ModelConfig struct {
	Path          string  // путь к весам модели (ONNX)
	LabelsPath    string  // файл с именами классов, по одному на строку
	ConfThreshold float64 // порог уверенности
	NMSThreshold  float64 // порог IoU для non-maximum suppression
	InputSize     int     // сторона входного тензора модели
}

type ReportsConfig struct {
	Dir        string // каталог для PDF-отчётов
	EmbedImage bool   // вставлять ли снимок с подсветкой в отчёт
}

type TelegramConfig struct {
	Token string // пустой токен — бот не запускается
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	viper.SetDefault("SERVER_HOST", "localhost")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("STREETVIEW_URL", "https://maps.googleapis.com/maps/api/streetview")
	viper.SetDefault("GEOCODE_URL", "")
	viper.SetDefault("MODEL_PATH", "best.onnx")
	viper.SetDefault("MODEL_LABELS", "labels.txt")
	viper.SetDefault("MODEL_CONF_THRESHOLD", 0.5)
	viper.SetDefault("MODEL_NMS_THRESHOLD", 0.45)
	viper.SetDefault("MODEL_INPUT_SIZE", 640)
	viper.SetDefault("REPORTS_DIR", "reports")
	viper.SetDefault("REPORTS_EMBED_IMAGE", true)

	viper.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("SERVER_HOST"),
			Port: viper.GetString("SERVER_PORT"),
		},
		Google: GoogleConfig{
			APIKey:        viper.GetString("GOOGLE_API_KEY"),
			StreetViewURL: viper.GetString("STREETVIEW_URL"),
			GeocodeURL:    viper.GetString("GEOCODE_URL"),
		},
		Model: ModelConfig{
			Path:          viper.GetString("MODEL_PATH"),
			LabelsPath:    viper.GetString("MODEL_LABELS"),
			ConfThreshold: viper.GetFloat64("MODEL_CONF_THRESHOLD"),
			NMSThreshold:  viper.GetFloat64("MODEL_NMS_THRESHOLD"),
			InputSize:     viper.GetInt("MODEL_INPUT_SIZE"),
		},
		Reports: ReportsConfig{
			Dir:        viper.GetString("REPORTS_DIR"),
			EmbedImage: viper.GetBool("REPORTS_EMBED_IMAGE"),
		},
		Telegram: TelegramConfig{
			Token: viper.GetString("TELEGRAM_TOKEN"),
		},
	}

	if err := os.MkdirAll(cfg.Reports.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create reports directory: %w", err)
	}

	return cfg, nil
}
