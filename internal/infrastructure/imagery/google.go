package imagery

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"

	"roadscan/config"
	"roadscan/internal/domain/entity"
	"roadscan/internal/domain/port"
)

// Параметры снимка фиксированы: один кадр 640x640 по направлению улицы.
const (
	imageSize   = "640x640"
	fieldOfView = "80"
	heading     = "0"
	pitch       = "0"
)

// GoogleStreetView получает координаты через Google Geocoding API
// и статический снимок через Street View Static API.
type GoogleStreetView struct {
	geocoder      *maps.Client
	client        *http.Client
	apiKey        string
	streetViewURL string
	log           *zap.Logger
}

// NewGoogleStreetView создаёт провайдера снимков по конфигурации.
func NewGoogleStreetView(cfg config.GoogleConfig, log *zap.Logger) (*GoogleStreetView, error) {
	opts := []maps.ClientOption{maps.WithAPIKey(cfg.APIKey)}
	if cfg.GeocodeURL != "" {
		opts = append(opts, maps.WithBaseURL(cfg.GeocodeURL))
	}

	geocoder, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}

	return &GoogleStreetView{
		geocoder:      geocoder,
		client:        &http.Client{Timeout: 30 * time.Second},
		apiKey:        cfg.APIKey,
		streetViewURL: cfg.StreetViewURL,
		log:           log,
	}, nil
}

// Locate геокодирует адрес. Пустой список результатов — такой же отказ,
// как и сетевая ошибка: снимок получить неоткуда.
func (g *GoogleStreetView) Locate(ctx context.Context, address string) (entity.Coordinates, error) {
	results, err := g.geocoder.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return entity.Coordinates{}, &entity.RetrievalError{Reason: fmt.Sprintf("geocode: %v", err)}
	}
	if len(results) == 0 {
		return entity.Coordinates{}, &entity.RetrievalError{Reason: "address not found"}
	}

	loc := results[0].Geometry.Location
	g.log.Debug("address resolved",
		zap.String("address", address),
		zap.Float64("lat", loc.Lat),
		zap.Float64("lng", loc.Lng))

	return entity.Coordinates{Lat: loc.Lat, Lng: loc.Lng}, nil
}

// FetchImage загружает статический снимок. Одна попытка, без повторов.
func (g *GoogleStreetView) FetchImage(ctx context.Context, location entity.Coordinates) ([]byte, error) {
	q := url.Values{}
	q.Set("size", imageSize)
	q.Set("location", fmt.Sprintf("%f,%f", location.Lat, location.Lng))
	q.Set("fov", fieldOfView)
	q.Set("heading", heading)
	q.Set("pitch", pitch)
	q.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.streetViewURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, &entity.RetrievalError{Reason: fmt.Sprintf("street view request: %v", err)}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &entity.RetrievalError{Reason: fmt.Sprintf("street view: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &entity.RetrievalError{Status: resp.StatusCode, Reason: "street view request failed"}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &entity.RetrievalError{Reason: fmt.Sprintf("street view response: %v", err)}
	}
	if len(data) == 0 {
		return nil, &entity.RetrievalError{Reason: "empty street view response"}
	}

	return data, nil
}

// Проверка реализации интерфейса
var _ port.ImageryProvider = (*GoogleStreetView)(nil)
