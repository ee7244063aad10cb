package web

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"roadscan/config"
	app "roadscan/internal/application"
	"roadscan/internal/domain/entity"
)

const sessionCookie = "roadscan_session"

type Handler struct {
	scans    *app.ScanService
	sessions *app.SessionService
	cfg      *config.Config
	log      *zap.Logger
}

func NewHandler(scans *app.ScanService, sessions *app.SessionService, cfg *config.Config, log *zap.Logger) *Handler {
	return &Handler{
		scans:    scans,
		sessions: sessions,
		cfg:      cfg,
		log:      log,
	}
}

type boxView struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type detectionView struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Box        boxView `json:"box"`
}

type recordView struct {
	Address      string          `json:"address"`
	Timestamp    string          `json:"timestamp"`
	Detections   []detectionView `json:"detections"`
	AnnotatedURL string          `json:"annotated_url"`
}

func newRecordView(record *entity.DetectionRecord, index int) recordView {
	detections := make([]detectionView, 0, len(record.Detections))
	for _, d := range record.Detections {
		detections = append(detections, detectionView{
			Label:      d.Label,
			Confidence: d.Confidence,
			Box: boxView{
				X:      d.Box.X,
				Y:      d.Box.Y,
				Width:  d.Box.Width,
				Height: d.Box.Height,
			},
		})
	}

	return recordView{
		Address:      record.Address,
		Timestamp:    record.CreatedAt.Format("2006-01-02 15:04:05"),
		Detections:   detections,
		AnnotatedURL: "/api/annotated/" + strconv.Itoa(index),
	}
}

// sessionID возвращает ID сессии из куки, выдавая новую при первом заходе.
func (h *Handler) sessionID(c *gin.Context) string {
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		return id
	}

	id := uuid.NewString()
	c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
	return id
}

// Detect принимает адрес из формы и запускает конвейер детекции.
func (h *Handler) Detect(c *gin.Context) {
	sessionID := h.sessionID(c)
	address := c.PostForm("address")

	out, err := h.scans.Scan(c.Request.Context(), sessionID, 0, address)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"record":     newRecordView(out.Record, out.RecordIndex),
		"report_url": "/reports/" + filepath.Base(out.ReportPath),
	})
}

// History возвращает журнал текущей сессии.
func (h *Handler) History(c *gin.Context) {
	sessionID := h.sessionID(c)

	records, err := h.sessions.History(c.Request.Context(), sessionID, 0)
	if err != nil {
		h.respondError(c, err)
		return
	}

	views := make([]recordView, 0, len(records))
	for i := range records {
		views = append(views, newRecordView(&records[i], i))
	}

	c.JSON(http.StatusOK, gin.H{"records": views})
}

// Annotated отдаёт снимок с подсветкой по индексу записи в журнале.
func (h *Handler) Annotated(c *gin.Context) {
	sessionID := h.sessionID(c)

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный индекс записи"})
		return
	}

	session, err := h.sessions.Get(c.Request.Context(), sessionID, 0)
	if err != nil {
		h.respondError(c, err)
		return
	}

	record, ok := session.Log.At(index)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Запись не найдена"})
		return
	}

	c.Data(http.StatusOK, "image/jpeg", record.Annotated)
}

// DownloadReport отдаёт PDF-отчёт из каталога отчётов.
func (h *Handler) DownloadReport(c *gin.Context) {
	name := c.Param("name")
	// Только имена, которые пишет генератор; без выхода из каталога.
	if name != filepath.Base(name) || !strings.HasPrefix(name, "defect_report_") || !strings.HasSuffix(name, ".pdf") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Отчёт не найден"})
		return
	}

	path := filepath.Join(h.cfg.Reports.Dir, name)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Отчёт не найден"})
		return
	}

	c.FileAttachment(path, name)
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{})
}

// respondError переводит типизированные ошибки конвейера в HTTP-ответ.
// Каждая ошибка показывается пользователю сразу, без повторов запроса.
func (h *Handler) respondError(c *gin.Context, err error) {
	var retrieval *entity.RetrievalError
	var malformed *entity.MalformedImageError
	var report *entity.ReportError

	switch {
	case errors.Is(err, entity.ErrEmptyAddress):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Введите адрес"})
	case errors.As(err, &retrieval):
		h.log.Error("imagery retrieval failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Не удалось получить снимок: " + retrieval.Reason})
	case errors.As(err, &malformed):
		h.log.Error("image processing failed", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Снимок не удалось обработать"})
	case errors.As(err, &report):
		h.log.Error("report generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось сохранить отчёт"})
	default:
		h.log.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Внутренняя ошибка"})
	}
}
