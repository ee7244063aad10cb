package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	app "roadscan/internal/application"
	"roadscan/internal/container"
	"roadscan/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я бот для поиска дефектов дорожного покрытия.

🛣️ Отправьте команду /scan и адрес — я найду снимок улицы,
проверю его моделью и пришлю результат с PDF-отчётом.

📋 Команды:
/scan — проверить адрес
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте /scan
2️⃣ Пришлите адрес, например: 221B Baker Street, London
3️⃣ Получите снимок с подсветкой дефектов и PDF-отчёт

📋 Команды:
/scan — проверить адрес
/cancel — отменить операцию`

	msgAwaitingAddress = "🛣️ Отправьте адрес для проверки."
	msgCancelled       = "❌ Операция отменена. Отправьте /scan для новой проверки."
	msgSendScan        = "📋 Отправьте /scan, чтобы начать проверку адреса."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Получаю снимок и ищу дефекты..."
	msgNoDefects       = "✅ Дефекты не обнаружены."
	msgEmptyAddress    = "⚠️ Адрес пуст. Отправьте адрес текстом."
	msgRetrievalError  = "⚠️ Не удалось получить снимок по этому адресу."
	msgMalformedImage  = "⚠️ Снимок не удалось обработать. Попробуйте другой адрес."
	msgReportError     = "⚠️ Результат получен, но отчёт сохранить не удалось."
	msgInternalError   = "⚠️ Что-то пошло не так. Попробуйте ещё раз."
)

// Bot представляет Telegram-бота
type Bot struct {
	api      *tgbotapi.BotAPI
	sessions *app.SessionService
	scans    *app.ScanService
	log      *zap.Logger
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container, log *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Info("Telegram bot authorized", zap.String("account", api.Self.UserName))

	return &Bot{
		api:      api,
		sessions: c.SessionService,
		scans:    c.ScanService,
		log:      log,
	}, nil
}

// Run запускает основной цикл обработки сообщений
func (b *Bot) Run() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	ctx := context.Background()

	for update := range updates {
		if update.Message == nil {
			continue
		}

		b.handleMessage(ctx, update.Message)
	}

	return nil
}

// sessionKey выводит ID сессии из ID чата.
func sessionKey(chatID int64) string {
	return fmt.Sprintf("tg-%d", chatID)
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	session, err := b.sessions.Get(ctx, sessionKey(msg.Chat.ID), msg.Chat.ID)
	if err != nil {
		b.log.Error("failed to get session", zap.Error(err))
		return
	}

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	// В состоянии ожидания любой текст трактуется как адрес
	if session.State == entity.StateAwaitingAddress && msg.Text != "" {
		b.handleAddress(ctx, msg)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendScan)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	id := sessionKey(msg.Chat.ID)

	switch msg.Command() {
	case "start":
		b.sessions.Cancel(ctx, id, msg.Chat.ID)
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "scan":
		b.sessions.BeginScan(ctx, id, msg.Chat.ID)
		b.sendMessage(msg.Chat.ID, msgAwaitingAddress)

	case "cancel":
		b.sessions.Cancel(ctx, id, msg.Chat.ID)
		b.sendMessage(msg.Chat.ID, msgCancelled)

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

// handleAddress запускает конвейер детекции по присланному адресу
func (b *Bot) handleAddress(ctx context.Context, msg *tgbotapi.Message) {
	id := sessionKey(msg.Chat.ID)

	b.sessions.SetState(ctx, id, msg.Chat.ID, entity.StateProcessing)
	b.sendMessage(msg.Chat.ID, msgProcessing)

	out, err := b.scans.Scan(ctx, id, msg.Chat.ID, msg.Text)
	if err != nil {
		b.log.Error("scan failed", zap.String("address", msg.Text), zap.Error(err))
		b.sendMessage(msg.Chat.ID, errorMessage(err))
		b.sessions.Cancel(ctx, id, msg.Chat.ID)
		return
	}

	// Снимок с подсветкой и список дефектов
	photo := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileBytes{
		Name:  "annotated.jpg",
		Bytes: out.Record.Annotated,
	})
	photo.Caption = resultCaption(out.Record)
	if _, err := b.api.Send(photo); err != nil {
		b.log.Error("failed to send photo", zap.Error(err))
	}

	// PDF-отчёт отдельным документом
	document := tgbotapi.NewDocument(msg.Chat.ID, tgbotapi.FilePath(out.ReportPath))
	if _, err := b.api.Send(document); err != nil {
		b.log.Error("failed to send report", zap.Error(err))
	}

	b.sessions.Cancel(ctx, id, msg.Chat.ID)
}

// resultCaption собирает подпись к снимку с подсветкой
func resultCaption(record *entity.DetectionRecord) string {
	if !record.HasDefects() {
		return msgNoDefects
	}

	var sb strings.Builder
	sb.WriteString("🔍 Найденные дефекты:\n")
	for _, d := range record.Detections {
		sb.WriteString("• ")
		sb.WriteString(d.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// errorMessage переводит типизированные ошибки конвейера в текст для чата
func errorMessage(err error) string {
	var retrieval *entity.RetrievalError
	var malformed *entity.MalformedImageError
	var report *entity.ReportError

	switch {
	case errors.Is(err, entity.ErrEmptyAddress):
		return msgEmptyAddress
	case errors.As(err, &retrieval):
		return msgRetrievalError
	case errors.As(err, &malformed):
		return msgMalformedImage
	case errors.As(err, &report):
		return msgReportError
	default:
		return msgInternalError
	}
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("failed to send message", zap.Error(err))
	}
}
