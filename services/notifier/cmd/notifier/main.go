package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/barberflow/barberflow/libs/config"
	"github.com/barberflow/barberflow/libs/db"
	"github.com/barberflow/barberflow/libs/httpx"
	"github.com/barberflow/barberflow/libs/kafkax"
	otelx "github.com/barberflow/barberflow/libs/otel"
	"github.com/barberflow/barberflow/libs/runtime"
	"github.com/barberflow/barberflow/services/notifier/internal/consumer"
	"github.com/barberflow/barberflow/services/notifier/internal/inbox"
	"github.com/barberflow/barberflow/services/notifier/internal/storage"
	"github.com/barberflow/barberflow/services/notifier/internal/webhook"
	"github.com/jackc/pgx/v5"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type appointmentEvent struct {
	AppointmentID string  `json:"appointment_id"`
	ClientID      string  `json:"client_id"`
	ClientName    string  `json:"client_name"`
	ClientPhone   string  `json:"client_phone"`
	Date          string  `json:"date"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	Status        string  `json:"status"`
	Total         float64 `json:"total"`
	Reason        string  `json:"reason"`
}

func main() {
	service := config.String("SERVICE_NAME", "barberflow-notifier")
	port, err := config.Port("PORT", "8081")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		panic(err)
	}
	pool, err := db.Open(ctx, dbURL)
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	inboxRepo := inbox.NewRepository(pool)
	repo := storage.NewRepository(pool)
	sender := webhook.NewSender(config.String("WEBHOOK_TOKEN", ""))

	startConsumer := func(topic, kind string) {
		if strings.TrimSpace(topic) == "" {
			return
		}
		cfg := consumer.Config{
			Brokers: config.String("KAFKA_BROKERS", ""),
			GroupID: config.String("KAFKA_GROUP_ID", "barberflow-notifier"),
			Topic:   topic,
		}
		c := consumer.New(logger, inboxRepo, cfg, func(ctx context.Context, msg kafka.Message) error {
			return handleEvent(ctx, logger, repo, sender, kind, msg)
		})
		go c.Run(ctx)
	}

	startConsumer(config.String("KAFKA_TOPIC_BOOKED", "barberflow.appointment.booked.v1"), "booking")
	startConsumer(config.String("KAFKA_TOPIC_CANCELLED", "barberflow.appointment.cancelled.v1"), "cancellation")

	mux := runtime.NewBaseMuxWithReady(
		runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(pool)},
		runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(config.String("KAFKA_BROKERS", ""))},
	)
	handler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
	)
	handler = otelhttp.NewHandler(handler, "notifier")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}

// handleEvent forwards one appointment event to the shop's webhook, honoring
// the per-kind notification toggle, and records the delivery attempt.
func handleEvent(ctx context.Context, logger *slog.Logger, repo *storage.Repository, sender *webhook.Sender, kind string, msg kafka.Message) error {
	var evt appointmentEvent
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		logger.Error("invalid event payload", "err", err, "topic", msg.Topic)
		return nil
	}
	if evt.AppointmentID == "" {
		logger.Error("missing appointment_id", "topic", msg.Topic)
		return nil
	}

	settings, err := repo.LoadNotifySettings(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Info("no settings row yet; skipping notification", "appointment_id", evt.AppointmentID)
			return nil
		}
		return err
	}
	switch kind {
	case "booking":
		if !settings.NotifyOnBooking {
			return nil
		}
	case "cancellation":
		if !settings.NotifyOnCancellation {
			return nil
		}
	}
	if settings.WebhookURL == "" {
		logger.Info("webhook url not configured; skipping notification", "appointment_id", evt.AppointmentID)
		return nil
	}

	payload := map[string]any{
		"event":        "appointment_" + kind,
		"shop_name":    settings.ShopName,
		"client_name":  evt.ClientName,
		"client_phone": evt.ClientPhone,
		"date":         evt.Date,
		"start_time":   evt.StartTime,
		"end_time":     evt.EndTime,
		"status":       evt.Status,
		"total":        evt.Total,
	}
	if evt.Reason != "" {
		payload["reason"] = evt.Reason
	}

	delivery := storage.Delivery{
		AppointmentID: evt.AppointmentID,
		EventType:     msg.Topic,
		Recipient:     settings.WebhookURL,
		Payload:       payload,
		Status:        "sent",
	}
	if err := sender.Send(ctx, settings.WebhookURL, payload); err != nil {
		logger.Error("webhook send failed", "err", err, "appointment_id", evt.AppointmentID)
		delivery.Status = "failed"
		delivery.ErrorReason = err.Error()
	}
	return repo.Insert(ctx, delivery)
}
