package consumer

import (
	"context"
	"log/slog"
	"time"

	"github.com/barberflow/barberflow/libs/kafkax"
	"github.com/barberflow/barberflow/services/notifier/internal/inbox"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type Handler func(ctx context.Context, msg kafka.Message) error

// Consumer reads one topic, deduplicates through the inbox table, and hands
// each first-seen message to the handler. Handler errors are logged and the
// message is left to Kafka redelivery; the inbox row keeps a retried
// duplicate from being forwarded twice.
type Consumer struct {
	reader      *kafka.Reader
	logger      *slog.Logger
	inbox       *inbox.Repository
	handler     Handler
	readBackoff time.Duration
}

type Config struct {
	Brokers     string
	GroupID     string
	Topic       string
	ReadBackoff time.Duration // wait after a failed read, default 1s
}

func New(logger *slog.Logger, inboxRepo *inbox.Repository, cfg Config, handler Handler) *Consumer {
	if cfg.ReadBackoff <= 0 {
		cfg.ReadBackoff = time.Second
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  kafkax.SplitBrokers(cfg.Brokers),
		GroupID:  cfg.GroupID,
		Topic:    cfg.Topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &Consumer{
		reader:      reader,
		logger:      logger.With("topic", cfg.Topic),
		inbox:       inboxRepo,
		handler:     handler,
		readBackoff: cfg.ReadBackoff,
	}
}

func (c *Consumer) Run(ctx context.Context) {
	defer c.reader.Close()
	c.logger.Info("notification consumer starting")

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Error("kafka read error", "err", err)
			time.Sleep(c.readBackoff)
			continue
		}
		c.process(ctx, msg)
	}
}

func (c *Consumer) process(ctx context.Context, msg kafka.Message) {
	ctx = kafkax.ExtractTraceContext(ctx, msg)
	ctx, span := otel.Tracer("notifier").Start(ctx, "kafka.consume",
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", msg.Topic),
		),
	)
	defer span.End()

	meta := kafkax.ExtractEventMeta(msg)

	firstSeen, err := c.inbox.Record(ctx, meta.EventID, meta.EventType)
	if err != nil {
		c.logger.Error("inbox record failed", "err", err, "event_id", meta.EventID)
		span.RecordError(err)
		return
	}
	if !firstSeen {
		c.logger.Debug("event already handled", "event_id", meta.EventID)
		return
	}

	if err := c.handler(ctx, msg); err != nil {
		c.logger.Error("event handling failed", "err", err, "event_id", meta.EventID, "event_type", meta.EventType)
		span.RecordError(err)
	}
}
