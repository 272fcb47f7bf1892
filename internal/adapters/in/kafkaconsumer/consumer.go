// Package kafkaconsumer ingests fulfillment-side events from Kafka.
package kafkaconsumer

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"foodorder/internal/pkg/kafkatrace"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("kafkaconsumer")
	meter  = otel.Meter("kafkaconsumer")
)

// HandlerFunc processes one message payload. Errors marked with Permanent
// are not retried.
type HandlerFunc func(ctx context.Context, payload []byte) error

type permanentError struct{ err error }

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying: the message is logged and
// committed.
func Permanent(err error) error {
	return permanentError{err: err}
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Config struct {
	Brokers     []string
	Topic       string
	GroupID     string
	MaxAttempts int
	Backoff     time.Duration
}

// Consumer reads a topic in a consumer group. Each message is committed
// after its handler succeeds, returns a permanent error, or runs out of
// attempts.
type Consumer struct {
	reader      messageReader
	topic       string
	groupID     string
	maxAttempts int
	backoff     time.Duration
	outcomes    metric.Int64Counter
	logger      *slog.Logger
}

func NewConsumer(cfg Config, logger *slog.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     cfg.GroupID,
		StartOffset: kafka.FirstOffset,
		MaxBytes:    10e6,
	})
	return newConsumer(reader, cfg, logger)
}

func newConsumer(reader messageReader, cfg Config, logger *slog.Logger) *Consumer {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 3
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = time.Second
	}
	outcomes, err := meter.Int64Counter("messaging.consumer.outcomes",
		metric.WithDescription("Consumed messages by processing outcome"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		otel.Handle(err)
		outcomes = noop.Int64Counter{}
	}
	return &Consumer{
		reader:      reader,
		topic:       cfg.Topic,
		groupID:     cfg.GroupID,
		maxAttempts: cfg.MaxAttempts,
		backoff:     cfg.Backoff,
		outcomes:    outcomes,
		logger:      logger.With("component", "kafka_consumer", "topic", cfg.Topic),
	}
}

// Consume blocks until ctx is done or the reader fails.
func (c *Consumer) Consume(ctx context.Context, handler HandlerFunc) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		c.processWithRetry(ctx, msg, handler)
		if ctx.Err() != nil {
			return nil
		}

		if err = c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

func (c *Consumer) processWithRetry(ctx context.Context, msg kafka.Message, handler HandlerFunc) {
	for attempt := 1; ; attempt++ {
		err := c.processMessage(ctx, msg, handler)
		if err == nil {
			c.record(ctx, "processed")
			return
		}

		var permanent permanentError
		if errors.As(err, &permanent) {
			c.logger.Warn("message rejected",
				"offset", msg.Offset,
				"partition", msg.Partition,
				"error", err)
			c.record(ctx, "rejected")
			return
		}

		if attempt >= c.maxAttempts {
			c.logger.Error("message dropped after retries",
				"offset", msg.Offset,
				"partition", msg.Partition,
				"attempts", attempt,
				"error", err)
			c.record(ctx, "dropped")
			return
		}

		c.logger.Warn("message processing failed, retrying",
			"offset", msg.Offset,
			"attempt", attempt,
			"error", err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(c.backoff * time.Duration(attempt)):
		}
	}
}

func (c *Consumer) processMessage(ctx context.Context, msg kafka.Message, handler HandlerFunc) error {
	parentCtx := otel.GetTextMapPropagator().Extract(ctx, kafkatrace.NewMessageCarrier(&msg))

	spanCtx, span := tracer.Start(parentCtx, "process "+c.topic,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			semconv.MessagingSystemKafka,
			semconv.MessagingOperationName("process"),
			semconv.MessagingOperationTypeDeliver,
			semconv.MessagingDestinationName(c.topic),
			semconv.MessagingKafkaConsumerGroup(c.groupID),
			semconv.MessagingKafkaMessageOffset(int(msg.Offset)),
			semconv.MessagingDestinationPartitionID(strconv.Itoa(msg.Partition)),
			semconv.MessagingKafkaMessageKey(string(msg.Key)),
		),
	)
	defer span.End()

	if err := handler(spanCtx, msg.Value); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (c *Consumer) record(ctx context.Context, outcome string) {
	c.outcomes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("messaging.destination.name", c.topic),
		attribute.String("outcome", outcome),
	))
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
