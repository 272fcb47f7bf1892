// Package changefeed carries partial order changes over Redis pub/sub, one
// channel per order.
package changefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const (
	channelPrefix  = "order-changes:"
	eventsBuffer   = 64
	receiveBackoff = 500 * time.Millisecond
)

func Channel(orderID kernel.UUID) string {
	return channelPrefix + orderID.String()
}

// Publisher implements ports.OrderChangePublisher.
type Publisher struct {
	client redis.UniversalClient
}

func NewPublisher(client redis.UniversalClient) *Publisher {
	return &Publisher{client: client}
}

func (p *Publisher) PublishChange(ctx context.Context, orderID kernel.UUID, change order.Change) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("marshal order change: %w", err)
	}
	if err = p.client.Publish(ctx, Channel(orderID), payload).Err(); err != nil {
		return fmt.Errorf("publish order change: %w", err)
	}
	return nil
}

// Feed implements ports.OrderChangeFeed.
type Feed struct {
	client redis.UniversalClient
	logger *slog.Logger
}

func NewFeed(client redis.UniversalClient, logger *slog.Logger) *Feed {
	return &Feed{
		client: client,
		logger: logger.With("component", "order_change_feed"),
	}
}

// Subscribe returns once Redis has confirmed the subscription, so no change
// published after it returns is missed.
func (f *Feed) Subscribe(ctx context.Context, orderID kernel.UUID) (ports.Subscription, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	pubsub := f.client.Subscribe(ctx, Channel(orderID))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe to order changes: %w", err)
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s := &subscription{
		pubsub: pubsub,
		events: make(chan ports.ChangeEvent, eventsBuffer),
		cancel: cancel,
		done:   make(chan struct{}),
		logger: f.logger.With("order_id", orderID.String()),
	}
	go s.receive(runCtx)
	return s, nil
}

type subscription struct {
	pubsub *redis.PubSub
	events chan ports.ChangeEvent
	cancel context.CancelFunc
	done   chan struct{}
	logger *slog.Logger

	closeOnce sync.Once
	closeErr  error
}

func (s *subscription) Events() <-chan ports.ChangeEvent {
	return s.events
}

func (s *subscription) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		s.closeErr = s.pubsub.Close()
		<-s.done
	})
	return s.closeErr
}

// receive reads until the subscription is closed. Connection errors are
// reported as events and the read is retried; go-redis resubscribes on the
// new connection.
func (s *subscription) receive(ctx context.Context) {
	defer close(s.done)
	defer close(s.events)

	for {
		msg, err := s.pubsub.ReceiveMessage(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			s.logger.Warn("order change receive failed", "error", err)
			if !s.emit(ctx, ports.ChangeEvent{Err: err}) {
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(receiveBackoff):
			}
			continue
		}

		var change order.Change
		if err = json.Unmarshal([]byte(msg.Payload), &change); err != nil {
			s.logger.Warn("malformed order change dropped", "error", err)
			if !s.emit(ctx, ports.ChangeEvent{Err: fmt.Errorf("decode order change: %w", err)}) {
				return
			}
			continue
		}
		if !s.emit(ctx, ports.ChangeEvent{Change: change}) {
			return
		}
	}
}

func (s *subscription) emit(ctx context.Context, ev ports.ChangeEvent) bool {
	select {
	case s.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
