// Package tracking keeps a customer's view of one order current: one full
// fetch, then partial changes from the push channel merged onto the last
// known snapshot.
//
// The watcher does not refetch after the push transport reconnects. A caller
// that needs strict freshness after a Stale update must fetch again.
package tracking

import (
	"context"
	"log/slog"
	"sync"

	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/order"
	"foodorder/internal/core/ports"
)

// Update is one callback payload. Details is a fresh value on every call.
// Stale is set when the push transport reported an error and Details is the
// last snapshot known before it.
type Update struct {
	Details queries.OrderDetails
	Stale   bool
}

// Unsubscribe stops delivery. It is safe to call more than once.
type Unsubscribe func()

type OrderDetailsReader interface {
	Handle(ctx context.Context, query queries.GetOrderDetailsQuery) (queries.OrderDetails, error)
}

type Watcher struct {
	details OrderDetailsReader
	feed    ports.OrderChangeFeed
	logger  *slog.Logger
}

func NewWatcher(details OrderDetailsReader, feed ports.OrderChangeFeed, logger *slog.Logger) *Watcher {
	return &Watcher{
		details: details,
		feed:    feed,
		logger:  logger.With("component", "order_watcher"),
	}
}

// Watch delivers the current order through onUpdate before returning, then
// every merged change in arrival order from a single goroutine. The
// subscription is opened before the fetch, so a change published while the
// fetch runs is queued and merged after the snapshot; merging a change the
// snapshot already holds leaves it unchanged. A failed initial fetch closes
// the subscription and is returned.
//
// onUpdate must not call the returned Unsubscribe.
func (w *Watcher) Watch(
	ctx context.Context,
	customerID, orderID kernel.UUID,
	onUpdate func(Update),
) (Unsubscribe, error) {
	query, err := queries.NewGetOrderDetailsQuery(customerID, orderID)
	if err != nil {
		return nil, err
	}

	sub, err := w.feed.Subscribe(ctx, orderID)
	if err != nil {
		return nil, err
	}

	details, err := w.details.Handle(ctx, query)
	if err != nil {
		if closeErr := sub.Close(); closeErr != nil {
			w.logger.Warn("failed to close order change subscription",
				"order_id", orderID.String(),
				"error", closeErr)
		}
		return nil, err
	}

	s := &session{
		orderID:  orderID,
		sub:      sub,
		onUpdate: onUpdate,
		last:     details,
		done:     make(chan struct{}),
		logger:   w.logger,
	}
	s.deliver(Update{Details: s.snapshot()})

	go s.run(ctx)

	return s.unsubscribe, nil
}

type session struct {
	orderID  kernel.UUID
	sub      ports.Subscription
	onUpdate func(Update)
	logger   *slog.Logger

	// mu serialises delivery with teardown: once closed is set no callback runs.
	mu     sync.Mutex
	closed bool
	last   queries.OrderDetails

	done      chan struct{}
	closeOnce sync.Once
}

func (s *session) run(ctx context.Context) {
	events := s.sub.Events()
	for {
		select {
		case <-s.done:
			return
		case <-ctx.Done():
			s.unsubscribe()
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.handle(ev)
		}
	}
}

func (s *session) handle(ev ports.ChangeEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	if ev.Err != nil {
		s.logger.Warn("order change feed error",
			"order_id", s.orderID.String(),
			"error", ev.Err)
		s.onUpdate(Update{Details: s.snapshot(), Stale: true})
		return
	}

	s.last = s.last.Apply(ev.Change)
	s.onUpdate(Update{Details: s.snapshot()})
}

// snapshot copies last so callers never share its item slice.
func (s *session) snapshot() queries.OrderDetails {
	return s.last.Apply(order.Change{})
}

func (s *session) deliver(u Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.onUpdate(u)
}

func (s *session) unsubscribe() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.done)
		s.mu.Unlock()

		if err := s.sub.Close(); err != nil {
			s.logger.Warn("failed to close order change subscription",
				"order_id", s.orderID.String(),
				"error", err)
		}
	})
}
