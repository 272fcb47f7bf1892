package jobs

import (
	"context"
	"log/slog"
	"time"

	"foodorder/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

const (
	auditSchedule = "@every 1m"

	// IncompleteOrderGracePeriod is how long a header may wait for its items
	// before the audit reports it.
	IncompleteOrderGracePeriod = 5 * time.Minute
)

type IncompleteOrdersReader interface {
	Handle(ctx context.Context, query queries.GetIncompleteOrdersQuery) ([]queries.IncompleteOrder, error)
}

// IncompleteOrderAuditJob reports order headers left without items by a
// partial write so they can be reconciled by hand.
type IncompleteOrderAuditJob struct {
	reader IncompleteOrdersReader
	cron   *cron.Cron
	now    func() time.Time
	logger *slog.Logger
}

func NewIncompleteOrderAuditJob(reader IncompleteOrdersReader, logger *slog.Logger) *IncompleteOrderAuditJob {
	return &IncompleteOrderAuditJob{
		reader: reader,
		cron:   cron.New(),
		now:    time.Now,
		logger: logger.With("component", "incomplete_order_audit_job"),
	}
}

// Start schedules the audit once a minute.
func (j *IncompleteOrderAuditJob) Start() error {
	_, err := j.cron.AddFunc(auditSchedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Incomplete order audit job started (running every minute)")
	return nil
}

// Run performs a single audit pass and returns the number of orders reported.
func (j *IncompleteOrderAuditJob) Run(ctx context.Context) int {
	query, err := queries.NewGetIncompleteOrdersQuery(j.now().Add(-IncompleteOrderGracePeriod))
	if err != nil {
		j.logger.ErrorContext(ctx, "Incomplete order audit failed", "error", err)
		return 0
	}

	incomplete, err := j.reader.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Incomplete order audit failed", "error", err)
		return 0
	}

	for _, o := range incomplete {
		j.logger.WarnContext(ctx, "Order header has no items",
			"order_id", o.ID.String(),
			"order_number", o.OrderNumber,
			"customer_id", o.CustomerID.String(),
			"restaurant_id", o.RestaurantID.String(),
			"created_at", o.CreatedAt,
		)
	}
	return len(incomplete)
}

// Stop waits for a running audit to finish.
func (j *IncompleteOrderAuditJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Incomplete order audit job stopped")
}
