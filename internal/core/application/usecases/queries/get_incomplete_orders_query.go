package queries

import (
	"errors"
	"time"

	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var ErrGetIncompleteOrdersQueryIsNotConstructed = errors.New(
	"GetIncompleteOrdersQuery must be created via NewGetIncompleteOrdersQuery constructor",
)

// GetIncompleteOrdersQuery selects order headers created before olderThan
// that still have no items.
type GetIncompleteOrdersQuery struct {
	olderThan time.Time

	guard guard.ConstructorGuard
}

func NewGetIncompleteOrdersQuery(olderThan time.Time) (GetIncompleteOrdersQuery, error) {
	if olderThan.IsZero() {
		return GetIncompleteOrdersQuery{}, errs.NewValueIsRequiredError("older than")
	}
	return GetIncompleteOrdersQuery{
		olderThan: olderThan,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetIncompleteOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetIncompleteOrdersQueryIsNotConstructed)
}

func (q GetIncompleteOrdersQuery) OlderThan() time.Time {
	return q.olderThan
}
