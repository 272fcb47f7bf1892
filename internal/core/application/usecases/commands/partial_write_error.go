package commands

import (
	"errors"
	"fmt"

	"foodorder/internal/core/domain/model/kernel"
)

// ErrPartialWrite matches any *PartialWriteError via errors.Is.
var ErrPartialWrite = errors.New("order header saved without items")

// PartialWriteError reports an order header that was committed while its
// items were not. The header stays invisible to readers until the items are
// written with RetryOrderItemsCommand against OrderID.
type PartialWriteError struct {
	OrderID     kernel.UUID
	OrderNumber string
	Cause       error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("%s: order %s (%s): %v", ErrPartialWrite, e.OrderID, e.OrderNumber, e.Cause)
}

func (e *PartialWriteError) Unwrap() error {
	return e.Cause
}

func (e *PartialWriteError) Is(target error) bool {
	return target == ErrPartialWrite
}
