package order

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"foodorder/internal/pkg/errs"
)

// Optional distinguishes "key absent" from "key present with zero value",
// which a partial update needs to merge correctly.
type Optional[T any] struct {
	value T
	set   bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

func (o Optional[T]) IsSet() bool {
	return o.set
}

// Change is a partial order record: only the columns the fulfillment side
// changed. A nil ActualDeliveryTime that is set clears the column.
type Change struct {
	Status                Optional[Status]
	PaymentStatus         Optional[PaymentStatus]
	EstimatedDeliveryTime Optional[time.Time]
	ActualDeliveryTime    Optional[*time.Time]
	DeliveryInstructions  Optional[string]
	UpdatedAt             Optional[time.Time]
}

const (
	ColumnStatus                = "status"
	ColumnPaymentStatus         = "payment_status"
	ColumnEstimatedDeliveryTime = "estimated_delivery_time"
	ColumnActualDeliveryTime    = "actual_delivery_time"
	ColumnDeliveryInstructions  = "delivery_instructions"
	ColumnUpdatedAt             = "updated_at"
)

var (
	errImmutableColumn = errors.New("column is immutable after placement")
	errNullValue       = errors.New("column is not nullable")
	errEmptyValue      = errors.New("column must not be empty")
)

// nullableColumns may be cleared with an explicit null.
var nullableColumns = map[string]bool{
	ColumnActualDeliveryTime:   true,
	ColumnDeliveryInstructions: true,
}

// immutableColumns are fixed at placement.
var immutableColumns = map[string]bool{
	"id":               true,
	"order_number":     true,
	"customer_id":      true,
	"restaurant_id":    true,
	"subtotal":         true,
	"tax_amount":       true,
	"delivery_fee":     true,
	"total_amount":     true,
	"delivery_address": true,
	"payment_method":   true,
	"created_at":       true,
}

func (c Change) IsEmpty() bool {
	return !c.Status.IsSet() &&
		!c.PaymentStatus.IsSet() &&
		!c.EstimatedDeliveryTime.IsSet() &&
		!c.ActualDeliveryTime.IsSet() &&
		!c.DeliveryInstructions.IsSet() &&
		!c.UpdatedAt.IsSet()
}

// ParseChange decodes a column map. Immutable columns are rejected, unknown
// columns (such as rider assignment) are ignored, and null is accepted only
// for nullable columns.
func ParseChange(columns map[string]json.RawMessage) (Change, error) {
	var ch Change
	for column, raw := range columns {
		if immutableColumns[column] {
			return Change{}, errs.NewValueIsInvalidErrorWithCause(column, errImmutableColumn)
		}
		if isKnownColumn(column) && !nullableColumns[column] && isNull(raw) {
			return Change{}, errs.NewValueIsInvalidErrorWithCause(column, errNullValue)
		}

		var err error
		switch column {
		case ColumnStatus:
			var v Status
			if err = json.Unmarshal(raw, &v); err == nil {
				if v.String() == "" {
					err = errEmptyValue
				}
				ch.Status = Some(v)
			}
		case ColumnPaymentStatus:
			var v PaymentStatus
			if err = json.Unmarshal(raw, &v); err == nil {
				if v == "" {
					err = errEmptyValue
				}
				ch.PaymentStatus = Some(v)
			}
		case ColumnEstimatedDeliveryTime:
			var v time.Time
			if err = json.Unmarshal(raw, &v); err == nil {
				ch.EstimatedDeliveryTime = Some(v)
			}
		case ColumnActualDeliveryTime:
			var v *time.Time
			if err = json.Unmarshal(raw, &v); err == nil {
				ch.ActualDeliveryTime = Some(v)
			}
		case ColumnDeliveryInstructions:
			var v *string
			if err = json.Unmarshal(raw, &v); err == nil {
				s := ""
				if v != nil {
					s = *v
				}
				ch.DeliveryInstructions = Some(s)
			}
		case ColumnUpdatedAt:
			var v time.Time
			if err = json.Unmarshal(raw, &v); err == nil {
				ch.UpdatedAt = Some(v)
			}
		}
		if err != nil {
			return Change{}, errs.NewValueIsInvalidErrorWithCause(column, err)
		}
	}
	return ch, nil
}

func isKnownColumn(column string) bool {
	switch column {
	case ColumnStatus, ColumnPaymentStatus, ColumnEstimatedDeliveryTime,
		ColumnActualDeliveryTime, ColumnDeliveryInstructions, ColumnUpdatedAt:
		return true
	}
	return false
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Columns renders only the set fields, keyed by column name.
func (c Change) Columns() map[string]any {
	columns := make(map[string]any)
	if v, ok := c.Status.Get(); ok {
		columns[ColumnStatus] = v
	}
	if v, ok := c.PaymentStatus.Get(); ok {
		columns[ColumnPaymentStatus] = v
	}
	if v, ok := c.EstimatedDeliveryTime.Get(); ok {
		columns[ColumnEstimatedDeliveryTime] = v
	}
	if v, ok := c.ActualDeliveryTime.Get(); ok {
		columns[ColumnActualDeliveryTime] = v
	}
	if v, ok := c.DeliveryInstructions.Get(); ok {
		columns[ColumnDeliveryInstructions] = v
	}
	if v, ok := c.UpdatedAt.Get(); ok {
		columns[ColumnUpdatedAt] = v
	}
	return columns
}

func (c Change) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Columns())
}

func (c *Change) UnmarshalJSON(data []byte) error {
	var columns map[string]json.RawMessage
	if err := json.Unmarshal(data, &columns); err != nil {
		return err
	}
	parsed, err := ParseChange(columns)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
