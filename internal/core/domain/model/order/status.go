package order

import "fmt"

type statusCode int

const (
	codeOther statusCode = iota
	codePending
	codeConfirmed
	codePreparing
	codeReady
	codeOutForDelivery
	codeDelivered
	codeCancelled
)

// Status is the fulfillment state of an order. The set is closed: any raw
// value outside the canonical list is kept as an Other status, so every
// lookup below is total.
//
// Canonical forward order:
//
//	pending ─> confirmed ─> preparing ─> ready ─> out_for_delivery ─> delivered
//
// cancelled may follow any non-terminal state. Transition legality belongs to
// the fulfillment side and is not enforced here.
type Status struct {
	code statusCode
	raw  string
}

var (
	Pending        = Status{code: codePending}
	Confirmed      = Status{code: codeConfirmed}
	Preparing      = Status{code: codePreparing}
	Ready          = Status{code: codeReady}
	OutForDelivery = Status{code: codeOutForDelivery}
	Delivered      = Status{code: codeDelivered}
	Cancelled      = Status{code: codeCancelled}
)

// ForwardStatuses lists the progressing states in canonical order.
var ForwardStatuses = []Status{Pending, Confirmed, Preparing, Ready, OutForDelivery, Delivered}

type statusInfo struct {
	value   string
	label   string
	icon    string
	message string
}

var statusTable = map[statusCode]statusInfo{
	codePending:        {"pending", "Pending", "receipt", "Order received and being processed"},
	codeConfirmed:      {"confirmed", "Confirmed", "check-circle", "Restaurant confirmed your order"},
	codePreparing:      {"preparing", "Preparing", "chef-hat", "Your food is being prepared"},
	codeReady:          {"ready", "Ready", "truck", "Order is ready for pickup/delivery"},
	codeOutForDelivery: {"out_for_delivery", "Out for Delivery", "truck", "Your order is on the way"},
	codeDelivered:      {"delivered", "Delivered", "check-circle", "Order has been delivered"},
	codeCancelled:      {"cancelled", "Cancelled", "clock", "Order has been cancelled"},
}

var otherInfo = statusInfo{label: "Processing", icon: "clock", message: "Processing your order"}

// ParseStatus never fails: unrecognised values become Other.
func ParseStatus(raw string) Status {
	for code, info := range statusTable {
		if info.value == raw {
			return Status{code: code}
		}
	}
	return Status{code: codeOther, raw: raw}
}

// String returns the persisted form; Other statuses keep their raw value.
func (s Status) String() string {
	if s.code == codeOther {
		return s.raw
	}
	return statusTable[s.code].value
}

func (s Status) IsOther() bool {
	return s.code == codeOther
}

// IsTerminal is true only for delivered and cancelled.
func (s Status) IsTerminal() bool {
	return s.code == codeDelivered || s.code == codeCancelled
}

// Progress returns (index+1)/6*100 for forward states. Cancelled and Other
// statuses are not on the forward track and report ok == false.
func (s Status) Progress() (float64, bool) {
	for i, forward := range ForwardStatuses {
		if forward.code == s.code {
			return float64(i+1) / float64(len(ForwardStatuses)) * 100, true
		}
	}
	return 0, false
}

func (s Status) Label() string {
	return s.info().label
}

func (s Status) Icon() string {
	return s.info().icon
}

// Message is the customer-facing sentence shown on the tracking page.
func (s Status) Message() string {
	return s.info().message
}

func (s Status) info() statusInfo {
	if info, ok := statusTable[s.code]; ok {
		return info
	}
	return otherInfo
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	*s = ParseStatus(string(text))
	return nil
}

// GoString keeps %#v readable in test failures.
func (s Status) GoString() string {
	return fmt.Sprintf("order.Status(%q)", s.String())
}
