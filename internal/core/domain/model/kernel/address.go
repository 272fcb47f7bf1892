package kernel

import (
	"errors"
	"strings"

	"foodorder/internal/pkg/errs"
)

// Address is the structured delivery destination. All four parts are required.
type Address struct {
	street string
	city   string
	state  string
	zip    string
}

// NewAddress trims every part and reports each missing one.
func NewAddress(street, city, state, zip string) (Address, error) {
	a := Address{
		street: strings.TrimSpace(street),
		city:   strings.TrimSpace(city),
		state:  strings.TrimSpace(state),
		zip:    strings.TrimSpace(zip),
	}
	if err := a.Validate(); err != nil {
		return Address{}, err
	}
	return a, nil
}

// Validate reports every empty part at once.
func (a Address) Validate() error {
	var problems []error
	if a.street == "" {
		problems = append(problems, errs.NewValueIsRequiredError("street"))
	}
	if a.city == "" {
		problems = append(problems, errs.NewValueIsRequiredError("city"))
	}
	if a.state == "" {
		problems = append(problems, errs.NewValueIsRequiredError("state"))
	}
	if a.zip == "" {
		problems = append(problems, errs.NewValueIsRequiredError("zip"))
	}
	return errors.Join(problems...)
}

func (a Address) Street() string { return a.street }
func (a Address) City() string   { return a.city }
func (a Address) State() string  { return a.state }
func (a Address) Zip() string    { return a.zip }
