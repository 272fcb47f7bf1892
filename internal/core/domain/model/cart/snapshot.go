package cart

import (
	"encoding/json"
	"fmt"

	"foodorder/internal/core/domain/model/kernel"
)

// Snapshot is the serialized form of a cart kept between requests.
type Snapshot struct {
	RestaurantID kernel.UUID    `json:"restaurant_id"`
	Lines        []LineSnapshot `json:"lines"`
}

type LineSnapshot struct {
	MenuItemID          kernel.UUID  `json:"menu_item_id"`
	Name                string       `json:"name"`
	UnitPrice           kernel.Money `json:"unit_price"`
	Quantity            int          `json:"quantity"`
	SpecialInstructions string       `json:"special_instructions,omitempty"`
}

func (c *Cart) Snapshot() Snapshot {
	s := Snapshot{RestaurantID: c.restaurantID, Lines: make([]LineSnapshot, 0, len(c.lines))}
	for _, line := range c.lines {
		s.Lines = append(s.Lines, LineSnapshot(line))
	}
	return s
}

// Restore rebuilds a cart, rejecting snapshots that would break the line invariants.
func Restore(s Snapshot) (*Cart, error) {
	c, err := New(s.RestaurantID)
	if err != nil {
		return nil, err
	}
	for i, line := range s.Lines {
		if err := line.MenuItemID.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		if line.Quantity < 1 {
			return nil, fmt.Errorf("line %d: quantity %d is below 1", i, line.Quantity)
		}
		if c.indexOf(line.MenuItemID) >= 0 {
			return nil, fmt.Errorf("line %d: duplicate menu item %s", i, line.MenuItemID)
		}
		c.lines = append(c.lines, Line(line))
	}
	return c, nil
}

func (c *Cart) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Snapshot())
}

func (c *Cart) UnmarshalJSON(data []byte) error {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	restored, err := Restore(s)
	if err != nil {
		return err
	}
	*c = *restored
	return nil
}
