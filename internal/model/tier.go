package model

import (
	"errors"
	"fmt"
	"strings"
)

// Tier is a named, ordered group of categories sharing one swimlane band.
type Tier struct {
	ID         int64
	Name       string
	Categories []Category
}

func (t Tier) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("model: tier name is required")
	}
	for _, c := range t.Categories {
		if !c.IsValid() {
			return fmt.Errorf("%w: %q in tier %q", ErrInvalidCategory, c, t.Name)
		}
	}
	return nil
}

// TierConfig is the ordered tier list. Categories not claimed by any tier are
// folded into the last tier during packing; an empty config synthesizes an
// "Unassigned" tier, so resolution is total either way.
type TierConfig []Tier

func (c TierConfig) Validate() error {
	for _, t := range c {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}
