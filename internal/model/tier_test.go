package model

import (
	"errors"
	"testing"
)

func TestTierValidate(t *testing.T) {
	tier := Tier{ID: 1, Name: "", Categories: []Category{CategoryWork}}
	if err := tier.Validate(); err == nil {
		t.Fatal("expected error for empty tier name")
	}
	tier = Tier{ID: 1, Name: "Personal", Categories: []Category{Category("Hobby")}}
	if err := tier.Validate(); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestTierConfigValidate(t *testing.T) {
	cfg := TierConfig{
		{ID: 1, Name: "Personal", Categories: []Category{CategoryHealth, CategoryFinance}},
		{ID: 2, Name: "Professional", Categories: []Category{CategoryWork}},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if err := (TierConfig{}).Validate(); err != nil {
		t.Fatalf("empty config must validate: %v", err)
	}
}
