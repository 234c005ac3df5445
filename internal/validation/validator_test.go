package validation

import (
	"testing"
	"time"

	"work-tracker/internal/config"

	"github.com/shopspring/decimal"
)

func TestValidator_IsWithinLength(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name     string
		input    string
		limit    int
		expected bool
	}{
		{"Under limit", "abc", 5, true},
		{"At limit", "abcde", 5, true},
		{"Over limit", "abcdef", 5, false},
		{"Whitespace is trimmed", "  abcde  ", 5, true},
		{"Counts characters not bytes", "ééééé", 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.IsWithinLength(tt.input, tt.limit); got != tt.expected {
				t.Errorf("IsWithinLength(%q, %d) = %v, expected %v", tt.input, tt.limit, got, tt.expected)
			}
		})
	}
}

func TestValidator_HasHoursPrecision(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		input    string
		expected bool
	}{
		{"2", true},
		{"2.5", true},
		{"2.25", true},
		{"2.250", true},
		{"2.125", false},
		{"0.001", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := v.HasHoursPrecision(decimal.RequireFromString(tt.input)); got != tt.expected {
				t.Errorf("HasHoursPrecision(%s) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidator_IsValidDateRange(t *testing.T) {
	v := NewValidator()
	march1 := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	march2 := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	if !v.IsValidDateRange(nil, &march1) {
		t.Error("open start should be valid")
	}
	if !v.IsValidDateRange(&march1, &march1) {
		t.Error("single day range should be valid")
	}
	if v.IsValidDateRange(&march2, &march1) {
		t.Error("reversed range should be invalid")
	}
}

func TestValidator_UsesConfiguration(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Validation.TaskNameMaxLength = 10
	cfg.Validation.MaxHoursPerLog = decimal.NewFromInt(8)

	v := NewValidatorWithConfig(cfg)

	if v.TaskNameMaxLength() != 10 {
		t.Errorf("TaskNameMaxLength() = %d, expected 10", v.TaskNameMaxLength())
	}
	if v.IsWithinMaxHours(decimal.RequireFromString("8.5")) {
		t.Error("8.5 hours should exceed the configured maximum")
	}
	if !NewValidator().IsWithinMaxHours(decimal.RequireFromString("8.5")) {
		t.Error("8.5 hours should be within the default maximum")
	}
}
