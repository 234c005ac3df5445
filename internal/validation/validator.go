package validation

import (
	"strings"
	"time"
	"unicode/utf8"

	"work-tracker/internal/config"
	"work-tracker/internal/domain"

	"github.com/shopspring/decimal"
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsWithinLength checks that a trimmed string has at most max characters
func (v *Validator) IsWithinLength(s string, limit int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) <= limit
}

// IsValidID checks if an identifier is valid (positive)
func (v *Validator) IsValidID(id int64) bool {
	return id > 0
}

// HasHoursPrecision reports whether d has no more than two decimal places
func (v *Validator) HasHoursPrecision(d decimal.Decimal) bool {
	return d.Equal(d.Round(domain.HoursScale))
}

// IsWithinMaxHours checks d against the configured per-log ceiling
func (v *Validator) IsWithinMaxHours(d decimal.Decimal) bool {
	return d.LessThanOrEqual(v.MaxHoursPerLog())
}

// IsValidDateRange checks that from is not after to, compared as calendar dates
func (v *Validator) IsValidDateRange(from, to *time.Time) bool {
	return domain.DateRange{From: from, To: to}.IsValid()
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// TaskNameMaxLength returns configured maximum task name length or default
func (v *Validator) TaskNameMaxLength() int {
	if v.config != nil {
		return v.config.Validation.TaskNameMaxLength
	}
	return 255
}

// DescriptionMaxLength returns configured maximum description length or default
func (v *Validator) DescriptionMaxLength() int {
	if v.config != nil {
		return v.config.Validation.DescriptionMaxLength
	}
	return 5000
}

// MaxHoursPerLog returns configured maximum hours in one time log or default
func (v *Validator) MaxHoursPerLog() decimal.Decimal {
	if v.config != nil {
		return v.config.Validation.MaxHoursPerLog
	}
	return decimal.NewFromInt(24)
}
