package validation

import (
	"time"
)

// AttendanceValidator validates attendance history queries and notes
type AttendanceValidator struct {
	validator *Validator
}

func NewAttendanceValidator() *AttendanceValidator {
	return NewAttendanceValidatorWith(NewValidator())
}

func NewAttendanceValidatorWith(v *Validator) *AttendanceValidator {
	return &AttendanceValidator{validator: v}
}

// ValidateNotes bounds the optional clock-in/out notes
func (av *AttendanceValidator) ValidateNotes(notes string) error {
	if limit := av.validator.DescriptionMaxLength(); !av.validator.IsWithinLength(notes, limit) {
		validationError := NewValidationError()
		validationError.AddInvalidLengthError("notes", nil, 0, limit)
		return validationError
	}
	return nil
}

// ValidateHistoryRange checks an optional start/end date pair
func (av *AttendanceValidator) ValidateHistoryRange(from, to *time.Time) error {
	if !av.validator.IsValidDateRange(from, to) {
		validationError := NewValidationError()
		validationError.AddInvalidRangeError("date_range", nil, "start date must not be after end date")
		return validationError
	}
	return nil
}
