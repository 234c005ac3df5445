package validation

import (
	"time"

	"work-tracker/internal/domain"

	"github.com/shopspring/decimal"
)

// TimeLogValidator provides validation for time log operations
type TimeLogValidator struct {
	validator *Validator
}

// NewTimeLogValidator creates a new time log validator
func NewTimeLogValidator() *TimeLogValidator {
	return NewTimeLogValidatorWith(NewValidator())
}

// NewTimeLogValidatorWith creates a time log validator sharing v's configuration
func NewTimeLogValidatorWith(v *Validator) *TimeLogValidator {
	return &TimeLogValidator{validator: v}
}

// ValidateForCreation validates a new time log. Back-dated and future dates are accepted.
func (tv *TimeLogValidator) ValidateForCreation(taskID int64, date time.Time, hours decimal.Decimal, description string) error {
	validationError := NewValidationError()

	if !tv.validator.IsValidID(taskID) {
		validationError.AddInvalidValueError("task_id", taskID, "must be a positive integer")
	}
	if date.IsZero() {
		validationError.AddRequiredError("date_logged")
	}
	tv.checkHours(validationError, hours)
	tv.checkDescription(validationError, description)

	return validationError.Err()
}

// ValidateForUpdate validates the supplied fields of a partial update
func (tv *TimeLogValidator) ValidateForUpdate(date *time.Time, hours *decimal.Decimal, description *string) error {
	validationError := NewValidationError()

	if date != nil && date.IsZero() {
		validationError.AddRequiredError("date_logged")
	}
	if hours != nil {
		tv.checkHours(validationError, *hours)
	}
	if description != nil {
		tv.checkDescription(validationError, *description)
	}

	return validationError.Err()
}

// ValidateDateRange validates an inclusive calendar date range
func (tv *TimeLogValidator) ValidateDateRange(from, to *time.Time) error {
	if !tv.validator.IsValidDateRange(from, to) {
		validationError := NewValidationError()
		validationError.AddInvalidRangeError("date_range", map[string]string{
			"from": domain.FormatDate(*from),
			"to":   domain.FormatDate(*to),
		}, "start date must not be after end date")
		return validationError
	}
	return nil
}

func (tv *TimeLogValidator) checkHours(ve *ValidationError, hours decimal.Decimal) {
	switch {
	case !hours.IsPositive():
		ve.AddInvalidValueError("hours_logged", hours.String(), "must be greater than zero")
	case !tv.validator.HasHoursPrecision(hours):
		ve.AddInvalidPrecisionError("hours_logged", hours.String(), domain.HoursScale)
	case !tv.validator.IsWithinMaxHours(hours):
		ve.AddInvalidRangeError("hours_logged", hours.String(),
			"must not exceed "+tv.validator.MaxHoursPerLog().String())
	}
}

func (tv *TimeLogValidator) checkDescription(ve *ValidationError, description string) {
	if !tv.validator.IsNonEmptyString(description) {
		ve.AddRequiredError("work_description")
		return
	}
	if limit := tv.validator.DescriptionMaxLength(); !tv.validator.IsWithinLength(description, limit) {
		ve.AddInvalidLengthError("work_description", nil, 0, limit)
	}
}
