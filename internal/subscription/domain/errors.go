package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDate      = errors.New("invalid_date")
	ErrInvalidParameter = errors.New("invalid_parameter")
	ErrInvalidPrice     = errors.New("invalid_price")
	ErrMissingID        = errors.New("missing_subscription_id")
	ErrDuplicateID      = errors.New("duplicate_subscription_id")
	ErrSourceNotFound   = errors.New("subscription_source_not_found")
)

// ParseError reports a subscription date that is not an ISO 8601 calendar date.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s %q: %v", ErrInvalidDate, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: %s %q", ErrInvalidDate, e.Field, e.Value)
}

func (e *ParseError) Is(target error) bool { return target == ErrInvalidDate }

func (e *ParseError) Unwrap() error { return e.Err }

// InvalidParameterError reports an unknown sort key or status filter.
type InvalidParameterError struct {
	Name  string
	Value string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s: %s %q", ErrInvalidParameter, e.Name, e.Value)
}

func (e *InvalidParameterError) Is(target error) bool { return target == ErrInvalidParameter }

// RecordError ties a classification failure to the offending record.
type RecordError struct {
	ID  string
	Err error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("subscription %q: %v", e.ID, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }
