package metrics

import (
	"errors"
	"fmt"
)

// ErrUnknownIntent is returned when Run is handed an unclassified intent.
// Shells normally intercept unknown intents before calling Run.
var ErrUnknownIntent = errors.New("unknown intent")

// MissingRateError reports an absent FX rate for a required (month, currency)
// pair. Conversion never silently falls back to a rate of 1.0.
type MissingRateError struct {
	Month    string
	Currency string
}

func (e *MissingRateError) Error() string {
	return fmt.Sprintf("no FX rate for %s in %s", e.Currency, e.Month)
}

// NoDataError reports that the requested month or subject has no rows at all,
// which is distinct from a legitimate zero total.
type NoDataError struct {
	Month   string // may be empty for dataset-wide subjects
	Subject string
}

func (e *NoDataError) Error() string {
	if e.Month == "" {
		return fmt.Sprintf("no %s in the data", e.Subject)
	}
	return fmt.Sprintf("no %s for %s", e.Subject, e.Month)
}
