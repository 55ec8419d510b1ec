package domain

import "errors"

// Sentinel errors for domain error conditions.
// Use errors.Is() for matching - never compare error strings.
var (
	// Face errors
	ErrInvalidViewport = errors.New("viewport dimensions must be positive and finite")
	ErrInvalidStyle    = errors.New("invalid face style")
	ErrUnknownPreset   = errors.New("unknown face preset")
	ErrInvalidMotion   = errors.New("unknown hand motion")
	ErrInvalidSchedule = errors.New("unknown tick schedule")

	// Request validation
	ErrInvalidInput = errors.New("invalid input")

	// Operational errors
	ErrTooManyWidgets = errors.New("mounted widget limit reached")
	ErrUnavailable    = errors.New("service temporarily unavailable")
	ErrSlowConsumer   = errors.New("client not consuming frames fast enough")

	// Configuration errors
	ErrConfigRequired = errors.New("required configuration key missing")
	ErrInvalidConfig  = errors.New("invalid configuration value")
)

// IsRetryable returns true if the error represents a transient condition
// that may succeed on retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrUnavailable) ||
		errors.Is(err, ErrTooManyWidgets)
}

// clientErrors enumerates all domain errors that represent client-side issues.
var clientErrors = []error{
	ErrInvalidInput,
	ErrInvalidViewport,
	ErrInvalidStyle,
	ErrUnknownPreset,
	ErrInvalidMotion,
	ErrInvalidSchedule,
}

// IsClientError returns true if the error represents a client-side issue
// that will not succeed on retry without client-side changes.
func IsClientError(err error) bool {
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
