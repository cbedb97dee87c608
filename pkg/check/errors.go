package check

import (
	"errors"
	"fmt"
)

var (
	// ErrNoBatteries is returned when the host reports no batteries at all.
	ErrNoBatteries = errors.New("no batteries found")

	// ErrTooManyBatteries is returned when more than one battery exists and no id was given.
	ErrTooManyBatteries = errors.New("more than one battery found")

	// ErrUnknownBatteryID is returned when the given id is out of range.
	ErrUnknownBatteryID = errors.New("unknown battery id")

	// ErrUnknown covers internal inconsistencies, such as a selected battery
	// that cannot be read.
	ErrUnknown = errors.New("unknown error")
)

// ProviderError wraps a failure reported by the battery provider itself.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("battery provider: %v", e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Kind is the terminal result of a run. Its value is the process exit code.
type Kind int

const (
	KindPass             Kind = 0
	KindFail             Kind = 1
	KindNoBatteries      Kind = 2
	KindTooManyBatteries Kind = 3
	KindUnknownBatteryID Kind = 4
	KindUnknown          Kind = 5
	KindProviderError    Kind = 6
)

func (k Kind) String() string {
	switch k {
	case KindPass:
		return "pass"
	case KindFail:
		return "fail"
	case KindNoBatteries:
		return "noBatteries"
	case KindTooManyBatteries:
		return "tooManyBatteries"
	case KindUnknownBatteryID:
		return "unknownBatteryId"
	case KindProviderError:
		return "providerError"
	default:
		return "unknown"
	}
}

// KindOf classifies an error returned from a cycle. A nil error is KindPass.
func KindOf(err error) Kind {
	var perr *ProviderError
	switch {
	case err == nil:
		return KindPass
	case errors.Is(err, ErrNoBatteries):
		return KindNoBatteries
	case errors.Is(err, ErrTooManyBatteries):
		return KindTooManyBatteries
	case errors.Is(err, ErrUnknownBatteryID):
		return KindUnknownBatteryID
	case errors.As(err, &perr):
		return KindProviderError
	default:
		return KindUnknown
	}
}

// Outcome is the result of a whole run. The zero value is a pass.
type Outcome struct {
	Kind Kind
	Err  error
}

// OutcomeOf maps the result of a single cycle to an Outcome.
func OutcomeOf(passed bool, err error) Outcome {
	if err != nil {
		return Outcome{Kind: KindOf(err), Err: err}
	}
	if !passed {
		return Outcome{Kind: KindFail}
	}
	return Outcome{Kind: KindPass}
}

// ExitCode returns the process exit code for the outcome.
func (o Outcome) ExitCode() int {
	return int(o.Kind)
}

// Message returns the diagnostic line for error outcomes, or an empty string
// for pass and fail.
func (o Outcome) Message() string {
	switch o.Kind {
	case KindPass, KindFail:
		return ""
	case KindNoBatteries:
		return "No batteries found, unable to continue program execution"
	case KindTooManyBatteries:
		return "More than one battery found, specify the battery ID"
	case KindUnknownBatteryID:
		return "Provided battery id is invalid"
	case KindProviderError:
		var perr *ProviderError
		if errors.As(o.Err, &perr) {
			return fmt.Sprintf("Unknown battery error: %v", perr.Err)
		}
		return fmt.Sprintf("Unknown battery error: %v", o.Err)
	default:
		return "Unknown error"
	}
}
