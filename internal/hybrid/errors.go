package hybrid

import (
	"errors"
	"fmt"
	"strings"

	"stockquote/internal/provider"
)

var ErrExhausted = errors.New("all quote sources failed")

// ResolutionError is returned when no step of the chain produced a quote.
// Attempt errors come from the adapters and are already free of credentials.
type ResolutionError struct {
	Symbol   provider.Symbol
	Attempts []Attempt

	// cause is the context error when the resolution was cut short.
	cause error
}

func (e *ResolutionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "resolve %s: %v", e.Symbol, ErrExhausted)
	if e.cause != nil {
		fmt.Fprintf(&b, " (%v)", e.cause)
	}
	sep := ": "
	for _, a := range e.Attempts {
		if a.Err == nil {
			continue
		}
		fmt.Fprintf(&b, "%s%s: %v", sep, a.Source, a.Err)
		sep = "; "
	}
	return b.String()
}

func (e *ResolutionError) Unwrap() []error {
	if e.cause != nil {
		return []error{ErrExhausted, e.cause}
	}
	return []error{ErrExhausted}
}
