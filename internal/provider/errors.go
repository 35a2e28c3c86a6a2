package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidSymbol     = errors.New("invalid symbol")
	ErrCredentialMissing = errors.New("credential missing or invalid")
	ErrNetwork           = errors.New("network error")
	ErrHTTPStatus        = errors.New("unexpected status code")
	ErrApplication       = errors.New("provider error")
	ErrRateLimited       = errors.New("rate limited")
	ErrMalformedQuote    = errors.New("malformed quote")
)

// Error is the failure of one provider call. Kind is one of the sentinel
// errors above; Message never contains a raw credential.
type Error struct {
	Provider   string
	Kind       error
	StatusCode int
	Message    string

	// cause is kept only for context cancellation, which carries no secrets.
	cause error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Provider)
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (%d)", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	if e.cause != nil {
		return []error{e.Kind, e.cause}
	}
	return []error{e.Kind}
}

// Errors builds provider errors whose messages are scrubbed of a secret.
type Errors struct {
	Provider string
	Secret   string
}

// New returns an error of the given kind with a sanitized message.
func (f Errors) New(kind error, format string, args ...any) *Error {
	return &Error{
		Provider: f.Provider,
		Kind:     kind,
		Message:  Redact(fmt.Sprintf(format, args...), f.Secret),
	}
}

// Status returns an HTTP status error. 429 is reported as ErrRateLimited.
func (f Errors) Status(code int, format string, args ...any) *Error {
	kind := ErrHTTPStatus
	if code == 429 {
		kind = ErrRateLimited
	}
	e := f.New(kind, format, args...)
	e.StatusCode = code
	return e
}

// Network wraps a transport failure. The underlying error text (which for
// *url.Error includes the request URL and thus query credentials) is redacted.
func (f Errors) Network(err error) *Error {
	e := f.New(ErrNetwork, "%s", err.Error())
	switch {
	case errors.Is(err, context.Canceled):
		e.cause = context.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		e.cause = context.DeadlineExceeded
	}
	return e
}

// Sanitize converts any error into a provider error with a redacted message.
// Provider errors pass through with their message re-redacted.
func (f Errors) Sanitize(err error) error {
	if err == nil {
		return nil
	}
	var pe *Error
	if errors.As(err, &pe) {
		out := *pe
		out.Message = Redact(pe.Message, f.Secret)
		return &out
	}
	return f.Network(err)
}
