package provider

import (
	"fmt"
	"strings"
)

const maxSymbolLen = 5

// Symbol is a ticker that passed IsValidSymbol, already trimmed and upper-cased.
type Symbol string

func (s Symbol) String() string { return string(s) }

// IsValidSymbol reports whether input is 1 to 5 Latin letters once trimmed
// and upper-cased.
func IsValidSymbol(input string) bool {
	s := strings.ToUpper(strings.TrimSpace(input))
	if len(s) == 0 || len(s) > maxSymbolLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// ParseSymbol normalizes input into a Symbol.
func ParseSymbol(input string) (Symbol, error) {
	if !IsValidSymbol(input) {
		return "", &SymbolError{Input: input}
	}
	return Symbol(strings.ToUpper(strings.TrimSpace(input))), nil
}

// SymbolError reports ticker input that cannot be looked up at all.
type SymbolError struct {
	Input string
}

func (e *SymbolError) Error() string {
	in := e.Input
	if r := []rune(in); len(r) > 16 {
		in = string(r[:16]) + "..."
	}
	return fmt.Sprintf("invalid symbol %q: must be 1-5 letters", in)
}

func (e *SymbolError) Unwrap() error { return ErrInvalidSymbol }
