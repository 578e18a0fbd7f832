package app

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the recoverable failure modes. None of them should
// ever abort the hosting shell session; commands report them and return.
var (
	// ErrNotFound indicates a requested theme name matched no descriptor.
	ErrNotFound = errors.New("theme not found")

	// ErrSourceUnavailable indicates a theme directory is missing or empty.
	ErrSourceUnavailable = errors.New("theme source unavailable")

	// ErrPersistence indicates the marker file or init script could not be written.
	ErrPersistence = errors.New("could not persist theme selection")

	// ErrExternalTool indicates the prompt tool could not be run or printed nothing usable.
	ErrExternalTool = errors.New("prompt tool failed")

	// ErrCancelled indicates the user left the menu without choosing.
	ErrCancelled = errors.New("selection cancelled")

	// ErrNoTerminal indicates a menu was requested without a terminal to read keys from.
	ErrNoTerminal = errors.New("no terminal for the menu; pass a theme name")
)

// NotFoundError carries the names the user could have meant.
type NotFoundError struct {
	Name        string
	Filter      Filter
	Suggestions []string
	Available   []string
}

func (e *NotFoundError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "theme %q not found", e.Name)
	if e.Filter == FilterPersonal || e.Filter == FilterBuiltin {
		fmt.Fprintf(&b, " in %s themes", e.Filter)
	}
	switch {
	case len(e.Suggestions) > 0:
		fmt.Fprintf(&b, "; did you mean: %s", strings.Join(e.Suggestions, ", "))
	case len(e.Available) > 0:
		fmt.Fprintf(&b, "; available: %s", strings.Join(e.Available, ", "))
	default:
		b.WriteString("; no themes available")
	}
	return b.String()
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// usageError marks errors caused by bad flags or arguments (exit code 2).
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}
