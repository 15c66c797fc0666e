package model

import (
	"errors"
	"fmt"
)

var (
	// ErrArenaNotFound is returned when an arena id is unknown or its teardown already ran.
	ErrArenaNotFound = errors.New("arena not found")
	// ErrNotYourTurn is returned when a player submits a phase for a team they do not own.
	ErrNotYourTurn = errors.New("not your turn")
	// ErrRequestNotFound is returned for an unknown match request id.
	ErrRequestNotFound = errors.New("match request not found")
)

// ValidationError reports a precondition violated by a caller-supplied request.
// It is always raised before any state is mutated.
type ValidationError struct {
	Op  string
	Msg string
}

func (e *ValidationError) Error() string {
	if e.Op == "" {
		return e.Msg
	}
	return e.Op + ": " + e.Msg
}

// Invalidf builds a ValidationError without an operation prefix.
func Invalidf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// InvalidOpf builds a ValidationError tagged with the operation that rejected the request.
func InvalidOpf(op, format string, args ...any) error {
	return &ValidationError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ConfigError reports a game configuration value no formula knows how to handle.
// It marks corrupt catalog data and is never silently defaulted.
type ConfigError struct {
	Game  string
	Field string
	Value string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("game %q: unsupported %s %q", e.Game, e.Field, e.Value)
}

// NewConfigError returns a ConfigError for game g.
func NewConfigError(g *Game, field string, value any) error {
	name := ""
	if g != nil {
		name = g.Name
	}
	return &ConfigError{Game: name, Field: field, Value: fmt.Sprint(value)}
}

// IsConfig reports whether err carries a ConfigError.
func IsConfig(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
