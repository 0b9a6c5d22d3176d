package config

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidValue indicates an option with the wrong type or range.
	ErrInvalidValue = errors.New("invalid value")

	// ErrUnknownKey indicates a top-level key that is neither a known
	// setting nor a rule table.
	ErrUnknownKey = errors.New("unknown key")
)

// Error reports a malformed configuration value.
type Error struct {
	// Path is the configuration file, when known.
	Path string

	// Section is the rule ID or top-level table holding the key.
	Section string

	// Key is the offending option.
	Key string

	Err error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString("config")
	if e.Path != "" {
		sb.WriteString(" ")
		sb.WriteString(e.Path)
	}
	if loc := e.location(); loc != "" {
		sb.WriteString(": ")
		sb.WriteString(loc)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) location() string {
	switch {
	case e.Section != "" && e.Key != "":
		return e.Section + "." + e.Key
	case e.Section != "":
		return e.Section
	default:
		return e.Key
	}
}
