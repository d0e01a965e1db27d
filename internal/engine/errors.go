package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig matches every configuration error via errors.Is.
var ErrInvalidConfig = errors.New("invalid engine configuration")

// ConfigError names one rejected configuration option.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid engine configuration: %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

func configErr(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
