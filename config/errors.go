package config

import "fmt"

// ConfigurationError reports an invalid configuration value.
// It is returned immediately by Load and Validate; values are never coerced.
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config: invalid %s %v: %s", e.Field, e.Value, e.Reason)
}
