package domain

import "fmt"

// CoverageError reports a violated data-quality gate. It is fatal: callers
// must not persist degraded sentiment output.
type CoverageError struct {
	Coverage  float64
	Threshold float64
}

func (e *CoverageError) Error() string {
	return fmt.Sprintf("sentiment coverage %.2f < %.2f", e.Coverage, e.Threshold)
}

// ConfigError reports an invalid configuration detected before any
// processing starts.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %s", e.Field, e.Reason)
}
