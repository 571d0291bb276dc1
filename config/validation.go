package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/andareed/siftly-obsmap/boundary"
)

// ValidationError is one invalid setting.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// ValidationErrors collects every invalid setting found.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate reports every invalid setting as ValidationErrors.
func (c *Config) Validate() error {
	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if c.Input.Flag != "" && !slices.Contains(boundary.FlagColumns, c.Input.Flag) {
		add("input.flag", "unknown flag column %q (want one of %s)", c.Input.Flag, strings.Join(boundary.FlagColumns, ", "))
	}
	if c.Input.Context != "" && c.Input.Context != boundary.NoContext && !slices.Contains(boundary.ContextColumns, c.Input.Context) {
		add("input.context", "unknown context column %q", c.Input.Context)
	}
	if c.Preview.Limit <= 0 {
		add("preview.limit", "must be positive, got %d", c.Preview.Limit)
	}
	if c.Chart.Width < 100 {
		add("chart.width", "must be at least 100, got %d", c.Chart.Width)
	}
	if c.Chart.Height < 60 {
		add("chart.height", "must be at least 60, got %d", c.Chart.Height)
	}
	if c.Chart.ContextHeight < 60 {
		add("chart.context_height", "must be at least 60, got %d", c.Chart.ContextHeight)
	}
	if c.Watch.DebounceMS < 0 {
		add("watch.debounce_ms", "must not be negative, got %d", c.Watch.DebounceMS)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
