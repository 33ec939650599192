package memsort

import (
	"fmt"
)

// ComparisonError represents a comparator that failed to produce an ordering
// decision. The sort aborts cleanly when one is observed; the slice keeps the
// same multiset of elements in an unspecified order.
type ComparisonError struct {
	// Cause is the original panic or error reported by the comparator
	Cause interface{}
	// Context provides additional information about where the comparison failed
	Context string
}

func (e *ComparisonError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("comparison failed in %s: %v", e.Context, e.Cause)
	}
	return fmt.Sprintf("comparison failed: %v", e.Cause)
}

func (e *ComparisonError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}

// NewComparisonError creates a ComparisonError
func NewComparisonError(cause interface{}, context string) error {
	return &ComparisonError{Cause: cause, Context: context}
}

// InternalError represents an invariant violation or resource failure inside
// the engine itself, as opposed to a failing comparator. It is the only form
// in which an internal panic is allowed to surface from a sort call.
type InternalError struct {
	// Cause is the original panic or error that occurred inside the engine
	Cause interface{}
	// Context names the operation that was running when it occurred
	Context string
}

func (e *InternalError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("internal sort error in %s: %v", e.Context, e.Cause)
	}
	return fmt.Sprintf("internal sort error: %v", e.Cause)
}

func (e *InternalError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}

// NewInternalError creates an InternalError
func NewInternalError(cause interface{}, context string) error {
	return &InternalError{Cause: cause, Context: context}
}

// ConfigError represents an error in configuration parameters
type ConfigError struct {
	// Field is the name of the configuration field that's invalid
	Field string
	// Value is the invalid value provided
	Value interface{}
	// Reason explains why the value is invalid
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in field %s (value: %v): %s", e.Field, e.Value, e.Reason)
}
