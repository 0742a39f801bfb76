// Package errors provides the error types shared by every stage of the sales
// analysis pipeline. AnalysisError carries the failing operation, the column
// or artifact involved and the underlying cause, and works with errors.Is and
// errors.As through the sentinels declared here.
package errors

import (
	"fmt"
	"strings"
)

// AnalysisError represents a failure in loading, aggregating or rendering.
type AnalysisError struct {
	Op      string // Operation name (e.g., "Load", "RevenuePerUnit", "WriteChart")
	Column  string // Column, metric or artifact name if applicable
	Line    int    // 1-based source line for load errors, 0 otherwise
	Message string // Human-readable error description
	Hint    string // Optional remediation shown after the message
	Cause   error  // Underlying error cause
}

// Error implements the error interface
func (e *AnalysisError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Op)
	sb.WriteString(" failed")
	if e.Line > 0 {
		fmt.Fprintf(&sb, " at line %d", e.Line)
	}
	if e.Column != "" {
		fmt.Fprintf(&sb, " on '%s'", e.Column)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	if e.Hint != "" {
		sb.WriteString(" (Hint: ")
		sb.WriteString(e.Hint)
		sb.WriteString(")")
	}
	return sb.String()
}

// Unwrap returns the underlying cause for error wrapping support
func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AnalysisError with the same Op, Column and
// Message. Sentinels match on Message alone so that errors.Is(err, ErrUndefined)
// holds for every undefined-metric error regardless of the metric.
func (e *AnalysisError) Is(target error) bool {
	t, ok := target.(*AnalysisError)
	if !ok {
		return false
	}
	if t.sentinel() {
		return e.Message == t.Message
	}
	return e.Op == t.Op && e.Column == t.Column && e.Message == t.Message
}

func (e *AnalysisError) sentinel() bool {
	return e == ErrUndefined || e == ErrEmptyDataset || e == ErrMissingInput
}

// WithHint returns a copy of the error carrying a remediation hint.
func (e *AnalysisError) WithHint(hint string) *AnalysisError {
	c := *e
	c.Hint = hint
	return &c
}

const (
	undefinedMessage    = "result is undefined"
	emptyDatasetMessage = "dataset contains no records"
	missingInputMessage = "input file does not exist"
)

// Predefined error variables for common cases
var (
	// ErrUndefined marks a degenerate aggregate such as a ratio with a zero denominator.
	ErrUndefined = &AnalysisError{Op: "aggregate", Message: undefinedMessage}

	// ErrEmptyDataset indicates a source with a header but no data rows.
	ErrEmptyDataset = &AnalysisError{Op: "load", Message: emptyDatasetMessage}

	// ErrMissingInput indicates that the configured input file is absent.
	ErrMissingInput = &AnalysisError{Op: "load", Message: missingInputMessage}
)

// NewLoadError creates an error for a failure while reading the source.
func NewLoadError(op string, line int, message string, cause error) *AnalysisError {
	return &AnalysisError{
		Op:      op,
		Line:    line,
		Message: message,
		Cause:   cause,
	}
}

// NewDateParseError creates an error for a row whose date cannot be parsed.
func NewDateParseError(line int, value string, cause error) *AnalysisError {
	return &AnalysisError{
		Op:      "ParseDate",
		Column:  "Date",
		Line:    line,
		Message: fmt.Sprintf("cannot parse date %q", value),
		Cause:   cause,
	}
}

// NewColumnNotFoundError creates an error for a required column absent from the header.
func NewColumnNotFoundError(op, column string) *AnalysisError {
	return &AnalysisError{
		Op:      op,
		Column:  column,
		Message: "column does not exist",
	}
}

// NewInvalidInputError creates an error for invalid operation inputs
func NewInvalidInputError(op, message string) *AnalysisError {
	return &AnalysisError{
		Op:      op,
		Message: message,
	}
}

// NewUndefinedError creates a degenerate-aggregate error for metric. It matches
// ErrUndefined under errors.Is.
func NewUndefinedError(op, metric, reason string) *AnalysisError {
	return &AnalysisError{
		Op:      op,
		Column:  metric,
		Message: undefinedMessage,
		Hint:    reason,
	}
}

// NewMissingInputError creates an error for an absent input file. It matches
// ErrMissingInput under errors.Is.
func NewMissingInputError(path string) *AnalysisError {
	return &AnalysisError{
		Op:      "load",
		Column:  path,
		Message: missingInputMessage,
		Hint:    "place the transactions CSV at the configured input_path",
	}
}

// NewOutputError creates an error for an artifact that could not be written.
func NewOutputError(artifact string, cause error) *AnalysisError {
	return &AnalysisError{
		Op:      "WriteOutput",
		Column:  artifact,
		Message: "cannot write artifact",
		Cause:   cause,
	}
}
