// Package validation provides small, composable validators used when loading
// a transaction file and when checking configuration. Every validator reports
// failures as *errors.AnalysisError so callers can match them uniformly.
package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/paveg/salesinsight/internal/errors"
)

// Validator interface for input validation
type Validator interface {
	Validate() error
}

// ColumnProvider interface for types that provide column information
type ColumnProvider interface {
	HasColumn(name string) bool
	Columns() []string
}

// ColumnValidator validates column existence
type ColumnValidator struct {
	provider ColumnProvider
	columns  []string
	op       string
}

// NewColumnValidator creates a validator for required columns
func NewColumnValidator(provider ColumnProvider, op string, columns ...string) *ColumnValidator {
	return &ColumnValidator{
		provider: provider,
		columns:  columns,
		op:       op,
	}
}

// Validate checks that every required column exists. The first missing column
// is reported, with a case-insensitive match offered as a hint when one exists.
func (v *ColumnValidator) Validate() error {
	for _, column := range v.columns {
		if v.provider.HasColumn(column) {
			continue
		}
		err := errors.NewColumnNotFoundError(v.op, column)
		available := v.provider.Columns()
		if idx := slices.IndexFunc(available, func(c string) bool { return strings.EqualFold(c, column) }); idx >= 0 {
			return err.WithHint(fmt.Sprintf("did you mean '%s'?", available[idx]))
		}
		return err.WithHint(fmt.Sprintf("available columns: [%s]", strings.Join(available, ", ")))
	}
	return nil
}

// MinValidator validates that an integer setting is at least min
type MinValidator struct {
	name  string
	value int
	min   int
	op    string
}

// NewMinValidator creates a validator for a lower bound
func NewMinValidator(value, minValue int, op, name string) *MinValidator {
	return &MinValidator{name: name, value: value, min: minValue, op: op}
}

// Validate checks the lower bound
func (v *MinValidator) Validate() error {
	if v.value < v.min {
		return errors.NewInvalidInputError(v.op, fmt.Sprintf("%s must be at least %d, got %d", v.name, v.min, v.value))
	}
	return nil
}

// NotEmptyValidator validates that a string setting is non-blank
type NotEmptyValidator struct {
	name  string
	value string
	op    string
}

// NewNotEmptyValidator creates a validator for a required string
func NewNotEmptyValidator(value, op, name string) *NotEmptyValidator {
	return &NotEmptyValidator{name: name, value: value, op: op}
}

// Validate checks that the value is non-blank
func (v *NotEmptyValidator) Validate() error {
	if strings.TrimSpace(v.value) == "" {
		return errors.NewInvalidInputError(v.op, v.name+" must not be empty")
	}
	return nil
}

// OneOfValidator validates that every value belongs to an allowed set
type OneOfValidator struct {
	name    string
	values  []string
	allowed []string
	op      string
}

// NewOneOfValidator creates a validator for enumerated settings
func NewOneOfValidator(values, allowed []string, op, name string) *OneOfValidator {
	return &OneOfValidator{name: name, values: values, allowed: allowed, op: op}
}

// Validate checks set membership
func (v *OneOfValidator) Validate() error {
	for _, value := range v.values {
		if !slices.Contains(v.allowed, value) {
			return errors.NewInvalidInputError(v.op,
				fmt.Sprintf("unsupported %s %q (allowed: %s)", v.name, value, strings.Join(v.allowed, ", ")))
		}
	}
	return nil
}

// CompoundValidator combines multiple validators
type CompoundValidator struct {
	validators []Validator
}

// NewCompoundValidator creates a validator that checks multiple conditions
func NewCompoundValidator(validators ...Validator) *CompoundValidator {
	return &CompoundValidator{
		validators: validators,
	}
}

// Validate runs all validators and returns the first error encountered
func (v *CompoundValidator) Validate() error {
	for _, validator := range v.validators {
		if err := validator.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Convenience validation functions

// ValidateColumns is a convenience function for column validation
func ValidateColumns(provider ColumnProvider, op string, columns ...string) error {
	return NewColumnValidator(provider, op, columns...).Validate()
}
