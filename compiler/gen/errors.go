package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the generation failure cases. Both generation
// failures are schema authoring defects, not transient conditions;
// generation is deterministic and there is no retry path.
var (
	// ErrMissingDefault indicates a field introduced after an era
	// without a default expression to back-fill it.
	ErrMissingDefault = errors.New("typegrow: missing default value")
	// ErrUnitCollision indicates two definitions producing the same
	// generated unit name.
	ErrUnitCollision = errors.New("typegrow: generated unit collision")
	// ErrInvalidSchema indicates a malformed schema document or model.
	ErrInvalidSchema = errors.New("typegrow: invalid schema")
	// ErrInvalidConfig indicates a configuration error.
	ErrInvalidConfig = errors.New("typegrow: invalid configuration")
)

// MissingDefaultError reports a field that a constructor era must
// back-fill but which carries no default expression. It is fatal for
// the whole schema: fabricating a placeholder would hand callers wrong
// values, so generation aborts instead.
type MissingDefaultError struct {
	Type  string  // owning definition name
	Field string  // offending field name
	Since Version // version the field was introduced at
	Era   Version // constructor era that needed the default
}

// Error implements the error interface.
func (e *MissingDefaultError) Error() string {
	return fmt.Sprintf("typegrow: missing default value for %s.%s (since %s) required by the version %s constructor",
		e.Type, e.Field, e.Since, e.Era)
}

// Is reports whether the target matches the sentinel for MissingDefaultError.
func (e *MissingDefaultError) Is(target error) bool {
	return target == ErrMissingDefault
}

// NewMissingDefaultError creates a new MissingDefaultError.
func NewMissingDefaultError(typeName, fieldName string, since, era Version) *MissingDefaultError {
	return &MissingDefaultError{
		Type:  typeName,
		Field: fieldName,
		Since: since,
		Era:   era,
	}
}

// UnitCollisionError reports two definitions generating the same unit
// name. It is fatal for the whole schema: overwriting one unit with
// another would silently drop generated code.
type UnitCollisionError struct {
	Unit   string // colliding unit name
	First  string // definition that produced the unit first
	Second string // definition that collided with it
}

// Error implements the error interface.
func (e *UnitCollisionError) Error() string {
	return fmt.Sprintf("typegrow: definitions %s and %s both generate unit %q",
		e.First, e.Second, e.Unit)
}

// Is reports whether the target matches the sentinel for UnitCollisionError.
func (e *UnitCollisionError) Is(target error) bool {
	return target == ErrUnitCollision
}

// NewUnitCollisionError creates a new UnitCollisionError.
func NewUnitCollisionError(unit, first, second string) *UnitCollisionError {
	return &UnitCollisionError{Unit: unit, First: first, Second: second}
}

// SchemaError reports a malformed schema model, typically raised while
// converting load descriptors into the model.
type SchemaError struct {
	Type    string // definition name, if known
	Field   string // field name, if applicable
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("typegrow: schema error")
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error { return e.Cause }

// Is reports whether the target matches the sentinel for SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// NewSchemaError creates a new SchemaError.
func NewSchemaError(typeName, fieldName, message string, cause error) *SchemaError {
	return &SchemaError{
		Type:    typeName,
		Field:   fieldName,
		Message: message,
		Cause:   cause,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("typegrow: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("typegrow: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{Option: option, Value: value, Message: message}
}

// IsMissingDefaultError reports whether the error is a MissingDefaultError.
func IsMissingDefaultError(err error) bool {
	var e *MissingDefaultError
	return errors.As(err, &e)
}

// IsUnitCollisionError reports whether the error is a UnitCollisionError.
func IsUnitCollisionError(err error) bool {
	var e *UnitCollisionError
	return errors.As(err, &e)
}

// IsSchemaError reports whether the error is a SchemaError.
func IsSchemaError(err error) bool {
	var e *SchemaError
	return errors.As(err, &e)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}
