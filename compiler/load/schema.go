// Package load reads typegrow schema documents and validates their
// structure. It owns everything about the textual format; the engine
// in compiler/gen consumes only the descriptor types defined here.
package load

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Kind names a definition variant in a schema document.
type Kind string

// The three definition kinds.
const (
	KindEnum     Kind = "enum"
	KindRecord   Kind = "record"
	KindProtocol Kind = "protocol"
)

// ErrInvalidDocument indicates a structurally invalid schema document.
var ErrInvalidDocument = errors.New("typegrow: invalid schema document")

// Document is a parsed schema file: a namespace plus its ordered
// top-level definitions.
type Document struct {
	Namespace   string        `yaml:"namespace"`
	Definitions []*Definition `yaml:"types"`
}

// Definition is one definition descriptor. Which fields are legal
// depends on Kind: enums carry values, records carry fields, and
// protocols carry fields plus child definitions.
type Definition struct {
	Name     string        `yaml:"name"`
	Kind     Kind          `yaml:"kind"`
	Doc      string        `yaml:"doc,omitempty"`
	Fields   []*Field      `yaml:"fields,omitempty"`
	Values   []*EnumValue  `yaml:"values,omitempty"`
	Children []*Definition `yaml:"types,omitempty"`
	// Extra holds verbatim target-language lines appended inside the
	// generated block.
	Extra []string `yaml:"extra,omitempty"`
}

// Field is one field descriptor. Type is a type expression such as
// "int", "lazy String", "int[]", or "Level?". Since and Default are
// passed through verbatim; the engine parses and enforces them.
type Field struct {
	Name    string `yaml:"name"`
	Doc     string `yaml:"doc,omitempty"`
	Type    string `yaml:"type"`
	Since   string `yaml:"since,omitempty"`
	Default string `yaml:"default,omitempty"`
}

// EnumValue is one named, optionally documented enumeration value.
type EnumValue struct {
	Name string `yaml:"name"`
	Doc  string `yaml:"doc,omitempty"`
}

// ValidationError reports a structural defect in a schema document.
type ValidationError struct {
	Element string // definition or field the defect was found on
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("typegrow: invalid schema document: %s: %s", e.Element, e.Message)
	}
	return "typegrow: invalid schema document: " + e.Message
}

// Is reports whether the target matches the sentinel for ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidDocument
}

func invalid(element, message string) *ValidationError {
	return &ValidationError{Element: element, Message: message}
}

// Parse decodes and validates a schema document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("typegrow: decode schema document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ParseFile reads and parses a schema document from disk.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Validate checks the document's structure: names present, kinds
// known, and per-kind shape rules respected. Field types and versions
// are validated later by the engine, which owns their syntax.
func (d *Document) Validate() error {
	if d.Namespace == "" {
		return invalid("", "missing namespace")
	}
	if len(d.Definitions) == 0 {
		return invalid(d.Namespace, "document declares no types")
	}
	for _, def := range d.Definitions {
		if err := def.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (def *Definition) validate() error {
	if def.Name == "" {
		return invalid("", "definition with empty name")
	}
	switch def.Kind {
	case KindEnum:
		if len(def.Values) == 0 {
			return invalid(def.Name, "enum declares no values")
		}
		if len(def.Fields) > 0 || len(def.Children) > 0 {
			return invalid(def.Name, "enum cannot declare fields or child types")
		}
		for _, v := range def.Values {
			if v.Name == "" {
				return invalid(def.Name, "enum value with empty name")
			}
		}
	case KindRecord:
		if len(def.Values) > 0 {
			return invalid(def.Name, "record cannot declare enum values")
		}
		if len(def.Children) > 0 {
			return invalid(def.Name, "record cannot declare child types")
		}
		return validateFields(def)
	case KindProtocol:
		if len(def.Values) > 0 {
			return invalid(def.Name, "protocol cannot declare enum values")
		}
		if err := validateFields(def); err != nil {
			return err
		}
		for _, c := range def.Children {
			if err := c.validate(); err != nil {
				return err
			}
		}
	case "":
		return invalid(def.Name, "missing kind")
	default:
		return invalid(def.Name, fmt.Sprintf("unknown kind %q", def.Kind))
	}
	return nil
}

func validateFields(def *Definition) error {
	seen := make(map[string]bool, len(def.Fields))
	for _, f := range def.Fields {
		switch {
		case f.Name == "":
			return invalid(def.Name, "field with empty name")
		case f.Type == "":
			return invalid(def.Name+"."+f.Name, "missing type")
		case seen[f.Name]:
			return invalid(def.Name+"."+f.Name, "duplicate field name")
		}
		seen[f.Name] = true
	}
	return nil
}
