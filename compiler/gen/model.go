package gen

import (
	"fmt"
	"strconv"
	"strings"
)

// The following types form the in-memory schema model. The model is
// constructed once, either directly or from load descriptors via
// NewSchema, and is read-only input to generation.
type (
	// Schema is the root of the model: a namespace identifier plus its
	// ordered top-level definitions.
	Schema struct {
		// Namespace is the dotted namespace the generated units live in.
		Namespace string
		// Definitions holds the top-level definitions in declared order.
		Definitions []Definition
	}

	// Definition is the closed set of schema definition kinds. Exactly
	// three types implement it: Enumeration, Record, and Protocol.
	// Generation dispatches exhaustively over these; a new kind that
	// fails to extend the dispatch is a generation error, never a
	// silently skipped case.
	Definition interface {
		// DefName returns the definition name, which also names the
		// generated unit.
		DefName() string
		// DefDoc returns the documentation string, empty if absent.
		DefDoc() string

		definition()
	}

	// Enumeration is a closed set of named values with no per-value state.
	Enumeration struct {
		Name string
		Doc  string
		// Values holds the enumeration values in declared order.
		Values []EnumValue
		// Extra holds verbatim target-language lines appended inside
		// the generated block.
		Extra []string
	}

	// EnumValue is one named, optionally documented enumeration value.
	EnumValue struct {
		Name string
		Doc  string
	}

	// Record is a terminal, non-extensible data container.
	Record struct {
		Name string
		Doc  string
		// Fields holds the record's own fields; inherited fields live
		// in the ancestor protocols.
		Fields []*Field
		Extra  []string
	}

	// Protocol is an abstract, extensible definition: declared fields
	// plus a tree of increasingly concrete child definitions.
	Protocol struct {
		Name   string
		Doc    string
		Fields []*Field
		// Children holds the child definitions in declared order.
		// Children may themselves be protocols or records.
		Children []Definition
		Extra    []string
	}

	// Field is one declared field of a record or protocol.
	Field struct {
		Name string
		Doc  string
		Type TypeRef
		// Since is the version at which the field was introduced.
		Since Version
		// Default is the literal target-language expression assigned
		// when a caller built against an older era omits the field.
		// Empty means no default. A field whose Since exceeds the
		// owning type's first era must carry one.
		Default string
	}

	// TypeRef is a semantic type name plus independent shape flags.
	// All flag combinations are legal and map to distinct target
	// spellings.
	TypeRef struct {
		Name string
		// Lazy marks a value produced on demand rather than stored.
		Lazy bool
		// Repeated marks a fixed-size sequence rather than a scalar.
		Repeated bool
		// Optional marks a possibly-absent value.
		Optional bool
	}
)

func (e *Enumeration) DefName() string { return e.Name }
func (e *Enumeration) DefDoc() string  { return e.Doc }
func (e *Enumeration) definition()     {}

func (r *Record) DefName() string { return r.Name }
func (r *Record) DefDoc() string  { return r.Doc }
func (r *Record) definition()     {}

func (p *Protocol) DefName() string { return p.Name }
func (p *Protocol) DefDoc() string  { return p.Doc }
func (p *Protocol) definition()     {}

// HasDefault reports whether the field carries a default expression.
func (f *Field) HasDefault() bool { return f.Default != "" }

// HasLazy reports whether any field in the list is lazy-typed.
// Structural method generation branches on this: forcing a deferred
// value for equality, hashing, or printing is never acceptable.
func HasLazy(fields []*Field) bool {
	for _, f := range fields {
		if f.Type.Lazy {
			return true
		}
	}
	return false
}

// Flatten returns inherited fields followed by own fields, in order.
// The result is a fresh slice; neither input is aliased.
func Flatten(inherited, own []*Field) []*Field {
	out := make([]*Field, 0, len(inherited)+len(own))
	out = append(out, inherited...)
	return append(out, own...)
}

// Version is a totally ordered version number: dot-separated numeric
// components compared element-wise, with missing components treated as
// zero. The zero Version compares equal to "0".
type Version struct {
	parts []int
}

// ParseVersion parses a dot-separated numeric version such as "0.1.0".
func ParseVersion(s string) (Version, error) {
	if strings.TrimSpace(s) == "" {
		return Version{}, fmt.Errorf("empty version")
	}
	segs := strings.Split(strings.TrimSpace(s), ".")
	parts := make([]int, len(segs))
	for i, seg := range segs {
		n, err := strconv.Atoi(seg)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid version %q", s)
		}
		parts[i] = n
	}
	return Version{parts: parts}, nil
}

// MustParseVersion is ParseVersion that panics on error.
// Intended for fixed versions in tests and option defaults.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare returns -1, 0, or +1 ordering v against o.
func (v Version) Compare(o Version) int {
	n := len(v.parts)
	if len(o.parts) > n {
		n = len(o.parts)
	}
	for i := 0; i < n; i++ {
		a, b := 0, 0
		if i < len(v.parts) {
			a = v.parts[i]
		}
		if i < len(o.parts) {
			b = o.parts[i]
		}
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
	}
	return 0
}

// Equal reports whether the two versions compare equal.
func (v Version) Equal(o Version) bool { return v.Compare(o) == 0 }

// Less reports whether v orders strictly before o.
func (v Version) Less(o Version) bool { return v.Compare(o) < 0 }

// String renders the version in its dot-separated form.
func (v Version) String() string {
	if len(v.parts) == 0 {
		return "0"
	}
	segs := make([]string, len(v.parts))
	for i, p := range v.parts {
		segs[i] = strconv.Itoa(p)
	}
	return strings.Join(segs, ".")
}

// ParseTypeRef parses a type expression of the form
//
//	[lazy ] name [?] [[]]
//
// for example "int", "lazy String", "int[]", "Level?", or "lazy int[]".
func ParseTypeRef(s string) (TypeRef, error) {
	var ref TypeRef
	rest := strings.TrimSpace(s)
	if name, ok := strings.CutPrefix(rest, "lazy "); ok {
		ref.Lazy = true
		rest = strings.TrimSpace(name)
	}
	if name, ok := strings.CutSuffix(rest, "[]"); ok {
		ref.Repeated = true
		rest = name
	}
	if name, ok := strings.CutSuffix(rest, "?"); ok {
		ref.Optional = true
		rest = name
	}
	if rest == "" || strings.ContainsAny(rest, " \t") {
		return TypeRef{}, fmt.Errorf("invalid type expression %q", s)
	}
	ref.Name = rest
	return ref, nil
}
