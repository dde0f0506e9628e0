package gen

// Config carries the constructor-time parameters of the engine: the
// container-type spellings, the primitive boxing table, and the line
// predicates driving the indentation-aware emitter. Targets read it,
// never mutate it.
type Config struct {
	// Header is the comment line placed at the top of every unit.
	Header string
	// Indent is the indent unit emitted per nesting depth.
	Indent string
	// LazyType is the spelling of the deferred-value container.
	LazyType string
	// OptionalType is the spelling of the optional-value container.
	OptionalType string
	// Boxed maps primitive type names to their boxed spellings, used
	// when a primitive appears inside a container type. Type names
	// present in this map are compared with == in generated equality.
	Boxed map[string]string
	// Augment matches trimmed lines that open a block.
	Augment LinePredicate
	// Reduce matches trimmed lines that close a block.
	Reduce LinePredicate
}

const defaultHeader = "// Code generated by typegrow. DO NOT EDIT."

// DefaultConfig returns a Config tuned for curly-brace targets:
// four-space indent, lines ending in "{" open a block, lines starting
// with "}" close one.
func DefaultConfig() *Config {
	return &Config{
		Header:       defaultHeader,
		Indent:       "    ",
		LazyType:     "Lazy",
		OptionalType: "java.util.Optional",
		Boxed: map[string]string{
			"boolean": "Boolean",
			"byte":    "Byte",
			"char":    "Character",
			"short":   "Short",
			"int":     "Integer",
			"long":    "Long",
			"float":   "Float",
			"double":  "Double",
		},
		Augment: BlockOpens,
		Reduce:  BlockCloses,
	}
}

// BlockOpens is the default augment predicate: the line ends with an
// opening brace.
func BlockOpens(line string) bool {
	return len(line) > 0 && line[len(line)-1] == '{'
}

// BlockCloses is the default reduce predicate: the line starts with a
// closing brace.
func BlockCloses(line string) bool {
	return len(line) > 0 && line[0] == '}'
}

// Writer returns a fresh IndentWriter configured with the Config's
// indent unit and predicates. Each generated unit gets its own writer;
// no emitter state is shared across units or invocations.
func (c *Config) Writer() *IndentWriter {
	return NewIndentWriter(c.Indent, c.Augment, c.Reduce)
}

// IsPrimitive reports whether the type name is a known primitive, per
// the boxing table.
func (c *Config) IsPrimitive(name string) bool {
	_, ok := c.Boxed[name]
	return ok
}

// Box returns the boxed spelling for a primitive, or the name itself
// for non-primitives.
func (c *Config) Box(name string) string {
	if boxed, ok := c.Boxed[name]; ok {
		return boxed
	}
	return name
}
