package gen

// Target renders single definitions into complete source units for one
// target language. Implementations live in subpackages (java, golang),
// mirroring one unit per definition; the Generator owns traversal,
// inherited-field context, and collision detection.
type Target interface {
	// Name identifies the target (e.g. "java", "go").
	Name() string
	// Extension is the unit-name suffix; units are named
	// "<DefinitionName>.<Extension>".
	Extension() string

	// GenEnum renders a closed value set.
	GenEnum(ctx *Context, e *Enumeration) (string, error)
	// GenRecord renders a terminal class-like construct.
	GenRecord(ctx *Context, r *Record) (string, error)
	// GenProtocol renders an abstract class-like construct. Child
	// definitions are dispatched separately by the Generator.
	GenProtocol(ctx *Context, p *Protocol) (string, error)
}

// Context is the enclosing-hierarchy context a target receives for one
// definition. It is passed explicitly, never held as ambient state, so
// each definition can be generated and tested in isolation.
type Context struct {
	// Config is the engine configuration.
	Config *Config
	// Schema is the schema being generated.
	Schema *Schema
	// Parent is the immediate enclosing protocol, nil at top level.
	Parent *Protocol
	// Ancestors holds every enclosing protocol ordered from outermost
	// to immediate parent.
	Ancestors []*Protocol
	// Inherited is the concatenation of all ancestor protocols' own
	// fields, ordered from outermost ancestor to immediate parent.
	Inherited []*Field
}

// Flat returns the full ordered field list the definition's structural
// methods and constructors operate over: inherited fields followed by
// the definition's own fields.
func (ctx *Context) Flat(own []*Field) []*Field {
	return Flatten(ctx.Inherited, own)
}

// Writer returns a fresh emitter for one unit.
func (ctx *Context) Writer() *IndentWriter {
	return ctx.Config.Writer()
}
