package gen

import "github.com/typegrow/typegrow/compiler/load"

// Generator walks a schema model and produces the mapping from unit
// name to generated source text for one target. It holds no mutable
// state across invocations: every Generate call builds fresh emitters
// and returns an independent map, so independent callers may generate
// concurrently with their own Generator or share one freely.
type Generator struct {
	cfg    *Config
	target Target
}

// NewGenerator creates a Generator for the target, applying options on
// top of the defaults.
func NewGenerator(target Target, opts ...Option) (*Generator, error) {
	if target == nil {
		return nil, NewConfigError("Target", nil, "target cannot be nil")
	}
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg, target: target}, nil
}

// Config returns the generator's configuration.
func (g *Generator) Config() *Config { return g.cfg }

// Generate produces one unit per definition reachable from the schema,
// namespaced and fully formatted. Generation is all-or-nothing: on the
// first MissingDefaultError or UnitCollisionError the whole schema is
// aborted and no partial mapping is returned.
func (g *Generator) Generate(s *Schema) (map[string]string, error) {
	units := make(map[string]string)
	owners := make(map[string]string)
	for _, def := range s.Definitions {
		ctx := &Context{Config: g.cfg, Schema: s}
		if err := g.generate(ctx, def, units, owners); err != nil {
			return nil, err
		}
	}
	return units, nil
}

// GenerateDefinition produces the units for a single definition and
// its descendants under an explicit hierarchy context. Top-level
// callers pass nil parent and inherited fields.
func (g *Generator) GenerateDefinition(s *Schema, def Definition, parent *Protocol, inherited []*Field) (map[string]string, error) {
	ctx := &Context{Config: g.cfg, Schema: s, Parent: parent, Inherited: inherited}
	if parent != nil {
		ctx.Ancestors = []*Protocol{parent}
	}
	units := make(map[string]string)
	owners := make(map[string]string)
	if err := g.generate(ctx, def, units, owners); err != nil {
		return nil, err
	}
	return units, nil
}

func (g *Generator) generate(ctx *Context, def Definition, units, owners map[string]string) error {
	var body string
	var err error
	switch d := def.(type) {
	case *Enumeration:
		body, err = g.target.GenEnum(ctx, d)
	case *Record:
		body, err = g.target.GenRecord(ctx, d)
	case *Protocol:
		body, err = g.target.GenProtocol(ctx, d)
	default:
		return NewSchemaError(def.DefName(), "", "unknown definition kind", nil)
	}
	if err != nil {
		return err
	}
	unit := def.DefName() + "." + g.target.Extension()
	if first, ok := owners[unit]; ok {
		return NewUnitCollisionError(unit, first, def.DefName())
	}
	owners[unit] = def.DefName()
	units[unit] = body

	if p, ok := def.(*Protocol); ok {
		child := &Context{
			Config:    ctx.Config,
			Schema:    ctx.Schema,
			Parent:    p,
			Ancestors: append(append([]*Protocol{}, ctx.Ancestors...), p),
			Inherited: ctx.Flat(p.Fields),
		}
		for _, c := range p.Children {
			if err := g.generate(child, c, units, owners); err != nil {
				return err
			}
		}
	}
	return nil
}

// NewSchema converts a loaded schema document into the model, parsing
// type expressions and versions and rejecting malformed input with
// SchemaError.
func NewSchema(doc *load.Document) (*Schema, error) {
	if doc == nil {
		return nil, NewSchemaError("", "", "nil document", nil)
	}
	s := &Schema{Namespace: doc.Namespace}
	for _, d := range doc.Definitions {
		def, err := newDefinition(d)
		if err != nil {
			return nil, err
		}
		s.Definitions = append(s.Definitions, def)
	}
	return s, nil
}

func newDefinition(d *load.Definition) (Definition, error) {
	switch d.Kind {
	case load.KindEnum:
		e := &Enumeration{Name: d.Name, Doc: d.Doc, Extra: d.Extra}
		for _, v := range d.Values {
			e.Values = append(e.Values, EnumValue{Name: v.Name, Doc: v.Doc})
		}
		return e, nil
	case load.KindRecord:
		fields, err := newFields(d)
		if err != nil {
			return nil, err
		}
		return &Record{Name: d.Name, Doc: d.Doc, Fields: fields, Extra: d.Extra}, nil
	case load.KindProtocol:
		fields, err := newFields(d)
		if err != nil {
			return nil, err
		}
		p := &Protocol{Name: d.Name, Doc: d.Doc, Fields: fields, Extra: d.Extra}
		for _, c := range d.Children {
			child, err := newDefinition(c)
			if err != nil {
				return nil, err
			}
			p.Children = append(p.Children, child)
		}
		return p, nil
	default:
		return nil, NewSchemaError(d.Name, "", "unknown definition kind "+string(d.Kind), nil)
	}
}

func newFields(d *load.Definition) ([]*Field, error) {
	fields := make([]*Field, 0, len(d.Fields))
	for _, f := range d.Fields {
		ref, err := ParseTypeRef(f.Type)
		if err != nil {
			return nil, NewSchemaError(d.Name, f.Name, "invalid type", err)
		}
		since := Version{}
		if f.Since != "" {
			since, err = ParseVersion(f.Since)
			if err != nil {
				return nil, NewSchemaError(d.Name, f.Name, "invalid since version", err)
			}
		}
		fields = append(fields, &Field{
			Name:    f.Name,
			Doc:     f.Doc,
			Type:    ref,
			Since:   since,
			Default: f.Default,
		})
	}
	return fields, nil
}
