package java

import (
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/typegrow/typegrow/compiler/gen"
)

// GenRecord renders a final class: own field declarations, the
// versioned constructor set over the flattened field list, one
// accessor per own field, with-methods for every flattened field, and
// the structural methods.
func (t *Target) GenRecord(ctx *gen.Context, r *gen.Record) (string, error) {
	flat := ctx.Flat(r.Fields)
	plans, err := gen.ConstructorPlans(r.Name, flat)
	if err != nil {
		return "", err
	}
	w := ctx.Writer()
	writePrologue(ctx, w)
	writeDoc(w, r.Doc)
	decl := "public final class " + r.Name
	if ctx.Parent != nil {
		decl += " extends " + ctx.Parent.Name
	}
	w.Line(decl + " implements java.io.Serializable {")
	writeFieldDecls(ctx, w, r.Fields, "private")
	writeConstructors(ctx, w, r.Name, r.Fields, plans)
	writeAccessors(ctx, w, r.Fields)
	writeWithMethods(ctx, w, r.Name, flat)
	writeStructural(ctx, w, r.Name, flat)
	writeExtra(w, r.Extra)
	w.Line("}")
	return w.String(), nil
}

// GenProtocol renders an abstract class: like a record but with
// protected field slots, no with-methods (an abstract type has no
// defaults to preserve for descendant-exclusive fields), and child
// generation left to the engine.
func (t *Target) GenProtocol(ctx *gen.Context, p *gen.Protocol) (string, error) {
	flat := ctx.Flat(p.Fields)
	plans, err := gen.ConstructorPlans(p.Name, flat)
	if err != nil {
		return "", err
	}
	w := ctx.Writer()
	writePrologue(ctx, w)
	writeDoc(w, p.Doc)
	decl := "public abstract class " + p.Name
	if ctx.Parent != nil {
		decl += " extends " + ctx.Parent.Name
	}
	w.Line(decl + " implements java.io.Serializable {")
	writeFieldDecls(ctx, w, p.Fields, "protected")
	writeConstructors(ctx, w, p.Name, p.Fields, plans)
	writeAccessors(ctx, w, p.Fields)
	writeStructural(ctx, w, p.Name, flat)
	writeExtra(w, p.Extra)
	w.Line("}")
	return w.String(), nil
}

// fieldName returns the field slot and parameter identifier.
func fieldName(f *gen.Field) string {
	return inflect.CamelizeDownFirst(f.Name)
}

// accessorName returns the accessor method identifier, which matches
// the field slot name.
func accessorName(f *gen.Field) string {
	return fieldName(f)
}

// withName returns the copy-constructor method identifier.
func withName(f *gen.Field) string {
	return "with" + inflect.Camelize(f.Name)
}

func writeFieldDecls(ctx *gen.Context, w *gen.IndentWriter, own []*gen.Field, visibility string) {
	for _, f := range own {
		writeDoc(w, f.Doc)
		w.Linef("%s final %s %s;", visibility, declared(ctx.Config, f.Type), fieldName(f))
	}
}

// writeConstructors emits one constructor per era. The super call
// receives one positional value per inherited field, either the
// caller-supplied parameter or the field's literal default; own fields
// are assigned the same way. Constructor generation is never skipped:
// a definition with no fields at all still gets its single origin-era
// constructor chaining to the parent.
func writeConstructors(ctx *gen.Context, w *gen.IndentWriter, name string, own []*gen.Field, plans []*gen.ConstructorPlan) {
	for _, plan := range plans {
		w.Line("")
		params := make([]string, 0, len(plan.Provided))
		for _, f := range plan.Provided {
			params = append(params, declared(ctx.Config, f.Type)+" "+fieldName(f))
		}
		w.Linef("public %s(%s) {", name, strings.Join(params, ", "))
		if ctx.Parent != nil {
			args := make([]string, 0, len(ctx.Inherited))
			for _, f := range ctx.Inherited {
				if plan.Provides(f) {
					args = append(args, fieldName(f))
				} else {
					args = append(args, f.Default)
				}
			}
			w.Linef("super(%s);", strings.Join(args, ", "))
		} else {
			w.Line("super();")
		}
		for _, f := range own {
			if plan.Provides(f) {
				w.Linef("this.%s = %s;", fieldName(f), fieldName(f))
			} else {
				w.Linef("this.%s = %s;", fieldName(f), f.Default)
			}
		}
		w.Line("}")
	}
}

// writeAccessors emits one accessor per own field. Lazy fields force
// with .get() and return the unwrapped type; a failing deferred
// computation propagates opaquely to the caller.
func writeAccessors(ctx *gen.Context, w *gen.IndentWriter, own []*gen.Field) {
	for _, f := range own {
		w.Line("")
		writeDoc(w, f.Doc)
		w.Linef("public %s %s() {", accessorType(ctx.Config, f.Type), accessorName(f))
		if f.Type.Lazy {
			w.Linef("return this.%s.get();", fieldName(f))
		} else {
			w.Linef("return this.%s;", fieldName(f))
		}
		w.Line("}")
	}
}

// writeWithMethods emits one copy-constructor method per flattened
// field. Each builds a new instance through the newest-era constructor
// from the field slots directly, so lazy values are never forced by a
// copy. Inherited fields get their with-method here, on the concrete
// descendant, because the abstract ancestor cannot construct anything.
func writeWithMethods(ctx *gen.Context, w *gen.IndentWriter, name string, flat []*gen.Field) {
	for _, f := range flat {
		w.Line("")
		w.Linef("public %s %s(%s %s) {", name, withName(f), declared(ctx.Config, f.Type), fieldName(f))
		args := make([]string, 0, len(flat))
		for _, g := range flat {
			if g == f {
				args = append(args, fieldName(g))
			} else {
				args = append(args, "this."+fieldName(g))
			}
		}
		w.Linef("return new %s(%s);", name, strings.Join(args, ", "))
		w.Line("}")
	}
}
