// Package golang renders schema definitions as Go source units.
//
// The mapping follows Go conventions rather than transliterating the
// class-based output: records become structs with unexported field
// slots and exported accessors, protocols become interfaces satisfied
// by their descendant records, and each constructor era becomes a
// distinct constructor function (Go has no overloading). Verbatim
// extra lines are target-language text authored for the primary
// class-based target and are not carried into Go units.
package golang

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"
	"golang.org/x/tools/imports"

	"github.com/typegrow/typegrow/compiler/gen"
)

// Target is the Go language target.
type Target struct{}

// New returns the Go target.
func New() *Target { return &Target{} }

// Name implements gen.Target.
func (t *Target) Name() string { return "go" }

// Extension implements gen.Target.
func (t *Target) Extension() string { return "go" }

// baseTypes maps schema primitive names to Go spellings. Unknown names
// pass through unchanged and are assumed to be generated types.
var baseTypes = map[string]string{
	"String":  "string",
	"boolean": "bool",
	"byte":    "byte",
	"char":    "rune",
	"short":   "int16",
	"int":     "int",
	"long":    "int64",
	"float":   "float32",
	"double":  "float64",
}

// GenEnum renders the value set as an integer type with iota constants
// and a String method preserving declared order.
func (t *Target) GenEnum(ctx *gen.Context, e *gen.Enumeration) (string, error) {
	f := newFile(ctx)
	if e.Doc != "" {
		f.Comment(docComment(e.Name, e.Doc))
	}
	f.Type().Id(e.Name).Int()

	f.Const().DefsFunc(func(g *jen.Group) {
		for i, v := range e.Values {
			if v.Doc != "" {
				g.Comment(docComment(constName(e, v), v.Doc))
			}
			if i == 0 {
				g.Id(constName(e, v)).Id(e.Name).Op("=").Iota()
			} else {
				g.Id(constName(e, v))
			}
		}
	})

	f.Func().Params(jen.Id("v").Id(e.Name)).Id("String").Params().String().Block(
		jen.Switch(jen.Id("v")).BlockFunc(func(g *jen.Group) {
			for _, v := range e.Values {
				g.Case(jen.Id(constName(e, v))).Block(jen.Return(jen.Lit(v.Name)))
			}
			g.Default().Block(jen.Return(jen.Qual("fmt", "Sprintf").Call(
				jen.Lit(e.Name+"(%d)"), jen.Int().Call(jen.Id("v")),
			)))
		}),
	)
	return render(f, e.Name)
}

// GenProtocol renders an interface carrying the accessor set over the
// flattened field list plus an unexported marker method, so only
// generated descendants satisfy it.
func (t *Target) GenProtocol(ctx *gen.Context, p *gen.Protocol) (string, error) {
	// Plans are computed for their error checking only; an interface
	// has no constructors, but a malformed field list must still abort
	// generation here rather than on some descendant.
	if _, err := gen.ConstructorPlans(p.Name, ctx.Flat(p.Fields)); err != nil {
		return "", err
	}
	f := newFile(ctx)
	if p.Doc != "" {
		f.Comment(docComment(p.Name, p.Doc))
	}
	flat := ctx.Flat(p.Fields)
	f.Type().Id(p.Name).InterfaceFunc(func(g *jen.Group) {
		g.Id(markerName(p.Name)).Params()
		for _, fd := range flat {
			g.Id(accessorName(fd)).Params().Add(accessorType(fd.Type))
		}
	})
	return render(f, p.Name)
}

// GenRecord renders a struct with unexported field slots, one
// constructor per era, exported accessors over the flattened list,
// With copies, Equal, and String.
func (t *Target) GenRecord(ctx *gen.Context, r *gen.Record) (string, error) {
	flat := ctx.Flat(r.Fields)
	plans, err := gen.ConstructorPlans(r.Name, flat)
	if err != nil {
		return "", err
	}
	f := newFile(ctx)
	if r.Doc != "" {
		f.Comment(docComment(r.Name, r.Doc))
	}
	f.Type().Id(r.Name).StructFunc(func(g *jen.Group) {
		for _, fd := range flat {
			g.Id(slotName(fd)).Add(goType(fd.Type))
		}
	})

	for _, anc := range ctx.Ancestors {
		f.Func().Params(jen.Id("x").Op("*").Id(r.Name)).Id(markerName(anc.Name)).Params().Block()
	}

	writeConstructors(f, r.Name, flat, plans)
	writeAccessors(f, r.Name, flat)
	writeWithMethods(f, r.Name, flat)
	writeEqual(f, r.Name, flat)
	writeString(f, r.Name, flat)
	return render(f, r.Name)
}

func writeConstructors(f *jen.File, name string, flat []*gen.Field, plans []*gen.ConstructorPlan) {
	for _, plan := range plans {
		ctor := ctorName(name, plan, plans)
		f.Commentf("%s constructs %s as of schema version %s.", ctor, name, plan.Era)
		f.Func().Id(ctor).ParamsFunc(func(g *jen.Group) {
			for _, fd := range plan.Provided {
				g.Id(slotName(fd)).Add(goType(fd.Type))
			}
		}).Op("*").Id(name).Block(
			jen.Return(jen.Op("&").Id(name).Values(jen.DictFunc(func(d jen.Dict) {
				for _, fd := range plan.Provided {
					d[jen.Id(slotName(fd))] = jen.Id(slotName(fd))
				}
				for _, fd := range plan.Defaulted {
					d[jen.Id(slotName(fd))] = jen.Id(fd.Default)
				}
			}))),
		)
	}
}

// ctorName names each era constructor distinctly: the newest era keeps
// the plain New name, older eras get a version suffix.
func ctorName(name string, plan *gen.ConstructorPlan, plans []*gen.ConstructorPlan) string {
	if plan == plans[len(plans)-1] {
		return "New" + name
	}
	return "New" + name + "V" + strings.ReplaceAll(plan.Era.String(), ".", "_")
}

func writeAccessors(f *jen.File, name string, flat []*gen.Field) {
	for _, fd := range flat {
		f.Func().Params(jen.Id("x").Op("*").Id(name)).Id(accessorName(fd)).Params().Add(accessorType(fd.Type)).BlockFunc(func(g *jen.Group) {
			if fd.Type.Lazy {
				g.Return(jen.Id("x").Dot(slotName(fd)).Call())
			} else {
				g.Return(jen.Id("x").Dot(slotName(fd)))
			}
		})
	}
}

func writeWithMethods(f *jen.File, name string, flat []*gen.Field) {
	for _, fd := range flat {
		f.Commentf("With%s returns a copy of %s with %s replaced.", inflect.Camelize(fd.Name), name, fd.Name)
		f.Func().Params(jen.Id("x").Op("*").Id(name)).Id("With"+inflect.Camelize(fd.Name)).
			Params(jen.Id("v").Add(goType(fd.Type))).Op("*").Id(name).Block(
			jen.Id("c").Op(":=").Op("*").Id("x"),
			jen.Id("c").Dot(slotName(fd)).Op("=").Id("v"),
			jen.Return(jen.Op("&").Id("c")),
		)
	}
}

// writeEqual emits structural equality: element-wise for repeated
// fields, value comparison otherwise. Any lazy field degrades the
// whole method to pointer identity, mirroring the class-based targets.
func writeEqual(f *jen.File, name string, flat []*gen.Field) {
	if gen.HasLazy(flat) {
		f.Func().Params(jen.Id("x").Op("*").Id(name)).Id("Equal").Params(jen.Id("o").Op("*").Id(name)).Bool().Block(
			jen.Return(jen.Id("x").Op("==").Id("o")),
		)
		return
	}
	f.Func().Params(jen.Id("x").Op("*").Id(name)).Id("Equal").Params(jen.Id("o").Op("*").Id(name)).Bool().BlockFunc(func(g *jen.Group) {
		if len(flat) == 0 {
			g.Return(jen.Id("o").Op("!=").Nil())
			return
		}
		g.If(jen.Id("o").Op("==").Nil()).Block(jen.Return(jen.False()))
		expr := &jen.Statement{}
		for i, fd := range flat {
			if i > 0 {
				expr.Op("&&").Line()
			}
			expr.Add(equalTerm(fd))
		}
		g.Return(expr)
	})
}

func equalTerm(fd *gen.Field) jen.Code {
	a := jen.Id("x").Dot(slotName(fd))
	b := jen.Id("o").Dot(slotName(fd))
	switch {
	case fd.Type.Repeated:
		return jen.Qual("slices", "Equal").Call(a, b)
	case fd.Type.Optional:
		return jen.Parens(
			jen.Parens(a.Clone().Op("==").Nil()).Op("==").Parens(b.Clone().Op("==").Nil()).
				Op("&&").Parens(a.Clone().Op("==").Nil().Op("||").Op("*").Add(a.Clone()).Op("==").Op("*").Add(b.Clone())),
		)
	default:
		return jen.Parens(a.Clone().Op("==").Add(b.Clone()))
	}
}

// writeString emits the debug representation. Lazy fields force no
// computation: the method prints the pointer instead.
func writeString(f *jen.File, name string, flat []*gen.Field) {
	f.Func().Params(jen.Id("x").Op("*").Id(name)).Id("String").Params().String().BlockFunc(func(g *jen.Group) {
		if gen.HasLazy(flat) {
			g.Return(jen.Qual("fmt", "Sprintf").Call(jen.Lit(name+"(%p)"), jen.Id("x")))
			return
		}
		if len(flat) == 0 {
			g.Return(jen.Lit(name + "()"))
			return
		}
		labels := make([]string, 0, len(flat))
		args := make([]jen.Code, 0, len(flat)+1)
		for _, fd := range flat {
			labels = append(labels, fd.Name+": %v")
			args = append(args, jen.Id("x").Dot(slotName(fd)))
		}
		format := jen.Lit(name + "(" + strings.Join(labels, ", ") + ")")
		g.Return(jen.Qual("fmt", "Sprintf").Call(append([]jen.Code{format}, args...)...))
	})
}

// goType returns the declared Go type for a reference: lazy values are
// thunks, repeated values slices, optional values pointers.
func goType(ref gen.TypeRef) jen.Code {
	inner := baseType(ref.Name)
	if ref.Repeated {
		inner = jen.Index().Add(inner)
	}
	if ref.Optional {
		inner = jen.Op("*").Add(inner)
	}
	if ref.Lazy {
		inner = jen.Func().Params().Add(inner)
	}
	return inner
}

// accessorType is goType minus the lazy thunk: accessors force and
// return the unwrapped value.
func accessorType(ref gen.TypeRef) jen.Code {
	unwrapped := ref
	unwrapped.Lazy = false
	return goType(unwrapped)
}

func baseType(name string) *jen.Statement {
	if spelled, ok := baseTypes[name]; ok {
		return jen.Id(spelled)
	}
	return jen.Id(name)
}

func slotName(fd *gen.Field) string {
	return inflect.CamelizeDownFirst(fd.Name)
}

func accessorName(fd *gen.Field) string {
	return inflect.Camelize(fd.Name)
}

func constName(e *gen.Enumeration, v gen.EnumValue) string {
	return e.Name + inflect.Camelize(v.Name)
}

func markerName(name string) string {
	return "is" + name
}

// docComment shapes a schema doc string into a one-line Go doc comment
// body leading with the declared name.
func docComment(name, doc string) string {
	return name + ": " + strings.ReplaceAll(strings.TrimSpace(doc), "\n", " ")
}

func newFile(ctx *gen.Context) *jen.File {
	f := jen.NewFile(packageName(ctx.Schema.Namespace))
	f.HeaderComment(strings.TrimPrefix(ctx.Config.Header, "// "))
	return f
}

// packageName derives the Go package name from the last namespace
// segment, keeping only lowercase letters and digits.
func packageName(namespace string) string {
	segs := strings.Split(namespace, ".")
	last := strings.ToLower(segs[len(segs)-1])
	var b strings.Builder
	for _, r := range last {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "schema"
	}
	return b.String()
}

// render flushes the jennifer file and normalizes it with the
// goimports machinery, matching the generated-code style gofmt
// produces.
func render(f *jen.File, defName string) (string, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return "", fmt.Errorf("render %s: %w", defName, err)
	}
	formatted, err := imports.Process(defName+".go", buf.Bytes(), nil)
	if err != nil {
		return "", fmt.Errorf("format %s: %w", defName, err)
	}
	return string(formatted), nil
}
