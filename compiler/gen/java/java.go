// Package java renders schema definitions as Java source units.
package java

import (
	"strings"

	"github.com/typegrow/typegrow/compiler/gen"
)

// Target is the Java language target. The zero value is not usable;
// construct with New.
type Target struct{}

// New returns the Java target.
func New() *Target { return &Target{} }

// Name implements gen.Target.
func (t *Target) Name() string { return "java" }

// Extension implements gen.Target.
func (t *Target) Extension() string { return "java" }

// GenEnum renders a closed value set preserving declared order and
// per-value documentation, with any trailing verbatim text appended
// inside the generated block.
func (t *Target) GenEnum(ctx *gen.Context, e *gen.Enumeration) (string, error) {
	w := ctx.Writer()
	writePrologue(ctx, w)
	writeDoc(w, e.Doc)
	w.Linef("public enum %s {", e.Name)
	for i, v := range e.Values {
		writeDoc(w, v.Doc)
		sep := ","
		if i == len(e.Values)-1 {
			sep = ";"
		}
		w.Line(v.Name + sep)
	}
	writeExtra(w, e.Extra)
	w.Line("}")
	return w.String(), nil
}

// writePrologue emits the header comment and the namespace declaration
// shared by every unit.
func writePrologue(ctx *gen.Context, w *gen.IndentWriter) {
	if h := ctx.Config.Header; h != "" {
		w.Line(h)
		w.Line("")
	}
	w.Linef("package %s;", ctx.Schema.Namespace)
	w.Line("")
}

// writeDoc emits a javadoc comment, single-line when the text has no
// line breaks. Empty docs emit nothing.
func writeDoc(w *gen.IndentWriter, doc string) {
	if doc == "" {
		return
	}
	if !strings.Contains(doc, "\n") {
		w.Linef("/** %s */", doc)
		return
	}
	w.Line("/**")
	for _, line := range strings.Split(doc, "\n") {
		w.Line(" * " + line)
	}
	w.Line(" */")
}

// writeExtra appends verbatim lines inside the current block.
func writeExtra(w *gen.IndentWriter, extra []string) {
	for _, line := range extra {
		w.Line(line)
	}
}

// declared returns the declared spelling for a type reference: the
// base name (boxed inside containers), with the repeated, optional,
// and lazy shapes applied innermost to outermost. The four lazy and
// repeated combinations all spell differently, e.g. for int: "int",
// "Lazy<Integer>", "int[]", "Lazy<int[]>".
func declared(cfg *gen.Config, ref gen.TypeRef) string {
	base := ref.Name
	if (ref.Lazy || ref.Optional) && !ref.Repeated {
		base = cfg.Box(base)
	}
	if ref.Repeated {
		base += "[]"
	}
	if ref.Optional {
		base = cfg.OptionalType + "<" + base + ">"
	}
	if ref.Lazy {
		base = cfg.LazyType + "<" + base + ">"
	}
	return base
}

// accessorType returns the accessor return spelling: the declared
// spelling minus the lazy wrapper, since lazy accessors force with
// .get() and return the unwrapped value.
func accessorType(cfg *gen.Config, ref gen.TypeRef) string {
	unwrapped := ref
	unwrapped.Lazy = false
	return declared(cfg, unwrapped)
}
