package java

import (
	"fmt"
	"strings"

	"github.com/typegrow/typegrow/compiler/gen"
)

// writeStructural emits equals, hashCode, and toString over the
// flattened field list.
//
// A lazy field anywhere in the list changes all three: equality falls
// back to reference identity (forcing a deferred value could diverge
// or have side effects), hashCode defers to the identity-based super
// implementation to stay consistent with that equals, and toString
// defers to super because forcing inside a debug string is a visible
// side effect.
func writeStructural(ctx *gen.Context, w *gen.IndentWriter, name string, flat []*gen.Field) {
	lazy := gen.HasLazy(flat)
	writeEquals(ctx, w, name, flat, lazy)
	writeHashCode(ctx, w, flat, lazy)
	writeToString(w, name, flat, lazy)
}

func writeEquals(ctx *gen.Context, w *gen.IndentWriter, name string, flat []*gen.Field, lazy bool) {
	w.Line("")
	w.Line("public boolean equals(Object obj) {")
	if lazy {
		w.Line("return this == obj;")
		w.Line("}")
		return
	}
	w.Line("if (this == obj) {")
	w.Line("return true;")
	w.Linef("} else if (!(obj instanceof %s)) {", name)
	w.Line("return false;")
	w.Line("} else {")
	if len(flat) == 0 {
		w.Line("return true;")
	} else {
		w.Linef("%s o = (%s)obj;", name, name)
		terms := make([]string, 0, len(flat))
		for _, f := range flat {
			terms = append(terms, equalsTerm(ctx.Config, f))
		}
		w.Linef("return %s;", strings.Join(terms, " && "))
	}
	w.Line("}")
	w.Line("}")
}

// equalsTerm compares one field on both operands: element-wise for
// repeated fields, == for primitives, equals otherwise.
func equalsTerm(cfg *gen.Config, f *gen.Field) string {
	a := accessorName(f)
	switch {
	case f.Type.Repeated:
		return fmt.Sprintf("java.util.Arrays.equals(%s(), o.%s())", a, a)
	case cfg.IsPrimitive(f.Type.Name) && !f.Type.Optional:
		return fmt.Sprintf("(%s() == o.%s())", a, a)
	default:
		return fmt.Sprintf("%s().equals(o.%s())", a, a)
	}
}

func writeHashCode(ctx *gen.Context, w *gen.IndentWriter, flat []*gen.Field, lazy bool) {
	w.Line("")
	w.Line("public int hashCode() {")
	if lazy {
		w.Line("return super.hashCode();")
	} else {
		// Conventional order-sensitive fold: acc' = 37 * (acc + h),
		// seeded at 17.
		expr := "17"
		for _, f := range flat {
			expr = fmt.Sprintf("37 * (%s + %s)", expr, hashTerm(ctx.Config, f))
		}
		w.Linef("return %s;", expr)
	}
	w.Line("}")
}

func hashTerm(cfg *gen.Config, f *gen.Field) string {
	a := accessorName(f)
	switch {
	case f.Type.Repeated:
		return fmt.Sprintf("java.util.Arrays.hashCode(%s())", a)
	case cfg.IsPrimitive(f.Type.Name) && !f.Type.Optional:
		return fmt.Sprintf("%s.hashCode(%s())", cfg.Box(f.Type.Name), a)
	default:
		return fmt.Sprintf("%s().hashCode()", a)
	}
}

func writeToString(w *gen.IndentWriter, name string, flat []*gen.Field, lazy bool) {
	w.Line("")
	w.Line("public String toString() {")
	switch {
	case lazy:
		w.Line("return super.toString();")
	case len(flat) == 0:
		w.Linef("return \"%s()\";", name)
	default:
		parts := []string{fmt.Sprintf("\"%s(\"", name)}
		for i, f := range flat {
			if i > 0 {
				parts = append(parts, "\", \"")
			}
			parts = append(parts, fmt.Sprintf("\"%s: \"", accessorName(f)), accessorName(f)+"()")
		}
		parts = append(parts, "\")\"")
		w.Linef("return %s;", strings.Join(parts, " + "))
	}
	w.Line("}")
}
