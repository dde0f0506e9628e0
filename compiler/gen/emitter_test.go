package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func curlyWriter() *IndentWriter {
	return NewIndentWriter("    ", BlockOpens, BlockCloses)
}

func TestIndentWriter(t *testing.T) {
	t.Run("balanced blocks end at depth zero", func(t *testing.T) {
		w := curlyWriter()
		w.Line("class A {")
		w.Line("void f() {")
		w.Line("return;")
		w.Line("}")
		w.Line("}")

		assert.Equal(t, 0, w.Depth())
		assert.Equal(t,
			"class A {\n"+
				"    void f() {\n"+
				"        return;\n"+
				"    }\n"+
				"}\n",
			w.String())
	})

	t.Run("close then reopen prints at enclosing depth", func(t *testing.T) {
		w := curlyWriter()
		w.Line("if (x) {")
		w.Line("a();")
		w.Line("} else {")
		w.Line("b();")
		w.Line("}")

		lines := []string{
			"if (x) {",
			"    a();",
			"} else {",
			"    b();",
			"}",
		}
		assert.Equal(t, joinLines(lines), w.String())
	})

	t.Run("input indentation is discarded", func(t *testing.T) {
		w := curlyWriter()
		w.Line("  class A {")
		w.Line("\t\tint x;")
		w.Line("   }")

		assert.Equal(t, "class A {\n    int x;\n}\n", w.String())
	})

	t.Run("depth clamps at zero on excess closes", func(t *testing.T) {
		w := curlyWriter()
		w.Line("}")
		w.Line("}")
		w.Line("top();")

		assert.Equal(t, 0, w.Depth())
		assert.Equal(t, "}\n}\ntop();\n", w.String())
	})

	t.Run("embedded newlines split into lines", func(t *testing.T) {
		w := curlyWriter()
		w.Line("class A {\nint x;\n}")

		assert.Equal(t, "class A {\n    int x;\n}\n", w.String())
	})

	t.Run("blank lines carry no indent", func(t *testing.T) {
		w := curlyWriter()
		w.Line("class A {")
		w.Line("")
		w.Line("int x;")
		w.Line("}")

		assert.Equal(t, "class A {\n\n    int x;\n}\n", w.String())
	})

	t.Run("whitespace-only lines become blank lines", func(t *testing.T) {
		w := curlyWriter()
		w.Line("class A {")
		w.Line("   \t ")
		w.Line("}")

		assert.Equal(t, "class A {\n\n}\n", w.String())
	})

	t.Run("empty writer renders as empty string", func(t *testing.T) {
		w := curlyWriter()
		assert.Equal(t, "", w.String())
	})

	t.Run("nil predicates never change depth", func(t *testing.T) {
		w := NewIndentWriter("  ", nil, nil)
		w.Line("class A {")
		w.Line("int x;")
		w.Line("}")

		assert.Equal(t, 0, w.Depth())
		assert.Equal(t, "class A {\nint x;\n}\n", w.String())
	})

	t.Run("Lines appends in order", func(t *testing.T) {
		w := curlyWriter()
		w.Lines("a {", "b;", "}")

		assert.Equal(t, "a {\n    b;\n}\n", w.String())
	})

	t.Run("Linef formats", func(t *testing.T) {
		w := curlyWriter()
		w.Linef("int %s = %d;", "x", 7)

		assert.Equal(t, "int x = 7;\n", w.String())
	})

	t.Run("custom indent unit", func(t *testing.T) {
		w := NewIndentWriter("\t", BlockOpens, BlockCloses)
		w.Line("a {")
		w.Line("b;")
		w.Line("}")

		require.Equal(t, "a {\n\tb;\n}\n", w.String())
	})
}

func joinLines(lines []string) string {
	out := ""
	for _, l := range lines {
		out += l + "\n"
	}
	return out
}
