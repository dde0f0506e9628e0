package java

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typegrow/typegrow/compiler/gen"
)

func generate(t *testing.T, defs ...gen.Definition) map[string]string {
	t.Helper()
	g, err := gen.NewGenerator(New())
	require.NoError(t, err)
	units, err := g.Generate(&gen.Schema{Namespace: "demo", Definitions: defs})
	require.NoError(t, err)
	return units
}

func ref(expr string) gen.TypeRef {
	r, err := gen.ParseTypeRef(expr)
	if err != nil {
		panic(err)
	}
	return r
}

func TestGenEnum(t *testing.T) {
	t.Run("values in declared order with docs", func(t *testing.T) {
		units := generate(t, &gen.Enumeration{
			Name: "Level",
			Values: []gen.EnumValue{
				{Name: "LOW", Doc: "Low."},
				{Name: "HIGH"},
			},
		})

		assert.Equal(t,
			"// Code generated by typegrow. DO NOT EDIT.\n"+
				"\n"+
				"package demo;\n"+
				"\n"+
				"public enum Level {\n"+
				"    /** Low. */\n"+
				"    LOW,\n"+
				"    HIGH;\n"+
				"}\n",
			units["Level.java"])
	})

	t.Run("extra lines land inside the block", func(t *testing.T) {
		units := generate(t, &gen.Enumeration{
			Name:   "Level",
			Values: []gen.EnumValue{{Name: "LOW"}},
			Extra:  []string{"public boolean quiet() { return this == LOW; }"},
		})
		assert.Contains(t, units["Level.java"],
			"    public boolean quiet() { return this == LOW; }\n}")
	})

	t.Run("multi-line doc renders as a block comment", func(t *testing.T) {
		units := generate(t, &gen.Enumeration{
			Name:   "Level",
			Doc:    "Severity.\nOrdered low to high.",
			Values: []gen.EnumValue{{Name: "LOW"}},
		})
		out := units["Level.java"]
		assert.Contains(t, out, "/**\n * Severity.\n * Ordered low to high.\n */")
	})
}

func TestGenRecord(t *testing.T) {
	t.Run("single-field record golden", func(t *testing.T) {
		units := generate(t, &gen.Record{
			Name:   "Id",
			Fields: []*gen.Field{{Name: "value", Type: ref("String")}},
		})

		assert.Equal(t,
			"// Code generated by typegrow. DO NOT EDIT.\n"+
				"\n"+
				"package demo;\n"+
				"\n"+
				"public final class Id implements java.io.Serializable {\n"+
				"    private final String value;\n"+
				"\n"+
				"    public Id(String value) {\n"+
				"        super();\n"+
				"        this.value = value;\n"+
				"    }\n"+
				"\n"+
				"    public String value() {\n"+
				"        return this.value;\n"+
				"    }\n"+
				"\n"+
				"    public Id withValue(String value) {\n"+
				"        return new Id(value);\n"+
				"    }\n"+
				"\n"+
				"    public boolean equals(Object obj) {\n"+
				"        if (this == obj) {\n"+
				"            return true;\n"+
				"        } else if (!(obj instanceof Id)) {\n"+
				"            return false;\n"+
				"        } else {\n"+
				"            Id o = (Id)obj;\n"+
				"            return value().equals(o.value());\n"+
				"        }\n"+
				"    }\n"+
				"\n"+
				"    public int hashCode() {\n"+
				"        return 37 * (17 + value().hashCode());\n"+
				"    }\n"+
				"\n"+
				"    public String toString() {\n"+
				"        return \"Id(\" + \"value: \" + value() + \")\";\n"+
				"    }\n"+
				"}\n",
			units["Id.java"])
	})

	t.Run("fieldless record still gets its origin constructor", func(t *testing.T) {
		units := generate(t, &gen.Record{Name: "Marker"})
		out := units["Marker.java"]

		assert.Contains(t, out, "public Marker() {\n        super();\n    }")
		assert.Contains(t, out, "return true;\n        }")
		assert.Contains(t, out, "return 17;")
		assert.Contains(t, out, `return "Marker()";`)
		assert.NotContains(t, out, "with")
	})

	t.Run("one constructor per era with defaults back-filled", func(t *testing.T) {
		units := generate(t, &gen.Record{
			Name: "Point",
			Fields: []*gen.Field{
				{Name: "x", Type: ref("int")},
				{Name: "y", Type: ref("int")},
				{Name: "z", Type: ref("int"), Since: gen.MustParseVersion("0.2.0"), Default: "0"},
			},
		})
		out := units["Point.java"]

		assert.Contains(t, out,
			"    public Point(int x, int y) {\n"+
				"        super();\n"+
				"        this.x = x;\n"+
				"        this.y = y;\n"+
				"        this.z = 0;\n"+
				"    }")
		assert.Contains(t, out,
			"    public Point(int x, int y, int z) {\n"+
				"        super();\n"+
				"        this.x = x;\n"+
				"        this.y = y;\n"+
				"        this.z = z;\n"+
				"    }")
	})

	t.Run("primitive fields compare with == and box for hashing", func(t *testing.T) {
		units := generate(t, &gen.Record{
			Name: "Point",
			Fields: []*gen.Field{
				{Name: "x", Type: ref("int")},
				{Name: "y", Type: ref("int")},
			},
		})
		out := units["Point.java"]

		assert.Contains(t, out, "return (x() == o.x()) && (y() == o.y());")
		assert.Contains(t, out,
			"return 37 * (37 * (17 + Integer.hashCode(x())) + Integer.hashCode(y()));")
		assert.Contains(t, out,
			`return "Point(" + "x: " + x() + ", " + "y: " + y() + ")";`)
	})

	t.Run("repeated fields use element-wise helpers", func(t *testing.T) {
		units := generate(t, &gen.Record{
			Name:   "Doc",
			Fields: []*gen.Field{{Name: "tags", Type: ref("String[]")}},
		})
		out := units["Doc.java"]

		assert.Contains(t, out, "private final String[] tags;")
		assert.Contains(t, out, "return java.util.Arrays.equals(tags(), o.tags());")
		assert.Contains(t, out, "java.util.Arrays.hashCode(tags())")
	})

	t.Run("missing default aborts generation", func(t *testing.T) {
		g, err := gen.NewGenerator(New())
		require.NoError(t, err)

		_, err = g.Generate(&gen.Schema{
			Namespace: "demo",
			Definitions: []gen.Definition{&gen.Record{
				Name: "Event",
				Fields: []*gen.Field{
					{Name: "id", Type: ref("String")},
					{Name: "tag", Type: ref("String"), Since: gen.MustParseVersion("0.3.0")},
				},
			}},
		})
		require.Error(t, err)
		assert.True(t, gen.IsMissingDefaultError(err))
	})

	t.Run("multi-word field names camelize", func(t *testing.T) {
		units := generate(t, &gen.Record{
			Name:   "Event",
			Fields: []*gen.Field{{Name: "created_at", Type: ref("long")}},
		})
		out := units["Event.java"]

		assert.Contains(t, out, "private final long createdAt;")
		assert.Contains(t, out, "public long createdAt() {")
		assert.Contains(t, out, "public Event withCreatedAt(long createdAt) {")
	})
}

func TestLazyFields(t *testing.T) {
	units := generate(t, &gen.Record{
		Name: "Report",
		Fields: []*gen.Field{
			{Name: "id", Type: ref("String")},
			{Name: "total", Type: ref("lazy int")},
		},
	})
	out := units["Report.java"]

	t.Run("slot keeps the container, accessor forces", func(t *testing.T) {
		assert.Contains(t, out, "private final Lazy<Integer> total;")
		assert.Contains(t, out, "public int total() {\n        return this.total.get();\n    }")
	})

	t.Run("with-method passes the container without forcing", func(t *testing.T) {
		assert.Contains(t, out, "public Report withTotal(Lazy<Integer> total) {")
		assert.Contains(t, out, "return new Report(this.id, total);")
	})

	t.Run("structural methods degrade to identity", func(t *testing.T) {
		assert.Contains(t, out, "public boolean equals(Object obj) {\n        return this == obj;\n    }")
		assert.Contains(t, out, "return super.hashCode();")
		assert.Contains(t, out, "return super.toString();")
	})

	t.Run("lazy repeated spells the array inside the container", func(t *testing.T) {
		u := generate(t, &gen.Record{
			Name:   "Batch",
			Fields: []*gen.Field{{Name: "rows", Type: ref("lazy int[]")}},
		})
		assert.Contains(t, u["Batch.java"], "private final Lazy<int[]> rows;")
		assert.Contains(t, u["Batch.java"], "public int[] rows() {")
	})
}

func TestOptionalFields(t *testing.T) {
	units := generate(t, &gen.Record{
		Name:   "Config",
		Fields: []*gen.Field{{Name: "limit", Type: ref("int?")}},
	})
	out := units["Config.java"]

	assert.Contains(t, out, "private final java.util.Optional<Integer> limit;")
	assert.Contains(t, out, "public java.util.Optional<Integer> limit() {")
	// Boxed containers always compare with equals, even for primitives.
	assert.Contains(t, out, "return limit().equals(o.limit());")
}

func TestGenProtocol(t *testing.T) {
	shape := &gen.Protocol{
		Name:   "Shape",
		Fields: []*gen.Field{{Name: "id", Type: ref("String")}},
		Children: []gen.Definition{
			&gen.Record{
				Name:   "Circle",
				Fields: []*gen.Field{{Name: "radius", Type: ref("double")}},
			},
		},
	}

	t.Run("abstract class with protected slots and no with-methods", func(t *testing.T) {
		units := generate(t, shape)
		out := units["Shape.java"]

		assert.Contains(t, out, "public abstract class Shape implements java.io.Serializable {")
		assert.Contains(t, out, "protected final String id;")
		assert.Contains(t, out, "public Shape(String id) {\n        super();\n        this.id = id;\n    }")
		assert.Contains(t, out, "public String id() {")
		assert.NotContains(t, out, "withId")
	})

	t.Run("descendant extends and chains inherited fields to super", func(t *testing.T) {
		units := generate(t, shape)
		out := units["Circle.java"]

		assert.Contains(t, out, "public final class Circle extends Shape implements java.io.Serializable {")
		assert.Contains(t, out,
			"    public Circle(String id, double radius) {\n"+
				"        super(id);\n"+
				"        this.radius = radius;\n"+
				"    }")
		// Accessors cover own fields only; id() is inherited.
		assert.NotContains(t, out, "public String id() {")
	})

	t.Run("descendant carries with-methods for inherited fields", func(t *testing.T) {
		units := generate(t, shape)
		out := units["Circle.java"]

		assert.Contains(t, out, "public Circle withId(String id) {\n        return new Circle(id, this.radius);\n    }")
		assert.Contains(t, out, "public Circle withRadius(double radius) {\n        return new Circle(this.id, radius);\n    }")
	})

	t.Run("structural methods span the flattened list", func(t *testing.T) {
		units := generate(t, shape)
		out := units["Circle.java"]

		assert.Contains(t, out, "return id().equals(o.id()) && (radius() == o.radius());")
		assert.Contains(t, out, `return "Circle(" + "id: " + id() + ", " + "radius: " + radius() + ")";`)
	})

	t.Run("inherited defaulted fields reach super as literals", func(t *testing.T) {
		units := generate(t, &gen.Protocol{
			Name: "Entity",
			Fields: []*gen.Field{
				{Name: "created_at", Type: ref("long"), Since: gen.MustParseVersion("0.1.0"), Default: "0L"},
			},
			Children: []gen.Definition{
				&gen.Record{Name: "User", Fields: []*gen.Field{{Name: "name", Type: ref("String")}}},
			},
		})
		out := units["User.java"]

		assert.Contains(t, out,
			"    public User(String name) {\n"+
				"        super(0L);\n"+
				"        this.name = name;\n"+
				"    }")
		assert.Contains(t, out,
			"    public User(long createdAt, String name) {\n"+
				"        super(createdAt);\n"+
				"        this.name = name;\n"+
				"    }")
	})

	t.Run("nested protocols flatten outermost first", func(t *testing.T) {
		units := generate(t, &gen.Protocol{
			Name:   "Node",
			Fields: []*gen.Field{{Name: "id", Type: ref("String")}},
			Children: []gen.Definition{
				&gen.Protocol{
					Name:   "Branch",
					Fields: []*gen.Field{{Name: "weight", Type: ref("int")}},
					Children: []gen.Definition{
						&gen.Record{Name: "Leaf", Fields: []*gen.Field{{Name: "label", Type: ref("String")}}},
					},
				},
			},
		})
		out := units["Leaf.java"]

		assert.Contains(t, out, "public final class Leaf extends Branch")
		assert.Contains(t, out, "public Leaf(String id, int weight, String label) {")
		assert.Contains(t, out, "super(id, weight);")
	})
}

func TestConfigOptions(t *testing.T) {
	t.Run("container spellings are configurable", func(t *testing.T) {
		g, err := gen.NewGenerator(New(),
			gen.WithLazyType("Supplier"),
			gen.WithOptionalType("Opt"),
		)
		require.NoError(t, err)

		units, err := g.Generate(&gen.Schema{
			Namespace: "demo",
			Definitions: []gen.Definition{&gen.Record{
				Name: "T",
				Fields: []*gen.Field{
					{Name: "a", Type: ref("lazy int")},
					{Name: "b", Type: ref("int?")},
				},
			}},
		})
		require.NoError(t, err)
		assert.Contains(t, units["T.java"], "Supplier<Integer> a;")
		assert.Contains(t, units["T.java"], "Opt<Integer> b;")
	})

	t.Run("custom header replaces the default", func(t *testing.T) {
		g, err := gen.NewGenerator(New(), gen.WithHeader("// generated"))
		require.NoError(t, err)
		units, err := g.Generate(&gen.Schema{
			Namespace:   "demo",
			Definitions: []gen.Definition{&gen.Record{Name: "T"}},
		})
		require.NoError(t, err)
		assert.True(t, len(units["T.java"]) > 0)
		assert.Contains(t, units["T.java"], "// generated\n\npackage demo;")
	})
}

func TestDeclaredSpellings(t *testing.T) {
	cfg := gen.DefaultConfig()
	tests := []struct {
		expr string
		want string
	}{
		{"int", "int"},
		{"lazy int", "Lazy<Integer>"},
		{"int[]", "int[]"},
		{"lazy int[]", "Lazy<int[]>"},
		{"String", "String"},
		{"Level?", "java.util.Optional<Level>"},
		{"lazy Level?", "Lazy<java.util.Optional<Level>>"},
		{"int?[]", "java.util.Optional<int[]>"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.want, declared(cfg, ref(tt.expr)))
		})
	}
}
