package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func field(name, since, def string) *Field {
	f := &Field{Name: name, Type: TypeRef{Name: "int"}, Default: def}
	if since != "" {
		f.Since = MustParseVersion(since)
	}
	return f
}

func TestEras(t *testing.T) {
	t.Run("empty field list has the single origin era", func(t *testing.T) {
		eras := Eras(nil)
		require.Len(t, eras, 1)
		assert.Equal(t, "0", eras[0].String())
	})

	t.Run("fields without since collapse into the origin era", func(t *testing.T) {
		eras := Eras([]*Field{field("a", "", ""), field("b", "", "")})
		require.Len(t, eras, 1)
	})

	t.Run("distinct sinces each add an era", func(t *testing.T) {
		eras := Eras([]*Field{
			field("a", "", ""),
			field("b", "0.1.0", "0"),
			field("c", "0.2.0", "0"),
		})
		require.Len(t, eras, 3)
		assert.Equal(t, "0", eras[0].String())
		assert.Equal(t, "0.1.0", eras[1].String())
		assert.Equal(t, "0.2.0", eras[2].String())
	})

	t.Run("duplicate sinces collapse", func(t *testing.T) {
		eras := Eras([]*Field{
			field("a", "0.1.0", "0"),
			field("b", "0.1.0", "0"),
		})
		require.Len(t, eras, 2)
	})

	t.Run("eras sort ascending regardless of declaration order", func(t *testing.T) {
		eras := Eras([]*Field{
			field("a", "2.0", "0"),
			field("b", "0.5", "0"),
			field("c", "1.0", "0"),
		})
		require.Len(t, eras, 4)
		for i := 1; i < len(eras); i++ {
			assert.True(t, eras[i-1].Less(eras[i]))
		}
	})

	t.Run("equivalent spellings of zero collapse into origin", func(t *testing.T) {
		eras := Eras([]*Field{field("a", "0.0", "")})
		require.Len(t, eras, 1)
	})
}

func TestPartition(t *testing.T) {
	fields := []*Field{
		field("a", "", ""),
		field("b", "0.1.0", "0"),
		field("c", "0.2.0", "0"),
	}

	t.Run("origin era provides only versionless fields", func(t *testing.T) {
		provided, defaulted := Partition(fields, Version{})
		require.Len(t, provided, 1)
		assert.Equal(t, "a", provided[0].Name)
		require.Len(t, defaulted, 2)
	})

	t.Run("middle era splits by since", func(t *testing.T) {
		provided, defaulted := Partition(fields, MustParseVersion("0.1.0"))
		require.Len(t, provided, 2)
		require.Len(t, defaulted, 1)
		assert.Equal(t, "c", defaulted[0].Name)
	})

	t.Run("newest era provides everything", func(t *testing.T) {
		provided, defaulted := Partition(fields, MustParseVersion("0.2.0"))
		assert.Len(t, provided, 3)
		assert.Empty(t, defaulted)
	})

	t.Run("declared order is preserved in both halves", func(t *testing.T) {
		provided, _ := Partition(fields, MustParseVersion("0.2.0"))
		assert.Equal(t, "a", provided[0].Name)
		assert.Equal(t, "b", provided[1].Name)
		assert.Equal(t, "c", provided[2].Name)
	})
}

func TestConstructorPlans(t *testing.T) {
	t.Run("one plan per era", func(t *testing.T) {
		plans, err := ConstructorPlans("Point", []*Field{
			field("x", "", ""),
			field("y", "", ""),
			field("z", "0.2.0", "0"),
		})
		require.NoError(t, err)
		require.Len(t, plans, 2)
		assert.Len(t, plans[0].Provided, 2)
		assert.Len(t, plans[0].Defaulted, 1)
		assert.Len(t, plans[1].Provided, 3)
		assert.Empty(t, plans[1].Defaulted)
	})

	t.Run("empty field list still plans the origin constructor", func(t *testing.T) {
		plans, err := ConstructorPlans("Marker", nil)
		require.NoError(t, err)
		require.Len(t, plans, 1)
		assert.Empty(t, plans[0].Provided)
	})

	t.Run("Provides distinguishes parameters from defaults", func(t *testing.T) {
		a := field("a", "", "")
		b := field("b", "0.1.0", "42")
		plans, err := ConstructorPlans("T", []*Field{a, b})
		require.NoError(t, err)
		require.Len(t, plans, 2)

		assert.True(t, plans[0].Provides(a))
		assert.False(t, plans[0].Provides(b))
		assert.True(t, plans[1].Provides(b))
	})

	t.Run("defaulted field without default fails", func(t *testing.T) {
		_, err := ConstructorPlans("Event", []*Field{
			field("id", "", ""),
			field("tag", "0.3.0", ""),
		})
		require.Error(t, err)
		assert.True(t, IsMissingDefaultError(err))
		assert.True(t, errors.Is(err, ErrMissingDefault))

		var mde *MissingDefaultError
		require.ErrorAs(t, err, &mde)
		assert.Equal(t, "Event", mde.Type)
		assert.Equal(t, "tag", mde.Field)
		assert.Equal(t, "0.3.0", mde.Since.String())
	})

	t.Run("default is only required for eras that omit the field", func(t *testing.T) {
		// A field present since the origin never needs a default.
		plans, err := ConstructorPlans("T", []*Field{field("a", "", "")})
		require.NoError(t, err)
		assert.Len(t, plans, 1)
	})
}
