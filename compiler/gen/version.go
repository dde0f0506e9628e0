package gen

import "sort"

// ConstructorPlan describes one constructor of a class-like definition:
// the era it belongs to, the fields the caller supplies, and the fields
// back-filled from their default expressions.
type ConstructorPlan struct {
	// Era is the version at which this constructor signature appeared.
	Era Version
	// Provided holds the caller-supplied fields (Since <= Era), in
	// declared order over the flattened field list.
	Provided []*Field
	// Defaulted holds the fields introduced after Era, each of which
	// carries a default expression.
	Defaulted []*Field

	provided map[*Field]bool
}

// Provides reports whether the plan's constructor takes f as a parameter.
func (p *ConstructorPlan) Provides(f *Field) bool { return p.provided[f] }

// Eras returns the distinct constructor versions for the field list,
// sorted ascending: the type's origin era (version 0) plus every
// distinct Since across the fields. These are the versions at which
// the constructor signature changes. An empty field list still has the
// single origin era, because constructor generation is never skipped.
func Eras(fields []*Field) []Version {
	versions := []Version{{}}
	for _, f := range fields {
		seen := false
		for _, v := range versions {
			if v.Equal(f.Since) {
				seen = true
				break
			}
		}
		if !seen {
			versions = append(versions, f.Since)
		}
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i].Less(versions[j]) })
	return versions
}

// Partition splits the flattened field list for one era into the
// caller-supplied fields (Since <= era) and the defaulted fields
// (Since > era), both in declared order.
func Partition(fields []*Field, era Version) (provided, defaulted []*Field) {
	for _, f := range fields {
		if f.Since.Compare(era) <= 0 {
			provided = append(provided, f)
		} else {
			defaulted = append(defaulted, f)
		}
	}
	return provided, defaulted
}

// ConstructorPlans computes one plan per era for the flattened field
// list of the named definition. It fails with a MissingDefaultError if
// any defaulted field lacks a default expression: a field introduced
// after the first era without a fallback is a schema authoring defect,
// never patched with a placeholder.
func ConstructorPlans(typeName string, fields []*Field) ([]*ConstructorPlan, error) {
	var plans []*ConstructorPlan
	for _, era := range Eras(fields) {
		provided, defaulted := Partition(fields, era)
		for _, f := range defaulted {
			if !f.HasDefault() {
				return nil, NewMissingDefaultError(typeName, f.Name, f.Since, era)
			}
		}
		plan := &ConstructorPlan{
			Era:       era,
			Provided:  provided,
			Defaulted: defaulted,
			provided:  make(map[*Field]bool, len(provided)),
		}
		for _, f := range provided {
			plan.provided[f] = true
		}
		plans = append(plans, plan)
	}
	return plans, nil
}
