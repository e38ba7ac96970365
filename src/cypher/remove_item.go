package cypher

// RemoveItem is a single REMOVE target.
type RemoveItem interface {
	Expression
	removeItem()
}

// PropertyRemoval drops a property: n.name.
type PropertyRemoval struct {
	Variable string
	Property string
}

// LabelRemoval drops labels: n:A:B.
type LabelRemoval struct {
	Variable string
	Labels   []Label
}

// RemoveProperty drops a single property: n.prop.
func RemoveProperty(variable, property string) PropertyRemoval {
	return PropertyRemoval{Variable: variable, Property: property}
}

// RemoveLabels drops labels from a variable; duplicates are dropped.
func RemoveLabels(variable string, labels ...Label) LabelRemoval {
	return LabelRemoval{Variable: variable, Labels: appendUnique(nil, labels...)}
}

func (r PropertyRemoval) Cypher() string { return r.Variable + "." + r.Property }

func (r LabelRemoval) Cypher() string { return r.Variable + joinNames(r.Labels, ":", ":") }

func (PropertyRemoval) removeItem() {}
func (LabelRemoval) removeItem() {}
