package cypher

// SetItem is a single SET assignment.
type SetItem interface {
	Expression
	setItem()
}

// PropertyAssignment sets one property: n.name = "x".
type PropertyAssignment struct {
	Variable string
	Property string
	Value    interface{}
}

// VariablePropertiesAssignment replaces (n = {...}) or merges (n += {...})
// a whole property map.
type VariablePropertiesAssignment struct {
	Variable   string
	Properties Properties
	Merge      bool
}

// LabelAssignment adds labels: n:A:B.
type LabelAssignment struct {
	Variable string
	Labels   []Label
}

// SetProperty assigns a single property: n.prop = value.
func SetProperty(variable, property string, value interface{}) PropertyAssignment {
	return PropertyAssignment{Variable: variable, Property: property, Value: value}
}

// SetProperties assigns a property map, replacing every property (n = {...})
// or, with merge, adding to them (n += {...}).
func SetProperties(variable string, props Properties, merge bool) VariablePropertiesAssignment {
	return VariablePropertiesAssignment{Variable: variable, Properties: props, Merge: merge}
}

// SetLabels adds labels to a variable; duplicates are dropped.
func SetLabels(variable string, labels ...Label) LabelAssignment {
	return LabelAssignment{Variable: variable, Labels: appendUnique(nil, labels...)}
}

func (a PropertyAssignment) Cypher() string {
	return a.Variable + "." + a.Property + " = " + EncodeLiteral(a.Value)
}

func (a VariablePropertiesAssignment) Cypher() string {
	op := " ="
	if a.Merge {
		op = " +="
	}
	body := a.Properties.AsText()
	if body == "" {
		body = " {}"
	}
	return a.Variable + op + body
}

func (a LabelAssignment) Cypher() string {
	return a.Variable + joinNames(a.Labels, ":", ":")
}

func (PropertyAssignment) setItem() {}
func (VariablePropertiesAssignment) setItem() {}
func (LabelAssignment) setItem() {}
