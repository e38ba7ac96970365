package cypher

// BindingMode selects between the full and the reference form of an element.
type BindingMode int

const (
	// BindFull renders identifier, labels or types, length and properties.
	BindFull BindingMode = iota
	// BindReference renders only the identifier.
	BindReference
)

// Element is a graph-pattern fragment: *Node, *Relationship, *Path or
// Variable. The set is closed.
type Element interface {
	// Identifier returns the query-local variable name, "" when anonymous.
	Identifier() string
	// Render returns the pattern text for the given mode. Anonymous
	// elements always render in full.
	Render(mode BindingMode) string
	element()
}
