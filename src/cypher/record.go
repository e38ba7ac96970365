package cypher

import "context"

// Runner executes query text against a database.
type Runner interface {
	Run(ctx context.Context, query string) ([]Record, error)
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, query string) ([]Record, error)

func (f RunnerFunc) Run(ctx context.Context, query string) ([]Record, error) {
	return f(ctx, query)
}

// Record is a single result row keyed by column name.
type Record map[string]interface{}

// Node returns the node stored under key.
func (r Record) Node(key string) (NodeValue, bool) {
	v, ok := r[key].(NodeValue)
	return v, ok
}

// Relationship returns the relationship stored under key.
func (r Record) Relationship(key string) (RelationshipValue, bool) {
	v, ok := r[key].(RelationshipValue)
	return v, ok
}

// NodeValue is a node returned by the database.
type NodeValue struct {
	ElementID string
	Labels    []string
	Props     map[string]interface{}
}

// RelationshipValue is a relationship returned by the database.
type RelationshipValue struct {
	ElementID      string
	StartElementID string
	EndElementID   string
	Type           string
	Props          map[string]interface{}
}

// PathValue is a path returned by the database.
type PathValue struct {
	Nodes         []NodeValue
	Relationships []RelationshipValue
}
