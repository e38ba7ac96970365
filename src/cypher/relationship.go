package cypher

import (
	"errors"
	"fmt"
	"strings"
)

// Direction of a relationship pattern.
type Direction int

const (
	DirectionNone Direction = iota // -[]-
	DirectionTo                    // -[]->
	DirectionFrom                  // <-[]-
)

func (d Direction) connectors() (string, string) {
	switch d {
	case DirectionTo:
		return "-", "->"
	case DirectionFrom:
		return "<-", "-"
	default:
		return "-", "-"
	}
}

// Relationship is a relationship pattern such as -[r:KNOWS*1..3]->.
type Relationship struct {
	id         string
	types      []RelationshipType
	props      Properties
	length     Length
	direction  Direction
	internalID string
	start      *Node
	end        *Node
}

// NewRelationship returns an undirected relationship pattern.
func NewRelationship(id string, types ...RelationshipType) *Relationship {
	return &Relationship{id: id, types: appendUnique(nil, types...)}
}

// RelationshipTo returns a left-to-right relationship pattern.
func RelationshipTo(id string, types ...RelationshipType) *Relationship {
	r := NewRelationship(id, types...)
	r.direction = DirectionTo
	return r
}

// RelationshipFrom returns a right-to-left relationship pattern.
func RelationshipFrom(id string, types ...RelationshipType) *Relationship {
	r := NewRelationship(id, types...)
	r.direction = DirectionFrom
	return r
}

func (r *Relationship) clone() *Relationship {
	c := *r
	c.types = append([]RelationshipType(nil), r.types...)
	return &c
}

// Identifier returns the query variable, or "" when anonymous.
func (r *Relationship) Identifier() string { return r.id }

// Types returns a copy of the relationship types.
func (r *Relationship) Types() []RelationshipType { return append([]RelationshipType(nil), r.types...) }

// Properties returns the property map.
func (r *Relationship) Properties() Properties { return r.props }

// Length returns the variable-length hop range.
func (r *Relationship) Length() Length { return r.length }

// Direction reports which way the relationship points.
func (r *Relationship) Direction() Direction { return r.direction }

// InternalID returns the database element id, or "" if unsaved.
func (r *Relationship) InternalID() string { return r.internalID }

// Persisted reports whether the relationship has a database id.
func (r *Relationship) Persisted() bool { return r.internalID != "" }

// StartNode returns the start node recorded on persistence.
func (r *Relationship) StartNode() *Node { return r.start }

// EndNode returns the end node recorded on persistence.
func (r *Relationship) EndNode() *Node { return r.end }

// WithID returns a copy bound to a different identifier.
func (r *Relationship) WithID(id string) *Relationship {
	c := r.clone()
	c.id = id
	return c
}

// WithTypes returns a copy with extra types appended.
func (r *Relationship) WithTypes(types ...RelationshipType) *Relationship {
	c := r.clone()
	c.types = appendUnique(c.types, types...)
	return c
}

// WithProperty returns a copy with key set to value.
func (r *Relationship) WithProperty(key string, value interface{}) *Relationship {
	c := r.clone()
	c.props = c.props.With(key, value)
	return c
}

// WithProperties returns a copy updated with every entry of props.
func (r *Relationship) WithProperties(props Properties) *Relationship {
	c := r.clone()
	c.props = c.props.Merge(props)
	return c
}

// WithLength returns a copy with the given hop constraint.
func (r *Relationship) WithLength(l Length) *Relationship {
	c := r.clone()
	c.length = l
	return c
}

// Bound returns a copy constrained to min..max hops. Either bound may be
// nil; with both nil the relationship spans any number of hops.
func (r *Relationship) Bound(min, max *int) (*Relationship, error) {
	l, err := NewRange(min, max)
	if err != nil {
		return nil, err
	}
	return r.WithLength(l), nil
}

// Direct returns a copy pointing in the given direction.
func (r *Relationship) Direct(d Direction) *Relationship {
	c := r.clone()
	c.direction = d
	return c
}

// SetPersisted records the database id and endpoints once the
// relationship has been created. It may only be called once.
func (r *Relationship) SetPersisted(internalID string, start, end *Node) error {
	if internalID == "" {
		return errors.New("cypher: empty internal id")
	}
	if r.internalID != "" {
		return fmt.Errorf("relationship %q: %w", r.id, ErrAlreadyPersisted)
	}
	r.internalID, r.start, r.end = internalID, start, end
	return nil
}

func (r *Relationship) degenerate() bool {
	return r.id == "" && len(r.types) == 0 && r.length.IsDefault() && r.props.Len() == 0
}

// Render implements Element.
func (r *Relationship) Render(mode BindingMode) string {
	left, right := r.direction.connectors()
	if mode == BindReference && r.id != "" {
		return left + "[" + r.id + "]" + right
	}
	if r.degenerate() {
		return left + right
	}
	var b strings.Builder
	b.WriteString(left)
	b.WriteByte('[')
	b.WriteString(r.id)
	b.WriteString(joinNames(r.types, ":", "|"))
	b.WriteString(r.length.AsText())
	b.WriteString(r.props.AsText())
	b.WriteByte(']')
	b.WriteString(right)
	return b.String()
}

func (r *Relationship) String() string { return r.Render(BindFull) }

func (*Relationship) element() {}
