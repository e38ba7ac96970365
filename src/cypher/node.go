package cypher

import (
	"errors"
	"fmt"
	"strings"
)

// Node is a node pattern such as (you:Person {name: "You"}).
// Modifiers return copies; the only mutation is SetInternalID, which
// records the database id once the node has been created.
type Node struct {
	id         string
	labels     []Label
	props      Properties
	internalID string
}

// NewNode returns a node pattern. Both id and labels are optional.
func NewNode(id string, labels ...Label) *Node {
	return &Node{id: id, labels: appendUnique(nil, labels...)}
}

func (n *Node) clone() *Node {
	c := *n
	c.labels = append([]Label(nil), n.labels...)
	return &c
}

// Identifier returns the node's variable name.
func (n *Node) Identifier() string { return n.id }

// Labels returns a copy of the label set.
func (n *Node) Labels() []Label { return append([]Label(nil), n.labels...) }

// Properties returns the property map.
func (n *Node) Properties() Properties { return n.props }

// WithID returns a copy bound to a different identifier.
func (n *Node) WithID(id string) *Node {
	c := n.clone()
	c.id = id
	return c
}

// WithLabels returns a copy with extra labels appended.
func (n *Node) WithLabels(labels ...Label) *Node {
	c := n.clone()
	c.labels = appendUnique(c.labels, labels...)
	return c
}

// WithProperty returns a copy with key set to value.
func (n *Node) WithProperty(key string, value interface{}) *Node {
	c := n.clone()
	c.props = c.props.With(key, value)
	return c
}

// WithProperties returns a copy updated with every entry of props.
func (n *Node) WithProperties(props Properties) *Node {
	c := n.clone()
	c.props = c.props.Merge(props)
	return c
}

// InternalID returns the database element id, "" until persisted.
func (n *Node) InternalID() string { return n.internalID }

// Persisted reports whether an internal id has been recorded.
func (n *Node) Persisted() bool { return n.internalID != "" }

// SetInternalID records the database id. It may only be called once.
func (n *Node) SetInternalID(id string) error {
	if id == "" {
		return errors.New("cypher: empty internal id")
	}
	if n.internalID != "" {
		return fmt.Errorf("node %q: %w", n.id, ErrAlreadyPersisted)
	}
	n.internalID = id
	return nil
}

// Render implements Element.
func (n *Node) Render(mode BindingMode) string {
	if mode == BindReference && n.id != "" {
		return "(" + n.id + ")"
	}
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(n.id)
	b.WriteString(joinNames(n.labels, ":", ":"))
	b.WriteString(n.props.AsText())
	b.WriteByte(')')
	return b.String()
}

func (n *Node) String() string { return n.Render(BindFull) }

func (*Node) element() {}
