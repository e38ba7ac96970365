package cypher

import (
	"fmt"
	"strings"
)

// Path is a pattern of alternating nodes and relationships that starts
// and ends on a node, optionally bound to a path variable.
type Path struct {
	id       string
	elements []Element
	shortest bool
}

// NewPath validates the alternation and returns a path pattern.
func NewPath(id string, elements ...Element) (*Path, error) {
	if err := validatePath(elements); err != nil {
		return nil, err
	}
	return &Path{id: id, elements: append([]Element(nil), elements...)}, nil
}

// NewShortestPath returns a path rendered inside shortestPath( ... ).
func NewShortestPath(id string, elements ...Element) (*Path, error) {
	p, err := NewPath(id, elements...)
	if err != nil {
		return nil, err
	}
	p.shortest = true
	return p, nil
}

func validatePath(elements []Element) error {
	if len(elements) == 0 {
		return fmt.Errorf("%w: path has no elements", ErrMalformedPath)
	}
	for i, el := range elements {
		wantNode := i%2 == 0
		switch el.(type) {
		case *Node:
			if !wantNode {
				return fmt.Errorf("%w: expected relationship at position %d", ErrMalformedPath, i)
			}
		case *Relationship:
			if wantNode {
				return fmt.Errorf("%w: expected node at position %d", ErrMalformedPath, i)
			}
		default:
			return fmt.Errorf("%w: %T cannot appear inside a path", ErrMalformedPath, el)
		}
	}
	if len(elements)%2 == 0 {
		return fmt.Errorf("%w: path must end on a node", ErrMalformedPath)
	}
	return nil
}

// Identifier returns the path variable.
func (p *Path) Identifier() string { return p.id }

// Elements returns the path members in order.
func (p *Path) Elements() []Element { return append([]Element(nil), p.elements...) }

// IsShortest reports whether the path is wrapped in shortestPath.
func (p *Path) IsShortest() bool { return p.shortest }

// identifiers lists the path variable followed by every named member.
func (p *Path) identifiers() []string {
	var ids []string
	if p.id != "" {
		ids = append(ids, p.id)
	}
	for _, el := range p.elements {
		if id := el.Identifier(); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// renderWith renders the path, delegating each member to part.
func (p *Path) renderWith(part func(Element) string) string {
	var b strings.Builder
	for _, el := range p.elements {
		b.WriteString(part(el))
	}
	body := b.String()
	if p.shortest {
		body = "shortestPath( " + body + " )"
	}
	if p.id != "" {
		return p.id + " = " + body
	}
	return body
}

// Render implements Element.
func (p *Path) Render(mode BindingMode) string {
	if mode == BindReference && p.id != "" {
		return p.id
	}
	return p.renderWith(func(el Element) string { return el.Render(BindFull) })
}

func (p *Path) String() string { return p.Render(BindFull) }

func (*Path) element() {}
