package cypher

import "fmt"

// statement is one recorded builder call. Statements form a persistent
// singly linked list so that every Query shares its history with the
// queries derived from it and appending never copies.
type statement struct {
	clause ClauseType
	prev   *statement
	depth  int

	optional bool // OPTIONAL MATCH
	detach   bool // DETACH DELETE

	patterns   []*Path
	conditions []Condition
	items      []interface{}
	sets       []SetItem
	removes    []RemoveItem
}

func (s *statement) push(next statement) *statement {
	next.prev = s
	next.depth = s.len() + 1
	return &next
}

func (s *statement) len() int {
	if s == nil {
		return 0
	}
	return s.depth
}

// chronological returns the statements oldest first.
func (s *statement) chronological() []*statement {
	out := make([]*statement, s.len())
	for cur := s; cur != nil; cur = cur.prev {
		out[cur.depth-1] = cur
	}
	return out
}

// binding is a persistent list of identifiers bound by MATCH.
type binding struct {
	id   string
	prev *binding
}

// groupPatterns splits pattern arguments into paths. A run of
// node, relationship, node, ... forms one path; a node directly followed
// by a node starts a new pattern; an explicit *Path stands alone.
func groupPatterns(elements []Element) ([]*Path, error) {
	var (
		paths []*Path
		run   []Element
	)
	flush := func() error {
		if len(run) == 0 {
			return nil
		}
		p, err := NewPath("", run...)
		if err != nil {
			return err
		}
		paths = append(paths, p)
		run = nil
		return nil
	}
	for _, el := range elements {
		switch v := el.(type) {
		case *Path:
			if err := flush(); err != nil {
				return nil, err
			}
			paths = append(paths, v)
		case *Node:
			if len(run) > 0 {
				if _, prevNode := run[len(run)-1].(*Node); prevNode {
					if err := flush(); err != nil {
						return nil, err
					}
				}
			}
			run = append(run, v)
		case *Relationship:
			run = append(run, v)
		case nil:
			return nil, fmt.Errorf("%w: nil element", ErrMalformedPath)
		default:
			return nil, fmt.Errorf("%w: %T cannot appear in a pattern", ErrMalformedPath, el)
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return paths, nil
}
