package cypher

import "github.com/google/uuid"

const freshIDLength = 8

// newUUID is swapped in tests to force collisions.
var newUUID = uuid.New

// Scope tracks identifiers bound by MATCH and by CREATE while a query is
// assembled or rendered.
type Scope struct {
	matched map[string]struct{}
	created map[string]struct{}
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{
		matched: make(map[string]struct{}),
		created: make(map[string]struct{}),
	}
}

// BindMatch records a MATCH binding. Matching the same identifier twice
// is a conflict.
func (s *Scope) BindMatch(id string) error {
	if _, ok := s.matched[id]; ok {
		return &BindingConflictError{Identifier: id}
	}
	s.matched[id] = struct{}{}
	return nil
}

// BindCreate records that a CREATE or MERGE pattern declared id.
func (s *Scope) BindCreate(id string) {
	s.created[id] = struct{}{}
}

// IsMatched reports whether a MATCH bound id.
func (s *Scope) IsMatched(id string) bool {
	_, ok := s.matched[id]
	return ok
}

// IsBound reports whether id was matched or created.
func (s *Scope) IsBound(id string) bool {
	if _, ok := s.matched[id]; ok {
		return true
	}
	_, ok := s.created[id]
	return ok
}

// FreshID returns eight lowercase letters not bound in this scope.
func (s *Scope) FreshID() string {
	for {
		u := newUUID()
		var b [freshIDLength]byte
		for i := range b {
			b[i] = 'a' + u[i]%26
		}
		if id := string(b[:]); !s.IsBound(id) {
			return id
		}
	}
}
