package cypher

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestScopeBindMatch(t *testing.T) {
	s := NewScope()
	if err := s.BindMatch("a"); err != nil {
		t.Fatal(err)
	}
	err := s.BindMatch("a")
	if !errors.Is(err, ErrBindingConflict) {
		t.Fatalf("expected ErrBindingConflict got %v", err)
	}
	var conflict *BindingConflictError
	if !errors.As(err, &conflict) || conflict.Identifier != "a" {
		t.Fatalf("got %v", err)
	}
}

func TestScopeIsBound(t *testing.T) {
	s := NewScope()
	s.BindCreate("c")
	_ = s.BindMatch("m")
	if !s.IsBound("c") || !s.IsBound("m") || s.IsBound("x") {
		t.Fatal("wrong binding state")
	}
	if s.IsMatched("c") {
		t.Fatal("created id reported as matched")
	}
}

func TestFreshIDShape(t *testing.T) {
	id := NewScope().FreshID()
	if len(id) != 8 {
		t.Fatalf("got %q", id)
	}
	for _, r := range id {
		if r < 'a' || r > 'z' {
			t.Fatalf("non lowercase letter in %q", id)
		}
	}
}

func TestFreshIDSkipsBound(t *testing.T) {
	seq := []uuid.UUID{{}, {}, {1, 1, 1, 1, 1, 1, 1, 1}}
	calls := 0
	newUUID = func() uuid.UUID {
		u := seq[calls]
		calls++
		return u
	}
	defer func() { newUUID = uuid.New }()

	s := NewScope()
	_ = s.BindMatch("aaaaaaaa")
	if id := s.FreshID(); id != "bbbbbbbb" {
		t.Fatalf("got %s", id)
	}
	if calls != 3 {
		t.Fatalf("expected 3 draws got %d", calls)
	}
}
