package cypher

import (
	"errors"
	"fmt"
)

var (
	// ErrBindingConflict is returned when a MATCH introduces an identifier
	// that an earlier MATCH in the same chain already bound.
	ErrBindingConflict = errors.New("identifier already bound")
	// ErrMalformedWhere is returned for lookup keys that cannot be compiled
	// into a WHERE condition.
	ErrMalformedWhere = errors.New("malformed where clause")
	// ErrUnpersisted is returned when an operation needs the internal id of
	// an element that was never created.
	ErrUnpersisted = errors.New("element has not been persisted")
	// ErrAlreadyPersisted is returned when an internal id is assigned twice.
	ErrAlreadyPersisted = errors.New("element already persisted")
	// ErrRender is returned when an argument has no textual form in the
	// clause it was given to.
	ErrRender = errors.New("unrenderable argument")
	// ErrMalformedPath is returned when elements do not alternate
	// node, relationship, node.
	ErrMalformedPath = errors.New("malformed path")
	// ErrNegativeBound is returned for negative hop counts.
	ErrNegativeBound = errors.New("length boundary cannot be negative")
	// ErrBoundOrder is returned when a range maximum is below its minimum.
	ErrBoundOrder = errors.New("max length boundary cannot be less than min length boundary")
)

// BindingConflictError carries the identifier that was matched twice.
type BindingConflictError struct {
	Identifier string
}

func (e *BindingConflictError) Error() string {
	return fmt.Sprintf("identifier %q already matched in this query", e.Identifier)
}

func (e *BindingConflictError) Unwrap() error { return ErrBindingConflict }

// MalformedWhereError describes a rejected lookup key.
type MalformedWhereError struct {
	Key    string
	Reason string
}

func (e *MalformedWhereError) Error() string {
	return fmt.Sprintf("malformed where key %q: %s", e.Key, e.Reason)
}

func (e *MalformedWhereError) Unwrap() error { return ErrMalformedWhere }

// RenderError reports an argument that a clause cannot render.
type RenderError struct {
	Clause ClauseType
	Value  interface{}
	Reason string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("cannot render %T in %s clause: %s", e.Value, e.Clause, e.Reason)
}

func (e *RenderError) Unwrap() error { return ErrRender }
