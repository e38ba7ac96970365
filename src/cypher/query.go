// Package cypher builds Cypher query text from graph-pattern elements.
//
// A Query is immutable: every builder method returns a new Query that
// shares the accumulated history of its parent, so a partially built
// query can be extended along several branches independently.
package cypher

import (
	"context"
	"fmt"
)

// Query represents a Cypher query under construction. The zero value is
// an empty query.
type Query struct {
	head    *statement
	matched *binding

	// optional is set once an OPTIONAL MATCH has been recorded; later
	// conditions filter that OPTIONAL MATCH.
	optional bool
}

// NewQuery creates a new empty Query instance.
func NewQuery() *Query {
	return &Query{}
}

func (q *Query) with(s statement) *Query {
	return &Query{head: q.head.push(s), matched: q.matched, optional: q.optional}
}

// Len returns the number of accumulated builder calls.
func (q *Query) Len() int { return q.head.len() }

// Clauses returns the clause kind of every accumulated call, oldest first.
func (q *Query) Clauses() []ClauseType {
	stmts := q.head.chronological()
	out := make([]ClauseType, len(stmts))
	for i, s := range stmts {
		out[i] = s.clause
	}
	return out
}

// matchedIDs returns the identifiers bound by MATCH, oldest first.
func (q *Query) matchedIDs() []string {
	var ids []string
	for b := q.matched; b != nil; b = b.prev {
		ids = append(ids, b.id)
	}
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
	return ids
}

// Scope returns a fresh scope holding the current MATCH bindings and
// every identifier declared by pending CREATE or MERGE calls.
func (q *Query) Scope() *Scope {
	s := NewScope()
	for _, id := range q.matchedIDs() {
		s.matched[id] = struct{}{}
	}
	for cur := q.head; cur != nil; cur = cur.prev {
		if cur.clause != CreateClause && cur.clause != MergeClause {
			continue
		}
		for _, p := range cur.patterns {
			for _, id := range p.identifiers() {
				s.BindCreate(id)
			}
		}
	}
	return s
}

// FreshID returns an identifier unused by this query.
func (q *Query) FreshID() string { return q.Scope().FreshID() }

func (q *Query) match(optional bool, elements []Element) (*Query, error) {
	paths, err := groupPatterns(elements)
	if err != nil {
		return nil, err
	}
	scope := q.Scope()
	matched := q.matched
	seen := make(map[string]bool)
	for _, p := range paths {
		for _, id := range p.identifiers() {
			if seen[id] {
				continue
			}
			seen[id] = true
			if optional && scope.IsMatched(id) {
				continue
			}
			if err := scope.BindMatch(id); err != nil {
				return nil, err
			}
			matched = &binding{id: id, prev: matched}
		}
	}
	next := q.with(statement{clause: MatchClause, optional: optional, patterns: paths})
	next.matched = matched
	next.optional = q.optional || optional
	return next, nil
}

// Match appends a MATCH of the given patterns. Identifiers already bound
// by an earlier MATCH cause a *BindingConflictError; repeating an
// identifier inside one call is allowed.
func (q *Query) Match(elements ...Element) (*Query, error) {
	return q.match(false, elements)
}

// OptionalMatch appends an OPTIONAL MATCH. Identifiers already matched
// are joined rather than rejected; new identifiers are bound like Match.
func (q *Query) OptionalMatch(elements ...Element) (*Query, error) {
	return q.match(true, elements)
}

// MatchID matches a persisted node by its database id. The returned node
// is the reference that later calls should use: it carries the original
// identifier, or a fresh one when the node was anonymous.
func (q *Query) MatchID(n *Node) (*Query, *Node, error) {
	if !n.Persisted() {
		return nil, nil, fmt.Errorf("match by id: %w", ErrUnpersisted)
	}
	scope := q.Scope()
	id := n.Identifier()
	if id == "" {
		id = scope.FreshID()
	} else if scope.IsMatched(id) {
		return nil, nil, &BindingConflictError{Identifier: id}
	}
	ref := NewNode(id)
	ref.internalID = n.internalID

	next, err := q.Match(ref)
	if err != nil {
		return nil, nil, err
	}
	return next.where(false, IDEquals(id, n.internalID)), ref, nil
}

// Where appends conditions. Conditions are joined with AND. Conditions
// added before the first OptionalMatch call filter the MATCH; later ones
// filter the OPTIONAL MATCH.
func (q *Query) Where(conds ...Condition) *Query {
	return q.where(q.optional, conds...)
}

func (q *Query) where(optional bool, conds ...Condition) *Query {
	kept := make([]Condition, 0, len(conds))
	for _, c := range conds {
		if c != nil {
			kept = append(kept, c)
		}
	}
	return q.with(statement{clause: WhereClause, optional: optional, conditions: kept})
}

// WhereKey appends a condition given as a lookup key such as
// "n__age__gte".
func (q *Query) WhereKey(key string, value interface{}) (*Query, error) {
	cond, err := Lookup(key, value)
	if err != nil {
		return nil, err
	}
	return q.Where(cond), nil
}

// Create appends a CREATE of the given patterns.
func (q *Query) Create(elements ...Element) (*Query, error) {
	paths, err := groupPatterns(elements)
	if err != nil {
		return nil, err
	}
	return q.with(statement{clause: CreateClause, patterns: paths}), nil
}

// Merge appends one MERGE per pattern.
func (q *Query) Merge(elements ...Element) (*Query, error) {
	paths, err := groupPatterns(elements)
	if err != nil {
		return nil, err
	}
	return q.with(statement{clause: MergeClause, patterns: paths}), nil
}

// Delete appends DELETE targets: elements, names or expressions.
func (q *Query) Delete(targets ...interface{}) *Query {
	return q.with(statement{clause: DeleteClause, items: targets})
}

// DetachDelete appends DETACH DELETE targets.
func (q *Query) DetachDelete(targets ...interface{}) *Query {
	return q.with(statement{clause: DeleteClause, detach: true, items: targets})
}

// Return appends projection items: elements, names or expressions.
// Unsupported kinds surface as a *RenderError from Render.
func (q *Query) Return(items ...interface{}) *Query {
	return q.with(statement{clause: ReturnClause, items: items})
}

// Set appends SET assignments.
func (q *Query) Set(items ...SetItem) *Query {
	return q.with(statement{clause: SetClause, sets: items})
}

// Remove appends REMOVE targets.
func (q *Query) Remove(items ...RemoveItem) *Query {
	return q.with(statement{clause: RemoveClause, removes: items})
}

// Render compiles the accumulated calls into query text. Rendering never
// changes q and always recomputes from the accumulated calls.
func (q *Query) Render() (string, error) {
	c := NewCompiler(q.matchedIDs()...)
	return c.compile(q.head.chronological())
}

// String renders the query, returning "" on error.
func (q *Query) String() string {
	s, _ := q.Render()
	return s
}

// Run renders the query and executes it with r.
func (q *Query) Run(ctx context.Context, r Runner) ([]Record, error) {
	text, err := q.Render()
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, text)
}
