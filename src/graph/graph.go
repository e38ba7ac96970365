// Package graph persists nodes and relationships through a cypher.Runner,
// recording the database element ids on the elements it was given.
package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/seuros/gopher-graph/src/cypher"
)

// ErrMissingResult is returned when the database answer lacks the element
// the write query asked for.
var ErrMissingResult = errors.New("graph: result is missing the created element")

// Create runs CREATE for n and stores the returned element id on n. An
// anonymous node is given a fresh identifier for the round trip only.
func Create(ctx context.Context, r cypher.Runner, n *cypher.Node) (*cypher.Node, error) {
	if n.Persisted() {
		return nil, fmt.Errorf("create node: %w", cypher.ErrAlreadyPersisted)
	}

	q := cypher.NewQuery()
	node := n
	if n.Identifier() == "" {
		node = n.WithID(q.FreshID())
	}
	id := node.Identifier()

	q, err := q.Create(node)
	if err != nil {
		return nil, err
	}
	records, err := q.Return(id).Run(ctx, r)
	if err != nil {
		return nil, err
	}

	created, err := nodeFrom(records, id)
	if err != nil {
		return nil, err
	}
	if err := n.SetInternalID(created.ElementID); err != nil {
		return nil, err
	}
	return n, nil
}

// Connect creates rel between from and to. from must already be
// persisted; to is matched by id when persisted and created otherwise.
// On success rel records its element id and endpoints, and a newly
// created to records its element id.
func Connect(ctx context.Context, r cypher.Runner, from *cypher.Node, rel *cypher.Relationship, to *cypher.Node) (*cypher.Relationship, error) {
	if !from.Persisted() {
		return nil, fmt.Errorf("connect: start node: %w", cypher.ErrUnpersisted)
	}
	if rel.Persisted() {
		return nil, fmt.Errorf("connect: %w", cypher.ErrAlreadyPersisted)
	}

	q, fromRef, err := cypher.NewQuery().MatchID(from)
	if err != nil {
		return nil, err
	}

	var toRef *cypher.Node
	newTarget := !to.Persisted()
	if newTarget {
		toRef = to.WithID(unboundID(q, to.Identifier()))
	} else {
		q, toRef, err = q.MatchID(to.WithID(unboundID(q, to.Identifier())))
		if err != nil {
			return nil, err
		}
	}

	// toRef is not declared until the CREATE below, so reserve its name.
	relID := rel.Identifier()
	for relID == "" || relID == toRef.Identifier() || q.Scope().IsBound(relID) {
		relID = q.FreshID()
	}

	q, err = q.Create(fromRef, rel.WithID(relID), toRef)
	if err != nil {
		return nil, err
	}
	returns := []interface{}{relID}
	if newTarget {
		returns = append(returns, toRef.Identifier())
	}

	records, err := q.Return(returns...).Run(ctx, r)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrMissingResult
	}

	created, ok := records[0].Relationship(relID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingResult, relID)
	}
	if newTarget {
		target, err := nodeFrom(records, toRef.Identifier())
		if err != nil {
			return nil, err
		}
		if err := to.SetInternalID(target.ElementID); err != nil {
			return nil, err
		}
	}
	if err := rel.SetPersisted(created.ElementID, from, to); err != nil {
		return nil, err
	}
	return rel, nil
}

// unboundID returns id, or a fresh identifier when id is empty or already
// names another element of q.
func unboundID(q *cypher.Query, id string) string {
	if id == "" || q.Scope().IsBound(id) {
		return q.FreshID()
	}
	return id
}

func nodeFrom(records []cypher.Record, id string) (cypher.NodeValue, error) {
	if len(records) == 0 {
		return cypher.NodeValue{}, ErrMissingResult
	}
	n, ok := records[0].Node(id)
	if !ok {
		return cypher.NodeValue{}, fmt.Errorf("%w: %s", ErrMissingResult, id)
	}
	return n, nil
}
