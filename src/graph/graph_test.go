package graph

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seuros/gopher-graph/src/cypher"
)

// fakeDB answers every write by returning one record holding a node or
// relationship for each RETURN item.
type fakeDB struct {
	queries []string
	rels    map[string]bool
	err     error
}

func (f *fakeDB) Run(_ context.Context, query string) ([]cypher.Record, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	parts := strings.SplitN(strings.TrimSuffix(query, ";"), " RETURN ", 2)
	if len(parts) != 2 {
		return nil, nil
	}
	rec := cypher.Record{}
	for _, item := range strings.Split(parts[1], ", ") {
		if f.rels[item] || strings.Contains(query, "-["+item) {
			rec[item] = cypher.RelationshipValue{ElementID: "5:db:" + item}
		} else {
			rec[item] = cypher.NodeValue{ElementID: "4:db:" + item}
		}
	}
	return []cypher.Record{rec}, nil
}

func TestCreateNamedNode(t *testing.T) {
	db := &fakeDB{}
	you := cypher.NewNode("you", "Person").WithProperty("name", "You")

	got, err := Create(context.Background(), db, you)
	require.NoError(t, err)

	assert.Same(t, you, got)
	assert.Equal(t, "4:db:you", you.InternalID())
	assert.Equal(t, []string{`CREATE (you:Person {name: "You"}) RETURN you;`}, db.queries)
}

func TestCreateAnonymousNode(t *testing.T) {
	db := &fakeDB{}
	n := cypher.NewNode("", "Tag")

	_, err := Create(context.Background(), db, n)
	require.NoError(t, err)

	assert.True(t, n.Persisted())
	assert.Equal(t, "", n.Identifier(), "the fresh identifier must not leak onto the node")
	require.Len(t, db.queries, 1)
	assert.Regexp(t, `^CREATE \(([a-z]{8}):Tag\) RETURN ([a-z]{8});$`, db.queries[0])
}

func TestCreateRejectsPersistedNode(t *testing.T) {
	n := cypher.NewNode("n")
	require.NoError(t, n.SetInternalID("4:db:1"))

	_, err := Create(context.Background(), &fakeDB{}, n)
	assert.ErrorIs(t, err, cypher.ErrAlreadyPersisted)
}

func TestCreatePropagatesRunnerError(t *testing.T) {
	boom := errors.New("connection refused")
	_, err := Create(context.Background(), &fakeDB{err: boom}, cypher.NewNode("n"))
	assert.ErrorIs(t, err, boom)
}

func TestConnectToNewNode(t *testing.T) {
	db := &fakeDB{}
	you := cypher.NewNode("you", "Person")
	require.NoError(t, you.SetInternalID("4:db:1"))
	them := cypher.NewNode("them", "Person").WithProperty("name", "Them")
	friend := cypher.RelationshipTo("f", "friend")

	rel, err := Connect(context.Background(), db, you, friend, them)
	require.NoError(t, err)

	assert.Equal(t, []string{
		`MATCH (you) WHERE elementId(you) = "4:db:1" CREATE (you)-[f:friend]->(them:Person {name: "Them"}) RETURN f, them;`,
	}, db.queries)
	assert.Equal(t, "5:db:f", rel.InternalID())
	assert.Same(t, you, rel.StartNode())
	assert.Same(t, them, rel.EndNode())
	assert.Equal(t, "4:db:them", them.InternalID())
}

func TestConnectPersistedNodes(t *testing.T) {
	db := &fakeDB{}
	a := cypher.NewNode("a")
	require.NoError(t, a.SetInternalID("4:db:1"))
	b := cypher.NewNode("b")
	require.NoError(t, b.SetInternalID("4:db:2"))

	rel, err := Connect(context.Background(), db, a, cypher.RelationshipTo("r", "KNOWS"), b)
	require.NoError(t, err)

	assert.Equal(t, []string{
		`MATCH (a), (b) WHERE elementId(a) = "4:db:1" AND elementId(b) = "4:db:2" CREATE (a)-[r:KNOWS]->(b) RETURN r;`,
	}, db.queries)
	assert.Equal(t, "4:db:2", b.InternalID())
	assert.True(t, rel.Persisted())
}

func TestConnectAnonymousRelationship(t *testing.T) {
	db := &fakeDB{}
	a := cypher.NewNode("a")
	require.NoError(t, a.SetInternalID("4:db:1"))
	rel := cypher.RelationshipTo("", "KNOWS")

	_, err := Connect(context.Background(), db, a, rel, cypher.NewNode("", "Person"))
	require.NoError(t, err)

	require.Len(t, db.queries, 1)
	assert.Regexp(t, `CREATE \(a\)-\[([a-z]{8}):KNOWS\]->\(([a-z]{8}):Person\) RETURN [a-z]{8}, [a-z]{8};$`, db.queries[0])
	assert.True(t, rel.Persisted())
	assert.Equal(t, "", rel.Identifier())
}

func TestConnectRenamesClashingIdentifiers(t *testing.T) {
	db := &fakeDB{}
	n := cypher.NewNode("n", "Person")
	require.NoError(t, n.SetInternalID("4:db:1"))
	other := cypher.NewNode("n", "Person").WithProperty("name", "Other")

	rel, err := Connect(context.Background(), db, n, cypher.RelationshipTo("n", "KNOWS"), other)
	require.NoError(t, err)

	require.Len(t, db.queries, 1)
	assert.Regexp(t,
		`^MATCH \(n\) WHERE elementId\(n\) = "4:db:1" CREATE \(n\)-\[([a-z]{8}):KNOWS\]->\(([a-z]{8}):Person \{name: "Other"\}\) RETURN [a-z]{8}, [a-z]{8};$`,
		db.queries[0])
	assert.NotContains(t, db.queries[0], "->(n)")

	assert.NotEqual(t, "4:db:1", other.InternalID(), "the new node must not take the start node's id")
	assert.True(t, other.Persisted())
	assert.Equal(t, "n", other.Identifier())
	assert.Same(t, other, rel.EndNode())
}

func TestConnectPersistedNodesSharingIdentifier(t *testing.T) {
	db := &fakeDB{}
	a := cypher.NewNode("n")
	require.NoError(t, a.SetInternalID("4:db:1"))
	b := cypher.NewNode("n")
	require.NoError(t, b.SetInternalID("4:db:2"))

	_, err := Connect(context.Background(), db, a, cypher.RelationshipTo("r", "KNOWS"), b)
	require.NoError(t, err)

	require.Len(t, db.queries, 1)
	assert.Regexp(t,
		`^MATCH \(n\), \(([a-z]{8})\) WHERE elementId\(n\) = "4:db:1" AND elementId\([a-z]{8}\) = "4:db:2" CREATE \(n\)-\[r:KNOWS\]->\([a-z]{8}\) RETURN r;$`,
		db.queries[0])
}

func TestConnectRequiresPersistedStart(t *testing.T) {
	db := &fakeDB{}
	_, err := Connect(context.Background(), db, cypher.NewNode("a"), cypher.RelationshipTo("r"), cypher.NewNode("b"))
	assert.ErrorIs(t, err, cypher.ErrUnpersisted)
	assert.Empty(t, db.queries)
}

func TestConnectMissingResult(t *testing.T) {
	a := cypher.NewNode("a")
	require.NoError(t, a.SetInternalID("4:db:1"))
	empty := cypher.RunnerFunc(func(context.Context, string) ([]cypher.Record, error) { return nil, nil })

	_, err := Connect(context.Background(), empty, a, cypher.RelationshipTo("r"), cypher.NewNode("b"))
	assert.ErrorIs(t, err, ErrMissingResult)
}
