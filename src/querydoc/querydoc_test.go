package querydoc

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seuros/gopher-graph/src/cypher"
)

func TestCompileDocuments(t *testing.T) {
	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))

	for _, name := range []string{"friend_of_you", "shortest_path", "update_reader", "merge_tags"} {
		t.Run(name, func(t *testing.T) {
			doc, err := LoadFile(filepath.Join("testdata", name+".yaml"))
			require.NoError(t, err)

			q, err := Compile(doc)
			require.NoError(t, err)
			text, err := q.Render()
			require.NoError(t, err)

			g.Assert(t, name, []byte(text))
		})
	}
}

func TestDecodeMetadata(t *testing.T) {
	doc, err := LoadFile(filepath.Join("testdata", "friend_of_you.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "friend-of-you", doc.Name)
	assert.Equal(t, "Connect a new person to an existing one.", doc.Description)
	assert.Len(t, doc.Steps, 3)
}

func compileString(t *testing.T, src string) (*cypher.Query, error) {
	t.Helper()
	doc, err := Decode(strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	return Compile(doc)
}

func TestPropertyOrderIsKept(t *testing.T) {
	q, err := compileString(t, `
query:
  - create:
      - node: {id: n, props: {zeta: 1, alpha: 2, mid: [1.5, null]}}
`)
	require.NoError(t, err)
	assert.Equal(t, `CREATE (n {zeta: 1, alpha: 2, mid: [1.5,null]});`, q.String())
}

func TestLengths(t *testing.T) {
	tests := []struct {
		length string
		want   string
	}{
		{"", "-[r]->"},
		{"1", "-[r]->"},
		{"*", "-[r*]->"},
		{"3", "-[r*3]->"},
		{"*3", "-[r*3]->"},
		{"1..5", "-[r*1..5]->"},
		{"..5", "-[r*..5]->"},
		{"2..", "-[r*2..]->"},
	}
	for _, tt := range tests {
		t.Run(tt.length, func(t *testing.T) {
			spec := RelSpec{ID: "r", Dir: "to", Length: tt.length}
			rel, err := spec.relationship()
			require.NoError(t, err)
			assert.Equal(t, tt.want, rel.Render(cypher.BindFull))
		})
	}

	for _, bad := range []string{"x", "5..2", "-1"} {
		_, err := (&RelSpec{Length: bad}).relationship()
		assert.Error(t, err, bad)
	}
}

func TestBindingConflictSurfaces(t *testing.T) {
	_, err := compileString(t, `
query:
  - match: [{node: {id: a}}]
  - match: [{node: {id: a, labels: [Person]}}]
`)
	require.Error(t, err)
	assert.ErrorIs(t, err, cypher.ErrBindingConflict)
	assert.Contains(t, err.Error(), "step 2 (match)")
}

func TestInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ``},
		{"no steps", `name: x`},
		{"unknown field", `query: [{matchh: []}]`},
		{"two clauses in a step", `query: [{return: [a], delete: [a]}]`},
		{"element with two kinds", `query: [{match: [{node: {id: a}, rel: {id: r}}]}]`},
		{"bad identifier", `query: [{match: [{node: {id: "a-b"}}]}]`},
		{"bad label", `query: [{match: [{node: {id: a, labels: ["x y"]}}]}]`},
		{"bad direction", `query: [{match: [{node: {}}, {rel: {dir: up}}, {node: {}}]}]`},
		{"where is a list", `query: [{where: [a]}]`},
		{"malformed lookup", `query: [{where: {a: 1}}]`},
		{"unsafe string", `query: [{create: [{node: {id: a, props: {name: 'say "hi"'}}}]}]`},
		{"map literal", `query: [{create: [{node: {id: a, props: {m: {x: 1}}}}]}]`},
		{"set without target", `query: [{set: [{var: n}]}]`},
		{"remove both", `query: [{remove: [{var: n, prop: p, labels: [L]}]}]`},
		{"dangling relationship", `query: [{match: [{node: {id: a}}, {rel: {}}]}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compileString(t, tt.src)
			assert.Error(t, err)
		})
	}
}

func TestVariableValuesAndRawConditions(t *testing.T) {
	q, err := compileString(t, `
query:
  - match: [{node: {id: a}}, {node: {id: b}}]
  - where:
      a__score__gt: {var: b}
      raw: a <> b
  - delete: [b]
  - detach_delete: [a]
  - optional_match: [{node: {id: a}}, {rel: {types: [KNOWS]}}, {node: {id: c}}]
`)
	require.NoError(t, err)
	assert.Equal(t, `MATCH (a), (b) WHERE a.score > b AND a <> b OPTIONAL MATCH (a)-[:KNOWS]-(c) DELETE b DETACH DELETE a;`, q.String())
}
