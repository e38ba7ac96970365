package driver

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"

	"github.com/seuros/gopher-graph/src/cypher"
)

func convertRecords(raw []*neo4j.Record) []cypher.Record {
	records := make([]cypher.Record, 0, len(raw))
	for _, rec := range raw {
		if rec == nil {
			continue
		}
		row := make(cypher.Record, len(rec.Keys))
		for i, key := range rec.Keys {
			if i < len(rec.Values) {
				row[key] = convertValue(rec.Values[i])
			}
		}
		records = append(records, row)
	}
	return records
}

// convertValue maps graph values onto the cypher value types; scalars
// pass through unchanged.
func convertValue(v interface{}) interface{} {
	switch x := v.(type) {
	case dbtype.Node:
		return convertNode(x)
	case dbtype.Relationship:
		return convertRelationship(x)
	case dbtype.Path:
		path := cypher.PathValue{
			Nodes:         make([]cypher.NodeValue, len(x.Nodes)),
			Relationships: make([]cypher.RelationshipValue, len(x.Relationships)),
		}
		for i, n := range x.Nodes {
			path.Nodes[i] = convertNode(n)
		}
		for i, r := range x.Relationships {
			path.Relationships[i] = convertRelationship(r)
		}
		return path
	case []interface{}:
		out := make([]interface{}, len(x))
		for i, item := range x {
			out[i] = convertValue(item)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(x))
		for k, item := range x {
			out[k] = convertValue(item)
		}
		return out
	default:
		return v
	}
}

func convertNode(n dbtype.Node) cypher.NodeValue {
	return cypher.NodeValue{
		ElementID: n.ElementId,
		Labels:    n.Labels,
		Props:     n.Props,
	}
}

func convertRelationship(r dbtype.Relationship) cypher.RelationshipValue {
	return cypher.RelationshipValue{
		ElementID:      r.ElementId,
		StartElementID: r.StartElementId,
		EndElementID:   r.EndElementId,
		Type:           r.Type,
		Props:          r.Props,
	}
}
