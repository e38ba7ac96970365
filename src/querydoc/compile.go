package querydoc

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/seuros/gopher-graph/src/cypher"
	"github.com/seuros/gopher-graph/src/parser"
)

// Compile applies the document's steps to an empty query.
func Compile(doc *Document) (*cypher.Query, error) {
	q := cypher.NewQuery()
	for i, step := range doc.Steps {
		clause, err := step.clause()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		q, err = step.apply(q, clause)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, clause, err)
		}
	}
	return q, nil
}

// clause returns the single clause key set on the step.
func (s *Step) clause() (string, error) {
	var set []string
	mark := func(name string, present bool) {
		if present {
			set = append(set, name)
		}
	}
	mark("match", s.Match != nil)
	mark("optional_match", s.OptionalMatch != nil)
	mark("where", s.Where.Kind != 0)
	mark("create", s.Create != nil)
	mark("merge", s.Merge != nil)
	mark("delete", s.Delete != nil)
	mark("detach_delete", s.DetachDelete != nil)
	mark("return", s.Return != nil)
	mark("set", s.Set != nil)
	mark("remove", s.Remove != nil)

	if len(set) != 1 {
		return "", fmt.Errorf("%w: a step needs exactly one clause, got %v", ErrInvalidDocument, set)
	}
	return set[0], nil
}

func (s *Step) apply(q *cypher.Query, clause string) (*cypher.Query, error) {
	switch clause {
	case "match", "optional_match", "create", "merge":
		specs := map[string][]Element{
			"match":          s.Match,
			"optional_match": s.OptionalMatch,
			"create":         s.Create,
			"merge":          s.Merge,
		}[clause]
		elems, err := elements(specs)
		if err != nil {
			return nil, err
		}
		switch clause {
		case "match":
			return q.Match(elems...)
		case "optional_match":
			return q.OptionalMatch(elems...)
		case "create":
			return q.Create(elems...)
		default:
			return q.Merge(elems...)
		}
	case "where":
		conds, err := conditions(&s.Where)
		if err != nil {
			return nil, err
		}
		return q.Where(conds...), nil
	case "delete", "detach_delete":
		vars := s.Delete
		if clause == "detach_delete" {
			vars = s.DetachDelete
		}
		targets := make([]interface{}, len(vars))
		for i, v := range vars {
			if !parser.IsValidIdentifier(v) {
				return nil, fmt.Errorf("%w: delete target %q", ErrInvalidDocument, v)
			}
			targets[i] = v
		}
		if clause == "detach_delete" {
			return q.DetachDelete(targets...), nil
		}
		return q.Delete(targets...), nil
	case "return":
		items := make([]interface{}, len(s.Return))
		for i, r := range s.Return {
			item, err := r.item()
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return q.Return(items...), nil
	case "set":
		items := make([]cypher.SetItem, len(s.Set))
		for i := range s.Set {
			item, err := s.Set[i].item()
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return q.Set(items...), nil
	case "remove":
		items := make([]cypher.RemoveItem, len(s.Remove))
		for i, r := range s.Remove {
			item, err := r.item()
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return q.Remove(items...), nil
	}
	return nil, fmt.Errorf("%w: unknown clause %q", ErrInvalidDocument, clause)
}

func elements(specs []Element) ([]cypher.Element, error) {
	out := make([]cypher.Element, 0, len(specs))
	for _, spec := range specs {
		e, err := spec.element()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (e Element) element() (cypher.Element, error) {
	switch {
	case e.Node != nil && e.Rel == nil && e.Path == nil:
		return e.Node.node()
	case e.Rel != nil && e.Node == nil && e.Path == nil:
		return e.Rel.relationship()
	case e.Path != nil && e.Node == nil && e.Rel == nil:
		return e.Path.path()
	}
	return nil, fmt.Errorf("%w: an element needs exactly one of node, rel or path", ErrInvalidDocument)
}

func (n *NodeSpec) node() (*cypher.Node, error) {
	if err := optionalIdentifier(n.ID); err != nil {
		return nil, err
	}
	labels := make([]cypher.Label, len(n.Labels))
	for i, l := range n.Labels {
		if !parser.IsValidIdentifier(l) {
			return nil, fmt.Errorf("%w: label %q", ErrInvalidDocument, l)
		}
		labels[i] = cypher.Label(l)
	}
	props, err := properties(&n.Props)
	if err != nil {
		return nil, err
	}
	return cypher.NewNode(n.ID, labels...).WithProperties(props), nil
}

func (r *RelSpec) relationship() (*cypher.Relationship, error) {
	if err := optionalIdentifier(r.ID); err != nil {
		return nil, err
	}
	types := make([]cypher.RelationshipType, len(r.Types))
	for i, t := range r.Types {
		if !parser.IsValidIdentifier(t) {
			return nil, fmt.Errorf("%w: relationship type %q", ErrInvalidDocument, t)
		}
		types[i] = cypher.RelationshipType(t)
	}

	var rel *cypher.Relationship
	switch strings.ToLower(r.Dir) {
	case "", "none", "both":
		rel = cypher.NewRelationship(r.ID, types...)
	case "to", "out", "->":
		rel = cypher.RelationshipTo(r.ID, types...)
	case "from", "in", "<-":
		rel = cypher.RelationshipFrom(r.ID, types...)
	default:
		return nil, fmt.Errorf("%w: direction %q", ErrInvalidDocument, r.Dir)
	}

	length, err := parseLength(r.Length)
	if err != nil {
		return nil, err
	}
	props, err := properties(&r.Props)
	if err != nil {
		return nil, err
	}
	return rel.WithLength(length).WithProperties(props), nil
}

func (p *PathSpec) path() (*cypher.Path, error) {
	if err := optionalIdentifier(p.ID); err != nil {
		return nil, err
	}
	elems, err := elements(p.Elements)
	if err != nil {
		return nil, err
	}
	if p.Shortest {
		return cypher.NewShortestPath(p.ID, elems...)
	}
	return cypher.NewPath(p.ID, elems...)
}

// parseLength reads "", "*", "3", "1..5", "..5" and "2..".
func parseLength(text string) (cypher.Length, error) {
	text = strings.TrimSpace(text)
	switch text {
	case "":
		return cypher.Length{}, nil
	case "*":
		return cypher.AnyLength(), nil
	}
	text = strings.TrimPrefix(text, "*")

	bound := func(s string) (*int, error) {
		if s == "" {
			return nil, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%w: length bound %q", ErrInvalidDocument, s)
		}
		return cypher.Hops(n), nil
	}

	lo, hi, isRange := strings.Cut(text, "..")
	minHops, err := bound(lo)
	if err != nil {
		return cypher.Length{}, err
	}
	if !isRange {
		return cypher.Exact(*minHops)
	}
	maxHops, err := bound(hi)
	if err != nil {
		return cypher.Length{}, err
	}
	return cypher.NewRange(minHops, maxHops)
}

func conditions(node *yaml.Node) ([]cypher.Condition, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: where must be a mapping of lookups", ErrInvalidDocument)
	}
	conds := make([]cypher.Condition, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if key == "raw" {
			conds = append(conds, cypher.Raw(node.Content[i+1].Value))
			continue
		}
		value, err := decodeValue(node.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		cond, err := cypher.Lookup(key, value)
		if err != nil {
			return nil, err
		}
		conds = append(conds, cond)
	}
	return conds, nil
}

// properties keeps the mapping's key order.
func properties(node *yaml.Node) (cypher.Properties, error) {
	if node.Kind == 0 {
		return cypher.Properties{}, nil
	}
	if node.Kind != yaml.MappingNode {
		return cypher.Properties{}, fmt.Errorf("%w: properties must be a mapping", ErrInvalidDocument)
	}
	pairs := make([]cypher.Property, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if !parser.IsValidIdentifier(key) {
			return cypher.Properties{}, fmt.Errorf("%w: property key %q", ErrInvalidDocument, key)
		}
		value, err := decodeValue(node.Content[i+1])
		if err != nil {
			return cypher.Properties{}, fmt.Errorf("%s: %w", key, err)
		}
		pairs = append(pairs, cypher.Property{Key: key, Value: value})
	}
	return cypher.NewProperties(pairs...), nil
}

// decodeValue turns a YAML value into a literal. {var: name} refers to a
// bound identifier instead of a string.
func decodeValue(node *yaml.Node) (interface{}, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return decodeValue(node.Alias)
	case yaml.MappingNode:
		if len(node.Content) == 2 && node.Content[0].Value == "var" {
			name := node.Content[1].Value
			if !parser.IsValidIdentifier(name) {
				return nil, fmt.Errorf("%w: variable %q", ErrInvalidDocument, name)
			}
			return cypher.Variable(name), nil
		}
		return nil, fmt.Errorf("%w: maps are not literal values", ErrInvalidDocument)
	case yaml.SequenceNode:
		list := make([]interface{}, len(node.Content))
		for i, item := range node.Content {
			v, err := decodeValue(item)
			if err != nil {
				return nil, err
			}
			list[i] = v
		}
		return list, nil
	}

	var v interface{}
	if err := node.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if s, ok := v.(string); ok && !parser.IsSafeString(s) {
		return nil, fmt.Errorf("%w: string %q contains a quote or backslash", ErrInvalidDocument, s)
	}
	return v, nil
}

func (r ReturnItem) item() (interface{}, error) {
	expr := expression(r.Expr)
	if expr == nil {
		return nil, fmt.Errorf("%w: return item %q", ErrInvalidDocument, r.Expr)
	}
	if r.As == "" {
		return expr, nil
	}
	if !parser.IsValidIdentifier(r.As) {
		return nil, fmt.Errorf("%w: alias %q", ErrInvalidDocument, r.As)
	}
	return cypher.As(expr, r.As), nil
}

// expression reads "n" or "n.prop"; anything else is passed through as
// raw text when it is not empty.
func expression(text string) cypher.Expression {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if variable, prop, ok := strings.Cut(text, "."); ok && parser.IsValidIdentifier(variable) && parser.IsValidIdentifier(prop) {
		return cypher.Prop(variable, prop)
	}
	if parser.IsValidIdentifier(text) {
		return cypher.Variable(text)
	}
	return cypher.Raw(text)
}

func (s *SetSpec) item() (cypher.SetItem, error) {
	if !parser.IsValidIdentifier(s.Var) {
		return nil, fmt.Errorf("%w: set variable %q", ErrInvalidDocument, s.Var)
	}
	switch {
	case s.Prop != "" && s.Labels == nil && s.Props.Kind == 0:
		if !parser.IsValidIdentifier(s.Prop) {
			return nil, fmt.Errorf("%w: property %q", ErrInvalidDocument, s.Prop)
		}
		value, err := decodeValue(&s.Value)
		if err != nil {
			return nil, err
		}
		return cypher.SetProperty(s.Var, s.Prop, value), nil
	case s.Labels != nil && s.Prop == "" && s.Props.Kind == 0:
		labels, err := labelList(s.Labels)
		if err != nil {
			return nil, err
		}
		return cypher.SetLabels(s.Var, labels...), nil
	case s.Props.Kind != 0 && s.Prop == "" && s.Labels == nil:
		props, err := properties(&s.Props)
		if err != nil {
			return nil, err
		}
		return cypher.SetProperties(s.Var, props, s.Merge), nil
	}
	return nil, fmt.Errorf("%w: set item needs exactly one of prop, labels or props", ErrInvalidDocument)
}

func (r RemoveSpec) item() (cypher.RemoveItem, error) {
	if !parser.IsValidIdentifier(r.Var) {
		return nil, fmt.Errorf("%w: remove variable %q", ErrInvalidDocument, r.Var)
	}
	switch {
	case r.Prop != "" && r.Labels == nil:
		if !parser.IsValidIdentifier(r.Prop) {
			return nil, fmt.Errorf("%w: property %q", ErrInvalidDocument, r.Prop)
		}
		return cypher.RemoveProperty(r.Var, r.Prop), nil
	case r.Labels != nil && r.Prop == "":
		labels, err := labelList(r.Labels)
		if err != nil {
			return nil, err
		}
		return cypher.RemoveLabels(r.Var, labels...), nil
	}
	return nil, fmt.Errorf("%w: remove item needs exactly one of prop or labels", ErrInvalidDocument)
}

func labelList(names []string) ([]cypher.Label, error) {
	labels := make([]cypher.Label, len(names))
	for i, l := range names {
		if !parser.IsValidIdentifier(l) {
			return nil, fmt.Errorf("%w: label %q", ErrInvalidDocument, l)
		}
		labels[i] = cypher.Label(l)
	}
	return labels, nil
}

func optionalIdentifier(id string) error {
	if id != "" && !parser.IsValidIdentifier(id) {
		return fmt.Errorf("%w: identifier %q", ErrInvalidDocument, id)
	}
	return nil
}
