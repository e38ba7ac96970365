package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/seuros/gopher-graph/src/cypher"
)

var cypherLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"[^"]*"`},
	{Name: "Float", Pattern: `\d+\.\d+`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Operators", Pattern: `<-|->|\.\.|=~|<>|>=|<=|\+=`},
	{Name: "Punct", Pattern: `[-(),.:\[\]{}|*=<>;]`},
	{Name: "whitespace", Pattern: `\s+`},
})

// ErrUnsupported is returned for syntactically valid text that has no
// builder equivalent.
var ErrUnsupported = errors.New("unsupported construct")

type Parser struct {
	parser *participle.Parser[Statement]
	cache  *queryCache
}

func New() (*Parser, error) {
	parser, err := participle.Build[Statement](
		participle.Lexer(cypherLexer),
		participle.Unquote("String"),
		participle.CaseInsensitive("Ident"),
		participle.UseLookahead(4),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}

	return &Parser{parser: parser, cache: newQueryCache(defaultCacheSize)}, nil
}

// Parse reads query text into a builder query. Results are cached by
// input; the returned Query is immutable so sharing it is safe.
func (p *Parser) Parse(input string) (*cypher.Query, error) {
	return p.cache.Fetch(input, func() (*cypher.Query, error) {
		stmt, err := p.parser.ParseString("", input)
		if err != nil {
			return nil, fmt.Errorf("parse error: %w", err)
		}
		return convertStatement(stmt)
	})
}

// ParseTree returns the raw syntax tree without converting it.
func (p *Parser) ParseTree(input string) (*Statement, error) {
	stmt, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return stmt, nil
}

func convertStatement(stmt *Statement) (*cypher.Query, error) {
	q := cypher.NewQuery()
	var err error

	for _, clause := range stmt.Clauses {
		switch {
		case clause.Match != nil:
			var elems []cypher.Element
			if elems, err = convertPatterns(clause.Match.Patterns); err != nil {
				return nil, err
			}
			if clause.Match.Optional {
				q, err = q.OptionalMatch(elems...)
			} else {
				q, err = q.Match(elems...)
			}

		case clause.Where != nil:
			conds := make([]cypher.Condition, len(clause.Where.Conditions))
			for i, c := range clause.Where.Conditions {
				if conds[i], err = convertCondition(c); err != nil {
					return nil, err
				}
			}
			q = q.Where(conds...)

		case clause.Create != nil:
			var elems []cypher.Element
			if elems, err = convertPatterns(clause.Create.Patterns); err != nil {
				return nil, err
			}
			q, err = q.Create(elems...)

		case clause.Merge != nil:
			var elems []cypher.Element
			if elems, err = convertPatterns([]*Pattern{clause.Merge.Pattern}); err != nil {
				return nil, err
			}
			q, err = q.Merge(elems...)

		case clause.Delete != nil:
			items := make([]interface{}, len(clause.Delete.Items))
			for i, item := range clause.Delete.Items {
				if items[i], err = convertOperand(item); err != nil {
					return nil, err
				}
			}
			if clause.Delete.Detach {
				q = q.DetachDelete(items...)
			} else {
				q = q.Delete(items...)
			}

		case clause.Return != nil:
			items := make([]interface{}, len(clause.Return.Items))
			for i, item := range clause.Return.Items {
				expr, err := convertOperand(item.Expression)
				if err != nil {
					return nil, err
				}
				if item.Alias != nil {
					expr = cypher.As(expr, *item.Alias)
				}
				items[i] = expr
			}
			q = q.Return(items...)

		case clause.Set != nil:
			items := make([]cypher.SetItem, len(clause.Set.Items))
			for i, item := range clause.Set.Items {
				if items[i], err = convertSetItem(item); err != nil {
					return nil, err
				}
			}
			q = q.Set(items...)

		case clause.Remove != nil:
			items := make([]cypher.RemoveItem, len(clause.Remove.Items))
			for i, item := range clause.Remove.Items {
				if item.Property != nil {
					items[i] = cypher.RemoveProperty(item.Variable, *item.Property)
				} else {
					items[i] = cypher.RemoveLabels(item.Variable, toLabels(item.Labels)...)
				}
			}
			q = q.Remove(items...)
		}

		if err != nil {
			return nil, err
		}
	}

	return q, nil
}

// convertPatterns turns every pattern into an explicit path so that
// comma-separated patterns stay separate when handed to the builder.
func convertPatterns(patterns []*Pattern) ([]cypher.Element, error) {
	elems := make([]cypher.Element, 0, len(patterns))
	for _, p := range patterns {
		chain, shortest := p.Chain, false
		if p.Shortest != nil {
			chain, shortest = p.Shortest, true
		}

		members := []cypher.Element{convertNode(chain.Head)}
		for _, link := range chain.Links {
			rel, err := convertRelationship(link.Relationship)
			if err != nil {
				return nil, err
			}
			members = append(members, rel, convertNode(link.Node))
		}

		var (
			path *cypher.Path
			err  error
		)
		if shortest {
			path, err = cypher.NewShortestPath(p.Variable, members...)
		} else {
			path, err = cypher.NewPath(p.Variable, members...)
		}
		if err != nil {
			return nil, err
		}
		elems = append(elems, path)
	}
	return elems, nil
}

func convertNode(n *NodePattern) *cypher.Node {
	node := cypher.NewNode(n.Variable, toLabels(n.Labels)...)
	if n.Properties != nil {
		node = node.WithProperties(convertMap(n.Properties))
	}
	return node
}

func convertRelationship(r *RelationshipPattern) (*cypher.Relationship, error) {
	var dir cypher.Direction
	switch {
	case r.Left == "<-" && r.Right == "->":
		return nil, fmt.Errorf("%w: relationship cannot point both ways", ErrUnsupported)
	case r.Left == "<-":
		dir = cypher.DirectionFrom
	case r.Right == "->":
		dir = cypher.DirectionTo
	}

	rel := cypher.NewRelationship("").Direct(dir)
	if r.Body == nil {
		return rel, nil
	}

	types := make([]cypher.RelationshipType, len(r.Body.Types))
	for i, t := range r.Body.Types {
		types[i] = cypher.RelationshipType(t)
	}
	rel = rel.WithID(r.Body.Variable).WithTypes(types...)
	if r.Body.Properties != nil {
		rel = rel.WithProperties(convertMap(r.Body.Properties))
	}
	if spec := r.Body.Length; spec != nil {
		l, err := convertLength(spec)
		if err != nil {
			return nil, err
		}
		rel = rel.WithLength(l)
	}
	return rel, nil
}

func convertLength(spec *LengthSpec) (cypher.Length, error) {
	if !spec.Range {
		if spec.Min == nil {
			return cypher.AnyLength(), nil
		}
		return cypher.Exact(*spec.Min)
	}
	return cypher.NewRange(spec.Min, spec.Max)
}

func convertMap(m *MapLiteral) cypher.Properties {
	var props cypher.Properties
	for _, e := range m.Entries {
		props = props.With(e.Key, convertValue(e.Value))
	}
	return props
}

func convertValue(v *Value) interface{} {
	switch {
	case v.String != nil:
		return *v.String
	case v.Number != nil:
		if i, err := strconv.ParseInt(*v.Number, 10, 64); err == nil {
			return i
		}
		f, _ := strconv.ParseFloat(*v.Number, 64)
		return f
	case v.Boolean != nil:
		return bool(*v.Boolean)
	case v.List != nil:
		items := make([]interface{}, len(v.List.Elements))
		for i, el := range v.List.Elements {
			items[i] = convertValue(el)
		}
		return items
	case v.Variable != nil:
		return cypher.Variable(*v.Variable)
	default:
		return nil
	}
}

func convertOperand(o *Operand) (cypher.Expression, error) {
	switch {
	case o.Call != nil:
		args := make([]interface{}, len(o.Call.Arguments))
		for i, a := range o.Call.Arguments {
			expr, err := convertOperand(a)
			if err != nil {
				return nil, err
			}
			args[i] = expr
		}
		return cypher.Fn(o.Call.Name, args...), nil
	case o.Property != nil:
		return cypher.Prop(o.Property.Variable, o.Property.Property), nil
	case o.Value != nil:
		if o.Value.Variable != nil {
			return cypher.Variable(*o.Value.Variable), nil
		}
		return cypher.Raw(cypher.EncodeLiteral(convertValue(o.Value))), nil
	}
	return nil, fmt.Errorf("%w: empty operand", ErrUnsupported)
}

// operandValue is the value side of a comparison: literals stay Go
// values so they re-encode the same way, everything else is an expression.
func operandValue(o *Operand) (interface{}, error) {
	if o.Value != nil && o.Value.Variable == nil {
		return convertValue(o.Value), nil
	}
	return convertOperand(o)
}

var infixOperators = map[string]cypher.Operator{
	"=":          cypher.OpEqual,
	"<>":         cypher.OpNotEqual,
	">":          cypher.OpGreater,
	">=":         cypher.OpGreaterEqual,
	"<":          cypher.OpLess,
	"<=":         cypher.OpLessEqual,
	"STARTSWITH": cypher.OpStartsWith,
	"ENDSWITH":   cypher.OpEndsWith,
	"CONTAINS":   cypher.OpContains,
	"IN":         cypher.OpIn,
	"=~":         cypher.OpRegex,
}

var caseInsensitive = map[cypher.Operator]cypher.Operator{
	cypher.OpEqual:      cypher.OpIExact,
	cypher.OpStartsWith: cypher.OpIStartsWith,
	cypher.OpEndsWith:   cypher.OpIEndsWith,
	cypher.OpContains:   cypher.OpIContains,
}

func convertCondition(c *Condition) (cypher.Condition, error) {
	if c.Null != nil {
		if c.Left.Property == nil {
			return nil, fmt.Errorf("%w: IS NULL needs a property", ErrUnsupported)
		}
		return cypher.Compare(c.Left.Property.Variable, c.Left.Property.Property, cypher.OpIsNull, !c.Null.Not), nil
	}

	op, ok := infixOperators[strings.ToUpper(c.Operator)]
	if !ok {
		return nil, fmt.Errorf("%w: operator %q", ErrUnsupported, c.Operator)
	}

	left, right := c.Left, c.Right
	if ci, ok := caseInsensitive[op]; ok && isCall(left, "toLower") && isCall(right, "toLower") {
		left, right, op = left.Call.Arguments[0], right.Call.Arguments[0], ci
	}

	if isCall(left, "elementId") && op == cypher.OpEqual {
		arg := left.Call.Arguments[0]
		if arg.Value != nil && arg.Value.Variable != nil && right.Value != nil && right.Value.String != nil {
			return cypher.IDEquals(*arg.Value.Variable, *right.Value.String), nil
		}
	}

	if left.Property != nil {
		value, err := operandValue(right)
		if err != nil {
			return nil, err
		}
		return cypher.Compare(left.Property.Variable, left.Property.Property, op, value), nil
	}

	lhs, err := convertOperand(left)
	if err != nil {
		return nil, err
	}
	rhs, err := convertOperand(right)
	if err != nil {
		return nil, err
	}
	return cypher.Raw(lhs.Cypher() + " " + op.Infix() + " " + rhs.Cypher()), nil
}

func isCall(o *Operand, name string) bool {
	return o.Call != nil && strings.EqualFold(o.Call.Name, name) && len(o.Call.Arguments) == 1
}

func convertSetItem(item *SetItem) (cypher.SetItem, error) {
	switch {
	case item.Property != nil:
		value, err := operandValue(item.Value)
		if err != nil {
			return nil, err
		}
		return cypher.SetProperty(item.Variable, *item.Property, value), nil
	case len(item.Labels) > 0:
		return cypher.SetLabels(item.Variable, toLabels(item.Labels)...), nil
	case item.Map != nil:
		return cypher.SetProperties(item.Variable, convertMap(item.Map), item.Op == "+="), nil
	}
	return nil, fmt.Errorf("%w: empty SET item", ErrUnsupported)
}

func toLabels(names []string) []cypher.Label {
	labels := make([]cypher.Label, len(names))
	for i, n := range names {
		labels[i] = cypher.Label(n)
	}
	return labels
}
