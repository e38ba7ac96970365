package cypher

import "strings"

// Expression is any value that renders its own Cypher text. Expressions
// pass through the literal encoder untouched.
type Expression interface {
	Cypher() string
}

// Variable refers to a name bound elsewhere in the query. It is both an
// Element, so it can be returned or deleted, and an Expression, so it can
// be used as a property value or comparison operand.
type Variable string

func (v Variable) Identifier() string { return string(v) }
func (v Variable) Render(BindingMode) string { return string(v) }
func (v Variable) Cypher() string { return string(v) }
func (Variable) element() {}

// PropertyRef represents accessing a property on a variable (e.g., n.name).
type PropertyRef struct {
	Variable string
	Property string
}

// Prop returns a property access expression.
func Prop(variable, property string) PropertyRef {
	return PropertyRef{Variable: variable, Property: property}
}

func (p PropertyRef) Cypher() string { return p.Variable + "." + p.Property }

// FunctionCall represents a function call (e.g., count(n), toLower(n.name)).
// Arguments are encoded as literals unless they are expressions.
type FunctionCall struct {
	Name      string
	Arguments []interface{}
}

// Fn returns a function call expression.
func Fn(name string, args ...interface{}) FunctionCall {
	return FunctionCall{Name: name, Arguments: args}
}

// ElementID returns elementId(variable).
func ElementID(variable string) FunctionCall {
	return Fn("elementId", Variable(variable))
}

func (f FunctionCall) Cypher() string {
	parts := make([]string, len(f.Arguments))
	for i, arg := range f.Arguments {
		parts[i] = EncodeLiteral(arg)
	}
	return f.Name + "(" + strings.Join(parts, ", ") + ")"
}

// AliasExpr represents an expression with an alias (e.g., expr AS alias).
type AliasExpr struct {
	Expression Expression
	Alias      string
}

// As wraps expr with an alias.
func As(expr Expression, alias string) AliasExpr {
	return AliasExpr{Expression: expr, Alias: alias}
}

func (a AliasExpr) Cypher() string { return a.Expression.Cypher() + " AS " + a.Alias }
