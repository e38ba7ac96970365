package cypher

import (
	"fmt"
	"strings"
)

// Condition is a boolean expression usable in WHERE.
type Condition interface {
	Expression
}

// Operator is a comparison operator selected by a lookup suffix.
type Operator int

const (
	OpEqual Operator = iota
	OpNotEqual
	OpGreater
	OpGreaterEqual
	OpLess
	OpLessEqual
	OpStartsWith
	OpEndsWith
	OpContains
	OpIn
	OpRegex
	OpIExact
	OpIStartsWith
	OpIEndsWith
	OpIContains
	OpIsNull
)

var lookupNames = []string{
	OpEqual:        "eq",
	OpNotEqual:     "ne",
	OpGreater:      "gt",
	OpGreaterEqual: "gte",
	OpLess:         "lt",
	OpLessEqual:    "lte",
	OpStartsWith:   "startswith",
	OpEndsWith:     "endswith",
	OpContains:     "contains",
	OpIn:           "in",
	OpRegex:        "regex",
	OpIExact:       "iexact",
	OpIStartsWith:  "istartswith",
	OpIEndsWith:    "iendswith",
	OpIContains:    "icontains",
	OpIsNull:       "isnull",
}

var infix = map[Operator]string{
	OpEqual:        "=",
	OpNotEqual:     "<>",
	OpGreater:      ">",
	OpGreaterEqual: ">=",
	OpLess:         "<",
	OpLessEqual:    "<=",
	OpStartsWith:   "STARTS WITH",
	OpEndsWith:     "ENDS WITH",
	OpContains:     "CONTAINS",
	OpIn:           "IN",
	OpRegex:        "=~",
	OpIExact:       "=",
	OpIStartsWith:  "STARTS WITH",
	OpIEndsWith:    "ENDS WITH",
	OpIContains:    "CONTAINS",
}

// String returns the lookup suffix for the operator.
func (o Operator) String() string {
	if int(o) < len(lookupNames) {
		return lookupNames[o]
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// Infix returns the Cypher operator text, "" for OpIsNull.
func (o Operator) Infix() string { return infix[o] }

func (o Operator) caseInsensitive() bool {
	return o >= OpIExact && o <= OpIContains
}

// ParseOperator resolves a lookup suffix such as "gte" or "icontains".
func ParseOperator(name string) (Operator, bool) {
	for op, n := range lookupNames {
		if n == name {
			return Operator(op), true
		}
	}
	return 0, false
}

// Comparison compares a property of a bound variable with a value.
type Comparison struct {
	Variable string
	Property string
	Op       Operator
	Value    interface{}
}

// Compare returns variable.property <op> value.
func Compare(variable, property string, op Operator, value interface{}) Comparison {
	return Comparison{Variable: variable, Property: property, Op: op, Value: value}
}

func (c Comparison) Cypher() string {
	lhs := c.Variable + "." + c.Property
	if c.Op == OpIsNull {
		if b, ok := c.Value.(bool); ok && !b {
			return lhs + " IS NOT NULL"
		}
		return lhs + " IS NULL"
	}
	rhs := EncodeLiteral(c.Value)
	if c.Op.caseInsensitive() {
		lhs, rhs = "toLower("+lhs+")", "toLower("+rhs+")"
	}
	return lhs + " " + c.Op.Infix() + " " + rhs
}

// ParseLookup splits a lookup key of the form variable__property or
// variable__property__operator.
func ParseLookup(key string) (variable, property string, op Operator, err error) {
	parts := strings.Split(key, "__")
	for _, p := range parts {
		if p == "" {
			return "", "", 0, &MalformedWhereError{Key: key, Reason: "empty segment"}
		}
	}
	switch len(parts) {
	case 1:
		return "", "", 0, &MalformedWhereError{Key: key, Reason: "expected variable__property"}
	case 2:
		return parts[0], parts[1], OpEqual, nil
	case 3:
		o, ok := ParseOperator(parts[2])
		if !ok {
			return "", "", 0, &MalformedWhereError{Key: key, Reason: fmt.Sprintf("unknown operator %q", parts[2])}
		}
		return parts[0], parts[1], o, nil
	default:
		return "", "", 0, &MalformedWhereError{Key: key, Reason: "too many segments"}
	}
}

// Lookup compiles key and value into a comparison.
func Lookup(key string, value interface{}) (Condition, error) {
	v, p, op, err := ParseLookup(key)
	if err != nil {
		return nil, err
	}
	return Compare(v, p, op, value), nil
}

// IDCondition asserts the database id of a bound variable.
type IDCondition struct {
	Variable   string
	InternalID string
}

// IDEquals returns elementId(variable) = "internalID".
func IDEquals(variable, internalID string) IDCondition {
	return IDCondition{Variable: variable, InternalID: internalID}
}

func (c IDCondition) Cypher() string {
	return ElementID(c.Variable).Cypher() + " = " + EncodeLiteral(c.InternalID)
}

// Raw is condition text passed through verbatim.
type Raw string

func (r Raw) Cypher() string { return string(r) }
