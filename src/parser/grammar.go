package parser

import "strings"

type Statement struct {
	Clauses []*Clause `@@+ ";"?`
}

type Clause struct {
	Match  *MatchClause  `  @@`
	Where  *WhereClause  `| @@`
	Create *CreateClause `| @@`
	Delete *DeleteClause `| @@`
	Return *ReturnClause `| @@`
	Set    *SetClause    `| @@`
	Remove *RemoveClause `| @@`
	Merge  *MergeClause  `| @@`
}

type MatchClause struct {
	Optional bool       `@"OPTIONAL"? "MATCH"`
	Patterns []*Pattern `@@ ("," @@)*`
}

type WhereClause struct {
	Conditions []*Condition `"WHERE" @@ ("AND" @@)*`
}

type CreateClause struct {
	Patterns []*Pattern `"CREATE" @@ ("," @@)*`
}

type MergeClause struct {
	Pattern *Pattern `"MERGE" @@`
}

type DeleteClause struct {
	Detach bool       `@"DETACH"? "DELETE"`
	Items  []*Operand `@@ ("," @@)*`
}

type ReturnClause struct {
	Items []*ReturnItem `"RETURN" @@ ("," @@)*`
}

type ReturnItem struct {
	Expression *Operand `@@`
	Alias      *string  `("AS" @Ident)?`
}

type SetClause struct {
	Items []*SetItem `"SET" @@ ("," @@)*`
}

type SetItem struct {
	Variable string      `@Ident`
	Property *string     `(  "." @Ident "="`
	Value    *Operand    `   @@`
	Labels   []string    `| (":" @Ident)+`
	Op       string      `| @("+=" | "=")`
	Map      *MapLiteral `  @@ )`
}

type RemoveClause struct {
	Items []*RemoveItem `"REMOVE" @@ ("," @@)*`
}

type RemoveItem struct {
	Variable string   `@Ident`
	Property *string  `(  "." @Ident`
	Labels   []string `| (":" @Ident)+ )`
}

// Pattern is a chain of nodes and relationships, optionally assigned to a
// path variable and wrapped in shortestPath.
type Pattern struct {
	Variable string `(@Ident "=")?`
	Shortest *Chain `(  "shortestPath" "(" @@ ")"`
	Chain    *Chain `| @@ )`
}

type Chain struct {
	Head  *NodePattern `@@`
	Links []*Link      `@@*`
}

type Link struct {
	Relationship *RelationshipPattern `@@`
	Node         *NodePattern         `@@`
}

type NodePattern struct {
	Variable   string      `"(" @Ident?`
	Labels     []string    `(":" @Ident)*`
	Properties *MapLiteral `@@? ")"`
}

type RelationshipPattern struct {
	Left  string            `@("<-" | "-")`
	Body  *RelationshipBody `("[" @@ "]")?`
	Right string            `@("->" | "-")`
}

type RelationshipBody struct {
	Variable   string      `@Ident?`
	Types      []string    `(":" @Ident ("|" @Ident)*)?`
	Length     *LengthSpec `@@?`
	Properties *MapLiteral `@@?`
}

type LengthSpec struct {
	Star  bool `@"*"`
	Min   *int `@Int?`
	Range bool `@".."?`
	Max   *int `@Int?`
}

type MapLiteral struct {
	Entries []*MapEntry `"{" (@@ ("," @@)*)? "}"`
}

type MapEntry struct {
	Key   string `@Ident ":"`
	Value *Value `@@`
}

type Condition struct {
	Left     *Operand   `@@`
	Null     *NullCheck `(  @@`
	Operator string     `| @("=~" | "<>" | ">=" | "<=" | "=" | ">" | "<" | "STARTS" "WITH" | "ENDS" "WITH" | "CONTAINS" | "IN")`
	Right    *Operand   `  @@ )`
}

type NullCheck struct {
	Not bool `"IS" @"NOT"? "NULL"`
}

type Operand struct {
	Call     *Call           `  @@`
	Property *PropertyAccess `| @@`
	Value    *Value          `| @@`
}

type Call struct {
	Name      string     `@Ident "("`
	Arguments []*Operand `(@@ ("," @@)*)? ")"`
}

type PropertyAccess struct {
	Variable string `@Ident "."`
	Property string `@Ident`
}

type Value struct {
	String   *string      `  @String`
	Number   *string      `| @("-"? (Float | Int))`
	Boolean  *Boolean     `| @("true" | "false")`
	Null     bool         `| @"null"`
	List     *ListLiteral `| @@`
	Variable *string      `| @Ident`
}

type ListLiteral struct {
	Elements []*Value `"[" (@@ ("," @@)*)? "]"`
}

// Boolean captures true/false in any case.
type Boolean bool

func (b *Boolean) Capture(values []string) error {
	*b = Boolean(strings.EqualFold(values[0], "true"))
	return nil
}
