package cypher

// ClauseType defines the type of a Cypher clause.
type ClauseType int

// Enum for ClauseType
const (
	UnknownClauseType ClauseType = iota
	MatchClause
	WhereClause
	CreateClause
	DeleteClause
	ReturnClause
	SetClause
	RemoveClause
	MergeClause
)

// String returns the keyword that introduces the clause.
func (t ClauseType) String() string {
	switch t {
	case MatchClause:
		return "MATCH"
	case WhereClause:
		return "WHERE"
	case CreateClause:
		return "CREATE"
	case DeleteClause:
		return "DELETE"
	case ReturnClause:
		return "RETURN"
	case SetClause:
		return "SET"
	case RemoveClause:
		return "REMOVE"
	case MergeClause:
		return "MERGE"
	default:
		return "UNKNOWN"
	}
}

// ClauseOrder determines where a clause group lands in rendered text.
// Groups are emitted in ascending order regardless of call order.
func ClauseOrder(t ClauseType) int {
	switch t {
	case MatchClause:
		return 1
	case WhereClause:
		return 2
	case CreateClause:
		return 3
	case DeleteClause:
		return 4
	case ReturnClause:
		return 5
	case SetClause:
		return 6
	case RemoveClause:
		return 7
	case MergeClause:
		return 8
	default:
		return 99
	}
}

// renderOrder lists the clause groups sorted by ClauseOrder.
var renderOrder = []ClauseType{
	MatchClause,
	WhereClause,
	CreateClause,
	DeleteClause,
	ReturnClause,
	SetClause,
	RemoveClause,
	MergeClause,
}
