package parser

import "regexp"

var (
	identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
)

// IsValidIdentifier reports whether s can be used unquoted as a variable,
// label, relationship type or property key.
func IsValidIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

// IsSafeString reports whether s can be embedded in a double-quoted
// literal. Literals are not escaped, so a double quote would end the
// string early.
func IsSafeString(s string) bool {
	for _, r := range s {
		if r == '"' || r == '\\' {
			return false
		}
	}
	return true
}
