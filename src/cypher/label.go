package cypher

import "strings"

// Label is a node label.
type Label string

// RelationshipType is a relationship type name.
type RelationshipType string

// appendUnique appends the values of add not already present in set,
// keeping first-seen order.
func appendUnique[T ~string](set []T, add ...T) []T {
	out := make([]T, len(set), len(set)+len(add))
	copy(out, set)
	for _, v := range add {
		if v == "" {
			continue
		}
		dup := false
		for _, have := range out {
			if have == v {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	return out
}

func joinNames[T ~string](names []T, prefix, sep string) string {
	if len(names) == 0 {
		return ""
	}
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return prefix + strings.Join(parts, sep)
}
