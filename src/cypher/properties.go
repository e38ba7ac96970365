package cypher

import "strings"

// Property is a single key/value pair of a property map.
type Property struct {
	Key   string
	Value interface{}
}

// Properties is an insertion-ordered property map. The zero value is an
// empty map. Every modifier returns a copy, so a Properties value that was
// attached to an element never changes afterwards.
type Properties struct {
	entries []Property
}

// NewProperties builds a map from pairs, keeping their order.
func NewProperties(pairs ...Property) Properties {
	var p Properties
	for _, kv := range pairs {
		p = p.With(kv.Key, kv.Value)
	}
	return p
}

// With returns a copy with key set to value. An existing key keeps its
// position.
func (p Properties) With(key string, value interface{}) Properties {
	entries := make([]Property, len(p.entries), len(p.entries)+1)
	copy(entries, p.entries)
	for i := range entries {
		if entries[i].Key == key {
			entries[i].Value = value
			return Properties{entries: entries}
		}
	}
	return Properties{entries: append(entries, Property{Key: key, Value: value})}
}

// Merge returns a copy updated with every entry of other, in other's order.
func (p Properties) Merge(other Properties) Properties {
	out := p
	for _, kv := range other.entries {
		out = out.With(kv.Key, kv.Value)
	}
	return out
}

// Get returns the value stored under key.
func (p Properties) Get(key string) (interface{}, bool) {
	for _, kv := range p.entries {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys in insertion order.
func (p Properties) Keys() []string {
	keys := make([]string, len(p.entries))
	for i, kv := range p.entries {
		keys[i] = kv.Key
	}
	return keys
}

// Entries returns a copy of the pairs in insertion order.
func (p Properties) Entries() []Property {
	out := make([]Property, len(p.entries))
	copy(out, p.entries)
	return out
}

// Len returns the number of entries.
func (p Properties) Len() int { return len(p.entries) }

// AsText renders the map as " {k1: v1, k2: v2}", or "" when empty.
func (p Properties) AsText() string {
	if len(p.entries) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(" {")
	for i, kv := range p.entries {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(kv.Key)
		b.WriteString(": ")
		b.WriteString(EncodeLiteral(kv.Value))
	}
	b.WriteByte('}')
	return b.String()
}
