package cypher

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// EncodeLiteral renders a Go value in Cypher literal syntax.
//
// Strings are wrapped in double quotes without escaping, so a value that
// itself contains a double quote yields invalid query text. Slices and
// arrays become lists, nil becomes null and values implementing Expression
// render their own text. Finite floats are written in plain decimal
// notation and always carry a fractional part. Maps are not supported and,
// like anything else, fall back to their default fmt form.
func EncodeLiteral(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return `"` + val + `"`
	case Expression:
		return val.Cypher()
	case []interface{}:
		parts := make([]string, len(val))
		for i, el := range val {
			parts[i] = EncodeLiteral(el)
		}
		return "[" + strings.Join(parts, ",") + "]"
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "null"
		}
		return EncodeLiteral(rv.Elem().Interface())
	case reflect.String:
		return `"` + rv.String() + `"`
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = EncodeLiteral(rv.Index(i).Interface())
		}
		return "[" + strings.Join(parts, ",") + "]"
	case reflect.Float32:
		return encodeFloat(rv.Float(), 32)
	case reflect.Float64:
		return encodeFloat(rv.Float(), 64)
	}
	return fmt.Sprint(v)
}

func encodeFloat(f float64, bitSize int) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return fmt.Sprint(f)
	}
	s := strconv.FormatFloat(f, 'f', -1, bitSize)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
