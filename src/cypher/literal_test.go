package cypher

import "testing"

type shade string

func TestEncodeLiteral(t *testing.T) {
	name := "ptr"
	var nilPtr *int
	cases := []struct {
		in   interface{}
		want string
	}{
		{"You", `"You"`},
		{"", `""`},
		{nil, "null"},
		{1234, "1234"},
		{-7, "-7"},
		{3.5, "3.5"},
		{1e21, "1000000000000000000000.0"},
		{1.5e-7, "0.00000015"},
		{2.0, "2.0"},
		{-0.25, "-0.25"},
		{float32(0.1), "0.1"},
		{true, "true"},
		{false, "false"},
		{[]interface{}{1, "a", nil}, `[1,"a",null]`},
		{[]string{"x", "y"}, `["x","y"]`},
		{[2]int{1, 2}, "[1,2]"},
		{[]int{}, "[]"},
		{[][]int{{1}, {2, 3}}, "[[1],[2,3]]"},
		{shade("dark"), `"dark"`},
		{&name, `"ptr"`},
		{nilPtr, "null"},
		{Variable("who"), "who"},
		{Prop("n", "name"), "n.name"},
	}
	for _, c := range cases {
		if got := EncodeLiteral(c.in); got != c.want {
			t.Errorf("EncodeLiteral(%#v) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestEncodeLiteralDoesNotEscape(t *testing.T) {
	got := EncodeLiteral(`say "hi"`)
	if got != `"say "hi""` {
		t.Fatalf("got %s", got)
	}
}
