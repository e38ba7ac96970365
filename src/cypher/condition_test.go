package cypher

import (
	"errors"
	"testing"
)

func TestComparisonOperators(t *testing.T) {
	cases := []struct {
		op    Operator
		value interface{}
		want  string
	}{
		{OpEqual, "You", `n.name = "You"`},
		{OpNotEqual, "You", `n.name <> "You"`},
		{OpGreater, 3, "n.name > 3"},
		{OpGreaterEqual, 3, "n.name >= 3"},
		{OpLess, 3, "n.name < 3"},
		{OpLessEqual, 3, "n.name <= 3"},
		{OpStartsWith, "Yo", `n.name STARTS WITH "Yo"`},
		{OpEndsWith, "ou", `n.name ENDS WITH "ou"`},
		{OpContains, "o", `n.name CONTAINS "o"`},
		{OpIn, []string{"a", "b"}, `n.name IN ["a","b"]`},
		{OpRegex, "Y.*", `n.name =~ "Y.*"`},
		{OpIExact, "you", `toLower(n.name) = toLower("you")`},
		{OpIStartsWith, "yo", `toLower(n.name) STARTS WITH toLower("yo")`},
		{OpIEndsWith, "OU", `toLower(n.name) ENDS WITH toLower("OU")`},
		{OpIContains, "O", `toLower(n.name) CONTAINS toLower("O")`},
		{OpIsNull, true, "n.name IS NULL"},
		{OpIsNull, false, "n.name IS NOT NULL"},
		{OpEqual, Prop("m", "name"), "n.name = m.name"},
	}
	for _, c := range cases {
		if got := Compare("n", "name", c.op, c.value).Cypher(); got != c.want {
			t.Errorf("%s: got %s want %s", c.op, got, c.want)
		}
	}
}

func TestParseLookup(t *testing.T) {
	v, p, op, err := ParseLookup("you__name")
	if err != nil || v != "you" || p != "name" || op != OpEqual {
		t.Fatalf("got %s %s %s %v", v, p, op, err)
	}

	v, p, op, err = ParseLookup("n__age__gte")
	if err != nil || v != "n" || p != "age" || op != OpGreaterEqual {
		t.Fatalf("got %s %s %s %v", v, p, op, err)
	}

	for _, key := range []string{"badkey", "n__age__between", "n____x", "a__b__eq__c", "__x"} {
		_, _, _, err := ParseLookup(key)
		if !errors.Is(err, ErrMalformedWhere) {
			t.Errorf("%s: expected ErrMalformedWhere got %v", key, err)
		}
		var mw *MalformedWhereError
		if !errors.As(err, &mw) || mw.Key != key {
			t.Errorf("%s: expected MalformedWhereError got %v", key, err)
		}
	}
}

func TestOperatorNames(t *testing.T) {
	for _, name := range lookupNames {
		op, ok := ParseOperator(name)
		if !ok || op.String() != name {
			t.Errorf("round trip failed for %s", name)
		}
	}
	if _, ok := ParseOperator("nope"); ok {
		t.Fatal("unknown operator resolved")
	}
}

func TestIDEquals(t *testing.T) {
	got := IDEquals("n", "4:db:12").Cypher()
	if got != `elementId(n) = "4:db:12"` {
		t.Fatalf("got %s", got)
	}
}

func TestSetAndRemoveItems(t *testing.T) {
	cases := []struct {
		item Expression
		want string
	}{
		{SetProperty("n", "name", "x"), `n.name = "x"`},
		{SetProperties("n", Properties{}.With("a", 1), false), "n = {a: 1}"},
		{SetProperties("n", Properties{}.With("a", 1), true), "n += {a: 1}"},
		{SetProperties("n", Properties{}, false), "n = {}"},
		{SetLabels("n", "A", "B"), "n:A:B"},
		{RemoveProperty("n", "name"), "n.name"},
		{RemoveLabels("n", "A"), "n:A"},
	}
	for _, c := range cases {
		if got := c.item.Cypher(); got != c.want {
			t.Errorf("got %s want %s", got, c.want)
		}
	}
}
