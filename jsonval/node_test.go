package jsonval

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustJSON(t *testing.T, n *Node) string {
	t.Helper()
	d, err := n.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	return string(d)
}

func TestSetKeepsPosition(t *testing.T) {
	n := NewObject().
		Set("a", FromInt(1)).
		Set("b", FromInt(2)).
		Set("c", FromInt(3)).
		Set("a", FromInt(9))
	want := `{"a":9,"b":2,"c":3}`
	if got := mustJSON(t, n); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestMarshalOrdering(t *testing.T) {
	n := NewObject().
		Set("z", FromString("last declared, first out")).
		Set("a", FromSlice([]*Node{Null(), FromBool(true), FromFloat(1.5)}))
	want := `{"z":"last declared, first out","a":[null,true,1.5]}`
	if got := mustJSON(t, n); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestEqualOrderSignificant(t *testing.T) {
	a := NewObject().Set("x", FromInt(1)).Set("y", FromInt(2))
	b := NewObject().Set("y", FromInt(2)).Set("x", FromInt(1))
	if Equal(a, b) {
		t.Errorf("objects with different field order compare equal")
	}
	b.SortObjects()
	a.SortObjects()
	if !Equal(a, b) {
		t.Errorf("sorted objects should compare equal")
	}
}

func TestSortObjectsRecursive(t *testing.T) {
	n := NewObject().
		Set("b", NewObject().Set("z", FromInt(1)).Set("a", FromInt(2))).
		Set("a", FromSlice([]*Node{
			NewObject().Set("q", Null()).Set("p", Null()),
		}))
	n.SortObjects()
	want := `{"a":[{"p":null,"q":null}],"b":{"a":2,"z":1}}`
	if got := mustJSON(t, n); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestSortObjectsKeepsArrayOrder(t *testing.T) {
	n := FromSlice([]*Node{FromString("c"), FromString("a"), FromString("b")})
	n.SortObjects()
	want := `["c","a","b"]`
	if got := mustJSON(t, n); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestClone(t *testing.T) {
	orig := NewObject().Set("a", FromSlice([]*Node{FromInt(1)}))
	cp := orig.Clone()
	cp.Set("a", FromInt(2)).Set("b", Null())
	if got, want := mustJSON(t, orig), `{"a":[1]}`; got != want {
		t.Errorf("clone aliases original: got %s, want %s", got, want)
	}
}

func TestFromAny(t *testing.T) {
	type testCase struct {
		name    string
		in      any
		want    string
		wantErr bool
	}
	for _, tc := range []testCase{
		{name: "nil", in: nil, want: `null`},
		{name: "bool", in: true, want: `true`},
		{name: "string", in: "s", want: `"s"`},
		{name: "int", in: 42, want: `42`},
		{name: "float", in: 1.25, want: `1.25`},
		{name: "any-slice", in: []any{1, "a", false}, want: `[1,"a",false]`},
		{name: "string-slice", in: []string{"x", "y"}, want: `["x","y"]`},
		{name: "int-slice", in: []int{3, 1, 2}, want: `[3,1,2]`},
		{name: "map-sorted", in: map[string]any{"b": 2, "a": 1}, want: `{"a":1,"b":2}`},
		{name: "unsupported", in: struct{ X int }{}, wantErr: true},
		{name: "bad-slice-element", in: []any{struct{}{}}, wantErr: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			n, err := FromAny(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %T", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromAny(%v): %v", tc.in, err)
			}
			if got := mustJSON(t, n); got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestInterfaceRoundTrip(t *testing.T) {
	n := NewObject().
		Set("s", FromString("v")).
		Set("n", FromInt(3)).
		Set("arr", FromSlice([]*Node{FromBool(false)}))
	want := map[string]any{
		"s":   "v",
		"n":   int64(3),
		"arr": []any{false},
	}
	if diff := cmp.Diff(want, n.Interface()); diff != "" {
		t.Errorf("Interface() mismatch (-want +got):\n%s", diff)
	}
}
