package locations

import (
	"reflect"
	"testing"
)

var cityNodes = []string{
	"Warehouse", "HubA", "HubB", "TransitX", "TransitY", "TransitZ",
	"CustomerA", "CustomerB", "CustomerC", "CustomerD", "CustomerE", "CustomerF", "DistrictP",
}

func TestNewKnownSortsAndDedupes(t *testing.T) {
	k := NewKnown([]string{"b", " a ", "", "b", "c"})
	if got, want := k.Names(), []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	if k.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", k.Len())
	}
	if !k.Contains("a") || k.Contains("A") {
		t.Fatal("Contains should be exact and case-sensitive")
	}
}

func TestSuggest(t *testing.T) {
	k := NewKnown(cityNodes)
	cases := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{input: "Warehose", want: "Warehouse", wantOK: true},
		{input: "warehouse", want: "Warehouse", wantOK: true},
		{input: "Distrct P", want: "DistrictP", wantOK: true},
		{input: "Warehouse", wantOK: false},
		{input: "", wantOK: false},
		{input: "Airport", wantOK: false},
	}
	for _, tc := range cases {
		got, ok := k.Suggest(tc.input)
		if ok != tc.wantOK || got != tc.want {
			t.Errorf("Suggest(%q) = (%q, %v), want (%q, %v)", tc.input, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestSuggestEmptySet(t *testing.T) {
	if _, ok := NewKnown(nil).Suggest("Warehouse"); ok {
		t.Fatal("empty set should never suggest")
	}
}
