package names

import "testing"

func TestNormalisationTable(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "  Activation-Rate  ", want: "activation rate"},
		{in: "inverse_sigmoid", want: "inverse sigmoid"},
		{in: "reaction   RATE!!", want: "reaction rate"},
		{in: "", want: ""},
	}
	for _, tc := range tests {
		got := Normalise(tc.in)
		if got != tc.want {
			t.Fatalf("Normalise(%q)=%q want=%q", tc.in, got, tc.want)
		}
	}
}

func testRegistry() *Registry {
	r := NewRegistry()
	r.Register("health", "hp")
	r.Register("activation rate", "act rate")
	r.Register("reaction rate")
	r.Register("inverse sigmoid")
	r.Register("inverse linear")
	return r
}

func TestResolve(t *testing.T) {
	r := testRegistry()
	tests := []struct {
		in     string
		want   string
		source string
	}{
		{in: "health", want: "health", source: "exact"},
		{in: "HP", want: "health", source: "alias"},
		{in: "act-rate", want: "activation rate", source: "alias"},
		{in: "activ", want: "activation rate", source: "prefix"},
		{in: "helth", want: "health", source: "lev"},
		{in: "inverse sigmod", want: "inverse sigmoid", source: "lev"},
	}
	for _, tc := range tests {
		m, ok := r.Resolve(tc.in)
		if !ok {
			t.Fatalf("Resolve(%q) found nothing", tc.in)
		}
		if m.Canonical != tc.want || m.Source != tc.source {
			t.Fatalf("Resolve(%q)=%+v want=%s/%s", tc.in, m, tc.want, tc.source)
		}
	}
}

func TestResolveRejectsAmbiguousAndUnknown(t *testing.T) {
	r := testRegistry()
	for _, in := range []string{"inverse", "zz", "", "temperature"} {
		if m, ok := r.Resolve(in); ok {
			t.Fatalf("Resolve(%q) expected no match, got %+v", in, m)
		}
	}
}
