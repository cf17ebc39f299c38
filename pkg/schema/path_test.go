package schema

import "testing"

func TestInputName(t *testing.T) {
	cases := []struct {
		ancestor string
		name     string
		want     string
	}{
		{"", "", ""},
		{"x", "", "x"},
		{"", "y", "y"},
		{"x", "y", "x.y"},
		{"", "email", "email"},
		{"address", "city", "address.city"},
		{"a.b", "c", "a.b.c"},
	}
	for _, tc := range cases {
		if got := InputName(tc.ancestor, tc.name); got != tc.want {
			t.Errorf("InputName(%q, %q) = %q, want %q", tc.ancestor, tc.name, got, tc.want)
		}
	}
}
