package form

import "testing"

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"":             "",
		"email":        "Email",
		"first_name":   "First Name",
		"zipCode":      "Zip Code",
		"line-2":       "Line 2",
		"address2":     "Address 2",
		"  spaced  x ": "Spaced X",
		"ÉCOLE":        "École",
	}
	for input, want := range cases {
		if got := DefaultLabeler(input); got != want {
			t.Errorf("DefaultLabeler(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeValue(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"a", "a"},
		{true, "true"},
		{int64(7), "7"},
		{2.50, "2.5"},
		{float64(3), "3"},
		{[]any{1}, "[1]"},
	}
	for _, tc := range cases {
		if got := NormalizeValue(tc.in); got != tc.want {
			t.Errorf("NormalizeValue(%#v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
