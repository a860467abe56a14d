package normalization

import "testing"

func TestParseInputString(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "ABB", "abb"},
		{"trims", "  schneider  ", "schneider"},
		{"trims and lowercases", "\tSiemens \n", "siemens"},
		{"keeps inner whitespace", "MCB  Panel", "mcb  panel"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseInputString(tc.input); got != tc.want {
				t.Fatalf("ParseInputString(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseInputStringPtr(t *testing.T) {
	if got := ParseInputStringPtr(nil); got != nil {
		t.Fatalf("expected nil for nil input, got %q", *got)
	}
	input := "  IP65 "
	got := ParseInputStringPtr(&input)
	if got == nil || *got != "ip65" {
		t.Fatalf("ParseInputStringPtr(%q) = %v, want ip65", input, got)
	}
}
