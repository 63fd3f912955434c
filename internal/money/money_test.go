package money

import "testing"

func TestParseCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"125.50", 12550},
		{"$1,200", 120000},
		{"0.1", 10},
		{"19.99", 1999},
		{" 42 ", 4200},
		{"0.005", 1}, // half-cent rounds away from zero
	}
	for _, c := range cases {
		got, err := ParseCents(c.in)
		if err != nil {
			t.Fatalf("ParseCents(%q) error: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseCents(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseCentsRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "12.3.4"} {
		if _, err := ParseCents(in); err == nil {
			t.Fatalf("ParseCents(%q) accepted, want error", in)
		}
	}
}

func TestFormat(t *testing.T) {
	if got := Format(150050, "$"); got != "$1500.50" {
		t.Fatalf("Format = %q, want $1500.50", got)
	}
	if got := Format(5, "$"); got != "$0.05" {
		t.Fatalf("Format = %q, want $0.05", got)
	}
}
