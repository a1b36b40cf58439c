package utils

import "testing"

func TestCents(t *testing.T) {
	cases := []struct {
		in   float64
		want int64
	}{
		{0, 0},
		{1, 100},
		{19.99, 1999},
		{0.005, 1},
		{200.00, 20000},
	}
	for _, c := range cases {
		if got := Cents(c.in); got != c.want {
			t.Errorf("Cents(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestDecimalRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 99, 100, 12345, 1000000} {
		if got := Cents(Decimal(cents)); got != cents {
			t.Errorf("Cents(Decimal(%d)) = %d", cents, got)
		}
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Business Cards", "business-cards"},
		{"A4 Flyers (Glossy)", "a4-flyers-glossy"},
		{"  trim  me  ", "trim-me"},
		{"UPPER", "upper"},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
