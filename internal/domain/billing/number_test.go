package billing

import (
	"fmt"
	"testing"
)

func TestNextInvoiceNumber(t *testing.T) {
	got, err := NextInvoiceNumber("NBO", "")
	if err != nil {
		t.Fatal(err)
	}
	if got != "NBO-000001" {
		t.Errorf("first number = %q, want NBO-000001", got)
	}

	got, err = NextInvoiceNumber("NBO", "NBO-000041")
	if err != nil {
		t.Fatal(err)
	}
	if got != "NBO-000042" {
		t.Errorf("next number = %q, want NBO-000042", got)
	}
}

// Sequential allocations are strictly increasing and unique.
func TestNextInvoiceNumber_Sequential(t *testing.T) {
	seen := make(map[string]bool)
	last := ""
	for i := 1; i <= 50; i++ {
		next, err := NextInvoiceNumber("MSA", last)
		if err != nil {
			t.Fatal(err)
		}
		if seen[next] {
			t.Fatalf("duplicate invoice number %q", next)
		}
		if last != "" && next <= last {
			t.Fatalf("number %q not greater than %q", next, last)
		}
		seen[next] = true
		last = next
	}
	if last != "MSA-000050" {
		t.Errorf("final number = %q, want MSA-000050", last)
	}
}

func TestNextInvoiceNumber_MalformedSequence(t *testing.T) {
	cases := []string{
		"NBO-ABCDEF",
		"NBO-12",
		"short",
		"NBO-12345X",
	}
	for _, last := range cases {
		t.Run(last, func(t *testing.T) {
			if _, err := NextInvoiceNumber("NBO", last); err == nil {
				t.Errorf("NextInvoiceNumber(%q) succeeded, want format error", last)
			}
		})
	}
}

func TestFormatInvoiceNumber_WidensPastSixDigits(t *testing.T) {
	got := FormatInvoiceNumber("NBO", 1234567)
	want := fmt.Sprintf("NBO-%d", 1234567)
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
