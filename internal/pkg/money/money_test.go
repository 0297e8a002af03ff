package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"0", "0.00", false},
		{"5000", "5000.00", false},
		{"123.45", "123.45", false},
		{"0.05", "0.05", false},
		{"123.456", "", true},
		{"-1", "", true},
		{"abc", "", true},
		{"", "", true},
	}
	for _, c := range cases {
		got, err := ParseAmount(c.input)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseAmount(%q) expected error, got %s", c.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAmount(%q) unexpected error: %v", c.input, err)
			continue
		}
		if Format(got) != c.want {
			t.Errorf("ParseAmount(%q) = %s, want %s", c.input, Format(got), c.want)
		}
	}
}

func TestParseRate(t *testing.T) {
	if _, err := ParseRate("5.3"); err != nil {
		t.Errorf("ParseRate(5.3) unexpected error: %v", err)
	}
	// Rates may be finer-grained than Rappen
	if _, err := ParseRate("0.125"); err != nil {
		t.Errorf("ParseRate(0.125) unexpected error: %v", err)
	}
	if _, err := ParseRate("-5.3"); err == nil {
		t.Error("ParseRate(-5.3) expected error")
	}
}

func TestPercent(t *testing.T) {
	base := decimal.RequireFromString("5000")
	rate := decimal.RequireFromString("5.3")
	got := Percent(base, rate)
	if Format(got) != "265.00" {
		t.Errorf("Percent(5000, 5.3) = %s, want 265.00", Format(got))
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"10.004", "10.00"},
		{"10.005", "10.01"},
		{"10.995", "11.00"},
		{"0", "0.00"},
	}
	for _, c := range cases {
		got := Round2(decimal.RequireFromString(c.input))
		if Format(got) != c.want {
			t.Errorf("Round2(%s) = %s, want %s", c.input, Format(got), c.want)
		}
	}
}
