package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidAhvNumber(t *testing.T) {
	valid := []string{"756.1234.5678.97", "756.0000.0000.00"}
	invalid := []string{"757.1234.5678.97", "756.1234.5678.9", "7561234567897", "756-1234-5678-97", ""}
	for _, ahv := range valid {
		if !IsValidAhvNumber(ahv) {
			t.Errorf("IsValidAhvNumber(%q) = false, want true", ahv)
		}
	}
	for _, ahv := range invalid {
		if IsValidAhvNumber(ahv) {
			t.Errorf("IsValidAhvNumber(%q) = true, want false", ahv)
		}
	}
}

func TestIsValidAmount(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"0", true},
		{"5000", true},
		{"5000.5", true},
		{"5000.50", true},
		{"5000.505", false},
		{"-5000", false},
		{"5'000", false},
		{"", false},
		{"abc", false},
	}
	for _, c := range cases {
		got := IsValidAmount(c.input)
		if got != c.want {
			t.Errorf("IsValidAmount(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidRate(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"5.3", true},
		{"0.125", true},
		{"22", true},
		{"-1", false},
		{"", false},
	}
	for _, c := range cases {
		got := IsValidRate(c.input)
		if got != c.want {
			t.Errorf("IsValidRate(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidItemTypeCode(t *testing.T) {
	valid := []string{"01", "13", "BVG", "A1"}
	invalid := []string{"", "abc", "01234567890", "0 1"}
	for _, code := range valid {
		if !IsValidItemTypeCode(code) {
			t.Errorf("IsValidItemTypeCode(%q) = false, want true", code)
		}
	}
	for _, code := range invalid {
		if IsValidItemTypeCode(code) {
			t.Errorf("IsValidItemTypeCode(%q) = true, want false", code)
		}
	}
}

func TestIsValidGender(t *testing.T) {
	if !IsValidGender("m") || !IsValidGender("f") {
		t.Error("m and f must be valid genders")
	}
	for _, g := range []string{"", "M", "x", "male"} {
		if IsValidGender(g) {
			t.Errorf("IsValidGender(%q) = true, want false", g)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	for m := 1; m <= 12; m++ {
		if !IsValidMonth(m) {
			t.Errorf("IsValidMonth(%d) = false, want true", m)
		}
	}
	for _, m := range []int{0, 13, -1} {
		if IsValidMonth(m) {
			t.Errorf("IsValidMonth(%d) = true, want false", m)
		}
	}
}
