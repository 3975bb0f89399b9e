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

func TestIsNumeric(t *testing.T) {
	valid := []string{"123", "0", "9876543210"}
	invalid := []string{"abc", "123a", "", "-123"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "01-01-2023", "2023/01/01", ""}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidNIK(t *testing.T) {
	valid := []string{"3573011234567890"}
	invalid := []string{"357301123456789", "35730112345678901", "357301123456789a", ""}
	for _, s := range valid {
		if !IsValidNIK(s) {
			t.Errorf("IsValidNIK(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidNIK(s) {
			t.Errorf("IsValidNIK(%q) = true, want false", s)
		}
	}
}

func TestIsValidCoordinate(t *testing.T) {
	cases := []struct {
		lat, lng float64
		want     bool
	}{
		{-7.95, 112.61, true},
		{0, 0, true},
		{90, 180, true},
		{-90.1, 0, false},
		{0, 180.5, false},
	}
	for _, c := range cases {
		got := IsValidCoordinate(c.lat, c.lng)
		if got != c.want {
			t.Errorf("IsValidCoordinate(%v, %v) = %v, want %v", c.lat, c.lng, got, c.want)
		}
	}
}
