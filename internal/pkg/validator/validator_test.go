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

func TestIsValidDate(t *testing.T) {
	valid := []string{"2026-03-02", "2026-12-31", "2000-01-01"}
	invalid := []string{"2026-3-2", "02-03-2026", "2026/03/02", "2026-02-30", "not-a-date", ""}
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

func TestIsValidClock(t *testing.T) {
	valid := []string{"00:00", "09:30", "18:00", "23:59"}
	invalid := []string{"24:00", "9:30", "18:60", "18:5", "1800", "", "ab:cd"}
	for _, s := range valid {
		if !IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = true, want false", s)
		}
	}
}

func TestIsValidMonthTag(t *testing.T) {
	valid := []string{"2026-01", "2026-12", "1999-06"}
	invalid := []string{"2026-13", "2026-00", "2026-1", "2026", "2026-03-02", ""}
	for _, s := range valid {
		if !IsValidMonthTag(s) {
			t.Errorf("IsValidMonthTag(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidMonthTag(s) {
			t.Errorf("IsValidMonthTag(%q) = true, want false", s)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"scheduled", "completed", "missed"}
	if !IsInSlice("completed", slice) {
		t.Errorf("IsInSlice(completed) = false, want true")
	}
	if IsInSlice("cancelled", slice) {
		t.Errorf("IsInSlice(cancelled) = true, want false")
	}
	if IsInSlice("scheduled", nil) {
		t.Errorf("IsInSlice on nil slice = true, want false")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "date", Message: "date is required"},
		{Field: "start_time", Message: "start_time must be in HH:MM format"},
	}
	want := "date: date is required; start_time: start_time must be in HH:MM format"
	if errs.Error() != want {
		t.Errorf("Error() = %q, want %q", errs.Error(), want)
	}

	m := errs.ToMap()
	if len(m) != 2 || m["date"] != "date is required" {
		t.Errorf("ToMap() = %v", m)
	}
}
