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

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"123e4567-e89b-42d3-a456-426614174000", // v4
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // v7
		"123E4567-E89B-42D3-A456-426614174000", // uppercase
	}
	invalid := []string{
		"123e4567e89b42d3a456426614174000",     // missing dashes
		"g23e4567-e89b-42d3-a456-426614174000", // invalid hex
		"123e4567-e89b-42d3-c456-426614174000", // bad variant
		"",
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2026-03-02"); !ok {
		t.Error("IsValidDate(2026-03-02) = false, want true")
	}
	for _, bad := range []string{"02-03-2026", "2026-13-01", "2026-02-30", "yesterday", ""} {
		if _, ok := IsValidDate(bad); ok {
			t.Errorf("IsValidDate(%q) = true, want false", bad)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "employee_id", Message: "is required"},
		{Field: "start_date", Message: "must use YYYY-MM-DD"},
	}

	want := "employee_id: is required; start_date: must use YYYY-MM-DD"
	if errs.Error() != want {
		t.Errorf("Error() = %q, want %q", errs.Error(), want)
	}

	m := errs.ToMap()
	if m["employee_id"] != "is required" || m["start_date"] != "must use YYYY-MM-DD" {
		t.Errorf("ToMap() = %v", m)
	}
}
