package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
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
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B",
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // v1
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
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

func TestIsValidUsername(t *testing.T) {
	valid := []string{"jdoe", "j.doe", "jane_doe-2", "a@b.c", "x+y"}
	invalid := []string{"", "john doe", "name!", "tab\tname"}
	for _, s := range valid {
		assert.True(t, IsValidUsername(s), s)
	}
	for _, s := range invalid {
		assert.False(t, IsValidUsername(s), s)
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31", "2024-02-29"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", "2023-02-29", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}

	d, ok := IsValidDate("2024-06-10")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), d)
}

func TestExceedsLength(t *testing.T) {
	assert.False(t, ExceedsLength("abc", 3))
	assert.True(t, ExceedsLength("abcd", 3))
	assert.False(t, ExceedsLength("ééé", 3))
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "start_date", Message: "start_date is required"},
		{Field: "end_date", Message: "end_date is required"},
	}

	assert.Equal(t, "start_date: start_date is required; end_date: end_date is required", errs.Error())
	assert.Equal(t, map[string]string{
		"start_date": "start_date is required",
		"end_date":   "end_date is required",
	}, errs.ToMap())
	assert.True(t, errs.Has("end_date"))
	assert.False(t, errs.Has("reason"))

	single := Single("username", "taken")
	assert.Len(t, single, 1)
	assert.True(t, single.Has("username"))
}
