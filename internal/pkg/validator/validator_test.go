package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty("  x  "))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("guard@example.com"))
	assert.True(t, IsValidEmail("first.last+tag@sub.example.co"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
	assert.False(t, IsValidEmail(""))
}

func TestIsValidDate(t *testing.T) {
	_, ok := IsValidDate("2026-03-02")
	assert.True(t, ok)

	_, ok = IsValidDate("02-03-2026")
	assert.False(t, ok)

	_, ok = IsValidDate("2026-13-40")
	assert.False(t, ok)
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "site_id", Message: "site_id is required"},
		{Field: "shift", Message: "unknown shift"},
	}

	assert.Equal(t, "site_id: site_id is required; shift: unknown shift", errs.Error())
	assert.Equal(t, map[string]string{
		"site_id": "site_id is required",
		"shift":   "unknown shift",
	}, errs.ToMap())
}
