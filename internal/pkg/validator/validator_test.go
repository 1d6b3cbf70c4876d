package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"guard@example.com",
		"first.last@example.co.id",
		"user+tag@sub.example.org",
	}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
		"user@",
		"user@example",
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("3f2f8e6a-9b1c-4d2e-8f3a-1b2c3d4e5f6a"))
	assert.True(t, IsValidUUID("3F2F8E6A-9B1C-4D2E-8F3A-1B2C3D4E5F6A"))
	assert.False(t, IsValidUUID(""))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID("3f2f8e6a9b1c4d2e8f3a1b2c3d4e5f6a"))
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2025-03-14")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), date)

	_, ok = IsValidDate("14-03-2025")
	assert.False(t, ok)

	_, ok = IsValidDate("2025-13-01")
	assert.False(t, ok)
}

func TestParseClock(t *testing.T) {
	clock, ok := ParseClock("08:30")
	assert.True(t, ok)
	assert.Equal(t, 8, clock.Hour())
	assert.Equal(t, 30, clock.Minute())

	_, ok = ParseClock("24:00")
	assert.False(t, ok)

	_, ok = ParseClock("8:30 PM")
	assert.False(t, ok)
}

func TestIsValidDateTime(t *testing.T) {
	ts, ok := IsValidDateTime("2025-03-14T22:00:00Z")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 14, 22, 0, 0, 0, time.UTC), ts.UTC())

	_, ok = IsValidDateTime("2025-03-14T22:00:00+07:00")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2025-03-14 22:00:00")
	assert.False(t, ok)

	_, ok = IsValidDateTime("")
	assert.False(t, ok)
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "name", Message: "name is required"},
		{Field: "email", Message: "must be a valid email"},
	}

	assert.Equal(t, "name: name is required; email: must be a valid email", errs.Error())
	assert.Equal(t, map[string]string{
		"name":  "name is required",
		"email": "must be a valid email",
	}, errs.ToMap())
}
