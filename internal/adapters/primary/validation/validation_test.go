package validation

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatorCollectsFieldErrors(t *testing.T) {
	v := NewValidator().
		Required("name", "   ").
		MaxLength("subject", "this subject is far too long", 10).
		Email("email", "not-an-email").
		UUID("userId", "not-a-uuid").
		OneOf("priority", "extreme", []string{"low", "medium", "high", "urgent"}).
		Custom("category", false, "Must reference a stored category")

	require.True(t, v.HasErrors())
	errs := v.Errors()
	assert.Len(t, errs.Errors, 6)
	assert.Contains(t, errs.Errors["name"], "This field is required")
	assert.Contains(t, errs.Errors["category"], "Must reference a stored category")
}

func TestValidatorPassesValidInput(t *testing.T) {
	v := NewValidator().
		Required("name", "Hardware").
		MaxLength("name", "Hardware", 100).
		Email("email", "agent@example.com").
		UUID("userId", "3f0cbfb4-9b32-4f5e-9a57-2d8f6f1f7a01").
		OneOf("priority", "high", []string{"low", "medium", "high", "urgent"})

	assert.False(t, v.HasErrors())
}

func TestValidatorEmptyOptionalFields(t *testing.T) {
	// Email, UUID and OneOf skip empty values so optional fields only
	// fail when Required is also chained.
	v := NewValidator().
		Email("email", "").
		UUID("userId", "").
		OneOf("priority", "", []string{"low", "high"})

	assert.False(t, v.HasErrors())
}

func TestParseIntQueryParam(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"missing", "", 10},
		{"valid", "limit=3", 3},
		{"not a number", "limit=abc", 10},
		{"negative", "limit=-1", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/votes/top?"+tt.query, nil)
			assert.Equal(t, tt.want, ParseIntQueryParam(r, "limit", 10))
		})
	}
}

func TestParseDateQueryParam(t *testing.T) {
	r := httptest.NewRequest("GET", "/analytics/range?start=2026-01-15", nil)
	got, err := ParseDateQueryParam(r, "start")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), got)

	r = httptest.NewRequest("GET", "/analytics/range?start=2026-01-15T10:30:00Z", nil)
	got, err = ParseDateQueryParam(r, "start")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 15, 10, 30, 0, 0, time.UTC), got)

	r = httptest.NewRequest("GET", "/analytics/range", nil)
	_, err = ParseDateQueryParam(r, "start")
	require.Error(t, err)

	r = httptest.NewRequest("GET", "/analytics/range?start=15-01-2026", nil)
	_, err = ParseDateQueryParam(r, "start")
	require.Error(t, err)
}
