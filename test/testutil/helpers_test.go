package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMustParseTime(t *testing.T) {
	parsed := MustParseTime(t, "2026-10-15T08:30:00Z")

	assert.Equal(t, 2026, parsed.Year())
	assert.Equal(t, time.October, parsed.Month())
	assert.Equal(t, 8, parsed.Hour())
}

func TestMustParseDate(t *testing.T) {
	parsed := MustParseDate(t, "2026-10-15")

	assert.Equal(t, 2026, parsed.Year())
	assert.Equal(t, time.October, parsed.Month())
	assert.Equal(t, 15, parsed.Day())
}

func TestMustUnmarshal(t *testing.T) {
	var dest map[string]int
	MustUnmarshal(t, []byte(`{"stops": 1}`), &dest)

	assert.Equal(t, 1, dest["stops"])
}

func TestPtr(t *testing.T) {
	s := Ptr("YVR")
	assert.Equal(t, "YVR", *s)

	i := IntPtr(2)
	assert.Equal(t, 2, *i)

	f := FloatPtr(749.50)
	assert.Equal(t, 749.50, *f)
}
