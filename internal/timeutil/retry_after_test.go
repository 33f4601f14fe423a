package timeutil

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseRetryAfterSeconds(t *testing.T) {
	def := 60 * time.Second
	assert.Equal(t, 30*time.Second, ParseRetryAfter("30", def))
	assert.Equal(t, time.Duration(0), ParseRetryAfter("0", def))
	assert.Equal(t, def, ParseRetryAfter("-5", def))
}

func TestParseRetryAfterHTTPDate(t *testing.T) {
	def := 60 * time.Second

	future := time.Now().Add(90 * time.Second).UTC().Format(http.TimeFormat)
	got := ParseRetryAfter(future, def)
	assert.Greater(t, got, 80*time.Second)
	assert.LessOrEqual(t, got, 90*time.Second)

	past := time.Now().Add(-time.Hour).UTC().Format(http.TimeFormat)
	assert.Equal(t, def, ParseRetryAfter(past, def))
}

func TestParseRetryAfterFallbacks(t *testing.T) {
	def := 60 * time.Second
	assert.Equal(t, def, ParseRetryAfter("", def))
	assert.Equal(t, def, ParseRetryAfter("  ", def))
	assert.Equal(t, def, ParseRetryAfter("soon", def))
}
