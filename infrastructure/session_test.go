package infrastructure

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionStore(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewSessionStore(time.Hour)
	s.now = func() time.Time { return now }

	token, expires := s.Create()
	assert.NotEmpty(t, token)
	assert.Equal(t, now.Add(time.Hour), expires)
	assert.True(t, s.Valid(token))
	assert.False(t, s.Valid("forged"))

	now = now.Add(time.Hour)
	assert.False(t, s.Valid(token), "expired token must be rejected")

	now = now.Add(time.Minute)
	other, _ := s.Create()
	s.Revoke(other)
	assert.False(t, s.Valid(other))
}
