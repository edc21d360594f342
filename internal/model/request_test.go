package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatusToken(t *testing.T) {
	cases := map[string]Status{
		"open":        StatusOpen,
		"in-progress": StatusInProgress,
		"completed":   StatusCompleted,
		"closed":      StatusClosed,
		"bogus":       StatusOpen,
		"":            StatusOpen,
		"OPEN":        StatusOpen, // tokens are lowercase; anything else falls back
	}
	for token, want := range cases {
		assert.Equal(t, want, ParseStatusToken(token), "token %q", token)
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusOpen, StatusInProgress, StatusCompleted, StatusClosed} {
		assert.True(t, s.Valid(), "status %q", s)
	}
	assert.False(t, Status("ARCHIVED").Valid())
	assert.False(t, Status("open").Valid())
}

func TestTagNames(t *testing.T) {
	r := PeerRequest{Tags: []Tag{{Name: "Labs"}, {Name: "Urgent"}}}
	assert.Equal(t, []string{"Labs", "Urgent"}, r.TagNames())
	assert.Empty(t, (&PeerRequest{}).TagNames())
}
