package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/medmatch/internal/directory"
	"github.com/wolfman30/medmatch/internal/gateway"
	"github.com/wolfman30/medmatch/internal/matching"
)

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" Clinical ")
	require.NoError(t, err)
	assert.Equal(t, ModeClinical, m)

	m, err = ParseMode("specialist")
	require.NoError(t, err)
	assert.Equal(t, ModeSpecialist, m)

	_, err = ParseMode("billing")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestNewSession(t *testing.T) {
	s := New("")
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, ModeSpecialist, s.Mode)
	assert.False(t, s.Filtering)

	assert.Equal(t, "abc", New("abc").ID)
}

func TestUpdatesDoNotMutateReceiver(t *testing.T) {
	base := New("s1")
	results := []matching.MatchResult{{ID: "1", MatchReason: "r", Confidence: 0.9}}

	matched := base.WithMatches("headache", results)
	results[0].ID = "changed"

	assert.False(t, base.Filtering)
	assert.Nil(t, base.Matches)
	assert.True(t, matched.Filtering)
	assert.Equal(t, "headache", matched.Query)
	assert.Equal(t, "1", matched.Matches[0].ID)

	cleared := matched.ClearMatches()
	assert.True(t, matched.Filtering)
	assert.False(t, cleared.Filtering)
	assert.Empty(t, cleared.Query)

	clinical := matched.WithClinical("dose?", gateway.ClinicalResponse{Answer: "a"})
	assert.Equal(t, ModeClinical, clinical.Mode)
	assert.Equal(t, ModeSpecialist, matched.Mode)
	assert.Nil(t, matched.Clinical)
	require.NotNil(t, clinical.Clinical)
	assert.Equal(t, "a", clinical.Clinical.Answer)
	assert.True(t, clinical.Filtering, "clinical answers keep the specialist results")
}

func TestWithMatchesNilMeansNoMatches(t *testing.T) {
	s := New("s1").WithMatches("q", nil)
	require.NotNil(t, s.Matches)

	view := s.View(directory.Seed())
	assert.Equal(t, matching.StateNoMatches, view.State)
	assert.Zero(t, view.Len())
}

func TestSessionView(t *testing.T) {
	doctors := directory.Seed()
	assert.Equal(t, matching.StateAll, New("s").View(doctors).State)

	s := New("s").WithMatches("rash", []matching.MatchResult{{ID: "2", MatchReason: "skin"}})
	view := s.View(doctors)
	assert.Equal(t, matching.StateMatched, view.State)
	assert.Equal(t, []string{"2"}, view.IDs())
}
