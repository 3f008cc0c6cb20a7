package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/medmatch/internal/directory"
	"github.com/wolfman30/medmatch/internal/gateway"
	"github.com/wolfman30/medmatch/internal/session"
)

func TestRenderUnknownMode(t *testing.T) {
	_, err := Render(session.Session{ID: "s", Mode: "billing"}, directory.Seed())
	assert.ErrorIs(t, err, session.ErrUnknownMode)
}

func TestRenderEmptyDirectory(t *testing.T) {
	page, err := Render(session.New("s"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Available Professionals", page.Specialist.Heading)
	assert.Equal(t, notFoundMessage, page.Specialist.Message)
	assert.NotNil(t, page.Specialist.Doctors)
}

func TestRenderClinicalHeadline(t *testing.T) {
	s := session.New("s").WithClinical("q", gateway.ClinicalResponse{Answer: gateway.ClinicalErrorAnswer})
	page, err := Render(s, directory.Seed())
	require.NoError(t, err)
	assert.Equal(t, clinicalHeadline, page.Headline)
	assert.Equal(t, gateway.ClinicalErrorAnswer, page.Clinical.Answer)
	assert.NotNil(t, page.Clinical.Sources)
}
