package gateway

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiModelRequiresKey(t *testing.T) {
	_, err := NewGeminiModel(context.Background(), "  ", "")
	assert.Error(t, err)
}

func TestGeminiModelRejectsGrounding(t *testing.T) {
	m := &GeminiModel{modelID: DefaultModelID}
	_, err := m.Generate(context.Background(), Request{Prompt: "p", Grounded: true})
	assert.ErrorIs(t, err, ErrGroundingUnsupported)

	_, err = m.Generate(context.Background(), Request{Prompt: " "})
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestGeminiText(t *testing.T) {
	resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Parts: []genai.Part{genai.Text("  [{\"id\":"), genai.Text("\"1\"}]  ")}},
	}}}
	assert.Equal(t, `[{"id":"1"}]`, geminiText(resp))
	assert.Empty(t, geminiText(nil))
	assert.Empty(t, geminiText(&genai.GenerateContentResponse{}))
}

func TestToGeminiSchema(t *testing.T) {
	s := toGeminiSchema(matchSchema)
	require.NotNil(t, s)
	assert.Equal(t, genai.TypeArray, s.Type)
	require.NotNil(t, s.Items)
	assert.Equal(t, genai.TypeObject, s.Items.Type)
	assert.Equal(t, genai.TypeString, s.Items.Properties["id"].Type)
	assert.Equal(t, genai.TypeNumber, s.Items.Properties["confidence"].Type)
	assert.ElementsMatch(t, []string{"id", "matchReason", "confidence"}, s.Items.Required)
	assert.Nil(t, toGeminiSchema(nil))
}
