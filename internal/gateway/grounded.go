package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// GroundedModel implements Model on the google.golang.org/genai SDK, which
// exposes the Google Search tool. It also serves ungrounded requests.
type GroundedModel struct {
	client  *genai.Client
	modelID string
}

// GroundedOptions tweaks the underlying client. Zero values use SDK defaults.
type GroundedOptions struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewGroundedModel creates a search-capable Gemini client.
func NewGroundedModel(ctx context.Context, apiKey, modelID string, opts GroundedOptions) (*GroundedModel, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gateway: gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = DefaultModelID
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  opts.HTTPClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: opts.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("gateway: failed to create grounded gemini client: %w", err)
	}
	return &GroundedModel{client: client, modelID: modelID}, nil
}

// Generate sends the prompt, attaching the search tool for grounded requests.
func (m *GroundedModel) Generate(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return Response{}, ErrEmptyPrompt
	}

	cfg := &genai.GenerateContentConfig{}
	if req.Grounded {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	if req.ResponseSchema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = toGroundedSchema(req.ResponseSchema)
	}

	resp, err := m.client.Models.GenerateContent(ctx, m.modelID, genai.Text(req.Prompt), cfg)
	if err != nil {
		return Response{}, fmt.Errorf("gateway: grounded generation failed: %w", err)
	}
	return groundedResponse(resp), nil
}

func groundedResponse(resp *genai.GenerateContentResponse) Response {
	if resp == nil {
		return Response{}
	}
	out := Response{Text: strings.TrimSpace(resp.Text())}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return out
	}
	meta := resp.Candidates[0].GroundingMetadata
	if meta == nil {
		return out
	}
	for _, chunk := range meta.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		out.Chunks = append(out.Chunks, GroundingChunk{Title: chunk.Web.Title, URI: chunk.Web.URI})
	}
	return out
}

func toGroundedSchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        groundedType(s.Type),
		Description: s.Description,
		Items:       toGroundedSchema(s.Items),
		Required:    append([]string(nil), s.Required...),
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGroundedSchema(prop)
		}
	}
	return out
}

func groundedType(t SchemaType) genai.Type {
	switch t {
	case TypeString:
		return genai.TypeString
	case TypeNumber:
		return genai.TypeNumber
	case TypeInteger:
		return genai.TypeInteger
	case TypeBoolean:
		return genai.TypeBoolean
	case TypeArray:
		return genai.TypeArray
	case TypeObject:
		return genai.TypeObject
	default:
		return genai.TypeUnspecified
	}
}
