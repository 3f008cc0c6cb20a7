package gateway

import (
	"context"
	"errors"
)

// SchemaType enumerates the JSON types a response schema can constrain.
type SchemaType int

const (
	TypeString SchemaType = iota + 1
	TypeNumber
	TypeInteger
	TypeBoolean
	TypeArray
	TypeObject
)

// Schema is a provider-neutral response schema for structured generation.
type Schema struct {
	Type        SchemaType
	Description string
	Items       *Schema
	Properties  map[string]*Schema
	Required    []string
}

// Request is one generation round trip.
type Request struct {
	Prompt string
	// ResponseSchema, when set, asks for JSON output conforming to it.
	ResponseSchema *Schema
	// Grounded asks the provider to ground the answer with web search.
	Grounded bool
}

// GroundingChunk is a web citation attached to a grounded answer.
type GroundingChunk struct {
	Title string
	URI   string
}

// Response is the raw model output.
type Response struct {
	Text   string
	Chunks []GroundingChunk
}

// Model is a generative model backend.
type Model interface {
	Generate(ctx context.Context, req Request) (Response, error)
}

var (
	// ErrGroundingUnsupported is returned by models that cannot search the web.
	ErrGroundingUnsupported = errors.New("gateway: model does not support search grounding")

	// ErrEmptyPrompt is returned when a request has no prompt text.
	ErrEmptyPrompt = errors.New("gateway: prompt is required")
)

// ErrModelDisabled is returned by DisabledModel.
var ErrModelDisabled = errors.New("gateway: no model configured")

// DisabledModel fails every request. It stands in when no API key is set so
// the gateway serves its fallback values.
type DisabledModel struct{}

func (DisabledModel) Generate(context.Context, Request) (Response, error) {
	return Response{}, ErrModelDisabled
}
