// Package gateway wraps the generative model behind three fail-open
// operations: specialist matching, bio drafting and grounded clinical Q&A.
package gateway

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wolfman30/medmatch/internal/directory"
	"github.com/wolfman30/medmatch/internal/matching"
	"github.com/wolfman30/medmatch/internal/observability/metrics"
	"github.com/wolfman30/medmatch/pkg/logging"
)

var tracer = otel.Tracer("medmatch.internal.gateway")

const (
	// FallbackBio is returned when a bio cannot be generated.
	FallbackBio = "Experienced medical professional dedicated to patient care."
	// NoAnswer is returned when a clinical query yields empty text.
	NoAnswer = "No answer could be generated."
	// ClinicalErrorAnswer is returned when the clinical call fails.
	ClinicalErrorAnswer = "An error occurred while retrieving clinical evidence. Please try again."
)

// Operation names used in logs, spans and metrics.
const (
	OpFindSpecialist = "find_specialist"
	OpGenerateBio    = "generate_bio"
	OpAskClinical    = "ask_clinical"
)

// ClinicalSource is a cited web source backing a clinical answer.
type ClinicalSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// ClinicalResponse is the answer to a clinical question.
type ClinicalResponse struct {
	Answer  string           `json:"answer"`
	Sources []ClinicalSource `json:"sources"`
}

// Gateway is the AI surface used by search and registration. None of its
// operations return errors; failures degrade to documented defaults.
type Gateway interface {
	FindSpecialist(ctx context.Context, query string, doctors []directory.Doctor) []matching.MatchResult
	GenerateBio(ctx context.Context, req directory.BioRequest) string
	AskClinicalQuestion(ctx context.Context, query string) ClinicalResponse
}

// Service implements Gateway on top of a Model.
type Service struct {
	model   Model
	logger  *logging.Logger
	metrics *metrics.GatewayMetrics
	timeout time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics records call outcomes on m.
func WithMetrics(m *metrics.GatewayMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithTimeout bounds each model call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// NewService builds a gateway over model.
func NewService(model Model, logger *logging.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Service{model: model, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindSpecialist asks the model to pick the best 1-3 doctors for query.
// It returns an empty, non-nil slice on any failure.
func (s *Service) FindSpecialist(ctx context.Context, query string, doctors []directory.Doctor) []matching.MatchResult {
	ctx, span := tracer.Start(ctx, "gateway.find_specialist")
	defer span.End()
	span.SetAttributes(attribute.Int("medmatch.doctor_count", len(doctors)))

	prompt, err := specialistPrompt(query, doctors)
	if err != nil {
		s.fail(span, OpFindSpecialist, time.Now(), err)
		return []matching.MatchResult{}
	}

	start := time.Now()
	resp, err := s.generate(ctx, Request{Prompt: prompt, ResponseSchema: matchSchema})
	if err != nil {
		s.fail(span, OpFindSpecialist, start, err)
		return []matching.MatchResult{}
	}

	results, dropped, err := decodeMatches(resp.Text)
	if err != nil {
		s.fail(span, OpFindSpecialist, start, err)
		return []matching.MatchResult{}
	}
	for reason, n := range dropped {
		s.logger.Warn("dropped malformed match element", "reason", reason, "count", n)
		s.metrics.ObserveDropped(OpFindSpecialist, reason, n)
	}

	span.SetAttributes(attribute.Int("medmatch.match_count", len(results)))
	s.metrics.ObserveCall(OpFindSpecialist, "ok", time.Since(start).Seconds())
	return results
}

// GenerateBio drafts a short professional biography, or FallbackBio.
func (s *Service) GenerateBio(ctx context.Context, req directory.BioRequest) string {
	ctx, span := tracer.Start(ctx, "gateway.generate_bio")
	defer span.End()

	start := time.Now()
	resp, err := s.generate(ctx, Request{Prompt: bioPrompt(req)})
	if err != nil {
		s.fail(span, OpGenerateBio, start, err)
		return FallbackBio
	}
	if resp.Text == "" {
		s.metrics.ObserveCall(OpGenerateBio, "empty", time.Since(start).Seconds())
		return FallbackBio
	}
	s.metrics.ObserveCall(OpGenerateBio, "ok", time.Since(start).Seconds())
	return resp.Text
}

// AskClinicalQuestion answers query with search grounding and cited sources.
func (s *Service) AskClinicalQuestion(ctx context.Context, query string) ClinicalResponse {
	ctx, span := tracer.Start(ctx, "gateway.ask_clinical")
	defer span.End()

	start := time.Now()
	resp, err := s.generate(ctx, Request{Prompt: clinicalPrompt(query), Grounded: true})
	if err != nil {
		s.fail(span, OpAskClinical, start, err)
		return ClinicalResponse{Answer: ClinicalErrorAnswer, Sources: []ClinicalSource{}}
	}

	sources := extractSources(resp.Chunks)
	if discarded := len(resp.Chunks) - len(sources); discarded > 0 {
		s.metrics.ObserveDropped(OpAskClinical, "incomplete_or_duplicate", discarded)
	}
	span.SetAttributes(attribute.Int("medmatch.source_count", len(sources)))

	answer := resp.Text
	outcome := "ok"
	if answer == "" {
		answer = NoAnswer
		outcome = "empty"
	}
	s.metrics.ObserveCall(OpAskClinical, outcome, time.Since(start).Seconds())
	return ClinicalResponse{Answer: answer, Sources: sources}
}

func (s *Service) generate(ctx context.Context, req Request) (Response, error) {
	if s.model == nil {
		return Response{}, errors.New("gateway: model not configured")
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.model.Generate(ctx, req)
}

func (s *Service) fail(span trace.Span, op string, start time.Time, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, op+" failed")
	s.logger.Error("gateway call failed", "operation", op, "error", err)
	s.metrics.ObserveCall(op, "error", time.Since(start).Seconds())
}
