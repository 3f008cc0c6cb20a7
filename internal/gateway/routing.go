package gateway

import (
	"context"
	"errors"
	"log/slog"
)

// RoutingModel sends grounded requests to a search-capable model and
// everything else to the structured model.
type RoutingModel struct {
	Structured Model
	Grounded   Model
}

// Generate dispatches on req.Grounded.
func (r RoutingModel) Generate(ctx context.Context, req Request) (Response, error) {
	target := r.Structured
	if req.Grounded {
		target = r.Grounded
	}
	if target == nil {
		return Response{}, errors.New("gateway: no model configured for request")
	}
	return target.Generate(ctx, req)
}

// FallbackModel wraps a primary model with a secondary provider.
// If the primary fails, the request is retried once on the fallback.
type FallbackModel struct {
	primary  Model
	fallback Model
	logger   *slog.Logger
}

// NewFallbackModel creates a fallback-enabled model. A nil fallback leaves the
// primary on its own.
func NewFallbackModel(primary, fallback Model, logger *slog.Logger) *FallbackModel {
	if logger == nil {
		logger = slog.Default()
	}
	return &FallbackModel{primary: primary, fallback: fallback, logger: logger}
}

// Generate calls the primary and, on error, the fallback.
func (m *FallbackModel) Generate(ctx context.Context, req Request) (Response, error) {
	resp, err := m.primary.Generate(ctx, req)
	if err == nil {
		return resp, nil
	}

	m.logger.Warn("primary model failed, attempting fallback",
		"error", err.Error(),
		"grounded", req.Grounded,
		"fallback_available", m.fallback != nil,
	)
	if m.fallback == nil || ctx.Err() != nil {
		return Response{}, err
	}

	fallbackResp, fallbackErr := m.fallback.Generate(ctx, req)
	if fallbackErr != nil {
		m.logger.Error("fallback model also failed",
			"primary_error", err.Error(),
			"fallback_error", fallbackErr.Error(),
		)
		return Response{}, fallbackErr
	}

	m.logger.Info("fallback model succeeded after primary failure")
	return fallbackResp, nil
}
