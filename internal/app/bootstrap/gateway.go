package bootstrap

import (
	"context"
	"fmt"
	"io"
	"strings"

	appconfig "github.com/wolfman30/medmatch/internal/config"
	"github.com/wolfman30/medmatch/internal/gateway"
	"github.com/wolfman30/medmatch/internal/observability/metrics"
	"github.com/wolfman30/medmatch/pkg/logging"
)

// BuildGateway wires the Gemini-backed AI gateway from config. Without an API
// key the gateway runs on a disabled model and serves its fallback values.
// The returned closers release SDK clients and are never nil.
func BuildGateway(ctx context.Context, cfg *appconfig.Config, m *metrics.GatewayMetrics, logger *logging.Logger) (*gateway.Service, []io.Closer, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	opts := []gateway.Option{gateway.WithMetrics(m), gateway.WithTimeout(cfg.GatewayTimeout)}
	gwLogger := logger.Component("gateway")

	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		logger.Warn("no Gemini API key configured; AI features will return fallback values")
		return gateway.NewService(gateway.DisabledModel{}, gwLogger, opts...), []io.Closer{}, nil
	}

	closers := []io.Closer{}
	primary, err := gateway.NewGeminiModel(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
	if err != nil {
		return nil, closers, fmt.Errorf("bootstrap: gemini model: %w", err)
	}
	closers = append(closers, primary)

	var structured gateway.Model = primary
	if id := strings.TrimSpace(cfg.GeminiFallbackModelID); id != "" && id != cfg.GeminiModelID {
		secondary, err := gateway.NewGeminiModel(ctx, cfg.GeminiAPIKey, id)
		if err != nil {
			return nil, closers, fmt.Errorf("bootstrap: gemini fallback model: %w", err)
		}
		closers = append(closers, secondary)
		structured = gateway.NewFallbackModel(primary, secondary, gwLogger.Logger)
		logger.Info("gemini fallback model enabled", "model", id)
	}

	groundedID := cfg.GeminiGroundedModelID
	if strings.TrimSpace(groundedID) == "" {
		groundedID = cfg.GeminiModelID
	}
	grounded, err := gateway.NewGroundedModel(ctx, cfg.GeminiAPIKey, groundedID, gateway.GroundedOptions{})
	if err != nil {
		return nil, closers, fmt.Errorf("bootstrap: grounded gemini model: %w", err)
	}

	logger.Info("using Gemini AI gateway",
		"model", cfg.GeminiModelID,
		"grounded_model", groundedID,
		"timeout", cfg.GatewayTimeout.String(),
	)
	router := gateway.RoutingModel{Structured: structured, Grounded: grounded}
	return gateway.NewService(router, gwLogger, opts...), closers, nil
}
