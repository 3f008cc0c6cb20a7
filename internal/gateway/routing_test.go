package gateway

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutingModelDispatch(t *testing.T) {
	structured := &fakeModel{resp: Response{Text: "structured"}}
	grounded := &fakeModel{resp: Response{Text: "grounded"}}
	router := RoutingModel{Structured: structured, Grounded: grounded}

	resp, err := router.Generate(context.Background(), Request{Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, "structured", resp.Text)

	resp, err = router.Generate(context.Background(), Request{Prompt: "p", Grounded: true})
	require.NoError(t, err)
	assert.Equal(t, "grounded", resp.Text)

	assert.Len(t, structured.calls, 1)
	assert.Len(t, grounded.calls, 1)
}

func TestRoutingModelMissingTarget(t *testing.T) {
	router := RoutingModel{Structured: &fakeModel{}}
	_, err := router.Generate(context.Background(), Request{Prompt: "p", Grounded: true})
	assert.Error(t, err)
}

func TestFallbackModel(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("primary succeeds", func(t *testing.T) {
		secondary := &fakeModel{resp: Response{Text: "secondary"}}
		m := NewFallbackModel(&fakeModel{resp: Response{Text: "primary"}}, secondary, logger)
		resp, err := m.Generate(context.Background(), Request{Prompt: "p"})
		require.NoError(t, err)
		assert.Equal(t, "primary", resp.Text)
		assert.Empty(t, secondary.calls)
	})

	t.Run("fallback used on error", func(t *testing.T) {
		secondary := &fakeModel{resp: Response{Text: "secondary"}}
		m := NewFallbackModel(&fakeModel{err: errors.New("boom")}, secondary, logger)
		resp, err := m.Generate(context.Background(), Request{Prompt: "p"})
		require.NoError(t, err)
		assert.Equal(t, "secondary", resp.Text)
	})

	t.Run("both fail", func(t *testing.T) {
		fallbackErr := errors.New("fallback down")
		m := NewFallbackModel(&fakeModel{err: errors.New("boom")}, &fakeModel{err: fallbackErr}, logger)
		_, err := m.Generate(context.Background(), Request{Prompt: "p"})
		assert.ErrorIs(t, err, fallbackErr)
	})

	t.Run("no fallback", func(t *testing.T) {
		primaryErr := errors.New("boom")
		m := NewFallbackModel(&fakeModel{err: primaryErr}, nil, nil)
		_, err := m.Generate(context.Background(), Request{Prompt: "p"})
		assert.ErrorIs(t, err, primaryErr)
	})

	t.Run("cancelled context skips fallback", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		secondary := &fakeModel{}
		m := NewFallbackModel(&fakeModel{err: context.Canceled}, secondary, logger)
		_, err := m.Generate(ctx, Request{Prompt: "p"})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, secondary.calls)
	})
}
