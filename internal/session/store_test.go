package session

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/medmatch/internal/gateway"
	"github.com/wolfman30/medmatch/internal/matching"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	fresh, err := store.Get(ctx, "visitor")
	require.NoError(t, err)
	assert.Equal(t, New("visitor"), fresh)

	s := fresh.WithMatches("rash", []matching.MatchResult{{ID: "2", MatchReason: "skin", Confidence: 0.8}})
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, "visitor")
	require.NoError(t, err)
	assert.True(t, got.Filtering)
	assert.Equal(t, s.Matches, got.Matches)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, New("old").WithMode(ModeClinical)))

	now = now.Add(2 * time.Minute)
	got, err := store.Get(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, ModeSpecialist, got.Mode)

	require.NoError(t, store.Save(ctx, New("new")))
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStoreRejectsMissingID(t *testing.T) {
	err := NewMemoryStore(0).Save(context.Background(), Session{})
	assert.ErrorIs(t, err, ErrMissingID)
}

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, ttl), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t, 30*time.Minute)

	s := New("visitor").
		WithMatches("chest pain", []matching.MatchResult{{ID: "1", MatchReason: "cardio", Confidence: 0.9}}).
		WithClinical("statins?", gateway.ClinicalResponse{
			Answer:  "Yes.",
			Sources: []gateway.ClinicalSource{{Title: "ACC", URI: "https://acc.org"}},
		})
	require.NoError(t, store.Save(ctx, s))

	assert.True(t, mr.Exists("medmatch:session:visitor"))
	assert.Equal(t, 30*time.Minute, mr.TTL("medmatch:session:visitor"))

	got, err := store.Get(ctx, "visitor")
	require.NoError(t, err)
	assert.Equal(t, ModeClinical, got.Mode)
	assert.True(t, got.Filtering)
	assert.Equal(t, s.Matches, got.Matches)
	require.NotNil(t, got.Clinical)
	assert.Equal(t, s.Clinical.Sources, got.Clinical.Sources)
}

func TestRedisStoreEmptyResultsSurviveRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t, 0)

	require.NoError(t, store.Save(ctx, New("v").WithMatches("nothing", nil)))
	got, err := store.Get(ctx, "v")
	require.NoError(t, err)
	assert.True(t, got.Filtering)
	assert.Equal(t, matching.StateNoMatches, got.View(nil).State)
}

func TestRedisStoreUnknownAndExpired(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t, time.Minute)

	got, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, New("missing"), got)

	require.NoError(t, store.Save(ctx, New("short").WithMode(ModeClinical)))
	mr.FastForward(2 * time.Minute)

	got, err = store.Get(ctx, "short")
	require.NoError(t, err)
	assert.Equal(t, ModeSpecialist, got.Mode)
}

func TestRedisStoreUnavailable(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	mr.Close()

	_, err := store.Get(context.Background(), "v")
	assert.Error(t, err)
	assert.Error(t, store.Save(context.Background(), New("v")))
}

func TestRedisStoreCorruptValue(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	require.NoError(t, mr.Set("medmatch:session:bad", "{not json"))

	_, err := store.Get(context.Background(), "bad")
	assert.Error(t, err)
}
