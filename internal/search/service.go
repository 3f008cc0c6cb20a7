// Package search runs the two search flows of the marketplace home page:
// symptom-to-specialist matching and grounded clinical Q&A.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wolfman30/medmatch/internal/directory"
	"github.com/wolfman30/medmatch/internal/gateway"
	"github.com/wolfman30/medmatch/internal/matching"
	"github.com/wolfman30/medmatch/internal/observability/metrics"
	"github.com/wolfman30/medmatch/internal/session"
	"github.com/wolfman30/medmatch/pkg/logging"
)

// ErrEmptyQuery is returned for blank search input. No AI call is made.
var ErrEmptyQuery = errors.New("search: query is required")

// Service coordinates sessions, the doctor directory and the AI gateway.
type Service struct {
	doctors  *directory.Store
	sessions session.Store
	ai       gateway.Gateway
	metrics  *metrics.SearchMetrics
	logger   *logging.Logger
}

// NewService wires a search service. metrics may be nil.
func NewService(doctors *directory.Store, sessions session.Store, ai gateway.Gateway, m *metrics.SearchMetrics, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		doctors:  doctors,
		sessions: sessions,
		ai:       ai,
		metrics:  m,
		logger:   logger,
	}
}

// FindSpecialist matches query against the current directory and stores the
// results on the session. Concurrent searches on one session are not
// serialised; the last one to finish wins.
func (s *Service) FindSpecialist(ctx context.Context, sessionID, query string) (Page, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Page{}, ErrEmptyQuery
	}

	doctors := s.doctors.Snapshot().Doctors()
	results := s.ai.FindSpecialist(ctx, query, doctors)

	unknown, duplicate := matching.Dropped(doctors, results)
	if unknown > 0 || duplicate > 0 {
		s.logger.Warn("match results referenced unusable doctors",
			"session_id", sessionID,
			"unknown", unknown,
			"duplicate", duplicate,
		)
		s.metrics.ObserveDropped(unknown, duplicate)
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return Page{}, fmt.Errorf("search: load session: %w", err)
	}
	sess = sess.WithMatches(query, results)
	if err := s.sessions.Save(ctx, sess); err != nil {
		return Page{}, fmt.Errorf("search: save session: %w", err)
	}
	return s.render(sess)
}

// ClearSearch drops the session's results so the full directory shows.
func (s *Service) ClearSearch(ctx context.Context, sessionID string) (Page, error) {
	return s.update(ctx, sessionID, func(sess session.Session) session.Session {
		return sess.ClearMatches().WithMode(session.ModeSpecialist)
	})
}

// CurrentView renders the session against the directory as it is now, so
// registrations and profile edits show up without a new search.
func (s *Service) CurrentView(ctx context.Context, sessionID string) (Page, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return Page{}, fmt.Errorf("search: load session: %w", err)
	}
	return s.render(sess)
}

// AskClinical answers a clinical question and switches the session to the
// clinical page.
func (s *Service) AskClinical(ctx context.Context, sessionID, query string) (Page, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Page{}, ErrEmptyQuery
	}

	resp := s.ai.AskClinicalQuestion(ctx, query)

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return Page{}, fmt.Errorf("search: load session: %w", err)
	}
	sess = sess.WithClinical(query, resp)
	if err := s.sessions.Save(ctx, sess); err != nil {
		return Page{}, fmt.Errorf("search: save session: %w", err)
	}
	return s.render(sess)
}

// SetMode switches between the specialist and clinical pages. Stored results
// on either page are kept.
func (s *Service) SetMode(ctx context.Context, sessionID string, mode session.Mode) (Page, error) {
	if _, err := session.ParseMode(string(mode)); err != nil {
		return Page{}, err
	}
	return s.update(ctx, sessionID, func(sess session.Session) session.Session {
		return sess.WithMode(mode)
	})
}

func (s *Service) update(ctx context.Context, sessionID string, fn func(session.Session) session.Session) (Page, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return Page{}, fmt.Errorf("search: load session: %w", err)
	}
	sess = fn(sess)
	if err := s.sessions.Save(ctx, sess); err != nil {
		return Page{}, fmt.Errorf("search: save session: %w", err)
	}
	return s.render(sess)
}

func (s *Service) render(sess session.Session) (Page, error) {
	page, err := Render(sess, s.doctors.Snapshot().Doctors())
	if err != nil {
		return Page{}, err
	}
	if page.Specialist != nil {
		s.metrics.ObserveView(string(page.Specialist.State))
	}
	return page, nil
}
