// Package session keeps per-visitor search state: the active search mode, the
// last specialist results and the last clinical answer. Sessions are values;
// every update returns a new Session.
package session

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wolfman30/medmatch/internal/directory"
	"github.com/wolfman30/medmatch/internal/gateway"
	"github.com/wolfman30/medmatch/internal/matching"
)

// Mode selects which search page a session is on.
type Mode string

const (
	ModeSpecialist Mode = "specialist"
	ModeClinical   Mode = "clinical"
)

// ErrUnknownMode is returned by ParseMode for unrecognised values.
var ErrUnknownMode = errors.New("session: unknown search mode")

// ParseMode converts a wire value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeSpecialist:
		return ModeSpecialist, nil
	case ModeClinical:
		return ModeClinical, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Session is a snapshot of one visitor's search state.
type Session struct {
	ID   string `json:"id"`
	Mode Mode   `json:"mode"`

	// Filtering reports whether Matches holds a result set. An empty result
	// set with Filtering true means the last search found nobody.
	Filtering bool                   `json:"filtering"`
	Query     string                 `json:"query,omitempty"`
	Matches   []matching.MatchResult `json:"matches,omitempty"`

	ClinicalQuery string                    `json:"clinicalQuery,omitempty"`
	Clinical      *gateway.ClinicalResponse `json:"clinical,omitempty"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// New returns a fresh session on the specialist page. An empty id gets a
// random one.
func New(id string) Session {
	if id == "" {
		id = uuid.NewString()
	}
	return Session{ID: id, Mode: ModeSpecialist}
}

// WithMode switches the page.
func (s Session) WithMode(m Mode) Session {
	s.Mode = m
	return s
}

// WithMatches records a specialist search and its results.
func (s Session) WithMatches(query string, results []matching.MatchResult) Session {
	s.Mode = ModeSpecialist
	s.Filtering = true
	s.Query = query
	if results == nil {
		results = []matching.MatchResult{}
	}
	s.Matches = slices.Clone(results)
	return s
}

// ClearMatches drops the result set so the full directory shows again.
func (s Session) ClearMatches() Session {
	s.Filtering = false
	s.Query = ""
	s.Matches = nil
	return s
}

// WithClinical records a clinical question and its answer.
func (s Session) WithClinical(query string, resp gateway.ClinicalResponse) Session {
	s.Mode = ModeClinical
	s.ClinicalQuery = query
	resp.Sources = slices.Clone(resp.Sources)
	s.Clinical = &resp
	return s
}

// View reconciles the session's results against doctors.
func (s Session) View(doctors []directory.Doctor) matching.View {
	return matching.Reconcile(doctors, s.Matches, s.Filtering)
}
