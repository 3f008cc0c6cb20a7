package search

import (
	"fmt"

	"github.com/wolfman30/medmatch/internal/directory"
	"github.com/wolfman30/medmatch/internal/gateway"
	"github.com/wolfman30/medmatch/internal/matching"
	"github.com/wolfman30/medmatch/internal/session"
)

const (
	headingAll      = "Available Professionals"
	headingMatched  = "Top Matched Specialists (%d)"
	notFoundMessage = "No doctors found matching your criteria."

	specialistHeadline = "Find the right specialist, right now."
	clinicalHeadline   = "Clinical answers, backed by evidence."
)

// Page is the payload for whichever search page a session is on. Exactly
// one of Specialist and Clinical is set, matching Mode.
type Page struct {
	SessionID  string          `json:"sessionId"`
	Mode       session.Mode    `json:"mode"`
	Headline   string          `json:"headline"`
	Specialist *SpecialistPage `json:"specialist,omitempty"`
	Clinical   *ClinicalPage   `json:"clinical,omitempty"`
}

// SpecialistPage lists doctors, either the full directory or the matched set.
type SpecialistPage struct {
	Heading string             `json:"heading"`
	Query   string             `json:"query,omitempty"`
	State   matching.ViewState `json:"state"`
	Message string             `json:"message,omitempty"`
	Doctors []matching.Entry   `json:"doctors"`
}

// ClinicalPage shows the last clinical answer, if any.
type ClinicalPage struct {
	Query   string                   `json:"query,omitempty"`
	Answer  string                   `json:"answer,omitempty"`
	Sources []gateway.ClinicalSource `json:"sources"`
}

// Render builds the page for s against the given doctors.
func Render(s session.Session, doctors []directory.Doctor) (Page, error) {
	page := Page{SessionID: s.ID, Mode: s.Mode}
	switch s.Mode {
	case session.ModeSpecialist:
		page.Headline = specialistHeadline
		page.Specialist = renderSpecialist(s, doctors)
	case session.ModeClinical:
		page.Headline = clinicalHeadline
		page.Clinical = renderClinical(s)
	default:
		return Page{}, fmt.Errorf("search: render: %w: %q", session.ErrUnknownMode, s.Mode)
	}
	return page, nil
}

func renderSpecialist(s session.Session, doctors []directory.Doctor) *SpecialistPage {
	view := s.View(doctors)
	p := &SpecialistPage{
		Heading: headingAll,
		Query:   s.Query,
		State:   view.State,
		Doctors: view.Entries,
	}
	if view.Filtered() {
		p.Heading = fmt.Sprintf(headingMatched, view.Len())
	}
	if view.Len() == 0 {
		p.Message = notFoundMessage
	}
	return p
}

func renderClinical(s session.Session) *ClinicalPage {
	p := &ClinicalPage{Query: s.ClinicalQuery, Sources: []gateway.ClinicalSource{}}
	if s.Clinical != nil {
		p.Answer = s.Clinical.Answer
		if s.Clinical.Sources != nil {
			p.Sources = s.Clinical.Sources
		}
	}
	return p
}
