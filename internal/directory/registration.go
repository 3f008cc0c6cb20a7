package directory

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

// InitialRating is the rating every newly registered doctor starts with.
const InitialRating = 5.0

// RegistrationRequest is the body of the doctor registration form.
type RegistrationRequest struct {
	Name            string    `json:"name"`
	Specialty       Specialty `json:"specialty"`
	YearsExperience int       `json:"yearsExperience"`
	Location        string    `json:"location"`
	Keywords        string    `json:"keywords,omitempty"`
	Bio             string    `json:"bio"`
}

// Validate checks the required form fields.
func (r *RegistrationRequest) Validate() error {
	if blank(r.Name) {
		return ErrInvalidName
	}
	if r.Specialty == "" {
		r.Specialty = SpecialtyGeneralPractitioner
	}
	if !r.Specialty.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSpecialty, r.Specialty)
	}
	if blank(r.Location) {
		return ErrInvalidLocation
	}
	if r.YearsExperience < 0 {
		return ErrInvalidExperience
	}
	if blank(r.Bio) {
		return ErrInvalidBio
	}
	return nil
}

// IDGenerator produces doctor ids.
type IDGenerator func() string

// NewDoctor builds the profile for a validated registration. The doctor starts
// with the initial rating, no availability and no calendar sync.
func NewDoctor(req RegistrationRequest, newID IDGenerator) Doctor {
	if newID == nil {
		newID = uuid.NewString
	}
	return Doctor{
		ID:              newID(),
		Name:            strings.TrimSpace(req.Name),
		Specialty:       req.Specialty,
		Bio:             strings.TrimSpace(req.Bio),
		Location:        strings.TrimSpace(req.Location),
		YearsExperience: req.YearsExperience,
		Rating:          InitialRating,
		ImageURL:        fmt.Sprintf("https://picsum.photos/200/200?random=%d", rand.IntN(1000)),
		Availability:    []AvailabilitySlot{},
		CalendarSynced:  false,
	}
}

// BioRequest carries the registration fields the bio helper writes from.
type BioRequest struct {
	Name            string    `json:"name"`
	Specialty       Specialty `json:"specialty"`
	YearsExperience int       `json:"yearsExperience"`
	Keywords        string    `json:"keywords"`
}

// Validate requires a name and keywords, as the form does before asking.
func (r BioRequest) Validate() error {
	if blank(r.Name) || blank(r.Keywords) {
		return ErrBioInputMissing
	}
	if r.YearsExperience < 0 {
		return ErrInvalidExperience
	}
	return nil
}

// BioWriter drafts a professional biography. Implementations never fail; they
// fall back to a generic sentence instead.
type BioWriter interface {
	GenerateBio(ctx context.Context, req BioRequest) string
}
