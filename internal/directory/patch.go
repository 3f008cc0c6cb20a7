package directory

import "fmt"

// ProfilePatch is a partial profile update. Nil fields are left unchanged.
// ID and Rating are not owner-editable and have no patch field.
type ProfilePatch struct {
	Name            *string             `json:"name,omitempty"`
	Specialty       *Specialty          `json:"specialty,omitempty"`
	Bio             *string             `json:"bio,omitempty"`
	Location        *string             `json:"location,omitempty"`
	ImageURL        *string             `json:"imageUrl,omitempty"`
	YearsExperience *int                `json:"yearsExperience,omitempty"`
	CalendarSynced  *bool               `json:"calendarSynced,omitempty"`
	Availability    *[]AvailabilitySlot `json:"availability,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p ProfilePatch) IsEmpty() bool {
	return p.Name == nil && p.Specialty == nil && p.Bio == nil && p.Location == nil &&
		p.ImageURL == nil && p.YearsExperience == nil && p.CalendarSynced == nil && p.Availability == nil
}

// Validate applies the registration rules to the fields that are present.
func (p ProfilePatch) Validate() error {
	if p.Name != nil && blank(*p.Name) {
		return ErrInvalidName
	}
	if p.Location != nil && blank(*p.Location) {
		return ErrInvalidLocation
	}
	if p.Bio != nil && blank(*p.Bio) {
		return ErrInvalidBio
	}
	if p.Specialty != nil && !p.Specialty.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSpecialty, *p.Specialty)
	}
	if p.YearsExperience != nil && *p.YearsExperience < 0 {
		return ErrInvalidExperience
	}
	if p.Availability != nil {
		for i, slot := range *p.Availability {
			if err := slot.Validate(); err != nil {
				return fmt.Errorf("availability[%d]: %w", i, err)
			}
		}
	}
	return nil
}

// Apply returns a copy of d with the patch fields replaced.
func (p ProfilePatch) Apply(d Doctor) Doctor {
	out := d.Clone()
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Specialty != nil {
		out.Specialty = *p.Specialty
	}
	if p.Bio != nil {
		out.Bio = *p.Bio
	}
	if p.Location != nil {
		out.Location = *p.Location
	}
	if p.ImageURL != nil {
		out.ImageURL = *p.ImageURL
	}
	if p.YearsExperience != nil {
		out.YearsExperience = *p.YearsExperience
	}
	if p.CalendarSynced != nil {
		out.CalendarSynced = *p.CalendarSynced
	}
	if p.Availability != nil {
		out.Availability = make([]AvailabilitySlot, len(*p.Availability))
		copy(out.Availability, *p.Availability)
	}
	return out
}
