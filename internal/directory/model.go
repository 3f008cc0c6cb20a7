// Package directory holds the in-memory registry of doctor profiles.
package directory

import (
	"fmt"
	"regexp"
	"strings"
)

// Specialty is the closed set of specialties a doctor can register under.
type Specialty string

const (
	SpecialtyGeneralPractitioner Specialty = "General Practitioner"
	SpecialtyCardiologist        Specialty = "Cardiologist"
	SpecialtyDermatologist       Specialty = "Dermatologist"
	SpecialtyPediatrician        Specialty = "Pediatrician"
	SpecialtyNeurologist         Specialty = "Neurologist"
	SpecialtyOrthopedist         Specialty = "Orthopedist"
	SpecialtyPsychiatrist        Specialty = "Psychiatrist"
)

var specialties = []Specialty{
	SpecialtyGeneralPractitioner,
	SpecialtyCardiologist,
	SpecialtyDermatologist,
	SpecialtyPediatrician,
	SpecialtyNeurologist,
	SpecialtyOrthopedist,
	SpecialtyPsychiatrist,
}

// Specialties lists every specialty in display order.
func Specialties() []Specialty {
	out := make([]Specialty, len(specialties))
	copy(out, specialties)
	return out
}

// Valid reports whether s is one of the known specialties.
func (s Specialty) Valid() bool {
	for _, known := range specialties {
		if s == known {
			return true
		}
	}
	return false
}

// Day tags accepted on availability slots.
var weekDays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// DashboardDays are the columns of the weekly availability grid.
var DashboardDays = []string{"Mon", "Tue", "Wed", "Thu", "Fri"}

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// AvailabilitySlot is a bookable window on a given day of the week.
type AvailabilitySlot struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`
	IsBooked  bool   `json:"isBooked"`
}

// Validate checks the day tag and that the window is a well-formed HH:MM range.
// Overlap with other slots is not checked.
func (s AvailabilitySlot) Validate() error {
	if !isWeekDay(s.Day) {
		return fmt.Errorf("%w: unknown day %q", ErrInvalidSlot, s.Day)
	}
	if !clockPattern.MatchString(s.StartTime) || !clockPattern.MatchString(s.EndTime) {
		return fmt.Errorf("%w: times must be HH:MM", ErrInvalidSlot)
	}
	// zero-padded HH:MM compares correctly as a string
	if s.StartTime >= s.EndTime {
		return fmt.Errorf("%w: start must be before end", ErrInvalidSlot)
	}
	return nil
}

func isWeekDay(day string) bool {
	for _, d := range weekDays {
		if d == day {
			return true
		}
	}
	return false
}

// Doctor is a registered practitioner profile.
type Doctor struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Specialty       Specialty          `json:"specialty"`
	Bio             string             `json:"bio"`
	Location        string             `json:"location"`
	Rating          float64            `json:"rating"`
	ImageURL        string             `json:"imageUrl"`
	Availability    []AvailabilitySlot `json:"availability"`
	CalendarSynced  bool               `json:"calendarSynced"`
	YearsExperience int                `json:"yearsExperience"`
}

// Clone returns a copy that shares no mutable state with d.
func (d Doctor) Clone() Doctor {
	out := d
	if d.Availability != nil {
		out.Availability = make([]AvailabilitySlot, len(d.Availability))
		copy(out.Availability, d.Availability)
	}
	return out
}

// OpenSlots returns the slots that are not yet booked.
func (d Doctor) OpenSlots() []AvailabilitySlot {
	open := make([]AvailabilitySlot, 0, len(d.Availability))
	for _, slot := range d.Availability {
		if !slot.IsBooked {
			open = append(open, slot)
		}
	}
	return open
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
