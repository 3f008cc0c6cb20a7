package directory

import "fmt"

// ToggleCalendarSync flips the doctor's calendar connection.
func ToggleCalendarSync(d Doctor) (ProfilePatch, error) {
	synced := !d.CalendarSynced
	return ProfilePatch{CalendarSynced: &synced}, nil
}

// AddSlot returns a modifier that appends slot to the doctor's availability.
func AddSlot(slot AvailabilitySlot) func(Doctor) (ProfilePatch, error) {
	return func(d Doctor) (ProfilePatch, error) {
		if err := slot.Validate(); err != nil {
			return ProfilePatch{}, err
		}
		slots := make([]AvailabilitySlot, 0, len(d.Availability)+1)
		slots = append(slots, d.Availability...)
		slots = append(slots, slot)
		return ProfilePatch{Availability: &slots}, nil
	}
}

// ScheduleDay is one column of the weekly availability grid.
type ScheduleDay struct {
	Day   string             `json:"day"`
	Slots []AvailabilitySlot `json:"slots"`
}

// WeeklySchedule groups availability into the Mon-Fri dashboard grid, keeping
// the authored slot order within each day.
func WeeklySchedule(d Doctor) []ScheduleDay {
	grid := make([]ScheduleDay, 0, len(DashboardDays))
	for _, day := range DashboardDays {
		col := ScheduleDay{Day: day, Slots: []AvailabilitySlot{}}
		for _, slot := range d.Availability {
			if slot.Day == day {
				col.Slots = append(col.Slots, slot)
			}
		}
		grid = append(grid, col)
	}
	return grid
}

// BookingIntent is what a patient sees when starting to book a doctor.
type BookingIntent struct {
	DoctorID       string             `json:"doctorId"`
	DoctorName     string             `json:"doctorName"`
	CalendarSynced bool               `json:"calendarSynced"`
	OpenSlots      []AvailabilitySlot `json:"openSlots"`
	Message        string             `json:"message"`
}

// NewBookingIntent describes the booking flow for d without changing it.
func NewBookingIntent(d Doctor) BookingIntent {
	status := "Inactive"
	if d.CalendarSynced {
		status = "Active"
	}
	return BookingIntent{
		DoctorID:       d.ID,
		DoctorName:     d.Name,
		CalendarSynced: d.CalendarSynced,
		OpenSlots:      d.OpenSlots(),
		Message:        fmt.Sprintf("Booking flow for %s. Calendar sync status: %s", d.Name, status),
	}
}
