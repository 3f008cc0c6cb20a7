package directory

// Seed returns the demo doctors the marketplace starts with.
func Seed() []Doctor {
	return []Doctor{
		{
			ID:              "1",
			Name:            "Dr. Sarah Jenning",
			Specialty:       SpecialtyCardiologist,
			Bio:             "Experienced cardiologist specializing in preventive care and heart health management. Committed to patient education and long-term wellness.",
			Location:        "New York, NY",
			Rating:          4.9,
			ImageURL:        "https://picsum.photos/200/200?random=1",
			YearsExperience: 12,
			CalendarSynced:  true,
			Availability: []AvailabilitySlot{
				{Day: "Mon", StartTime: "09:00", EndTime: "10:00"},
				{Day: "Mon", StartTime: "10:00", EndTime: "11:00", IsBooked: true},
				{Day: "Wed", StartTime: "14:00", EndTime: "15:00"},
			},
		},
		{
			ID:              "2",
			Name:            "Dr. Michael Chen",
			Specialty:       SpecialtyDermatologist,
			Bio:             "Board-certified dermatologist with a focus on holistic skin treatments and early detection of skin conditions.",
			Location:        "San Francisco, CA",
			Rating:          4.8,
			ImageURL:        "https://picsum.photos/200/200?random=2",
			YearsExperience: 8,
			CalendarSynced:  false,
			Availability: []AvailabilitySlot{
				{Day: "Tue", StartTime: "11:00", EndTime: "12:00"},
				{Day: "Thu", StartTime: "09:00", EndTime: "10:00"},
			},
		},
		{
			ID:              "3",
			Name:            "Dr. Emily Rose",
			Specialty:       SpecialtyPediatrician,
			Bio:             "Compassionate pediatrician dedicated to the health and happiness of children from infancy through adolescence.",
			Location:        "Chicago, IL",
			Rating:          5.0,
			ImageURL:        "https://picsum.photos/200/200?random=3",
			YearsExperience: 15,
			CalendarSynced:  true,
			Availability: []AvailabilitySlot{
				{Day: "Mon", StartTime: "08:00", EndTime: "09:00"},
				{Day: "Fri", StartTime: "13:00", EndTime: "14:00"},
			},
		},
		{
			ID:              "4",
			Name:            "Dr. James Wilson",
			Specialty:       SpecialtyOrthopedist,
			Bio:             "Sports medicine specialist helping athletes and active individuals recover from injuries and improve performance.",
			Location:        "Austin, TX",
			Rating:          4.7,
			ImageURL:        "https://picsum.photos/200/200?random=4",
			YearsExperience: 20,
			CalendarSynced:  true,
			Availability: []AvailabilitySlot{
				{Day: "Wed", StartTime: "10:00", EndTime: "11:00"},
				{Day: "Thu", StartTime: "15:00", EndTime: "16:00"},
			},
		},
	}
}
