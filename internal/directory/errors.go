package directory

import "errors"

var (
	// ErrDoctorNotFound is returned when no doctor has the requested id
	ErrDoctorNotFound = errors.New("doctor not found")

	// ErrDuplicateID is returned when a registration reuses an existing id
	ErrDuplicateID = errors.New("doctor id already registered")

	// ErrInvalidName is returned when the name is missing
	ErrInvalidName = errors.New("name is required")

	// ErrInvalidLocation is returned when the location is missing
	ErrInvalidLocation = errors.New("location is required")

	// ErrInvalidBio is returned when the bio is missing
	ErrInvalidBio = errors.New("bio is required")

	// ErrInvalidSpecialty is returned for specialties outside the known set
	ErrInvalidSpecialty = errors.New("unknown specialty")

	// ErrInvalidExperience is returned for negative years of experience
	ErrInvalidExperience = errors.New("years of experience must not be negative")

	// ErrInvalidSlot is returned for malformed availability slots
	ErrInvalidSlot = errors.New("invalid availability slot")

	// ErrBioInputMissing is returned when the bio helper lacks a name or keywords
	ErrBioInputMissing = errors.New("name and keywords are required to generate a bio")
)
