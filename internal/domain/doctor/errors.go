package doctor

import "errors"

var (
	ErrDoctorNotFound     = errors.New("doctor not found")
	ErrDoctorNotAvailable = errors.New("doctor is not available")
	ErrDoctorNotActive    = errors.New("doctor is not active")
	ErrDuplicateEmail     = errors.New("doctor with this email already exists")
	ErrDuplicateDocument  = errors.New("doctor with this document already exists")
	ErrSpecialtyRequired  = errors.New("specialty is required when no doctor is specified")
	ErrNoDoctorAvailable  = errors.New("no doctor of the requested specialty is available at that time")
	ErrInvalidSpecialty   = errors.New("invalid specialty")
)
