package patient

import "errors"

var (
	ErrPatientNotFound     = errors.New("patient not found")
	ErrPatientNotAvailable = errors.New("patient is not available")
	ErrPatientNotActive    = errors.New("patient is not active")
	ErrDuplicateEmail      = errors.New("patient with this email already exists")
	ErrDuplicateDocument   = errors.New("patient with this document already exists")
)
