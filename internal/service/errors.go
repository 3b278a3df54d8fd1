package service

import (
	"errors"
	"strings"

	"github.com/vollmed/clinic-api/internal/domain"
)

var ErrForbidden = errors.New("forbidden: insufficient permissions")

// ValidationError accumulates field-level input problems. Unlike the booking
// rule set, which fails on the first violation, input validation reports
// every bad field at once.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// validateAddress reports the missing fields of an embedded address; every
// field is required.
func validateAddress(addr domain.Address) []string {
	var errs []string
	if strings.TrimSpace(addr.Street) == "" {
		errs = append(errs, "address.street is required")
	}
	if strings.TrimSpace(addr.District) == "" {
		errs = append(errs, "address.district is required")
	}
	if strings.TrimSpace(addr.City) == "" {
		errs = append(errs, "address.city is required")
	}
	if strings.TrimSpace(addr.Number) == "" {
		errs = append(errs, "address.number is required")
	}
	if strings.TrimSpace(addr.Complement) == "" {
		errs = append(errs, "address.complement is required")
	}
	return errs
}

type AuditEntry struct {
	Action       string
	ResourceType string
	ResourceID   string
	Changes      string
}
