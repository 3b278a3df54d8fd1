package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vollmed/clinic-api/internal/domain/doctor"
)

// License documents are numeric with optional thousands dots, e.g. "123.456".
var doctorDocumentPattern = regexp.MustCompile(`^\d{1,3}(\.\d{3}){0,2}$`)

type DoctorService struct {
	repo     doctor.Repository
	auditSvc *AuditService
	log      *zap.Logger
}

func NewDoctorService(repo doctor.Repository, auditSvc *AuditService, log *zap.Logger) *DoctorService {
	return &DoctorService{repo: repo, auditSvc: auditSvc, log: log}
}

func (s *DoctorService) Register(ctx context.Context, cmd *doctor.RegisterCommand) (*doctor.Doctor, error) {
	if err := validateDoctorRegistration(cmd); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, fmt.Errorf("checking email uniqueness: %w", err)
	}
	if exists {
		return nil, doctor.ErrDuplicateEmail
	}

	exists, err = s.repo.ExistsByDocument(ctx, cmd.Document)
	if err != nil {
		return nil, fmt.Errorf("checking document uniqueness: %w", err)
	}
	if exists {
		return nil, doctor.ErrDuplicateDocument
	}

	d := doctor.New(cmd)
	if err := s.repo.Save(ctx, &d); err != nil {
		s.log.Error("failed to register doctor", zap.Error(err))
		return nil, fmt.Errorf("registering doctor: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "create",
		ResourceType: "doctor",
		ResourceID:   d.ID.String(),
	})

	s.log.Info("doctor registered",
		zap.String("doctor_id", d.ID.String()),
		zap.String("specialty", d.Specialty.Canonical()),
	)

	return &d, nil
}

// Update replaces name, document, and address on an existing doctor; the
// stored record is overwritten by a new value with the same id.
func (s *DoctorService) Update(ctx context.Context, cmd *doctor.UpdateCommand) (*doctor.Doctor, error) {
	existing, err := s.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Document != nil && *cmd.Document != existing.Document {
		taken, err := s.repo.ExistsByDocument(ctx, *cmd.Document)
		if err != nil {
			return nil, fmt.Errorf("checking document uniqueness: %w", err)
		}
		if taken {
			return nil, doctor.ErrDuplicateDocument
		}
	}

	updated := existing.WithUpdates(cmd)
	if err := s.repo.Save(ctx, &updated); err != nil {
		return nil, fmt.Errorf("updating doctor: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "update",
		ResourceType: "doctor",
		ResourceID:   updated.ID.String(),
	})

	return &updated, nil
}

// Deactivate clears the doctor's active flag; the record is never deleted.
func (s *DoctorService) Deactivate(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	deactivated := existing.Deactivated()
	if err := s.repo.Save(ctx, &deactivated); err != nil {
		return fmt.Errorf("deactivating doctor: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "delete",
		ResourceType: "doctor",
		ResourceID:   id.String(),
	})

	return nil
}

func (s *DoctorService) Get(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *DoctorService) ListActive(ctx context.Context, page, pageSize int) ([]*doctor.Doctor, int64, error) {
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	if page <= 0 {
		page = 1
	}
	return s.repo.ListActive(ctx, page, pageSize)
}

func validateDoctorRegistration(cmd *doctor.RegisterCommand) error {
	var errs []string

	if strings.TrimSpace(cmd.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(cmd.Phone) == "" {
		errs = append(errs, "phone is required")
	}
	if strings.TrimSpace(cmd.Email) == "" {
		errs = append(errs, "email is required")
	}
	if !doctorDocumentPattern.MatchString(cmd.Document) {
		errs = append(errs, "document must be numeric, with or without dots")
	}
	if !cmd.Specialty.IsValid() {
		errs = append(errs, "specialty is invalid")
	}
	errs = append(errs, validateAddress(cmd.Address)...)

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
