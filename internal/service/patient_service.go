package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vollmed/clinic-api/internal/domain/patient"
)

// Patient documents are plain digits, 8 to 11 of them.
var patientDocumentPattern = regexp.MustCompile(`^\d{8,11}$`)

type PatientService struct {
	repo     patient.Repository
	auditSvc *AuditService
	log      *zap.Logger
}

func NewPatientService(repo patient.Repository, auditSvc *AuditService, log *zap.Logger) *PatientService {
	return &PatientService{repo: repo, auditSvc: auditSvc, log: log}
}

func (s *PatientService) Register(ctx context.Context, cmd *patient.RegisterCommand) (*patient.Patient, error) {
	if err := validatePatientRegistration(cmd); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, fmt.Errorf("checking email uniqueness: %w", err)
	}
	if exists {
		return nil, patient.ErrDuplicateEmail
	}

	exists, err = s.repo.ExistsByDocument(ctx, cmd.Document)
	if err != nil {
		return nil, fmt.Errorf("checking document uniqueness: %w", err)
	}
	if exists {
		return nil, patient.ErrDuplicateDocument
	}

	p := patient.New(cmd)
	if err := s.repo.Save(ctx, &p); err != nil {
		s.log.Error("failed to register patient", zap.Error(err))
		return nil, fmt.Errorf("registering patient: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "create",
		ResourceType: "patient",
		ResourceID:   p.ID.String(),
	})

	s.log.Info("patient registered", zap.String("patient_id", p.ID.String()))

	return &p, nil
}

// Update replaces name, document, and address on an existing patient; the
// stored record is overwritten by a new value with the same id.
func (s *PatientService) Update(ctx context.Context, cmd *patient.UpdateCommand) (*patient.Patient, error) {
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
			return nil, patient.ErrDuplicateDocument
		}
	}

	updated := existing.WithUpdates(cmd)
	if err := s.repo.Save(ctx, &updated); err != nil {
		return nil, fmt.Errorf("updating patient: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "update",
		ResourceType: "patient",
		ResourceID:   updated.ID.String(),
	})

	return &updated, nil
}

// Deactivate clears the patient's active flag; the record is never deleted.
func (s *PatientService) Deactivate(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	deactivated := existing.Deactivated()
	if err := s.repo.Save(ctx, &deactivated); err != nil {
		return fmt.Errorf("deactivating patient: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "delete",
		ResourceType: "patient",
		ResourceID:   id.String(),
	})

	return nil
}

func (s *PatientService) Get(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PatientService) ListActive(ctx context.Context, page, pageSize int) ([]*patient.Patient, int64, error) {
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	if page <= 0 {
		page = 1
	}
	return s.repo.ListActive(ctx, page, pageSize)
}

func validatePatientRegistration(cmd *patient.RegisterCommand) error {
	var errs []string

	if strings.TrimSpace(cmd.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(cmd.Email) == "" {
		errs = append(errs, "email is required")
	}
	if !patientDocumentPattern.MatchString(cmd.Document) {
		errs = append(errs, "document must contain 8 to 11 digits")
	}
	if strings.TrimSpace(cmd.Phone) == "" {
		errs = append(errs, "phone is required")
	}
	errs = append(errs, validateAddress(cmd.Address)...)

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
