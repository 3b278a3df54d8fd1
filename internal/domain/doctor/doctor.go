package doctor

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vollmed/clinic-api/internal/domain"
)

// Specialty is the closed set of medical specialties the clinic offers.
// Its canonical textual form ("Cardiology") is used for persistence and on
// the wire; any case/whitespace variant of it parses back to the same value.
type Specialty string

const (
	SpecialtyOrthopedics Specialty = "orthopedics"
	SpecialtyCardiology  Specialty = "cardiology"
	SpecialtyGynecology  Specialty = "gynecology"
	SpecialtyPediatrics  Specialty = "pediatrics"
)

func (s Specialty) IsValid() bool {
	switch s {
	case SpecialtyOrthopedics, SpecialtyCardiology, SpecialtyGynecology, SpecialtyPediatrics:
		return true
	}
	return false
}

// Canonical returns the human-readable form, e.g. "Cardiology".
func (s Specialty) Canonical() string {
	return domain.CanonicalEnum(string(s))
}

// ParseSpecialty maps any legal textual representation to a Specialty,
// ignoring case and surrounding whitespace.
func ParseSpecialty(text string) (Specialty, error) {
	s := Specialty(domain.NormalizeEnum(text))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSpecialty, text)
	}
	return s, nil
}

func (s Specialty) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Canonical())
}

func (s *Specialty) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseSpecialty(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Value stores the canonical text form.
func (s Specialty) Value() (driver.Value, error) {
	return s.Canonical(), nil
}

func (s *Specialty) Scan(src any) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseSpecialty(v)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	case []byte:
		return s.Scan(string(v))
	default:
		return fmt.Errorf("scanning specialty: unsupported type %T", src)
	}
}

// Doctor is an immutable record: updates and deactivation return a new value
// carrying the same id, and persistence upserts by id.
type Doctor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Name      string    `gorm:"column:name;type:varchar(100);not null"`
	Phone     string    `gorm:"column:phone;type:varchar(20);not null"`
	Email     string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	Document  string    `gorm:"column:document;type:varchar(20);uniqueIndex;not null"` // license number
	Specialty Specialty `gorm:"column:specialty;type:varchar(30);not null;index"`

	domain.Address `gorm:"embedded"`

	Active bool `gorm:"column:active;not null;default:true;index"`
}

func (Doctor) TableName() string {
	return "clinical.doctors"
}

// New builds an active doctor from a registration command. The id is left
// for the store to generate.
func New(cmd *RegisterCommand) Doctor {
	return Doctor{
		Name:      cmd.Name,
		Phone:     cmd.Phone,
		Email:     cmd.Email,
		Document:  cmd.Document,
		Specialty: cmd.Specialty,
		Address:   cmd.Address,
		Active:    true,
	}
}

// WithUpdates returns a copy with name, document, and address replaced where
// the command provides them. Phone, email, and specialty are never updated.
func (d Doctor) WithUpdates(cmd *UpdateCommand) Doctor {
	next := d
	if cmd.Name != nil {
		next.Name = *cmd.Name
	}
	if cmd.Document != nil {
		next.Document = *cmd.Document
	}
	if cmd.Address != nil {
		next.Address = *cmd.Address
	}
	return next
}

// Deactivated returns a copy with the active flag cleared. Doctors are never
// hard-deleted.
func (d Doctor) Deactivated() Doctor {
	next := d
	next.Active = false
	return next
}

type RegisterCommand struct {
	Name      string
	Phone     string
	Email     string
	Document  string
	Specialty Specialty
	Address   domain.Address
}

type UpdateCommand struct {
	ID       uuid.UUID
	Name     *string
	Document *string
	Address  *domain.Address
}
