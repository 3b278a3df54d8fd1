package patient

import (
	"time"

	"github.com/google/uuid"

	"github.com/vollmed/clinic-api/internal/domain"
)

// Patient is an immutable record: updates and deactivation return a new
// value carrying the same id, and persistence upserts by id.
type Patient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Name     string `gorm:"column:name;type:varchar(100);not null"`
	Email    string `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	Document string `gorm:"column:document;type:varchar(11);uniqueIndex;not null"` // 8-11 digits
	Phone    string `gorm:"column:phone;type:varchar(20);not null"`

	domain.Address `gorm:"embedded"`

	Active bool `gorm:"column:active;not null;default:true;index"`
}

func (Patient) TableName() string {
	return "clinical.patients"
}

func New(cmd *RegisterCommand) Patient {
	return Patient{
		Name:     cmd.Name,
		Email:    cmd.Email,
		Document: cmd.Document,
		Phone:    cmd.Phone,
		Address:  cmd.Address,
		Active:   true,
	}
}

// WithUpdates returns a copy with name, document, and address replaced where
// the command provides them. Email and phone are never updated.
func (p Patient) WithUpdates(cmd *UpdateCommand) Patient {
	next := p
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

// Deactivated returns a copy with the active flag cleared. Patients are
// never hard-deleted.
func (p Patient) Deactivated() Patient {
	next := p
	next.Active = false
	return next
}

type RegisterCommand struct {
	Name     string
	Email    string
	Document string
	Phone    string
	Address  domain.Address
}

type UpdateCommand struct {
	ID       uuid.UUID
	Name     *string
	Document *string
	Address  *domain.Address
}
