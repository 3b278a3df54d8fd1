package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleDoctor       Role = "doctor"
	RoleReceptionist Role = "receptionist"
	RolePatient      Role = "patient"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleReceptionist, RolePatient:
		return true
	}
	return false
}

// Address is a value embedded into doctor and patient records. It has no
// identity or lifecycle of its own.
type Address struct {
	Street     string `gorm:"column:street;type:varchar(255);not null" json:"street"`
	District   string `gorm:"column:district;type:varchar(100);not null" json:"district"`
	City       string `gorm:"column:city;type:varchar(100);not null" json:"city"`
	Number     string `gorm:"column:number;type:varchar(20);not null" json:"number"`
	Complement string `gorm:"column:complement;type:varchar(100);not null" json:"complement"`
}

// CanonicalEnum renders an enum constant such as "patient_withdrew" in its
// canonical text form, "Patient withdrew": first letter upper-case, remainder
// lower-case, underscores replaced by spaces. This form is what gets
// persisted and serialized.
func CanonicalEnum(name string) string {
	if name == "" {
		return ""
	}
	s := strings.ReplaceAll(strings.ToLower(name), "_", " ")
	return strings.ToUpper(s[:1]) + s[1:]
}

// NormalizeEnum is the inverse of CanonicalEnum: it maps any legal textual
// representation back to the constant form, ignoring case and surrounding
// whitespace.
func NormalizeEnum(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	return strings.ReplaceAll(s, " ", "_")
}

type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`

	Email        string `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null"`
	Name         string `gorm:"column:name;type:varchar(100);not null"`
	Role         Role   `gorm:"column:role;type:varchar(30);not null;index"`

	// For doctor-role users, links to their doctor record
	DoctorID *uuid.UUID `gorm:"column:doctor_id;type:uuid;index"`
	// For patient-role users, links to their patient record
	PatientID *uuid.UUID `gorm:"column:patient_id;type:uuid;index"`

	IsActive         bool       `gorm:"column:is_active;default:true;index"`
	FailedLoginCount int        `gorm:"column:failed_login_count;default:0"`
	LockedUntil      *time.Time `gorm:"column:locked_until"`
	LastLoginAt      *time.Time `gorm:"column:last_login_at"`
}

func (User) TableName() string {
	return "auth.users"
}

// IsLocked returns true if the account is temporarily locked due to failed logins.
func (u *User) IsLocked() bool {
	return u.LockedUntil != nil && time.Now().Before(*u.LockedUntil)
}

type AuditAction string

const (
	ActionCreate AuditAction = "create"
	ActionRead   AuditAction = "read"
	ActionUpdate AuditAction = "update"
	ActionDelete AuditAction = "delete"
	ActionCancel AuditAction = "cancel"
	ActionLogin  AuditAction = "login"
)

type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OccurredAt time.Time `gorm:"autoCreateTime;index"`

	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;index"`
	UserRole  Role      `gorm:"column:user_role;type:varchar(30)"`
	IPAddress string    `gorm:"column:ip_address;type:varchar(45)"` // Supports IPv6

	Action       AuditAction `gorm:"column:action;type:varchar(20);not null;index"`
	ResourceType string      `gorm:"column:resource_type;type:varchar(50);not null;index"`
	ResourceID   string      `gorm:"column:resource_id;type:varchar(50);index"`

	Changes string `gorm:"column:changes;type:jsonb"`
}

func (AuditLog) TableName() string {
	return "audit.logs"
}

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	TokenType    string    `json:"token_type"` // Always "Bearer"
}

type Claims struct {
	UserID    uuid.UUID  `json:"sub"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	DoctorID  *uuid.UUID `json:"doctor_id,omitempty"`
	PatientID *uuid.UUID `json:"patient_id,omitempty"`
}
