package model

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartschool_backend/internals/constants"
)

// UserModel maps table `users`.
type UserModel struct {
	UserID       uuid.UUID `json:"user_id" gorm:"column:user_id;type:uuid;primaryKey"`
	UserEmail    string    `json:"user_email" gorm:"column:user_email;type:varchar(160);not null;uniqueIndex"`
	UserPassword string    `json:"-" gorm:"column:user_password;type:varchar(120);not null"`
	UserName     string    `json:"user_name" gorm:"column:user_name;type:varchar(120);not null"`
	UserRole     string    `json:"user_role" gorm:"column:user_role;type:varchar(20);not null;default:staff"`
	UserIsActive bool      `json:"user_is_active" gorm:"column:user_is_active;not null;default:true"`

	UserCreatedAt time.Time `json:"user_created_at" gorm:"column:user_created_at;autoCreateTime"`
	UserUpdatedAt time.Time `json:"user_updated_at" gorm:"column:user_updated_at;autoUpdateTime"`
}

func (UserModel) TableName() string {
	return "users"
}

func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.UserID == uuid.Nil {
		m.UserID = uuid.New()
	}
	return nil
}

// CanEdit mirrors the single-writer policy: only managers mutate data.
func (m *UserModel) CanEdit() bool {
	return m.UserRole == constants.RoleManager
}

// AuditFields enumerates the scalar columns tracked by the audit diff.
// The password hash is deliberately not among them.
func (m *UserModel) AuditFields() map[string]string {
	return map[string]string{
		"user_email":     m.UserEmail,
		"user_name":      m.UserName,
		"user_role":      m.UserRole,
		"user_is_active": strconv.FormatBool(m.UserIsActive),
	}
}
