package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "smartschool_backend/internals/features/users/user/model"
)

// Field names used for whole-entity lifecycle events. Updates use the
// actual column name of the changed field instead.
const (
	FieldCreated = "created"
	FieldDeleted = "deleted"
)

// AuditLogModel maps table `audit_logs`. Rows are append-only; nothing in
// the system updates or deletes them.
type AuditLogModel struct {
	AuditLogID       uuid.UUID `json:"audit_log_id" gorm:"column:audit_log_id;type:uuid;primaryKey"`
	AuditLogEntity   string    `json:"audit_log_entity" gorm:"column:audit_log_entity;type:varchar(40);not null;index:idx_audit_entity"`
	AuditLogEntityID uuid.UUID `json:"audit_log_entity_id" gorm:"column:audit_log_entity_id;type:uuid;not null;index:idx_audit_entity"`
	AuditLogField    string    `json:"audit_log_field" gorm:"column:audit_log_field;type:varchar(80);not null"`
	AuditLogOldValue *string   `json:"audit_log_old_value,omitempty" gorm:"column:audit_log_old_value;type:text"`
	AuditLogNewValue *string   `json:"audit_log_new_value,omitempty" gorm:"column:audit_log_new_value;type:text"`
	AuditLogUserID   uuid.UUID `json:"audit_log_user_id" gorm:"column:audit_log_user_id;type:uuid;not null"`

	AuditLogTimestamp time.Time `json:"audit_log_timestamp" gorm:"column:audit_log_timestamp;autoCreateTime;index"`

	User *userModel.UserModel `json:"user,omitempty" gorm:"foreignKey:AuditLogUserID;references:UserID"`
}

func (AuditLogModel) TableName() string {
	return "audit_logs"
}

func (m *AuditLogModel) BeforeCreate(tx *gorm.DB) error {
	if m.AuditLogID == uuid.Nil {
		m.AuditLogID = uuid.New()
	}
	return nil
}
