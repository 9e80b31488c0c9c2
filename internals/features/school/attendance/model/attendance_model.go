package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	studentModel "smartschool_backend/internals/features/school/students/model"
)

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
)

func IsValidStatus(s string) bool {
	return s == StatusPresent || s == StatusAbsent || s == StatusLate
}

// AttendanceModel maps table `attendance`.
type AttendanceModel struct {
	AttendanceID        uuid.UUID      `json:"attendance_id" gorm:"column:attendance_id;type:uuid;primaryKey"`
	AttendanceStudentID uuid.UUID      `json:"attendance_student_id" gorm:"column:attendance_student_id;type:uuid;not null;index"`
	AttendanceDate      datatypes.Date `json:"attendance_date" gorm:"column:attendance_date;not null"`
	AttendanceStatus    string         `json:"attendance_status" gorm:"column:attendance_status;type:varchar(20);not null"`
	AttendanceNotes     *string        `json:"attendance_notes,omitempty" gorm:"column:attendance_notes;type:text"`

	AttendanceCreatedAt time.Time `json:"attendance_created_at" gorm:"column:attendance_created_at;autoCreateTime"`
	AttendanceUpdatedAt time.Time `json:"attendance_updated_at" gorm:"column:attendance_updated_at;autoUpdateTime"`

	Student *studentModel.StudentModel `json:"student,omitempty" gorm:"foreignKey:AttendanceStudentID;references:StudentID"`
}

func (AttendanceModel) TableName() string {
	return "attendance"
}

func (m *AttendanceModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceID == uuid.Nil {
		m.AttendanceID = uuid.New()
	}
	return nil
}

// AuditFields enumerates the scalar columns tracked by the audit diff.
func (m *AttendanceModel) AuditFields() map[string]string {
	notes := ""
	if m.AttendanceNotes != nil {
		notes = *m.AttendanceNotes
	}
	return map[string]string{
		"attendance_student_id": m.AttendanceStudentID.String(),
		"attendance_date":       time.Time(m.AttendanceDate).Format("2006-01-02"),
		"attendance_status":     m.AttendanceStatus,
		"attendance_notes":      notes,
	}
}
