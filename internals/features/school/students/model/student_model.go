package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	gradeModel "smartschool_backend/internals/features/school/grades/model"
	groupModel "smartschool_backend/internals/features/school/groups/model"
)

const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusGraduated = "graduated"
)

func IsValidStatus(s string) bool {
	return s == StatusActive || s == StatusInactive || s == StatusGraduated
}

// StudentModel maps table `students`.
type StudentModel struct {
	StudentID        uuid.UUID `json:"student_id" gorm:"column:student_id;type:uuid;primaryKey"`
	StudentFirstName string    `json:"student_first_name" gorm:"column:student_first_name;type:varchar(80);not null;index:idx_students_name"`
	StudentLastName  string    `json:"student_last_name" gorm:"column:student_last_name;type:varchar(80);not null;index:idx_students_name"`
	StudentCode      string    `json:"student_code" gorm:"column:student_code;type:varchar(40);not null;uniqueIndex"`
	StudentGradeID   uuid.UUID `json:"student_grade_id" gorm:"column:student_grade_id;type:uuid;not null;index"`
	StudentGroupID   uuid.UUID `json:"student_group_id" gorm:"column:student_group_id;type:uuid;not null;index"`
	StudentStatus    string    `json:"student_status" gorm:"column:student_status;type:varchar(20);not null;default:active;index"`
	StudentImageURL  *string   `json:"student_image_url,omitempty" gorm:"column:student_image_url;type:text"`

	StudentCreatedAt time.Time `json:"student_created_at" gorm:"column:student_created_at;autoCreateTime"`
	StudentUpdatedAt time.Time `json:"student_updated_at" gorm:"column:student_updated_at;autoUpdateTime"`

	Grade *gradeModel.GradeModel `json:"grade,omitempty" gorm:"foreignKey:StudentGradeID;references:GradeID"`
	Group *groupModel.GroupModel `json:"group,omitempty" gorm:"foreignKey:StudentGroupID;references:GroupID"`
}

func (StudentModel) TableName() string {
	return "students"
}

func (m *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentID == uuid.Nil {
		m.StudentID = uuid.New()
	}
	return nil
}

func (m *StudentModel) FullName() string {
	return m.StudentFirstName + " " + m.StudentLastName
}

// AuditFields enumerates the scalar columns tracked by the audit diff.
func (m *StudentModel) AuditFields() map[string]string {
	imageURL := ""
	if m.StudentImageURL != nil {
		imageURL = *m.StudentImageURL
	}
	return map[string]string{
		"student_first_name": m.StudentFirstName,
		"student_last_name":  m.StudentLastName,
		"student_code":       m.StudentCode,
		"student_grade_id":   m.StudentGradeID.String(),
		"student_group_id":   m.StudentGroupID.String(),
		"student_status":     m.StudentStatus,
		"student_image_url":  imageURL,
	}
}
