package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GradeModel maps table `grades` (a year cohort, e.g. "7th").
type GradeModel struct {
	GradeID   uuid.UUID `json:"grade_id" gorm:"column:grade_id;type:uuid;primaryKey"`
	GradeName string    `json:"grade_name" gorm:"column:grade_name;type:varchar(80);not null;uniqueIndex"`

	GradeCreatedAt time.Time `json:"grade_created_at" gorm:"column:grade_created_at;autoCreateTime"`
	GradeUpdatedAt time.Time `json:"grade_updated_at" gorm:"column:grade_updated_at;autoUpdateTime"`

	// Relations. StudentCount is derived from Students at read time and is
	// never stored, so it cannot drift.
	Groups   []GroupRef   `json:"groups,omitempty" gorm:"foreignKey:GroupGradeID;references:GradeID"`
	Students []StudentRef `json:"students,omitempty" gorm:"foreignKey:StudentGradeID;references:GradeID"`
}

func (GradeModel) TableName() string {
	return "grades"
}

func (m *GradeModel) BeforeCreate(tx *gorm.DB) error {
	if m.GradeID == uuid.Nil {
		m.GradeID = uuid.New()
	}
	return nil
}

// AuditFields enumerates the scalar columns tracked by the audit diff.
func (m *GradeModel) AuditFields() map[string]string {
	return map[string]string{
		"grade_name": m.GradeName,
	}
}

// GroupRef and StudentRef are slim projections used only for preloading
// relations without importing the sibling feature packages.
type GroupRef struct {
	GroupID      uuid.UUID `json:"group_id" gorm:"column:group_id;type:uuid;primaryKey"`
	GroupName    string    `json:"group_name" gorm:"column:group_name"`
	GroupGradeID uuid.UUID `json:"group_grade_id" gorm:"column:group_grade_id;type:uuid"`
}

func (GroupRef) TableName() string { return "groups" }

type StudentRef struct {
	StudentID        uuid.UUID `json:"student_id" gorm:"column:student_id;type:uuid;primaryKey"`
	StudentFirstName string    `json:"student_first_name" gorm:"column:student_first_name"`
	StudentLastName  string    `json:"student_last_name" gorm:"column:student_last_name"`
	StudentGradeID   uuid.UUID `json:"student_grade_id" gorm:"column:student_grade_id;type:uuid"`
	StudentGroupID   uuid.UUID `json:"student_group_id" gorm:"column:student_group_id;type:uuid"`
}

func (StudentRef) TableName() string { return "students" }
