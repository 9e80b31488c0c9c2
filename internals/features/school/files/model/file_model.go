package model

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	studentModel "smartschool_backend/internals/features/school/students/model"
)

// FileModel maps table `files` (attachment metadata, not file bytes).
type FileModel struct {
	FileID        uuid.UUID `json:"file_id" gorm:"column:file_id;type:uuid;primaryKey"`
	FileStudentID uuid.UUID `json:"file_student_id" gorm:"column:file_student_id;type:uuid;not null;index"`
	FileType      string    `json:"file_type" gorm:"column:file_type;type:varchar(40);not null"`
	FileURL       string    `json:"file_url" gorm:"column:file_url;type:text;not null"`
	FileName      string    `json:"file_name" gorm:"column:file_name;type:varchar(255);not null"`
	FileSize      int64     `json:"file_size" gorm:"column:file_size;type:bigint;not null"`
	FileMimeType  string    `json:"file_mime_type" gorm:"column:file_mime_type;type:varchar(120);not null"`

	FileUploadedAt time.Time `json:"file_uploaded_at" gorm:"column:file_uploaded_at;autoCreateTime"`
	FileUpdatedAt  time.Time `json:"file_updated_at" gorm:"column:file_updated_at;autoUpdateTime"`

	Student *studentModel.StudentModel `json:"student,omitempty" gorm:"foreignKey:FileStudentID;references:StudentID"`
}

func (FileModel) TableName() string {
	return "files"
}

func (m *FileModel) BeforeCreate(tx *gorm.DB) error {
	if m.FileID == uuid.Nil {
		m.FileID = uuid.New()
	}
	return nil
}

// AuditFields enumerates the scalar columns tracked by the audit diff.
func (m *FileModel) AuditFields() map[string]string {
	return map[string]string{
		"file_student_id": m.FileStudentID.String(),
		"file_type":       m.FileType,
		"file_url":        m.FileURL,
		"file_name":       m.FileName,
		"file_size":       strconv.FormatInt(m.FileSize, 10),
		"file_mime_type":  m.FileMimeType,
	}
}
