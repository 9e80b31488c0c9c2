package service

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartschool_backend/internals/configs"
	"smartschool_backend/internals/constants"
	auditService "smartschool_backend/internals/features/audit/service"
	model "smartschool_backend/internals/features/school/files/model"
	helper "smartschool_backend/internals/helpers"
)

type FileService struct {
	DB    *gorm.DB
	Audit *auditService.Recorder
}

func NewFileService(db *gorm.DB, audit *auditService.Recorder) *FileService {
	return &FileService{DB: db, Audit: audit}
}

func (s *FileService) FindByStudent(studentID uuid.UUID) ([]model.FileModel, error) {
	var rows []model.FileModel
	err := s.DB.
		Where("file_student_id = ?", studentID).
		Order("file_uploaded_at DESC").
		Find(&rows).Error
	return rows, err
}

func (s *FileService) FindOne(id uuid.UUID) (*model.FileModel, error) {
	var m model.FileModel
	if err := s.DB.Where("file_id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// Store writes the bytes under the upload dir and records the metadata row
// plus its audit entry in one transaction. Images are converted to webp
// before hitting disk.
func (s *FileService) Store(studentID uuid.UUID, fileType, originalName, mimeType string, data []byte, actorID uuid.UUID) (*model.FileModel, error) {
	name := originalName
	if helper.IsImageMime(mimeType) {
		converted, err := helper.ConvertToWebP(data, originalName)
		if err == nil {
			data = converted
			mimeType = "image/webp"
			name = helper.ReplaceExt(originalName, ".webp")
		}
		// Conversion failures fall back to storing the original bytes.
	}

	relPath := helper.GenerateUniqueFilename("students", name)
	absPath := filepath.Join(configs.UploadDir, relPath)
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(absPath, data, 0o644); err != nil {
		return nil, err
	}

	m := &model.FileModel{
		FileStudentID: studentID,
		FileType:      fileType,
		FileURL:       relPath,
		FileName:      helper.SanitizeFilename(name),
		FileSize:      int64(len(data)),
		FileMimeType:  mimeType,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return s.Audit.RecordCreated(tx, constants.EntityFile, m.FileID, m, actorID)
	})
	if err != nil {
		os.Remove(absPath)
		return nil, err
	}
	return m, nil
}

// DiskPath resolves the stored relative URL to an absolute path under the
// upload dir. The leading slash before Clean keeps traversal sequences from
// escaping it.
func (s *FileService) DiskPath(m *model.FileModel) string {
	return filepath.Join(configs.UploadDir, filepath.Clean("/"+m.FileURL))
}

// Remove deletes the metadata row (audited) and then best-effort removes the
// bytes from disk.
func (s *FileService) Remove(id uuid.UUID, actorID uuid.UUID) error {
	var pre model.FileModel
	if err := s.DB.Where("file_id = ?", id).First(&pre).Error; err != nil {
		return err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.FileModel{}, "file_id = ?", id).Error; err != nil {
			return err
		}
		return s.Audit.RecordDeleted(tx, constants.EntityFile, id, &pre, actorID)
	})
	if err != nil {
		return err
	}

	os.Remove(s.DiskPath(&pre))
	return nil
}
