package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartschool_backend/internals/constants"
	auditService "smartschool_backend/internals/features/audit/service"
	dto "smartschool_backend/internals/features/school/assessments/dto"
	model "smartschool_backend/internals/features/school/assessments/model"
)

type AssessmentService struct {
	DB    *gorm.DB
	Audit *auditService.Recorder
}

func NewAssessmentService(db *gorm.DB, audit *auditService.Recorder) *AssessmentService {
	return &AssessmentService{DB: db, Audit: audit}
}

func (s *AssessmentService) preloaded() *gorm.DB {
	return s.DB.
		Preload("Student").
		Preload("Group")
}

func (s *AssessmentService) FindAll() ([]model.AssessmentModel, error) {
	var rows []model.AssessmentModel
	err := s.preloaded().Order("assessment_date DESC").Find(&rows).Error
	return rows, err
}

func (s *AssessmentService) FindByStudent(studentID uuid.UUID) ([]model.AssessmentModel, error) {
	var rows []model.AssessmentModel
	err := s.preloaded().
		Where("assessment_student_id = ?", studentID).
		Order("assessment_date DESC").
		Find(&rows).Error
	return rows, err
}

func (s *AssessmentService) FindByGroup(groupID uuid.UUID) ([]model.AssessmentModel, error) {
	var rows []model.AssessmentModel
	err := s.preloaded().
		Where("assessment_group_id = ?", groupID).
		Order("assessment_date DESC").
		Find(&rows).Error
	return rows, err
}

func (s *AssessmentService) FindOne(id uuid.UUID) (*model.AssessmentModel, error) {
	var m model.AssessmentModel
	if err := s.preloaded().Where("assessment_id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *AssessmentService) Create(req dto.CreateAssessmentRequest, actorID uuid.UUID) (*model.AssessmentModel, error) {
	m, err := req.ToModel()
	if err != nil {
		return nil, err
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return s.Audit.RecordCreated(tx, constants.EntityAssessment, m.AssessmentID, m, actorID)
	})
	if err != nil {
		return nil, err
	}
	return s.FindOne(m.AssessmentID)
}

func (s *AssessmentService) Update(id uuid.UUID, req dto.UpdateAssessmentRequest, actorID uuid.UUID) (*model.AssessmentModel, error) {
	var pre model.AssessmentModel
	if err := s.DB.Where("assessment_id = ?", id).First(&pre).Error; err != nil {
		return nil, err
	}
	oldFields := pre.AuditFields()

	post := pre
	if err := req.ApplyToModel(&post); err != nil {
		return nil, err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&post).Error; err != nil {
			return err
		}
		_, err := s.Audit.RecordChanges(tx, constants.EntityAssessment, id, oldFields, post.AuditFields(), actorID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.FindOne(id)
}

// Remove records the pre-image after the delete succeeds, inside the same
// transaction.
func (s *AssessmentService) Remove(id uuid.UUID, actorID uuid.UUID) error {
	var pre model.AssessmentModel
	if err := s.DB.Where("assessment_id = ?", id).First(&pre).Error; err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.AssessmentModel{}, "assessment_id = ?", id).Error; err != nil {
			return err
		}
		return s.Audit.RecordDeleted(tx, constants.EntityAssessment, id, &pre, actorID)
	})
}
