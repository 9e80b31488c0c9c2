// internals/features/school/grades/service/grade_service.go
package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditService "smartschool_backend/internals/features/audit/service"
	dto "smartschool_backend/internals/features/school/grades/dto"
	model "smartschool_backend/internals/features/school/grades/model"
	"smartschool_backend/internals/constants"
)

// Broadcaster is the slice of the realtime hub this service needs.
type Broadcaster interface {
	BroadcastGradeUpdate(gradeID uuid.UUID)
}

type GradeService struct {
	DB        *gorm.DB
	Audit     *auditService.Recorder
	Broadcast Broadcaster
}

func NewGradeService(db *gorm.DB, audit *auditService.Recorder, broadcast Broadcaster) *GradeService {
	return &GradeService{DB: db, Audit: audit, Broadcast: broadcast}
}

func (s *GradeService) FindAll() ([]model.GradeModel, error) {
	var rows []model.GradeModel
	err := s.DB.
		Preload("Groups").
		Preload("Students").
		Order("grade_name ASC").
		Find(&rows).Error
	return rows, err
}

// FindOne returns gorm.ErrRecordNotFound when the id is unknown; callers
// map that to a 404 rather than passing an empty record through.
func (s *GradeService) FindOne(id uuid.UUID) (*model.GradeModel, error) {
	var m model.GradeModel
	err := s.DB.
		Preload("Groups").
		Preload("Students").
		Where("grade_id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts the grade and its "created" audit row in one transaction,
// then broadcasts best-effort.
func (s *GradeService) Create(req dto.CreateGradeRequest, actorID uuid.UUID) (*model.GradeModel, error) {
	m := req.ToModel()
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return s.Audit.RecordCreated(tx, constants.EntityGrade, m.GradeID, m, actorID)
	})
	if err != nil {
		return nil, err
	}

	s.broadcast(m.GradeID)
	return m, nil
}

// Update applies the partial patch, then writes one audit row per changed
// scalar field, all inside the mutation's transaction.
func (s *GradeService) Update(id uuid.UUID, req dto.UpdateGradeRequest, actorID uuid.UUID) (*model.GradeModel, error) {
	var pre model.GradeModel
	if err := s.DB.Where("grade_id = ?", id).First(&pre).Error; err != nil {
		return nil, err
	}
	oldFields := pre.AuditFields()

	post := pre
	req.ApplyToModel(&post)

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&post).Error; err != nil {
			return err
		}
		_, err := s.Audit.RecordChanges(tx, constants.EntityGrade, id, oldFields, post.AuditFields(), actorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.broadcast(id)
	return s.FindOne(id)
}

// Remove deletes the grade and records the full pre-image under "deleted".
// The audit row is written after the delete, inside the same transaction,
// so a failed delete never leaves a false deletion trail.
func (s *GradeService) Remove(id uuid.UUID, actorID uuid.UUID) error {
	var pre model.GradeModel
	if err := s.DB.Where("grade_id = ?", id).First(&pre).Error; err != nil {
		return err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.GradeModel{}, "grade_id = ?", id).Error; err != nil {
			return err
		}
		return s.Audit.RecordDeleted(tx, constants.EntityGrade, id, &pre, actorID)
	})
	if err != nil {
		return err
	}

	s.broadcast(id)
	return nil
}

func (s *GradeService) broadcast(id uuid.UUID) {
	if s.Broadcast != nil {
		s.Broadcast.BroadcastGradeUpdate(id)
	}
}
