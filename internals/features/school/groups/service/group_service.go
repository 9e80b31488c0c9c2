// internals/features/school/groups/service/group_service.go
package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartschool_backend/internals/constants"
	auditService "smartschool_backend/internals/features/audit/service"
	dto "smartschool_backend/internals/features/school/groups/dto"
	model "smartschool_backend/internals/features/school/groups/model"
)

// Broadcaster is the slice of the realtime hub this service needs.
type Broadcaster interface {
	BroadcastGroupUpdate(groupID uuid.UUID, gradeID *uuid.UUID)
}

type GroupService struct {
	DB        *gorm.DB
	Audit     *auditService.Recorder
	Broadcast Broadcaster
}

func NewGroupService(db *gorm.DB, audit *auditService.Recorder, broadcast Broadcaster) *GroupService {
	return &GroupService{DB: db, Audit: audit, Broadcast: broadcast}
}

func (s *GroupService) preloaded() *gorm.DB {
	return s.DB.
		Preload("Grade").
		Preload("Teacher").
		Preload("Students")
}

func (s *GroupService) FindAll() ([]model.GroupModel, error) {
	var rows []model.GroupModel
	err := s.preloaded().Order("group_name ASC").Find(&rows).Error
	return rows, err
}

func (s *GroupService) FindByGrade(gradeID uuid.UUID) ([]model.GroupModel, error) {
	var rows []model.GroupModel
	err := s.preloaded().
		Where("group_grade_id = ?", gradeID).
		Order("group_name ASC").
		Find(&rows).Error
	return rows, err
}

func (s *GroupService) FindOne(id uuid.UUID) (*model.GroupModel, error) {
	var m model.GroupModel
	if err := s.preloaded().Where("group_id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GroupService) Create(req dto.CreateGroupRequest, actorID uuid.UUID) (*model.GroupModel, error) {
	m := req.ToModel()
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return s.Audit.RecordCreated(tx, constants.EntityGroup, m.GroupID, m, actorID)
	})
	if err != nil {
		return nil, err
	}

	s.broadcast(m.GroupID, &m.GroupGradeID)
	return m, nil
}

func (s *GroupService) Update(id uuid.UUID, req dto.UpdateGroupRequest, actorID uuid.UUID) (*model.GroupModel, error) {
	var pre model.GroupModel
	if err := s.DB.Where("group_id = ?", id).First(&pre).Error; err != nil {
		return nil, err
	}
	oldFields := pre.AuditFields()

	post := pre
	req.ApplyToModel(&post)

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&post).Error; err != nil {
			return err
		}
		_, err := s.Audit.RecordChanges(tx, constants.EntityGroup, id, oldFields, post.AuditFields(), actorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.broadcast(id, &post.GroupGradeID)
	return s.FindOne(id)
}

// Remove records the pre-image after the delete succeeds, inside the same
// transaction.
func (s *GroupService) Remove(id uuid.UUID, actorID uuid.UUID) error {
	var pre model.GroupModel
	if err := s.DB.Where("group_id = ?", id).First(&pre).Error; err != nil {
		return err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.GroupModel{}, "group_id = ?", id).Error; err != nil {
			return err
		}
		return s.Audit.RecordDeleted(tx, constants.EntityGroup, id, &pre, actorID)
	})
	if err != nil {
		return err
	}

	s.broadcast(id, &pre.GroupGradeID)
	return nil
}

func (s *GroupService) broadcast(id uuid.UUID, gradeID *uuid.UUID) {
	if s.Broadcast != nil {
		s.Broadcast.BroadcastGroupUpdate(id, gradeID)
	}
}
