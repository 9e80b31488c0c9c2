// internals/features/school/students/service/student_service.go
package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartschool_backend/internals/constants"
	auditService "smartschool_backend/internals/features/audit/service"
	dto "smartschool_backend/internals/features/school/students/dto"
	model "smartschool_backend/internals/features/school/students/model"
)

// Broadcaster is the slice of the realtime hub this service needs.
type Broadcaster interface {
	BroadcastStudentUpdate(studentID uuid.UUID, groupID, gradeID *uuid.UUID)
}

type StudentService struct {
	DB        *gorm.DB
	Audit     *auditService.Recorder
	Broadcast Broadcaster
}

func NewStudentService(db *gorm.DB, audit *auditService.Recorder, broadcast Broadcaster) *StudentService {
	return &StudentService{DB: db, Audit: audit, Broadcast: broadcast}
}

func (s *StudentService) preloaded() *gorm.DB {
	return s.DB.
		Preload("Grade").
		Preload("Group")
}

func (s *StudentService) FindAll() ([]model.StudentModel, error) {
	var rows []model.StudentModel
	err := s.preloaded().
		Order("student_last_name ASC, student_first_name ASC").
		Find(&rows).Error
	return rows, err
}

func (s *StudentService) FindByGrade(gradeID uuid.UUID) ([]model.StudentModel, error) {
	var rows []model.StudentModel
	err := s.preloaded().
		Where("student_grade_id = ?", gradeID).
		Order("student_last_name ASC, student_first_name ASC").
		Find(&rows).Error
	return rows, err
}

func (s *StudentService) FindByGroup(groupID uuid.UUID) ([]model.StudentModel, error) {
	var rows []model.StudentModel
	err := s.preloaded().
		Where("student_group_id = ?", groupID).
		Order("student_last_name ASC, student_first_name ASC").
		Find(&rows).Error
	return rows, err
}

func (s *StudentService) FindOne(id uuid.UUID) (*model.StudentModel, error) {
	var m model.StudentModel
	if err := s.preloaded().Where("student_id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *StudentService) Create(req dto.CreateStudentRequest, actorID uuid.UUID) (*model.StudentModel, error) {
	m := req.ToModel()
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return s.Audit.RecordCreated(tx, constants.EntityStudent, m.StudentID, m, actorID)
	})
	if err != nil {
		return nil, err
	}

	s.broadcast(m.StudentID, &m.StudentGroupID, &m.StudentGradeID)
	return s.FindOne(m.StudentID)
}

func (s *StudentService) Update(id uuid.UUID, req dto.UpdateStudentRequest, actorID uuid.UUID) (*model.StudentModel, error) {
	var pre model.StudentModel
	if err := s.DB.Where("student_id = ?", id).First(&pre).Error; err != nil {
		return nil, err
	}
	oldFields := pre.AuditFields()

	post := pre
	req.ApplyToModel(&post)

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&post).Error; err != nil {
			return err
		}
		_, err := s.Audit.RecordChanges(tx, constants.EntityStudent, id, oldFields, post.AuditFields(), actorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	// A move between groups must refresh the old rooms too.
	s.broadcast(id, &pre.StudentGroupID, &pre.StudentGradeID)
	if post.StudentGroupID != pre.StudentGroupID || post.StudentGradeID != pre.StudentGradeID {
		s.broadcast(id, &post.StudentGroupID, &post.StudentGradeID)
	}
	return s.FindOne(id)
}

// Remove records the pre-image after the delete succeeds, inside the same
// transaction.
func (s *StudentService) Remove(id uuid.UUID, actorID uuid.UUID) error {
	var pre model.StudentModel
	if err := s.DB.Where("student_id = ?", id).First(&pre).Error; err != nil {
		return err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.StudentModel{}, "student_id = ?", id).Error; err != nil {
			return err
		}
		return s.Audit.RecordDeleted(tx, constants.EntityStudent, id, &pre, actorID)
	})
	if err != nil {
		return err
	}

	s.broadcast(id, &pre.StudentGroupID, &pre.StudentGradeID)
	return nil
}

func (s *StudentService) broadcast(id uuid.UUID, groupID, gradeID *uuid.UUID) {
	if s.Broadcast != nil {
		s.Broadcast.BroadcastStudentUpdate(id, groupID, gradeID)
	}
}
