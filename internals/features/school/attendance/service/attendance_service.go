package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartschool_backend/internals/constants"
	auditService "smartschool_backend/internals/features/audit/service"
	dto "smartschool_backend/internals/features/school/attendance/dto"
	model "smartschool_backend/internals/features/school/attendance/model"
)

type AttendanceService struct {
	DB    *gorm.DB
	Audit *auditService.Recorder
}

func NewAttendanceService(db *gorm.DB, audit *auditService.Recorder) *AttendanceService {
	return &AttendanceService{DB: db, Audit: audit}
}

func (s *AttendanceService) FindAll() ([]model.AttendanceModel, error) {
	var rows []model.AttendanceModel
	err := s.DB.Preload("Student").Order("attendance_date DESC").Find(&rows).Error
	return rows, err
}

func (s *AttendanceService) FindByStudent(studentID uuid.UUID) ([]model.AttendanceModel, error) {
	var rows []model.AttendanceModel
	err := s.DB.Preload("Student").
		Where("attendance_student_id = ?", studentID).
		Order("attendance_date DESC").
		Find(&rows).Error
	return rows, err
}

func (s *AttendanceService) FindByDate(day time.Time) ([]model.AttendanceModel, error) {
	var rows []model.AttendanceModel
	err := s.DB.Preload("Student").
		Where("attendance_date = ?", day.Format("2006-01-02")).
		Find(&rows).Error
	return rows, err
}

func (s *AttendanceService) FindOne(id uuid.UUID) (*model.AttendanceModel, error) {
	var m model.AttendanceModel
	if err := s.DB.Preload("Student").Where("attendance_id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *AttendanceService) Create(req dto.CreateAttendanceRequest, actorID uuid.UUID) (*model.AttendanceModel, error) {
	m, err := req.ToModel()
	if err != nil {
		return nil, err
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return s.Audit.RecordCreated(tx, constants.EntityAttendance, m.AttendanceID, m, actorID)
	})
	if err != nil {
		return nil, err
	}
	return s.FindOne(m.AttendanceID)
}

func (s *AttendanceService) Update(id uuid.UUID, req dto.UpdateAttendanceRequest, actorID uuid.UUID) (*model.AttendanceModel, error) {
	var pre model.AttendanceModel
	if err := s.DB.Where("attendance_id = ?", id).First(&pre).Error; err != nil {
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
		_, err := s.Audit.RecordChanges(tx, constants.EntityAttendance, id, oldFields, post.AuditFields(), actorID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.FindOne(id)
}

// Remove records the pre-image after the delete succeeds, inside the same
// transaction.
func (s *AttendanceService) Remove(id uuid.UUID, actorID uuid.UUID) error {
	var pre model.AttendanceModel
	if err := s.DB.Where("attendance_id = ?", id).First(&pre).Error; err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.AttendanceModel{}, "attendance_id = ?", id).Error; err != nil {
			return err
		}
		return s.Audit.RecordDeleted(tx, constants.EntityAttendance, id, &pre, actorID)
	})
}
