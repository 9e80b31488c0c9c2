package service

import (
	"errors"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"smartschool_backend/internals/configs"
	"smartschool_backend/internals/constants"
	auditService "smartschool_backend/internals/features/audit/service"
	dto "smartschool_backend/internals/features/users/user/dto"
	model "smartschool_backend/internals/features/users/user/model"
)

// ErrLastManager guards against locking everyone out of the write path.
var ErrLastManager = errors.New("cannot remove or demote the last active manager")

type UserService struct {
	DB    *gorm.DB
	Audit *auditService.Recorder
}

func NewUserService(db *gorm.DB, audit *auditService.Recorder) *UserService {
	return &UserService{DB: db, Audit: audit}
}

func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *UserService) FindAll() ([]model.UserModel, error) {
	var rows []model.UserModel
	err := s.DB.Order("user_name ASC").Find(&rows).Error
	return rows, err
}

func (s *UserService) FindOne(id uuid.UUID) (*model.UserModel, error) {
	var m model.UserModel
	if err := s.DB.Where("user_id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *UserService) FindByEmail(email string) (*model.UserModel, error) {
	var m model.UserModel
	if err := s.DB.Where("user_email = ?", email).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *UserService) Create(req dto.CreateUserRequest, actorID uuid.UUID) (*model.UserModel, error) {
	hashed, err := HashPassword(req.UserPassword)
	if err != nil {
		return nil, err
	}
	m := req.ToModel()
	m.UserPassword = hashed

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return s.Audit.RecordCreated(tx, constants.EntityUser, m.UserID, m, actorID)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *UserService) Update(id uuid.UUID, req dto.UpdateUserRequest, actorID uuid.UUID) (*model.UserModel, error) {
	var pre model.UserModel
	if err := s.DB.Where("user_id = ?", id).First(&pre).Error; err != nil {
		return nil, err
	}
	oldFields := pre.AuditFields()

	post := pre
	req.ApplyToModel(&post)
	if req.UserPassword != nil {
		hashed, err := HashPassword(*req.UserPassword)
		if err != nil {
			return nil, err
		}
		post.UserPassword = hashed
	}

	demoted := pre.UserRole == constants.RoleManager &&
		(post.UserRole != constants.RoleManager || !post.UserIsActive)
	if demoted {
		ok, err := s.hasAnotherActiveManager(id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrLastManager
		}
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&post).Error; err != nil {
			return err
		}
		_, err := s.Audit.RecordChanges(tx, constants.EntityUser, id, oldFields, post.AuditFields(), actorID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Remove records the pre-image after the delete succeeds, inside the same
// transaction.
func (s *UserService) Remove(id uuid.UUID, actorID uuid.UUID) error {
	var pre model.UserModel
	if err := s.DB.Where("user_id = ?", id).First(&pre).Error; err != nil {
		return err
	}

	if pre.UserRole == constants.RoleManager {
		ok, err := s.hasAnotherActiveManager(id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrLastManager
		}
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.UserModel{}, "user_id = ?", id).Error; err != nil {
			return err
		}
		return s.Audit.RecordDeleted(tx, constants.EntityUser, id, &pre, actorID)
	})
}

func (s *UserService) hasAnotherActiveManager(excludeID uuid.UUID) (bool, error) {
	var count int64
	err := s.DB.Model(&model.UserModel{}).
		Where("user_role = ? AND user_is_active = ? AND user_id <> ?", constants.RoleManager, true, excludeID).
		Count(&count).Error
	return count > 0, err
}

// EnsureManagerAccount creates the bootstrap manager on an empty install so
// the system is never without a writer. Idempotent across restarts.
func (s *UserService) EnsureManagerAccount() error {
	var count int64
	if err := s.DB.Model(&model.UserModel{}).
		Where("user_role = ?", constants.RoleManager).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := HashPassword(configs.ManagerPassword)
	if err != nil {
		return err
	}
	m := &model.UserModel{
		UserEmail:    configs.ManagerEmail,
		UserPassword: hashed,
		UserName:     "Manager",
		UserRole:     constants.RoleManager,
		UserIsActive: true,
	}
	if err := s.DB.Create(m).Error; err != nil {
		return err
	}
	log.Printf("[INFO] bootstrap manager account created: %s", m.UserEmail)
	return nil
}
