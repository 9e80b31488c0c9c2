package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "smartschool_backend/internals/features/users/user/model"
)

/* ===================== REQUESTS ===================== */

type CreateUserRequest struct {
	UserEmail    string `json:"user_email" validate:"required,email,max=160"`
	UserPassword string `json:"user_password" validate:"required,min=8,max=72"`
	UserName     string `json:"user_name" validate:"required,min=1,max=120"`
	UserRole     string `json:"user_role" validate:"required,oneof=manager teacher student parent staff"`
}

func (r CreateUserRequest) ToModel() *model.UserModel {
	return &model.UserModel{
		UserEmail:    strings.ToLower(strings.TrimSpace(r.UserEmail)),
		UserName:     strings.TrimSpace(r.UserName),
		UserRole:     r.UserRole,
		UserIsActive: true,
	}
}

type UpdateUserRequest struct {
	UserEmail    *string `json:"user_email" validate:"omitempty,email,max=160"`
	UserPassword *string `json:"user_password" validate:"omitempty,min=8,max=72"`
	UserName     *string `json:"user_name" validate:"omitempty,min=1,max=120"`
	UserRole     *string `json:"user_role" validate:"omitempty,oneof=manager teacher student parent staff"`
	UserIsActive *bool   `json:"user_is_active"`
}

// ApplyToModel sets only the fields present in the request. The password is
// handled separately because it needs hashing.
func (r *UpdateUserRequest) ApplyToModel(m *model.UserModel) {
	if r.UserEmail != nil {
		m.UserEmail = strings.ToLower(strings.TrimSpace(*r.UserEmail))
	}
	if r.UserName != nil {
		m.UserName = strings.TrimSpace(*r.UserName)
	}
	if r.UserRole != nil && *r.UserRole != "" {
		m.UserRole = *r.UserRole
	}
	if r.UserIsActive != nil {
		m.UserIsActive = *r.UserIsActive
	}
}

/* ===================== RESPONSES ===================== */

type UserResponse struct {
	UserID        uuid.UUID `json:"user_id"`
	UserEmail     string    `json:"user_email"`
	UserName      string    `json:"user_name"`
	UserRole      string    `json:"user_role"`
	UserIsActive  bool      `json:"user_is_active"`
	UserCreatedAt time.Time `json:"user_created_at"`
	UserUpdatedAt time.Time `json:"user_updated_at"`
}

func NewUserResponse(m *model.UserModel) *UserResponse {
	return &UserResponse{
		UserID:        m.UserID,
		UserEmail:     m.UserEmail,
		UserName:      m.UserName,
		UserRole:      m.UserRole,
		UserIsActive:  m.UserIsActive,
		UserCreatedAt: m.UserCreatedAt,
		UserUpdatedAt: m.UserUpdatedAt,
	}
}

func NewUserResponses(rows []model.UserModel) []*UserResponse {
	resp := make([]*UserResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, NewUserResponse(&rows[i]))
	}
	return resp
}
