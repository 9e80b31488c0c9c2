package dto

import (
	userDto "smartschool_backend/internals/features/users/user/dto"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string                `json:"access_token"`
	User        *userDto.UserResponse `json:"user"`
}
