package handler

import (
	"github.com/sssf/cats-api/internal/core/domain"
	"github.com/sssf/cats-api/internal/core/ports"
)

type registerRequest struct {
	UserName string `json:"user_name" validate:"required,min=3"`
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=5"`
}

func (r registerRequest) toInput() ports.RegisterInput {
	return ports.RegisterInput{Name: r.UserName, Email: r.Email, Password: r.Password}
}

// updateUserRequest validates only the fields present in the body. Role is
// honoured on admin updates and ignored on self-updates.
type updateUserRequest struct {
	UserName *string `json:"user_name" validate:"omitempty,min=3"`
	Email    *string `json:"email"     validate:"omitempty,email"`
	Password *string `json:"password"  validate:"omitempty,min=5"`
	Role     *string `json:"role"      validate:"omitempty,oneof=user admin"`
}

func (r updateUserRequest) toPatch() domain.UserPatch {
	patch := domain.UserPatch{
		Name:     r.UserName,
		Email:    r.Email,
		Password: r.Password,
	}
	if r.Role != nil {
		role := domain.Role(*r.Role)
		patch.Role = &role
	}
	return patch
}

type registerResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}
