package dto

import (
	"time"

	"github.com/balayogigmcs/labms/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	Role      domain.Role `json:"role"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// CreateUserRequest payload for account provisioning.
type CreateUserRequest struct {
	Email      string            `json:"email"`
	Password   string            `json:"password"`
	Role       domain.Role       `json:"role"`
	Department domain.Department `json:"department"`
	ClientName string            `json:"client_name"`
}

// UpdateUserRoleRequest payload.
type UpdateUserRoleRequest struct {
	Role       domain.Role       `json:"role"`
	Department domain.Department `json:"department"`
}

// UserResponse omits credential material.
type UserResponse struct {
	ID         string            `json:"id"`
	Email      string            `json:"email"`
	Role       domain.Role       `json:"role"`
	Department domain.Department `json:"department"`
	ClientName string            `json:"client_name,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}
