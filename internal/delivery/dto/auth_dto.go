package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type SignupRequest struct {
	Username             string `json:"username" validate:"required,alphanum"`
	Password             string `json:"password" validate:"required,min=8"`
	Email                string `json:"email" validate:"required,email"`
	FirstName            string `json:"firstName" validate:"required,alpha"`
	LastName             string `json:"lastName" validate:"required,alpha"`
	IDNumber             string `json:"IDNumber" validate:"required,id_number"`
	Role                 string `json:"role" validate:"required,oneof=patient doctor secretary"`
	SocialSecurityNumber string `json:"socialSecurityNumber" validate:"required_if=Role patient,omitempty,ssn"`
	Specialty            string `json:"specialty" validate:"required_if=Role doctor,omitempty,alpha_space"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response DTOs

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}
