package dto

import (
	"time"

	"github.com/google/uuid"
)

type ProfileResponse struct {
	Id               uuid.UUID `json:"id"`
	Email            string    `json:"email"`
	FullName         string    `json:"full_name"`
	Role             string    `json:"role"`
	DisplayName      string    `json:"display_name"`
	Bio              *string   `json:"bio,omitempty"`
	Specialty        *string   `json:"specialty,omitempty"`
	OrganizationName *string   `json:"organization_name,omitempty"`
	AvatarURL        *string   `json:"avatar_url,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type UpdateProfileRequest struct {
	DisplayName      string  `json:"display_name" validate:"required,min=2,max=80"`
	Bio              *string `json:"bio" validate:"omitempty,max=1000"`
	Specialty        *string `json:"specialty" validate:"omitempty,max=120"`
	OrganizationName *string `json:"organization_name" validate:"omitempty,max=120"`
}
