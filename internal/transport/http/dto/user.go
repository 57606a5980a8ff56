package dto

import (
	"movie_catalog/internal/domain/models"
)

// UserRegisterInput carries the registration payload.
type UserRegisterInput struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	ProfileImageURL string `json:"profile_image_url" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8,max=64"`
	PhoneNumber     string `json:"phone_number"`
}

func (input UserRegisterInput) ToDomain(passwordHash []byte) *models.User {
	return &models.User{
		Name:            input.Name,
		Email:           input.Email,
		ProfileImageURL: input.ProfileImageURL,
		Password:        passwordHash,
		PhoneNumber:     input.PhoneNumber,
	}
}
