package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID              uuid.UUID  `json:"id"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	PasswordHash    string     `json:"-"`
	Grupo           string     `json:"grupo"`
	Especialidad    string     `json:"especialidad"`
	Genero          string     `json:"genero"`
	Edad            string     `json:"edad"`
	FechaRegistro   time.Time  `json:"fecha_registro"`
	UltimaActividad *time.Time `json:"ultima_actividad"`
}

type RegisterRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Grupo        string `json:"grupo"`
	Especialidad string `json:"especialidad"`
	Genero       string `json:"genero"`
	Edad         string `json:"edad"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries a partial update: nil fields are left untouched.
type UpdateProfileRequest struct {
	Email        *string `json:"email"`
	Grupo        *string `json:"grupo"`
	Especialidad *string `json:"especialidad"`
	Genero       *string `json:"genero"`
	Edad         *string `json:"edad"`
}

// API Error response
type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}
