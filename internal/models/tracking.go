package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ScreenActivity is a timed interval a user spends on a given screen.
// UsuarioID is nil for records that were never persisted (anonymous tracking
// is inert); persisted rows always carry an owner.
type ScreenActivity struct {
	ID               uuid.UUID       `json:"id"`
	UsuarioID        *uuid.UUID      `json:"usuario_id"`
	TipoPantalla     string          `json:"tipo_pantalla"`
	Inicio           time.Time       `json:"inicio"`
	Fin              *time.Time      `json:"fin,omitempty"`
	DuracionSegundos *int            `json:"duracion_segundos,omitempty"`
	Metadata         json.RawMessage `json:"metadata,omitempty"`
}

// StudySession bounds a user's continuous study engagement. At most one
// session per user has a nil Fin at any time.
type StudySession struct {
	ID              uuid.UUID  `json:"id"`
	UsuarioID       uuid.UUID  `json:"usuario_id"`
	TemaID          *string    `json:"tema_id,omitempty"`
	Inicio          time.Time  `json:"inicio"`
	Fin             *time.Time `json:"fin,omitempty"`
	DuracionMinutos *int       `json:"duracion_minutos,omitempty"`
}

// ReturnToContent marks a user navigating back to lesson content.
// Immutable once created.
type ReturnToContent struct {
	ID        uuid.UUID `json:"id"`
	UsuarioID uuid.UUID `json:"usuario_id"`
	TemaID    string    `json:"tema_id"`
	Motivo    string    `json:"motivo"`
	CreadoEn  time.Time `json:"creado_en"`
}

type StartActivityRequest struct {
	TipoPantalla string          `json:"tipo_pantalla"`
	Metadata     json.RawMessage `json:"metadata"`
}

type FinishActivityRequest struct {
	ActividadID *uuid.UUID `json:"actividad_id"`
}

type StartSessionRequest struct {
	TemaID *string `json:"tema_id"`
}

type ReturnToContentRequest struct {
	TemaID string `json:"tema_id"`
	Motivo string `json:"motivo"`
}
