package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"matelog-backend/internal/models"
)

type ActivityStore interface {
	Create(ctx context.Context, a *models.ScreenActivity) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ScreenActivity, error)
	Close(ctx context.Context, id uuid.UUID, end time.Time, durationSeconds int) error
}

type StudySessionStore interface {
	Start(ctx context.Context, s *models.StudySession) error
	GetOpen(ctx context.Context, userID uuid.UUID) (*models.StudySession, error)
	Close(ctx context.Context, id uuid.UUID, end time.Time, durationMinutes int) error
}

type ReturnEventStore interface {
	Create(ctx context.Context, e *models.ReturnToContent) error
}

// TrackingService owns the OPEN -> CLOSED lifecycle of activity and study
// session records. Durations are wall-clock based and floored to whole
// seconds (activities) or whole minutes (study sessions).
type TrackingService struct {
	activities ActivityStore
	sessions   StudySessionStore
	returns    ReturnEventStore
	clock      Clock
}

func NewTrackingService(activities ActivityStore, sessions StudySessionStore, returns ReturnEventStore, clock Clock) *TrackingService {
	return &TrackingService{activities: activities, sessions: sessions, returns: returns, clock: clock}
}

func (s *TrackingService) StartActivity(ctx context.Context, userID uuid.UUID, tipoPantalla string, metadata json.RawMessage) (*models.ScreenActivity, error) {
	if tipoPantalla == "" {
		return nil, &ValidationError{Fields: map[string]string{"tipo_pantalla": "El tipo de pantalla es obligatorio"}}
	}

	activity := &models.ScreenActivity{
		UsuarioID:    &userID,
		TipoPantalla: tipoPantalla,
		Inicio:       s.clock.Now(),
		Metadata:     metadata,
	}

	if err := s.activities.Create(ctx, activity); err != nil {
		return nil, err
	}

	return activity, nil
}

// FinishActivity closes the record and returns its duration in whole
// seconds. Closing an already-closed record is a no-op that reports the
// stored duration; the CLOSED state is terminal.
func (s *TrackingService) FinishActivity(ctx context.Context, activityID uuid.UUID) (int, error) {
	activity, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, &NotFoundError{Message: "Actividad no encontrada"}
		}
		return 0, err
	}

	if activity.Fin != nil {
		if activity.DuracionSegundos != nil {
			return *activity.DuracionSegundos, nil
		}
		return 0, nil
	}

	end := s.clock.Now()
	duration := flooredSeconds(activity.Inicio, end)

	if err := s.activities.Close(ctx, activityID, end, duration); err != nil {
		// Lost a race with another finish: the stored duration wins.
		if errors.Is(err, pgx.ErrNoRows) {
			if closed, gerr := s.activities.GetByID(ctx, activityID); gerr == nil && closed.DuracionSegundos != nil {
				return *closed.DuracionSegundos, nil
			}
		}
		return 0, err
	}

	return duration, nil
}

func (s *TrackingService) StartSession(ctx context.Context, userID uuid.UUID, temaID *string) (*models.StudySession, error) {
	sess := &models.StudySession{
		UsuarioID: userID,
		TemaID:    temaID,
		Inicio:    s.clock.Now(),
	}

	if err := s.sessions.Start(ctx, sess); err != nil {
		return nil, err
	}

	return sess, nil
}

func (s *TrackingService) FinishSession(ctx context.Context, userID uuid.UUID) (int, error) {
	sess, err := s.sessions.GetOpen(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, &NotFoundError{Message: "Sesión no encontrada"}
		}
		return 0, err
	}

	end := s.clock.Now()
	duration := flooredMinutes(sess.Inicio, end)

	if err := s.sessions.Close(ctx, sess.ID, end, duration); err != nil {
		return 0, err
	}

	return duration, nil
}

func (s *TrackingService) RecordReturn(ctx context.Context, userID uuid.UUID, temaID, motivo string) (*models.ReturnToContent, error) {
	if temaID == "" {
		return nil, &ValidationError{Fields: map[string]string{"tema_id": "El tema es obligatorio"}}
	}

	event := &models.ReturnToContent{
		UsuarioID: userID,
		TemaID:    temaID,
		Motivo:    motivo,
		CreadoEn:  s.clock.Now(),
	}

	if err := s.returns.Create(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

func flooredSeconds(start, end time.Time) int {
	d := int(end.Sub(start).Seconds())
	if d < 0 {
		return 0
	}
	return d
}

func flooredMinutes(start, end time.Time) int {
	d := int(end.Sub(start).Minutes())
	if d < 0 {
		return 0
	}
	return d
}
