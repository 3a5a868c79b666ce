package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"matelog-backend/internal/models"
)

type StudySessionRepo struct {
	pool *pgxpool.Pool
}

func NewStudySessionRepo(pool *pgxpool.Pool) *StudySessionRepo {
	return &StudySessionRepo{pool: pool}
}

// Start force-closes any open session for the user and inserts the new one
// in a single transaction, so two concurrent starts cannot both leave an
// open session behind.
func (r *StudySessionRepo) Start(ctx context.Context, s *models.StudySession) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE sesiones_estudio
		SET fin = $2,
			duracion_minutos = GREATEST(0, FLOOR(EXTRACT(EPOCH FROM ($2 - inicio)) / 60))::INT
		WHERE usuario_id = $1
		  AND fin IS NULL
	`, s.UsuarioID, s.Inicio)
	if err != nil {
		return err
	}

	s.ID = uuid.New()

	_, err = tx.Exec(ctx, `
		INSERT INTO sesiones_estudio (id, usuario_id, tema_id, inicio)
		VALUES ($1, $2, $3, $4)
	`, s.ID, s.UsuarioID, s.TemaID, s.Inicio)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetOpen returns the user's most recently started session without an end
// timestamp.
func (r *StudySessionRepo) GetOpen(ctx context.Context, userID uuid.UUID) (*models.StudySession, error) {
	s := &models.StudySession{}
	query := `SELECT id, usuario_id, tema_id, inicio, fin, duracion_minutos
		FROM sesiones_estudio
		WHERE usuario_id = $1 AND fin IS NULL
		ORDER BY inicio DESC
		LIMIT 1`

	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&s.ID, &s.UsuarioID, &s.TemaID, &s.Inicio, &s.Fin, &s.DuracionMinutos,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *StudySessionRepo) Close(ctx context.Context, id uuid.UUID, end time.Time, durationMinutes int) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE sesiones_estudio
		SET fin = $2, duracion_minutos = $3
		WHERE id = $1 AND fin IS NULL
	`, id, end, durationMinutes)
	return err
}
