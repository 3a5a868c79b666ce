package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"matelog-backend/internal/models"
)

type ScreenActivityRepo struct {
	pool *pgxpool.Pool
}

func NewScreenActivityRepo(pool *pgxpool.Pool) *ScreenActivityRepo {
	return &ScreenActivityRepo{pool: pool}
}

func (r *ScreenActivityRepo) Create(ctx context.Context, a *models.ScreenActivity) error {
	if len(a.Metadata) == 0 {
		a.Metadata = json.RawMessage("{}")
	}

	a.ID = uuid.New()

	query := `
		INSERT INTO actividades_pantalla (id, usuario_id, tipo_pantalla, inicio, metadata)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query, a.ID, a.UsuarioID, a.TipoPantalla, a.Inicio, a.Metadata)
	return err
}

func (r *ScreenActivityRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ScreenActivity, error) {
	a := &models.ScreenActivity{}
	query := `SELECT id, usuario_id, tipo_pantalla, inicio, fin, duracion_segundos, metadata
		FROM actividades_pantalla WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.UsuarioID, &a.TipoPantalla, &a.Inicio, &a.Fin, &a.DuracionSegundos, &a.Metadata,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Close is the single mutation an activity record ever receives.
func (r *ScreenActivityRepo) Close(ctx context.Context, id uuid.UUID, end time.Time, durationSeconds int) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE actividades_pantalla
		SET fin = $2, duracion_segundos = $3
		WHERE id = $1 AND fin IS NULL
	`, id, end, durationSeconds)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
