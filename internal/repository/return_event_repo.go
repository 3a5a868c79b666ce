package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"matelog-backend/internal/models"
)

type ReturnEventRepo struct {
	pool *pgxpool.Pool
}

func NewReturnEventRepo(pool *pgxpool.Pool) *ReturnEventRepo {
	return &ReturnEventRepo{pool: pool}
}

func (r *ReturnEventRepo) Create(ctx context.Context, e *models.ReturnToContent) error {
	e.ID = uuid.New()

	query := `
		INSERT INTO vueltas_contenido (id, usuario_id, tema_id, motivo, creado_en)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query, e.ID, e.UsuarioID, e.TemaID, e.Motivo, e.CreadoEn)
	return err
}
