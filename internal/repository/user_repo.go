package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"matelog-backend/internal/models"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO usuarios (id, username, email, password_hash, grupo, especialidad, genero, edad)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING fecha_registro`

	user.ID = uuid.New()

	return r.pool.QueryRow(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash,
		user.Grupo, user.Especialidad, user.Genero, user.Edad,
	).Scan(&user.FechaRegistro)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, "username = $1", username)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, "email = $1", email)
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *UserRepo) getOne(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, username, email, password_hash, grupo, especialidad, genero, edad, fecha_registro, ultima_actividad
		FROM usuarios WHERE ` + where

	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Grupo, &user.Especialidad, &user.Genero, &user.Edad,
		&user.FechaRegistro, &user.UltimaActividad,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepo) Update(ctx context.Context, user *models.User) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE usuarios SET email = $1, grupo = $2, especialidad = $3, genero = $4, edad = $5 WHERE id = $6`,
		user.Email, user.Grupo, user.Especialidad, user.Genero, user.Edad, user.ID,
	)
	return err
}

func (r *UserRepo) UpdateLastActivity(ctx context.Context, userID uuid.UUID, at time.Time) error {
	_, err := r.pool.Exec(ctx, "UPDATE usuarios SET ultima_actividad = $1 WHERE id = $2", at, userID)
	return err
}
