package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"matelog-backend/internal/models"
	"matelog-backend/internal/session"
)

// UserStore is the persistence surface the identity service needs.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateLastActivity(ctx context.Context, userID uuid.UUID, at time.Time) error
}

type IdentityService struct {
	users    UserStore
	sessions session.Store
	clock    Clock
}

func NewIdentityService(users UserStore, sessions session.Store, clock Clock) *IdentityService {
	return &IdentityService{users: users, sessions: sessions, clock: clock}
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func (s *IdentityService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	// Validate all fields at once
	fieldErrors := make(map[string]string)

	if req.Username == "" {
		fieldErrors["username"] = "El nombre de usuario es obligatorio"
	}
	if !emailRegex.MatchString(req.Email) {
		fieldErrors["email"] = "Formato de correo inválido"
	}
	if err := validatePassword(req.Password); err != nil {
		fieldErrors["password"] = err.Error()
	}
	validateChoices(fieldErrors, req.Grupo, req.Especialidad, req.Genero, req.Edad)

	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	// Check uniqueness. Taken username/email surface as 400 field errors,
	// the same shape the registration form renders for any other bad field.
	if _, err := s.users.GetByUsername(ctx, req.Username); err == nil {
		fieldErrors["username"] = "El nombre de usuario ya está en uso"
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		fieldErrors["email"] = "El correo ya está registrado"
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	// Hash password (bcrypt cost 12)
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Grupo:        req.Grupo,
		Especialidad: req.Especialidad,
		Genero:       req.Genero,
		Edad:         req.Edad,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and establishes a session. Unknown usernames
// and wrong passwords get the same message so the response does not reveal
// which one failed.
func (s *IdentityService) Login(ctx context.Context, req models.LoginRequest) (*models.User, string, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", &UnauthorizedError{Message: "Usuario o contraseña incorrectos"}
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", &UnauthorizedError{Message: "Usuario o contraseña incorrectos"}
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to establish session: %w", err)
	}

	now := s.clock.Now()
	s.users.UpdateLastActivity(ctx, user.ID, now)
	user.UltimaActividad = &now

	return user, token, nil
}

func (s *IdentityService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

func (s *IdentityService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Usuario no encontrado"}
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies a partial update: only non-nil fields are touched.
func (s *IdentityService) UpdateProfile(ctx context.Context, userID uuid.UUID, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	fieldErrors := make(map[string]string)

	if req.Email != nil {
		if !emailRegex.MatchString(*req.Email) {
			fieldErrors["email"] = "Formato de correo inválido"
		} else if existing, err := s.users.GetByEmail(ctx, *req.Email); err == nil && existing.ID != userID {
			fieldErrors["email"] = "El correo ya está registrado"
		} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}

	grupo, especialidad, genero, edad := user.Grupo, user.Especialidad, user.Genero, user.Edad
	if req.Grupo != nil {
		grupo = *req.Grupo
	}
	if req.Especialidad != nil {
		especialidad = *req.Especialidad
	}
	if req.Genero != nil {
		genero = *req.Genero
	}
	if req.Edad != nil {
		edad = *req.Edad
	}
	validateChoices(fieldErrors, grupo, especialidad, genero, edad)

	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	user.Grupo = grupo
	user.Especialidad = especialidad
	user.Genero = genero
	user.Edad = edad

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func validateChoices(fieldErrors map[string]string, grupo, especialidad, genero, edad string) {
	if !models.ValidChoice(models.GrupoChoices, grupo) {
		fieldErrors["grupo"] = "Grupo inválido"
	}
	if !models.ValidChoice(models.EspecialidadChoices, especialidad) {
		fieldErrors["especialidad"] = "Especialidad inválida"
	}
	if !models.ValidChoice(models.GeneroChoices, genero) {
		fieldErrors["genero"] = "Género inválido"
	}
	if !models.ValidChoice(models.EdadChoices, edad) {
		fieldErrors["edad"] = "Edad inválida"
	}
}

func validatePassword(pw string) error {
	if len(pw) < 8 {
		return fmt.Errorf("La contraseña debe tener al menos 8 caracteres")
	}
	hasNumber := false
	for _, ch := range pw {
		if unicode.IsDigit(ch) {
			hasNumber = true
			break
		}
	}
	if !hasNumber {
		return fmt.Errorf("La contraseña debe contener al menos un número")
	}
	return nil
}
