package handlers

import (
	"encoding/json"
	"net/http"

	"matelog-backend/internal/middleware"
	"matelog-backend/internal/models"
	"matelog-backend/internal/services"
	"matelog-backend/internal/session"
)

type UserHandler struct {
	identity *services.IdentityService
	cookie   session.Cookie
}

func NewUserHandler(identity *services.IdentityService, cookie session.Cookie) *UserHandler {
	return &UserHandler{identity: identity, cookie: cookie}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Cuerpo de la solicitud inválido", r))
		return
	}

	user, err := h.identity.Register(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Usuario registrado exitosamente",
		"user":    user,
	})
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Cuerpo de la solicitud inválido", r))
		return
	}

	user, token, err := h.identity.Login(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	h.cookie.Write(w, token)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login exitoso",
		"usuario": user,
	})
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := session.TokenFromRequest(r)
	if err := h.identity.Logout(r.Context(), token); err != nil {
		handleServiceError(w, r, err)
		return
	}

	h.cookie.Clear(w)

	writeJSON(w, http.StatusOK, map[string]string{"message": "Logout exitoso"})
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.identity.GetProfile(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Cuerpo de la solicitud inválido", r))
		return
	}

	user, err := h.identity.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Choices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.AllChoices())
}

// CSRFToken exists for compatibility with old clients; CSRF protection is
// handled by SameSite cookie attributes.
func (h *UserHandler) CSRFToken(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"csrfToken": "csrf-disabled",
		"detail":    "CSRF temporarily disabled",
	})
}

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

func errorRespWithFields(code, message string, fields map[string]string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			Fields:    fields,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch e := err.(type) {
	case *services.ValidationError:
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validación fallida", e.Fields, r))
	case *services.ConflictError:
		writeJSON(w, http.StatusConflict, errorResp("CONFLICT", e.Message, r))
	case *services.NotFoundError:
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", e.Message, r))
	case *services.UnauthorizedError:
		writeJSON(w, http.StatusUnauthorized, errorResp("UNAUTHORIZED", e.Message, r))
	case *services.ForbiddenError:
		writeJSON(w, http.StatusForbidden, errorResp("FORBIDDEN", e.Message, r))
	case *services.RateLimitError:
		writeJSON(w, http.StatusTooManyRequests, errorResp("RATE_LIMITED", e.Message, r))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Ocurrió un error inesperado", r))
	}
}
