package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"matelog-backend/internal/middleware"
	"matelog-backend/internal/models"
	"matelog-backend/internal/services"
)

type TrackingHandler struct {
	tracking *services.TrackingService
	clock    services.Clock
}

func NewTrackingHandler(tracking *services.TrackingService, clock services.Clock) *TrackingHandler {
	return &TrackingHandler{tracking: tracking, clock: clock}
}

// StartActivity opens a screen-activity record. Anonymous callers get an
// inert success with a null id instead of an error.
func (h *TrackingHandler) StartActivity(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if userID == uuid.Nil {
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"actividad_id": nil,
			"timestamp":    h.clock.Now(),
			"message":      "Tracking skipped for anonymous user",
		})
		return
	}

	var req models.StartActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Cuerpo de la solicitud inválido", r))
		return
	}

	activity, err := h.tracking.StartActivity(r.Context(), userID, req.TipoPantalla, req.Metadata)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"actividad_id": activity.ID,
		"timestamp":    activity.Inicio,
	})
}

// FinishActivity closes a record. A null actividad_id mirrors the anonymous
// start: success with duration 0, nothing touched.
func (h *TrackingHandler) FinishActivity(w http.ResponseWriter, r *http.Request) {
	var req models.FinishActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Cuerpo de la solicitud inválido", r))
		return
	}

	if req.ActividadID == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":           "Tracking skipped for anonymous user",
			"duracion_segundos": 0,
		})
		return
	}

	duration, err := h.tracking.FinishActivity(r.Context(), *req.ActividadID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":           "Actividad finalizada",
		"duracion_segundos": duration,
	})
}

func (h *TrackingHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.StartSessionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Cuerpo de la solicitud inválido", r))
			return
		}
	}

	sess, err := h.tracking.StartSession(r.Context(), userID, req.TemaID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"sesion_id": sess.ID,
		"timestamp": sess.Inicio,
	})
}

func (h *TrackingHandler) FinishSession(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	duration, err := h.tracking.FinishSession(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":          "Sesión finalizada",
		"duracion_minutos": duration,
	})
}

func (h *TrackingHandler) ReturnToContent(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.ReturnToContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Cuerpo de la solicitud inválido", r))
		return
	}

	event, err := h.tracking.RecordReturn(r.Context(), userID, req.TemaID, req.Motivo)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Registro de volver a contenido creado",
		"id":      event.ID,
	})
}
