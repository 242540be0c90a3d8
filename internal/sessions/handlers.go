package sessions

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fitdesk/nutrition-hub/internal/storage"
	"github.com/fitdesk/nutrition-hub/internal/userctx"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for session requests.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleList handles GET /v1/session-requests
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nutritionistID, _ := userctx.GetUserID(ctx)

	requests, err := h.service.List(ctx, nutritionistID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to list session requests")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(ListSessionRequestsResponse{Requests: requests})
}

// HandleUpdate handles PATCH /v1/session-requests/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nutritionistID, _ := userctx.GetUserID(ctx)

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid session request id")
		return
	}

	var payload UpdateSessionRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}
	if payload.Status == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "status is required")
		return
	}

	var dto SessionRequestDTO
	switch *payload.Status {
	case storage.StatusApproved:
		dto, err = h.service.Approve(ctx, nutritionistID, id,
			strValue(payload.ApprovedDate),
			strValue(payload.ApprovedTime),
			intValue(payload.SessionPriceCents),
			strValue(payload.NutritionistNotes))
	case storage.StatusRejected:
		dto, err = h.service.Reject(ctx, nutritionistID, id, strValue(payload.NutritionistNotes))
	default:
		writeError(w, http.StatusBadRequest, "invalid_request", "status must be approved or rejected")
		return
	}
	if err != nil {
		h.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(dto)
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ErrScheduleMissing),
		errors.Is(err, ErrPriceInvalid),
		errors.Is(err, ErrNotesRequired):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, ErrNotPending):
		writeError(w, http.StatusConflict, "invalid_transition", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to update session request")
	}
}

func strValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func intValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
