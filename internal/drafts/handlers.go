package drafts

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fitdesk/nutrition-hub/internal/userctx"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for wizard drafts.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func requestIDFromPath(r *http.Request) (uuid.UUID, bool) {
	raw := r.PathValue("requestID")
	id, err := uuid.Parse(raw)
	return id, err == nil
}

// HandleGet handles GET /v1/diet-plans/drafts/{requestID}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nutritionistID, _ := userctx.GetUserID(ctx)

	requestID, ok := requestIDFromPath(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request id")
		return
	}

	snap, found, err := h.service.Load(ctx, nutritionistID, requestID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to load draft")
		return
	}

	resp := GetDraftResponse{Draft: snap}
	if found {
		resp.HasProgress = snap.CurrentStep > 1
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// HandleSave handles PUT /v1/diet-plans/drafts/{requestID}
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nutritionistID, _ := userctx.GetUserID(ctx)

	requestID, ok := requestIDFromPath(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request id")
		return
	}

	var snap Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	result, err := h.service.Save(ctx, nutritionistID, requestID, snap)
	if err != nil {
		if strings.HasPrefix(err.Error(), "validation failed: ") {
			writeError(w, http.StatusBadRequest, "invalid_request", strings.TrimPrefix(err.Error(), "validation failed: "))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to save draft")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}

// HandleClear handles DELETE /v1/diet-plans/drafts/{requestID}
func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nutritionistID, _ := userctx.GetUserID(ctx)

	requestID, ok := requestIDFromPath(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request id")
		return
	}

	if err := h.service.Clear(ctx, nutritionistID, requestID); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to clear draft")
		return
	}

	w.WriteHeader(http.StatusNoContent)
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
