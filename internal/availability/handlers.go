package availability

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/fitdesk/nutrition-hub/internal/userctx"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for availability.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleGetRules handles GET /v1/availability
func (h *Handler) HandleGetRules(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nutritionistID, _ := userctx.GetUserID(ctx)

	rules, err := h.service.GetRules(ctx, nutritionistID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to get availability")
		return
	}

	writeJSON(w, http.StatusOK, GetAvailabilityResponse{Rules: rules})
}

// HandleReplaceRules handles PUT /v1/availability
func (h *Handler) HandleReplaceRules(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nutritionistID, _ := userctx.GetUserID(ctx)

	var req ReplaceRulesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	rules, err := h.service.ReplaceRules(ctx, nutritionistID, req)
	if err != nil {
		if strings.HasPrefix(err.Error(), "validation failed: ") {
			writeError(w, http.StatusBadRequest, "invalid_request", strings.TrimPrefix(err.Error(), "validation failed: "))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to replace availability")
		return
	}

	writeJSON(w, http.StatusOK, GetAvailabilityResponse{Rules: rules})
}

// HandleGetSlots handles GET /v1/availability/slots?date=YYYY-MM-DD
func (h *Handler) HandleGetSlots(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nutritionistID, _ := userctx.GetUserID(ctx)

	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "date is required")
		return
	}

	slots, err := h.service.SlotsForDate(ctx, nutritionistID, date)
	if err != nil {
		if strings.Contains(err.Error(), "invalid date") {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to get slots")
		return
	}

	writeJSON(w, http.StatusOK, GetSlotsResponse{Date: date, Slots: slots})
}

// HandleGetSchedule handles GET /v1/availability/schedule?from=&to=
func (h *Handler) HandleGetSchedule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nutritionistID, _ := userctx.GetUserID(ctx)

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "from and to are required")
		return
	}

	schedule, err := h.service.Schedule(ctx, nutritionistID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, ErrRangeTooWide):
			writeError(w, http.StatusBadRequest, "range_too_wide", err.Error())
		case strings.Contains(err.Error(), "invalid"), strings.Contains(err.Error(), "before"):
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", "Failed to get schedule")
		}
		return
	}

	writeJSON(w, http.StatusOK, schedule)
}

// HandleCreateBlock handles POST /v1/availability/blocks
func (h *Handler) HandleCreateBlock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nutritionistID, _ := userctx.GetUserID(ctx)

	var req CreateBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	block, err := h.service.CreateBlock(ctx, nutritionistID, req)
	if err != nil {
		if strings.HasPrefix(err.Error(), "validation failed: ") {
			writeError(w, http.StatusBadRequest, "invalid_request", strings.TrimPrefix(err.Error(), "validation failed: "))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to create block")
		return
	}

	writeJSON(w, http.StatusCreated, block)
}

// HandleDeleteBlock handles DELETE /v1/availability/blocks/{id}
func (h *Handler) HandleDeleteBlock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nutritionistID, _ := userctx.GetUserID(ctx)

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid block id")
		return
	}

	if err := h.service.DeleteBlock(ctx, nutritionistID, id); err != nil {
		if errors.Is(err, ErrBlockNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to delete block")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
