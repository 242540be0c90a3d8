package dietrequests

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fitdesk/nutrition-hub/internal/storage"
	"github.com/fitdesk/nutrition-hub/internal/userctx"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for diet plan requests.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleList handles GET /v1/diet-requests?bucket=
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nutritionistID, _ := userctx.GetUserID(ctx)

	bucket := r.URL.Query().Get("bucket")
	requests, err := h.service.List(ctx, nutritionistID, bucket)
	if err != nil {
		h.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(ListDietRequestsResponse{Requests: requests})
}

// HandleGet handles GET /v1/diet-requests/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nutritionistID, _ := userctx.GetUserID(ctx)

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request id")
		return
	}

	dto, err := h.service.Get(ctx, nutritionistID, id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(dto)
}

// HandleUpdate handles PATCH /v1/diet-requests/{id}.
// The payload selects the transition:
//   - status=approved            -> Approve (preparation_time required)
//   - status=rejected            -> Reject (nutritionist_notes required)
//   - status=completed+meal_plan -> CompleteDirectly
//   - status=completed           -> FinalizeReview
//   - diet_plan_completed=true   -> MarkDietPlanComplete
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nutritionistID, _ := userctx.GetUserID(ctx)

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request id")
		return
	}

	var payload UpdateDietRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	var dto DietRequestDTO
	switch {
	case payload.Status != nil && *payload.Status == storage.StatusApproved:
		dto, err = h.service.Approve(ctx, nutritionistID, id,
			strValue(payload.NutritionistNotes),
			strValue(payload.PreparationTime),
			strValue(payload.MealPlan))

	case payload.Status != nil && *payload.Status == storage.StatusRejected:
		dto, err = h.service.Reject(ctx, nutritionistID, id, strValue(payload.NutritionistNotes))

	case payload.Status != nil && *payload.Status == storage.StatusCompleted && payload.MealPlan != nil:
		dto, err = h.service.CompleteDirectly(ctx, nutritionistID, id, *payload.MealPlan)

	case payload.Status != nil && *payload.Status == storage.StatusCompleted:
		dto, err = h.service.FinalizeReview(ctx, nutritionistID, id)

	case payload.Status == nil && payload.DietPlanCompleted != nil && *payload.DietPlanCompleted:
		dto, err = h.service.MarkDietPlanComplete(ctx, nutritionistID, id)

	default:
		writeError(w, http.StatusBadRequest, "invalid_request", "payload does not describe a known transition")
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

func strValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ErrUnknownBucket),
		errors.Is(err, ErrNotesRequired),
		errors.Is(err, ErrPreparationTimeRequired),
		errors.Is(err, ErrMealPlanRequired):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, ErrNotPending),
		errors.Is(err, ErrNotApproved),
		errors.Is(err, ErrTerminalStatus),
		errors.Is(err, ErrAlreadyCompleted),
		errors.Is(err, ErrPlanNotCompleted):
		writeError(w, http.StatusConflict, "invalid_transition", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to update diet request")
	}
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
