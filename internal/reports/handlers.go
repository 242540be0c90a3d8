package reports

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/fitdesk/nutrition-hub/internal/userctx"
	"github.com/google/uuid"
)

// Handler handles HTTP requests for plan exports.
type Handler struct {
	generator *Generator
}

func NewHandler(generator *Generator) *Handler {
	return &Handler{generator: generator}
}

// HandleExportPDF handles GET /v1/diet-plans/{requestID}/export.pdf
func (h *Handler) HandleExportPDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nutritionistID, _ := userctx.GetUserID(ctx)

	requestID, err := uuid.Parse(r.PathValue("requestID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request id")
		return
	}

	data, err := h.generator.Generate(ctx, nutritionistID, requestID)
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"diet-plan-%s.pdf\"", requestID))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
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
