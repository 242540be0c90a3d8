package sessions

import (
	"time"

	"github.com/fitdesk/nutrition-hub/internal/storage"
	"github.com/google/uuid"
)

// SessionRequestDTO is the API shape of a session request.
type SessionRequestDTO struct {
	ID                uuid.UUID `json:"id"`
	ClientName        string    `json:"client_name"`
	SessionType       string    `json:"session_type"`
	PreferredDate     string    `json:"preferred_date"`
	PreferredTime     string    `json:"preferred_time"`
	Notes             string    `json:"notes"`
	Status            string    `json:"status"`
	ApprovedDate      string    `json:"approved_date,omitempty"`
	ApprovedTime      string    `json:"approved_time,omitempty"`
	SessionPriceCents int       `json:"session_price_cents,omitempty"`
	NutritionistNotes string    `json:"nutritionist_notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func toDTO(row storage.SessionRequest) SessionRequestDTO {
	return SessionRequestDTO{
		ID:                row.ID,
		ClientName:        row.ClientName,
		SessionType:       row.SessionType,
		PreferredDate:     row.PreferredDate,
		PreferredTime:     row.PreferredTime,
		Notes:             row.Notes,
		Status:            row.Status,
		ApprovedDate:      row.ApprovedDate,
		ApprovedTime:      row.ApprovedTime,
		SessionPriceCents: row.SessionPriceCents,
		NutritionistNotes: row.NutritionistNotes,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}

// UpdateSessionRequestPayload carries an approve or reject decision.
type UpdateSessionRequestPayload struct {
	Status            *string `json:"status"`
	ApprovedDate      *string `json:"approved_date"`
	ApprovedTime      *string `json:"approved_time"`
	SessionPriceCents *int    `json:"session_price_cents"`
	NutritionistNotes *string `json:"nutritionist_notes"`
}

// ListSessionRequestsResponse wraps the session request list.
type ListSessionRequestsResponse struct {
	Requests []SessionRequestDTO `json:"requests"`
}
