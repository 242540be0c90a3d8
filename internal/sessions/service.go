package sessions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fitdesk/nutrition-hub/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("session request not found")
	ErrNotPending      = errors.New("session request is not pending")
	ErrScheduleMissing = errors.New("approved date and time are required")
	ErrPriceInvalid    = errors.New("session price must be positive")
	ErrNotesRequired   = errors.New("notes are required")
)

// Service owns the session request lifecycle.
type Service struct {
	storage storage.SessionRequestsStorage
}

func NewService(storage storage.SessionRequestsStorage) *Service {
	return &Service{storage: storage}
}

// List returns the nutritionist's session requests.
func (s *Service) List(ctx context.Context, nutritionistID string) ([]SessionRequestDTO, error) {
	rows, err := s.storage.ListSessionRequests(ctx, nutritionistID)
	if err != nil {
		return nil, err
	}
	out := make([]SessionRequestDTO, len(rows))
	for i, row := range rows {
		out[i] = toDTO(row)
	}
	return out, nil
}

// Approve confirms a pending session at a concrete date, time and price.
func (s *Service) Approve(ctx context.Context, nutritionistID string, id uuid.UUID, date, timeOfDay string, priceCents int, notes string) (SessionRequestDTO, error) {
	if strings.TrimSpace(date) == "" || strings.TrimSpace(timeOfDay) == "" {
		return SessionRequestDTO{}, ErrScheduleMissing
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return SessionRequestDTO{}, fmt.Errorf("%w: invalid date", ErrScheduleMissing)
	}
	if _, err := time.Parse("15:04", timeOfDay); err != nil {
		return SessionRequestDTO{}, fmt.Errorf("%w: invalid time", ErrScheduleMissing)
	}
	if priceCents <= 0 {
		return SessionRequestDTO{}, ErrPriceInvalid
	}

	row, found, err := s.storage.GetSessionRequest(ctx, nutritionistID, id)
	if err != nil {
		return SessionRequestDTO{}, err
	}
	if !found {
		return SessionRequestDTO{}, ErrNotFound
	}
	if row.Status != storage.StatusPending {
		return SessionRequestDTO{}, ErrNotPending
	}

	row.Status = storage.StatusApproved
	row.ApprovedDate = date
	row.ApprovedTime = timeOfDay
	row.SessionPriceCents = priceCents
	row.NutritionistNotes = notes
	row.UpdatedAt = time.Now().UTC()

	if err := s.storage.UpdateSessionRequest(ctx, &row); err != nil {
		return SessionRequestDTO{}, err
	}
	return toDTO(row), nil
}

// Reject declines a pending session with an explanation.
func (s *Service) Reject(ctx context.Context, nutritionistID string, id uuid.UUID, notes string) (SessionRequestDTO, error) {
	if strings.TrimSpace(notes) == "" {
		return SessionRequestDTO{}, ErrNotesRequired
	}

	row, found, err := s.storage.GetSessionRequest(ctx, nutritionistID, id)
	if err != nil {
		return SessionRequestDTO{}, err
	}
	if !found {
		return SessionRequestDTO{}, ErrNotFound
	}
	if row.Status != storage.StatusPending {
		return SessionRequestDTO{}, ErrNotPending
	}

	row.Status = storage.StatusRejected
	row.NutritionistNotes = notes
	row.UpdatedAt = time.Now().UTC()

	if err := s.storage.UpdateSessionRequest(ctx, &row); err != nil {
		return SessionRequestDTO{}, err
	}
	return toDTO(row), nil
}
