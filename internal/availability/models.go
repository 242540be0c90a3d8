package availability

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Slot statuses in the derived schedule.
const (
	SlotAvailable = "available"
	SlotBlocked   = "blocked"
	SlotBooked    = "booked"
)

// RuleDTO is one weekday's working window. Times are "HH:MM".
type RuleDTO struct {
	DayOfWeek   int    `json:"day_of_week"` // 1 = Monday ... 7 = Sunday
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	SlotMinutes int    `json:"slot_minutes"`
	IsAvailable bool   `json:"is_available"`
}

// ReplaceRulesRequest atomically replaces the full weekly rule set.
type ReplaceRulesRequest struct {
	Rules []RuleDTO `json:"rules"`
}

func (r *ReplaceRulesRequest) Validate() error {
	seen := map[int]bool{}
	for i, rule := range r.Rules {
		if rule.DayOfWeek < 1 || rule.DayOfWeek > 7 {
			return fmt.Errorf("rules[%d]: day_of_week must be between 1 and 7", i)
		}
		if seen[rule.DayOfWeek] {
			return fmt.Errorf("rules[%d]: duplicate day_of_week %d", i, rule.DayOfWeek)
		}
		seen[rule.DayOfWeek] = true

		if !rule.IsAvailable {
			continue
		}
		start, err := parseHHMM(rule.StartTime)
		if err != nil {
			return fmt.Errorf("rules[%d]: invalid start_time: %w", i, err)
		}
		end, err := parseHHMM(rule.EndTime)
		if err != nil {
			return fmt.Errorf("rules[%d]: invalid end_time: %w", i, err)
		}
		if start >= end {
			return fmt.Errorf("rules[%d]: start_time must be before end_time", i)
		}
		if rule.SlotMinutes < 0 {
			return fmt.Errorf("rules[%d]: slot_minutes must be non-negative", i)
		}
	}
	return nil
}

// SlotDTO is one bookable (or taken) slot on a date.
type SlotDTO struct {
	Date      string `json:"date"` // YYYY-MM-DD
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"` // block reason or session client
}

// BlockDTO is a blocked date-time range.
type BlockDTO struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateBlockRequest blocks a date-time range.
type CreateBlockRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason"`
}

func (r *CreateBlockRequest) Validate() error {
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return fmt.Errorf("invalid date, expected YYYY-MM-DD")
	}
	start, err := parseHHMM(r.StartTime)
	if err != nil {
		return fmt.Errorf("invalid start_time: %w", err)
	}
	end, err := parseHHMM(r.EndTime)
	if err != nil {
		return fmt.Errorf("invalid end_time: %w", err)
	}
	if start >= end {
		return fmt.Errorf("start_time must be before end_time")
	}
	return nil
}

// ScheduleDay groups a date's slots in the aggregated schedule view.
type ScheduleDay struct {
	Date  string    `json:"date"`
	Slots []SlotDTO `json:"slots"`
}

// GetAvailabilityResponse wraps the weekly rule set.
type GetAvailabilityResponse struct {
	Rules []RuleDTO `json:"rules"`
}

// GetSlotsResponse wraps one date's slots.
type GetSlotsResponse struct {
	Date  string    `json:"date"`
	Slots []SlotDTO `json:"slots"`
}

// GetScheduleResponse wraps the aggregated schedule.
type GetScheduleResponse struct {
	From   string        `json:"from"`
	To     string        `json:"to"`
	Days   []ScheduleDay `json:"days"`
	Blocks []BlockDTO    `json:"blocks"`
}

func parseHHMM(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatHHMM(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
