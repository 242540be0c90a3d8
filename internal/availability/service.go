package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fitdesk/nutrition-hub/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrBlockNotFound = errors.New("block not found")
	ErrRangeTooWide  = errors.New("date range too wide")
)

// Service derives bookable slots from weekly rules, blocks and booked
// sessions.
type Service struct {
	storage            storage.AvailabilityStorage
	sessions           storage.SessionRequestsStorage
	defaultSlotMinutes int
	maxRangeDays       int
}

func NewService(st storage.AvailabilityStorage, sessions storage.SessionRequestsStorage, defaultSlotMinutes, maxRangeDays int) *Service {
	if defaultSlotMinutes <= 0 {
		defaultSlotMinutes = 60
	}
	if maxRangeDays <= 0 {
		maxRangeDays = 90
	}
	return &Service{
		storage:            st,
		sessions:           sessions,
		defaultSlotMinutes: defaultSlotMinutes,
		maxRangeDays:       maxRangeDays,
	}
}

// GetRules returns the weekly rule set.
func (s *Service) GetRules(ctx context.Context, nutritionistID string) ([]RuleDTO, error) {
	rows, err := s.storage.ListWeeklyRules(ctx, nutritionistID)
	if err != nil {
		return nil, err
	}
	out := make([]RuleDTO, len(rows))
	for i, row := range rows {
		out[i] = ruleToDTO(row)
	}
	return out, nil
}

// ReplaceRules atomically replaces the weekly rule set.
func (s *Service) ReplaceRules(ctx context.Context, nutritionistID string, req ReplaceRulesRequest) ([]RuleDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	upserts := make([]storage.AvailabilityRuleUpsert, len(req.Rules))
	for i, rule := range req.Rules {
		var start, end int
		if rule.IsAvailable {
			start, _ = parseHHMM(rule.StartTime)
			end, _ = parseHHMM(rule.EndTime)
		}
		slot := rule.SlotMinutes
		if slot <= 0 {
			slot = s.defaultSlotMinutes
		}
		upserts[i] = storage.AvailabilityRuleUpsert{
			DayOfWeek:    rule.DayOfWeek,
			StartMinutes: start,
			EndMinutes:   end,
			SlotMinutes:  slot,
			IsAvailable:  rule.IsAvailable,
		}
	}

	rows, err := s.storage.ReplaceWeeklyRules(ctx, nutritionistID, upserts)
	if err != nil {
		return nil, err
	}
	out := make([]RuleDTO, len(rows))
	for i, row := range rows {
		out[i] = ruleToDTO(row)
	}
	return out, nil
}

// SlotsForDate generates the date's slots from the weekday rule, marking
// blocked ranges and booked sessions.
func (s *Service) SlotsForDate(ctx context.Context, nutritionistID, date string) ([]SlotDTO, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid date format, expected YYYY-MM-DD")
	}

	rules, err := s.storage.ListWeeklyRules(ctx, nutritionistID)
	if err != nil {
		return nil, err
	}
	var rule *storage.AvailabilityRule
	weekday := isoWeekday(day)
	for i := range rules {
		if rules[i].DayOfWeek == weekday {
			rule = &rules[i]
			break
		}
	}
	if rule == nil || !rule.IsAvailable {
		return []SlotDTO{}, nil
	}

	blocks, err := s.storage.ListBlocks(ctx, nutritionistID, date, date)
	if err != nil {
		return nil, err
	}
	booked, err := s.bookedRanges(ctx, nutritionistID, date, rule.SlotMinutes)
	if err != nil {
		return nil, err
	}

	slotMinutes := rule.SlotMinutes
	if slotMinutes <= 0 {
		slotMinutes = s.defaultSlotMinutes
	}

	slots := []SlotDTO{}
	for start := rule.StartMinutes; start+slotMinutes <= rule.EndMinutes; start += slotMinutes {
		end := start + slotMinutes
		slot := SlotDTO{
			Date:      date,
			StartTime: formatHHMM(start),
			EndTime:   formatHHMM(end),
			Status:    SlotAvailable,
		}
		for _, b := range blocks {
			if overlaps(start, end, b.StartMinutes, b.EndMinutes) {
				slot.Status = SlotBlocked
				slot.Reason = b.Reason
				break
			}
		}
		if slot.Status == SlotAvailable {
			for _, b := range booked {
				if overlaps(start, end, b.start, b.end) {
					slot.Status = SlotBooked
					slot.Reason = b.client
					break
				}
			}
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// Schedule aggregates slots and blocks over [from, to].
func (s *Service) Schedule(ctx context.Context, nutritionistID, from, to string) (*GetScheduleResponse, error) {
	fromDay, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil, fmt.Errorf("invalid from date, expected YYYY-MM-DD")
	}
	toDay, err := time.Parse("2006-01-02", to)
	if err != nil {
		return nil, fmt.Errorf("invalid to date, expected YYYY-MM-DD")
	}
	if toDay.Before(fromDay) {
		return nil, fmt.Errorf("to must not be before from")
	}
	if int(toDay.Sub(fromDay).Hours()/24) > s.maxRangeDays {
		return nil, ErrRangeTooWide
	}

	days := []ScheduleDay{}
	for d := fromDay; !d.After(toDay); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")
		slots, err := s.SlotsForDate(ctx, nutritionistID, date)
		if err != nil {
			return nil, err
		}
		days = append(days, ScheduleDay{Date: date, Slots: slots})
	}

	blockRows, err := s.storage.ListBlocks(ctx, nutritionistID, from, to)
	if err != nil {
		return nil, err
	}
	blocks := make([]BlockDTO, len(blockRows))
	for i, row := range blockRows {
		blocks[i] = blockToDTO(row)
	}

	return &GetScheduleResponse{From: from, To: to, Days: days, Blocks: blocks}, nil
}

// CreateBlock stores a blocked range.
func (s *Service) CreateBlock(ctx context.Context, nutritionistID string, req CreateBlockRequest) (BlockDTO, error) {
	if err := req.Validate(); err != nil {
		return BlockDTO{}, fmt.Errorf("validation failed: %w", err)
	}

	start, _ := parseHHMM(req.StartTime)
	end, _ := parseHHMM(req.EndTime)
	row := &storage.BlockedRange{
		ID:             uuid.New(),
		NutritionistID: nutritionistID,
		Date:           req.Date,
		StartMinutes:   start,
		EndMinutes:     end,
		Reason:         req.Reason,
	}
	if err := s.storage.CreateBlock(ctx, row); err != nil {
		return BlockDTO{}, err
	}
	return blockToDTO(*row), nil
}

// DeleteBlock removes a block by id.
func (s *Service) DeleteBlock(ctx context.Context, nutritionistID string, id uuid.UUID) error {
	if err := s.storage.DeleteBlock(ctx, nutritionistID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrBlockNotFound
		}
		return err
	}
	return nil
}

type bookedRange struct {
	start  int
	end    int
	client string
}

func (s *Service) bookedRanges(ctx context.Context, nutritionistID, date string, slotMinutes int) ([]bookedRange, error) {
	rows, err := s.sessions.ListSessionRequests(ctx, nutritionistID)
	if err != nil {
		return nil, err
	}
	if slotMinutes <= 0 {
		slotMinutes = s.defaultSlotMinutes
	}

	out := []bookedRange{}
	for _, row := range rows {
		if row.Status != storage.StatusApproved || row.ApprovedDate != date {
			continue
		}
		start, err := parseHHMM(row.ApprovedTime)
		if err != nil {
			continue
		}
		out = append(out, bookedRange{start: start, end: start + slotMinutes, client: row.ClientName})
	}
	return out, nil
}

// isoWeekday maps time.Weekday to 1 = Monday ... 7 = Sunday.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

func ruleToDTO(row storage.AvailabilityRule) RuleDTO {
	dto := RuleDTO{
		DayOfWeek:   row.DayOfWeek,
		SlotMinutes: row.SlotMinutes,
		IsAvailable: row.IsAvailable,
	}
	if row.IsAvailable {
		dto.StartTime = formatHHMM(row.StartMinutes)
		dto.EndTime = formatHHMM(row.EndMinutes)
	}
	return dto
}

func blockToDTO(row storage.BlockedRange) BlockDTO {
	return BlockDTO{
		ID:        row.ID,
		Date:      row.Date,
		StartTime: formatHHMM(row.StartMinutes),
		EndTime:   formatHHMM(row.EndMinutes),
		Reason:    row.Reason,
		CreatedAt: row.CreatedAt,
	}
}
