package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/cleandash/scheduler-backend-go/internal/domain/shift"
)

// GroupResponse is one positioned calendar card.
type GroupResponse struct {
	AccountID   string                `json:"account_id"`
	AccountName string                `json:"account_name"`
	Start       string                `json:"start"`
	End         string                `json:"end"`
	Status      string                `json:"status"`
	Column      int                   `json:"column"`
	Columns     int                   `json:"columns"`
	Top         float64               `json:"top"`
	Height      float64               `json:"height"`
	Left        float64               `json:"left"`
	Width       float64               `json:"width"`
	Shifts      []shift.ShiftResponse `json:"shifts"`
}

type DayViewResponse struct {
	Date   string          `json:"date"`
	Groups []GroupResponse `json:"groups"`
}

// ViewService feeds stored shifts through the pure layout engine.
type ViewService struct {
	shiftRepo     shift.ShiftRepository
	cfg           Config
	lateThreshold time.Duration
	clock         func() time.Time
}

func NewViewService(shiftRepo shift.ShiftRepository, cfg Config, lateThreshold time.Duration) *ViewService {
	return &ViewService{
		shiftRepo:     shiftRepo,
		cfg:           cfg,
		lateThreshold: lateThreshold,
		clock:         time.Now,
	}
}

// DayView lays out one day of shifts as positioned cards.
func (s *ViewService) DayView(ctx context.Context, owner string, state ViewState) (DayViewResponse, error) {
	state.View = ViewDay
	start, end := state.Range()

	shifts, err := s.shiftRepo.ListByRange(ctx, owner, start, end, shift.ListShiftsFilter{})
	if err != nil {
		return DayViewResponse{}, fmt.Errorf("failed to list shifts for day view: %w", err)
	}

	now := s.clock()
	positioned := LayoutDay(state.Filter(shifts), s.cfg)

	groups := make([]GroupResponse, 0, len(positioned))
	for _, pg := range positioned {
		gr := GroupResponse{
			AccountID:   pg.AccountID,
			AccountName: pg.AccountName,
			Start:       pg.Start.Format(time.RFC3339),
			End:         pg.End.Format(time.RFC3339),
			Status:      string(pg.Status),
			Column:      pg.Column,
			Columns:     pg.Columns,
			Top:         pg.Box.Top,
			Height:      pg.Box.Height,
			Left:        pg.Box.Left,
			Width:       pg.Box.Width,
		}
		for _, sh := range pg.Shifts {
			gr.Shifts = append(gr.Shifts, shift.NewShiftResponse(sh, now, s.lateThreshold))
		}
		groups = append(groups, gr)
	}

	return DayViewResponse{
		Date:   start.Format("2006-01-02"),
		Groups: groups,
	}, nil
}

// RangeView returns the flat shift list for the view's date window, used by
// the week and month renderings that do not need column geometry.
func (s *ViewService) RangeView(ctx context.Context, owner string, state ViewState) ([]shift.ShiftResponse, error) {
	start, end := state.Range()

	shifts, err := s.shiftRepo.ListByRange(ctx, owner, start, end, shift.ListShiftsFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts for range view: %w", err)
	}

	now := s.clock()
	filtered := state.Filter(shifts)
	responses := make([]shift.ShiftResponse, 0, len(filtered))
	for _, sh := range filtered {
		responses = append(responses, shift.NewShiftResponse(sh, now, s.lateThreshold))
	}
	return responses, nil
}
