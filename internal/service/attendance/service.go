package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cleandash/scheduler-backend-go/internal/domain/account"
	"github.com/cleandash/scheduler-backend-go/internal/domain/shift"
	"github.com/cleandash/scheduler-backend-go/internal/pkg/geo"
	"github.com/cleandash/scheduler-backend-go/internal/pkg/metrics"
	"github.com/jackc/pgx/v5"
)

// MissingCoordinateWarning is surfaced when a clock-in succeeds without a
// geofence check because the site has no stored coordinate.
const MissingCoordinateWarning = "location check skipped: no coordinate on file for this site"

type AttendanceServiceImpl struct {
	shiftRepo     shift.ShiftRepository
	accountRepo   account.AccountRepository
	lateThreshold time.Duration
	maxAccuracyM  float64
	clock         func() time.Time
}

func NewAttendanceService(
	shiftRepo shift.ShiftRepository,
	accountRepo account.AccountRepository,
	lateThreshold time.Duration,
	maxAccuracyM float64,
) shift.AttendanceService {
	return &AttendanceServiceImpl{
		shiftRepo:     shiftRepo,
		accountRepo:   accountRepo,
		lateThreshold: lateThreshold,
		maxAccuracyM:  maxAccuracyM,
		clock:         time.Now,
	}
}

// ClockIn implements shift.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, owner string, req shift.ClockInRequest) (shift.ClockInResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ClockInResponse{}, err
	}

	sh, err := a.getShift(ctx, req.ShiftID, owner)
	if err != nil {
		return shift.ClockInResponse{}, err
	}

	if sh.Status != shift.StatusScheduled {
		metrics.ClockIns.WithLabelValues("invalid").Inc()
		return shift.ClockInResponse{}, &shift.InvalidTransitionError{From: sh.Status, Action: "clock in"}
	}

	// The client reports why it could not get a fix; pass the cause through
	// so the UI can distinguish "denied" from "no signal".
	if req.GeoError != nil {
		metrics.ClockIns.WithLabelValues("geo_error").Inc()
		switch *req.GeoError {
		case shift.GeoErrorPermissionDenied:
			return shift.ClockInResponse{}, shift.ErrGeoPermissionDenied
		case shift.GeoErrorTimeout:
			return shift.ClockInResponse{}, shift.ErrGeoTimeout
		default:
			return shift.ClockInResponse{}, shift.ErrGeoUnavailable
		}
	}

	acct, err := a.accountRepo.GetByID(ctx, sh.AccountID, owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, account.ErrAccountNotFound) {
			return shift.ClockInResponse{}, shift.ErrAccountNotFound
		}
		return shift.ClockInResponse{}, fmt.Errorf("failed to get account: %w", err)
	}

	var warning *string
	if !acct.HasCoordinate() {
		w := MissingCoordinateWarning
		warning = &w
	} else {
		if req.Latitude == nil || req.Longitude == nil {
			metrics.ClockIns.WithLabelValues("geo_error").Inc()
			return shift.ClockInResponse{}, shift.ErrGeoUnavailable
		}

		if req.AccuracyM != nil && *req.AccuracyM > a.maxAccuracyM && !req.AcceptLowAccuracy {
			metrics.ClockIns.WithLabelValues("low_accuracy").Inc()
			return shift.ClockInResponse{}, shift.ErrLowAccuracy
		}

		center := &geo.Coordinate{Latitude: *acct.Latitude, Longitude: *acct.Longitude}
		within, distance := geo.WithinRadius(*req.Latitude, *req.Longitude, center, acct.RadiusM())
		if !within {
			metrics.ClockIns.WithLabelValues("out_of_range").Inc()
			return shift.ClockInResponse{}, &shift.OutOfRangeError{DistanceM: distance, RadiusM: acct.RadiusM()}
		}
	}

	now := a.clock()
	sh.Status = shift.StatusStarted
	sh.ActualStart = &now

	if err := a.shiftRepo.Update(ctx, sh); err != nil {
		return shift.ClockInResponse{}, fmt.Errorf("failed to update shift: %w", err)
	}

	metrics.ClockIns.WithLabelValues("ok").Inc()
	return shift.ClockInResponse{
		Shift:     shift.NewShiftResponse(sh, now, a.lateThreshold),
		Warning:   warning,
		AlarmCode: acct.AlarmCode,
	}, nil
}

// ClockOut implements shift.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, owner string, shiftID string) (shift.ShiftResponse, error) {
	sh, err := a.getShift(ctx, shiftID, owner)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	if sh.Status != shift.StatusStarted {
		return shift.ShiftResponse{}, &shift.InvalidTransitionError{From: sh.Status, Action: "clock out"}
	}

	now := a.clock()
	sh.Status = shift.StatusCompleted
	sh.ActualEnd = &now

	if err := a.shiftRepo.Update(ctx, sh); err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to update shift: %w", err)
	}

	return shift.NewShiftResponse(sh, now, a.lateThreshold), nil
}

// OverrideComplete implements shift.AttendanceService.
func (a *AttendanceServiceImpl) OverrideComplete(ctx context.Context, owner string, shiftID string) (shift.ShiftResponse, error) {
	sh, err := a.getShift(ctx, shiftID, owner)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	if sh.Status == shift.StatusCompleted {
		return shift.ShiftResponse{}, &shift.InvalidTransitionError{From: sh.Status, Action: "override"}
	}

	// The owner is closing out a shift the employee never clocked through,
	// so the scheduled window stands in for the missing actuals.
	if sh.ActualStart == nil {
		start := sh.ScheduledStart
		sh.ActualStart = &start
	}
	if sh.ActualEnd == nil {
		end := sh.ScheduledEnd
		sh.ActualEnd = &end
	}
	sh.Status = shift.StatusCompleted

	if err := a.shiftRepo.Update(ctx, sh); err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to update shift: %w", err)
	}

	return shift.NewShiftResponse(sh, a.clock(), a.lateThreshold), nil
}

func (a *AttendanceServiceImpl) getShift(ctx context.Context, id string, owner string) (shift.Shift, error) {
	sh, err := a.shiftRepo.GetByID(ctx, id, owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}
	return sh, nil
}
