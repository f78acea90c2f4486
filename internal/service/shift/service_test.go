package shift

import (
	"context"
	"testing"
	"time"

	"github.com/cleandash/scheduler-backend-go/internal/domain/account"
	"github.com/cleandash/scheduler-backend-go/internal/domain/employee"
	"github.com/cleandash/scheduler-backend-go/internal/domain/shift"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== IN-MEMORY FAKES =====

type fakeShiftRepo struct {
	shifts map[string]shift.Shift
}

func newFakeShiftRepo(seed ...shift.Shift) *fakeShiftRepo {
	f := &fakeShiftRepo{shifts: make(map[string]shift.Shift)}
	for _, s := range seed {
		f.shifts[s.ID] = s
	}
	return f
}

func (f *fakeShiftRepo) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	f.shifts[s.ID] = s
	return s, nil
}

func (f *fakeShiftRepo) InsertBatch(ctx context.Context, shifts []shift.Shift) error {
	for _, s := range shifts {
		f.shifts[s.ID] = s
	}
	return nil
}

func (f *fakeShiftRepo) GetByID(ctx context.Context, id string, owner string) (shift.Shift, error) {
	s, ok := f.shifts[id]
	if !ok || s.Owner != owner {
		return shift.Shift{}, pgx.ErrNoRows
	}
	return s, nil
}

func (f *fakeShiftRepo) Update(ctx context.Context, s shift.Shift) error {
	if _, ok := f.shifts[s.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.shifts[s.ID] = s
	return nil
}

func (f *fakeShiftRepo) Delete(ctx context.Context, id string, owner string) error {
	if _, ok := f.shifts[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.shifts, id)
	return nil
}

func (f *fakeShiftRepo) ListByRange(ctx context.Context, owner string, start, end time.Time, filter shift.ListShiftsFilter) ([]shift.Shift, error) {
	var out []shift.Shift
	for _, s := range f.shifts {
		if s.Owner != owner || !s.ScheduledStart.Before(end) || !s.ScheduledEnd.After(start) {
			continue
		}
		if filter.EmployeeID != nil && s.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.AccountID != nil && s.AccountID != *filter.AccountID {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeShiftRepo) ListForConflict(ctx context.Context, owner string, employeeID string, after time.Time) ([]shift.Shift, error) {
	var out []shift.Shift
	for _, s := range f.shifts {
		if s.Owner == owner && s.EmployeeID == employeeID && s.Status != shift.StatusCompleted && s.ScheduledEnd.After(after) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeShiftRepo) ListOverlapping(ctx context.Context, owner string, start, end time.Time) ([]shift.Shift, error) {
	var out []shift.Shift
	for _, s := range f.shifts {
		if s.Owner == owner && s.Status != shift.StatusCompleted && s.ScheduledStart.Before(end) && s.ScheduledEnd.After(start) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeShiftRepo) ReplaceSlot(ctx context.Context, owner string, accountID string, start, end time.Time, shifts []shift.Shift) error {
	for id, s := range f.shifts {
		if s.Owner == owner && s.AccountID == accountID && s.ScheduledStart.Equal(start) && s.ScheduledEnd.Equal(end) && s.Status == shift.StatusScheduled {
			delete(f.shifts, id)
		}
	}
	return f.InsertBatch(ctx, shifts)
}

func (f *fakeShiftRepo) LatestStartByAccount(ctx context.Context, owner string, accountID string) (*time.Time, error) {
	var latest *time.Time
	for _, s := range f.shifts {
		if s.Owner != owner || s.AccountID != accountID {
			continue
		}
		start := s.ScheduledStart
		if latest == nil || start.After(*latest) {
			latest = &start
		}
	}
	return latest, nil
}

func (f *fakeShiftRepo) ReplaceFuture(ctx context.Context, owner string, accountID string, from time.Time, shifts []shift.Shift) error {
	for id, s := range f.shifts {
		if s.Owner == owner && s.AccountID == accountID && !s.ScheduledStart.Before(from) && s.Status != shift.StatusCompleted {
			delete(f.shifts, id)
		}
	}
	return f.InsertBatch(ctx, shifts)
}

type fakeAccountRepo struct {
	accounts map[string]account.Account
}

func newFakeAccountRepo(accounts ...account.Account) *fakeAccountRepo {
	f := &fakeAccountRepo{accounts: make(map[string]account.Account)}
	for _, a := range accounts {
		f.accounts[a.ID] = a
	}
	return f
}

func (f *fakeAccountRepo) GetByID(ctx context.Context, id string, owner string) (account.Account, error) {
	a, ok := f.accounts[id]
	if !ok || a.Owner != owner {
		return account.Account{}, pgx.ErrNoRows
	}
	return a, nil
}

func (f *fakeAccountRepo) List(ctx context.Context, owner string) ([]account.Account, error) {
	var out []account.Account
	for _, a := range f.accounts {
		if a.Owner == owner {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAccountRepo) ListWithActivePattern(ctx context.Context) ([]account.Account, error) {
	return nil, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(employees ...employee.Employee) *fakeEmployeeRepo {
	f := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, e := range employees {
		f.employees[e.ID] = e
	}
	return f
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string, owner string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok || e.Owner != owner {
		return employee.Employee{}, pgx.ErrNoRows
	}
	return e, nil
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context, owner string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.Owner == owner && e.Status == employee.StatusActive {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) ListByIDs(ctx context.Context, owner string, ids []string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, id := range ids {
		if e, ok := f.employees[id]; ok && e.Owner == owner {
			out = append(out, e)
		}
	}
	return out, nil
}

// ===== FIXTURES =====

const testOwner = "owner@test.com"

var march2 = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func storedShift(id, accountID, accountName, employeeID string, start, end time.Time) shift.Shift {
	return shift.Shift{
		ID:             id,
		Owner:          testOwner,
		AccountID:      accountID,
		AccountName:    accountName,
		EmployeeID:     employeeID,
		EmployeeName:   "Alice",
		ScheduledStart: start,
		ScheduledEnd:   end,
		Status:         shift.StatusScheduled,
	}
}

func newTestService(repo *fakeShiftRepo) shift.ShiftService {
	accounts := newFakeAccountRepo(
		account.Account{ID: "acct1", Owner: testOwner, Name: "Hilltop Office Park"},
		account.Account{ID: "acct2", Owner: testOwner, Name: "Riverside Clinic"},
	)
	employees := newFakeEmployeeRepo(
		employee.Employee{ID: "emp1", Owner: testOwner, Name: "Alice", Status: employee.StatusActive, Color: "#4f46e5"},
		employee.Employee{ID: "emp2", Owner: testOwner, Name: "Bob", Status: employee.StatusActive, Color: "#16a34a"},
		employee.Employee{ID: "emp3", Owner: testOwner, Name: "Cara", Status: employee.StatusInactive},
	)
	return NewShiftService(repo, accounts, employees, 15*time.Minute)
}

// ===== CREATE =====

func TestCreate_SingleEmployee(t *testing.T) {
	repo := newFakeShiftRepo()
	svc := newTestService(repo)

	resp, err := svc.Create(context.Background(), testOwner, shift.CreateShiftRequest{
		AccountID:   "acct1",
		EmployeeIDs: []string{"emp1"},
		Date:        "2026-03-02",
		StartTime:   "09:00",
		EndTime:     "12:00",
	})
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "Hilltop Office Park", resp[0].AccountName)
	assert.Equal(t, "Alice", resp[0].EmployeeName)
	assert.Equal(t, string(shift.StatusScheduled), resp[0].Status)
	assert.Len(t, repo.shifts, 1)
}

func TestCreate_EmptyRosterBecomesUnassigned(t *testing.T) {
	repo := newFakeShiftRepo()
	svc := newTestService(repo)

	resp, err := svc.Create(context.Background(), testOwner, shift.CreateShiftRequest{
		AccountID: "acct1",
		Date:      "2026-03-02",
		StartTime: "09:00",
		EndTime:   "12:00",
	})
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, shift.UnassignedEmployeeID, resp[0].EmployeeID)
	assert.Equal(t, "Unassigned", resp[0].EmployeeName)
}

func TestCreate_SingleEmployeeConflictRejected(t *testing.T) {
	existing := storedShift("s1", "acct2", "Riverside Clinic", "emp1",
		march2.Add(10*time.Hour), march2.Add(14*time.Hour))
	repo := newFakeShiftRepo(existing)
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), testOwner, shift.CreateShiftRequest{
		AccountID:   "acct1",
		EmployeeIDs: []string{"emp1"},
		Date:        "2026-03-02",
		StartTime:   "09:00",
		EndTime:     "12:00",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, shift.ErrShiftConflict)

	var conflict *shift.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Alice", conflict.EmployeeName)
	assert.Equal(t, "Riverside Clinic", conflict.AccountName)
	assert.Equal(t, existing.ScheduledStart, conflict.Start)

	// The rejected save must not touch the store.
	assert.Len(t, repo.shifts, 1)
}

func TestCreate_RosterBypassesConflictCheck(t *testing.T) {
	existing := storedShift("s1", "acct2", "Riverside Clinic", "emp1",
		march2.Add(10*time.Hour), march2.Add(14*time.Hour))
	repo := newFakeShiftRepo(existing)
	svc := newTestService(repo)

	resp, err := svc.Create(context.Background(), testOwner, shift.CreateShiftRequest{
		AccountID:   "acct1",
		EmployeeIDs: []string{"emp1", "emp2"},
		Date:        "2026-03-02",
		StartTime:   "09:00",
		EndTime:     "12:00",
	})
	require.NoError(t, err)
	assert.Len(t, resp, 2)
}

func TestCreate_ReplacesExistingSlotRoster(t *testing.T) {
	existing := storedShift("s1", "acct1", "Hilltop Office Park", "emp1",
		march2.Add(9*time.Hour), march2.Add(12*time.Hour))
	repo := newFakeShiftRepo(existing)
	svc := newTestService(repo)

	resp, err := svc.Create(context.Background(), testOwner, shift.CreateShiftRequest{
		AccountID:   "acct1",
		EmployeeIDs: []string{"emp1", "emp2"},
		Date:        "2026-03-02",
		StartTime:   "09:00",
		EndTime:     "12:00",
	})
	require.NoError(t, err)
	assert.Len(t, resp, 2)

	// The old single-employee booking for the same slot is gone.
	assert.Len(t, repo.shifts, 2)
	_, ok := repo.shifts["s1"]
	assert.False(t, ok)
}

func TestCreate_UnknownAccount(t *testing.T) {
	svc := newTestService(newFakeShiftRepo())

	_, err := svc.Create(context.Background(), testOwner, shift.CreateShiftRequest{
		AccountID:   "missing",
		EmployeeIDs: []string{"emp1"},
		Date:        "2026-03-02",
		StartTime:   "09:00",
		EndTime:     "12:00",
	})
	assert.ErrorIs(t, err, shift.ErrAccountNotFound)
}

func TestCreate_UnknownEmployee(t *testing.T) {
	svc := newTestService(newFakeShiftRepo())

	_, err := svc.Create(context.Background(), testOwner, shift.CreateShiftRequest{
		AccountID:   "acct1",
		EmployeeIDs: []string{"ghost"},
		Date:        "2026-03-02",
		StartTime:   "09:00",
		EndTime:     "12:00",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

// ===== CHECK CONFLICT =====

func TestCheckConflict_TouchingEndpointsDoNotConflict(t *testing.T) {
	existing := storedShift("s1", "acct2", "Riverside Clinic", "emp1",
		march2.Add(12*time.Hour), march2.Add(15*time.Hour))
	svc := newTestService(newFakeShiftRepo(existing))

	found, err := svc.CheckConflict(context.Background(), testOwner, "emp1",
		march2.Add(9*time.Hour), march2.Add(12*time.Hour), "")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestCheckConflict_OverlapFound(t *testing.T) {
	existing := storedShift("s1", "acct2", "Riverside Clinic", "emp1",
		march2.Add(11*time.Hour), march2.Add(15*time.Hour))
	svc := newTestService(newFakeShiftRepo(existing))

	found, err := svc.CheckConflict(context.Background(), testOwner, "emp1",
		march2.Add(9*time.Hour), march2.Add(12*time.Hour), "")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "s1", found.ID)
}

func TestCheckConflict_ExcludesSelf(t *testing.T) {
	existing := storedShift("s1", "acct2", "Riverside Clinic", "emp1",
		march2.Add(9*time.Hour), march2.Add(12*time.Hour))
	svc := newTestService(newFakeShiftRepo(existing))

	found, err := svc.CheckConflict(context.Background(), testOwner, "emp1",
		march2.Add(9*time.Hour), march2.Add(12*time.Hour), "s1")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestCheckConflict_ReturnsEarliestOverlap(t *testing.T) {
	later := storedShift("s2", "acct2", "Riverside Clinic", "emp1",
		march2.Add(11*time.Hour), march2.Add(13*time.Hour))
	earlier := storedShift("s1", "acct1", "Hilltop Office Park", "emp1",
		march2.Add(8*time.Hour), march2.Add(10*time.Hour))
	svc := newTestService(newFakeShiftRepo(later, earlier))

	found, err := svc.CheckConflict(context.Background(), testOwner, "emp1",
		march2.Add(9*time.Hour), march2.Add(12*time.Hour), "")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "s1", found.ID)
}

func TestCheckConflict_UnassignedNeverConflicts(t *testing.T) {
	existing := storedShift("s1", "acct1", "Hilltop Office Park", shift.UnassignedEmployeeID,
		march2.Add(9*time.Hour), march2.Add(12*time.Hour))
	svc := newTestService(newFakeShiftRepo(existing))

	found, err := svc.CheckConflict(context.Background(), testOwner, shift.UnassignedEmployeeID,
		march2.Add(9*time.Hour), march2.Add(12*time.Hour), "")
	require.NoError(t, err)
	assert.Nil(t, found)
}

// ===== UPDATE =====

func TestUpdate_PartialTimeChange(t *testing.T) {
	existing := storedShift("s1", "acct1", "Hilltop Office Park", "emp1",
		march2.Add(9*time.Hour), march2.Add(12*time.Hour))
	repo := newFakeShiftRepo(existing)
	svc := newTestService(repo)

	endTime := "14:00"
	resp, err := svc.Update(context.Background(), testOwner, shift.UpdateShiftRequest{
		ID:      "s1",
		EndTime: &endTime,
	})
	require.NoError(t, err)

	// Date and start time are kept from the stored shift.
	assert.Equal(t, march2.Add(9*time.Hour).Format(time.RFC3339), resp.ScheduledStart)
	assert.Equal(t, march2.Add(14*time.Hour).Format(time.RFC3339), resp.ScheduledEnd)
}

func TestUpdate_ReassignEmployee(t *testing.T) {
	existing := storedShift("s1", "acct1", "Hilltop Office Park", "emp1",
		march2.Add(9*time.Hour), march2.Add(12*time.Hour))
	repo := newFakeShiftRepo(existing)
	svc := newTestService(repo)

	empID := "emp2"
	resp, err := svc.Update(context.Background(), testOwner, shift.UpdateShiftRequest{
		ID:         "s1",
		EmployeeID: &empID,
	})
	require.NoError(t, err)
	assert.Equal(t, "emp2", resp.EmployeeID)
	assert.Equal(t, "Bob", resp.EmployeeName)
}

func TestUpdate_ConflictOnNewWindow(t *testing.T) {
	target := storedShift("s1", "acct1", "Hilltop Office Park", "emp1",
		march2.Add(9*time.Hour), march2.Add(11*time.Hour))
	blocker := storedShift("s2", "acct2", "Riverside Clinic", "emp1",
		march2.Add(13*time.Hour), march2.Add(16*time.Hour))
	repo := newFakeShiftRepo(target, blocker)
	svc := newTestService(repo)

	startTime, endTime := "12:00", "15:00"
	_, err := svc.Update(context.Background(), testOwner, shift.UpdateShiftRequest{
		ID:        "s1",
		StartTime: &startTime,
		EndTime:   &endTime,
	})
	assert.ErrorIs(t, err, shift.ErrShiftConflict)

	// The stored shift keeps its old window.
	kept := repo.shifts["s1"]
	assert.Equal(t, march2.Add(9*time.Hour), kept.ScheduledStart)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestService(newFakeShiftRepo())

	_, err := svc.Update(context.Background(), testOwner, shift.UpdateShiftRequest{ID: "missing"})
	assert.ErrorIs(t, err, shift.ErrShiftNotFound)
}

// ===== DELETE =====

func TestDelete(t *testing.T) {
	existing := storedShift("s1", "acct1", "Hilltop Office Park", "emp1",
		march2.Add(9*time.Hour), march2.Add(12*time.Hour))
	repo := newFakeShiftRepo(existing)
	svc := newTestService(repo)

	require.NoError(t, svc.Delete(context.Background(), testOwner, "s1"))
	assert.Empty(t, repo.shifts)

	assert.ErrorIs(t, svc.Delete(context.Background(), testOwner, "s1"), shift.ErrShiftNotFound)
}

// ===== LIST =====

func TestList_EndDateIsInclusive(t *testing.T) {
	onEndDate := storedShift("s1", "acct1", "Hilltop Office Park", "emp1",
		march2.AddDate(0, 0, 2).Add(20*time.Hour), march2.AddDate(0, 0, 2).Add(23*time.Hour))
	afterRange := storedShift("s2", "acct1", "Hilltop Office Park", "emp1",
		march2.AddDate(0, 0, 3).Add(9*time.Hour), march2.AddDate(0, 0, 3).Add(12*time.Hour))
	svc := newTestService(newFakeShiftRepo(onEndDate, afterRange))

	resp, err := svc.List(context.Background(), testOwner, shift.ListShiftsFilter{
		StartDate: "2026-03-02",
		EndDate:   "2026-03-04",
	})
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "s1", resp[0].ID)
}

// ===== AVAILABILITY =====

func TestAvailability(t *testing.T) {
	booked := storedShift("s1", "acct2", "Riverside Clinic", "emp1",
		march2.Add(10*time.Hour), march2.Add(14*time.Hour))
	svc := newTestService(newFakeShiftRepo(booked))

	roster, err := svc.Availability(context.Background(), testOwner, shift.AvailabilityRequest{
		Date:      "2026-03-02",
		StartTime: "09:00",
		EndTime:   "12:00",
	})
	require.NoError(t, err)

	// Only active employees appear, so Cara is absent.
	require.Len(t, roster, 2)
	byID := make(map[string]shift.EmployeeAvailability)
	for _, e := range roster {
		byID[e.EmployeeID] = e
	}

	assert.True(t, byID["emp1"].Busy)
	require.NotNil(t, byID["emp1"].BusyAt)
	assert.Equal(t, "Riverside Clinic", *byID["emp1"].BusyAt)

	assert.False(t, byID["emp2"].Busy)
	assert.Nil(t, byID["emp2"].BusyAt)
}

func TestAvailability_ExcludesShiftBeingEdited(t *testing.T) {
	booked := storedShift("s1", "acct2", "Riverside Clinic", "emp1",
		march2.Add(10*time.Hour), march2.Add(14*time.Hour))
	svc := newTestService(newFakeShiftRepo(booked))

	exclude := "s1"
	roster, err := svc.Availability(context.Background(), testOwner, shift.AvailabilityRequest{
		Date:           "2026-03-02",
		StartTime:      "09:00",
		EndTime:        "12:00",
		ExcludeShiftID: &exclude,
	})
	require.NoError(t, err)

	for _, e := range roster {
		assert.False(t, e.Busy, "employee %s should be free when their own shift is excluded", e.EmployeeID)
	}
}
