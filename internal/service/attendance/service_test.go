package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/rosterlab/shift-backend-go/internal/config"
	"github.com/rosterlab/shift-backend-go/internal/domain/attendance"
	"github.com/rosterlab/shift-backend-go/internal/domain/employee"
	"github.com/rosterlab/shift-backend-go/internal/domain/overtime"
	"github.com/rosterlab/shift-backend-go/internal/domain/schedule"
	overtimesvc "github.com/rosterlab/shift-backend-go/internal/service/overtime"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEmployeeID   = "emp-1"
	testAssignmentID = "shift-1"
)

func testPolicy() config.PolicyConfig {
	return config.PolicyConfig{
		MaxShiftsPerWeek:      5,
		MaxDailyHours:         8,
		MaxWeeklyHours:        40,
		MaxConsecutiveShifts:  5,
		DefaultBreakMinutes:   60,
		DefaultMonthlyOTHours: 8,
	}
}

type fakeAttendanceRepo struct {
	records []attendance.Record
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, r attendance.Record) (attendance.Record, error) {
	r.CreatedAt = time.Now()
	f.records = append(f.records, r)
	return r, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return attendance.Record{}, pgx.ErrNoRows
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	for _, r := range f.records {
		if r.EmployeeID == employeeID && r.Date.Equal(date) {
			found := r
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) GetOpenSession(ctx context.Context, employeeID string) (*attendance.Record, error) {
	for _, r := range f.records {
		if r.EmployeeID == employeeID && r.CheckIn != nil && r.CheckOut == nil {
			found := r
			return &found, nil
		}
	}
	return nil, nil
}

// Update mirrors the store's terminal-close guard: a record that is
// already closed matches nothing and the closer is rejected.
func (f *fakeAttendanceRepo) Update(ctx context.Context, r attendance.Record) error {
	for i := range f.records {
		if f.records[i].ID == r.ID && f.records[i].CheckOut == nil {
			f.records[i] = r
			return nil
		}
	}
	return attendance.ErrAlreadyCheckedOut
}

func (f *fakeAttendanceRepo) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, r := range f.records {
		if r.EmployeeID == employeeID && !r.Date.Before(from) && !r.Date.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeScheduleRepo struct {
	assignments []schedule.ShiftAssignment
	statuses    map[string]schedule.Status
}

func (f *fakeScheduleRepo) Create(ctx context.Context, a schedule.ShiftAssignment) (schedule.ShiftAssignment, error) {
	f.assignments = append(f.assignments, a)
	return a, nil
}

func (f *fakeScheduleRepo) GetByID(ctx context.Context, id string) (schedule.ShiftAssignment, error) {
	for _, a := range f.assignments {
		if a.ID == id {
			return a, nil
		}
	}
	return schedule.ShiftAssignment{}, pgx.ErrNoRows
}

func (f *fakeScheduleRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]schedule.ShiftAssignment, error) {
	var out []schedule.ShiftAssignment
	for _, a := range f.assignments {
		if a.EmployeeID == employeeID && a.Date.Equal(date) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]schedule.ShiftAssignment, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) List(ctx context.Context, filter schedule.ListFilter) ([]schedule.ShiftAssignment, error) {
	return f.assignments, nil
}

func (f *fakeScheduleRepo) UpdateStatus(ctx context.Context, id string, status schedule.Status) error {
	if f.statuses == nil {
		f.statuses = make(map[string]schedule.Status)
	}
	f.statuses[id] = status
	return nil
}

func (f *fakeScheduleRepo) DeleteByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, statuses []schedule.Status) error {
	return nil
}

type fakeApprovalRepo struct {
	approval *overtime.Approval
}

func (f *fakeApprovalRepo) Create(ctx context.Context, a overtime.Approval) (overtime.Approval, error) {
	f.approval = &a
	return a, nil
}

func (f *fakeApprovalRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*overtime.Approval, error) {
	if f.approval != nil && f.approval.EmployeeID == employeeID && f.approval.Date.Equal(date) {
		return f.approval, nil
	}
	return nil, nil
}

func (f *fakeApprovalRepo) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]overtime.Approval, error) {
	return nil, nil
}

// fakeOvertimeService records allocation deductions.
type fakeOvertimeService struct {
	consumed []decimal.Decimal
}

func (f *fakeOvertimeService) Approve(ctx context.Context, req overtime.ApproveRequest) (overtime.ApprovalResponse, error) {
	return overtime.ApprovalResponse{}, nil
}

func (f *fakeOvertimeService) Lookup(ctx context.Context, employeeID string, date time.Time) (*overtime.ApprovalResponse, error) {
	return nil, nil
}

func (f *fakeOvertimeService) Tracking(ctx context.Context, employeeID string, year, month int) (overtime.TrackingResponse, error) {
	return overtime.TrackingResponse{}, nil
}

func (f *fakeOvertimeService) ConsumeAllocation(ctx context.Context, employeeID string, date time.Time, hours decimal.Decimal) error {
	if hours.IsPositive() {
		f.consumed = append(f.consumed, hours)
	}
	return nil
}

type fakeRoleRepo struct {
	roles map[string]employee.Role
}

func (f *fakeRoleRepo) GetByID(ctx context.Context, id string) (employee.Role, error) {
	role, ok := f.roles[id]
	if !ok {
		return employee.Role{}, pgx.ErrNoRows
	}
	return role, nil
}

type attendanceFixture struct {
	svc       *AttendanceServiceImpl
	records   *fakeAttendanceRepo
	schedules *fakeScheduleRepo
	approvals *fakeApprovalRepo
	overtime  *fakeOvertimeService
	roles     *fakeRoleRepo
}

// newAttendanceFixture wires the service against an employee scheduled
// 09:00-17:00 on Monday 2026-03-02.
func newAttendanceFixture(t *testing.T) *attendanceFixture {
	t.Helper()

	date, err := time.Parse("2006-01-02", "2026-03-02")
	require.NoError(t, err)

	records := &fakeAttendanceRepo{}
	schedules := &fakeScheduleRepo{assignments: []schedule.ShiftAssignment{{
		ID:         testAssignmentID,
		EmployeeID: testEmployeeID,
		Date:       date,
		StartTime:  "09:00",
		EndTime:    "17:00",
		Status:     schedule.StatusScheduled,
	}}}
	approvals := &fakeApprovalRepo{}
	overtimeService := &fakeOvertimeService{}
	roles := &fakeRoleRepo{roles: map[string]employee.Role{}}

	svc := NewAttendanceService(
		nil, testPolicy(), overtimesvc.NewSettlementCalculator(testPolicy().MaxDailyHours),
		records, schedules, approvals, overtimeService, roles,
	).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return date.Add(9 * time.Hour) }
	svc.runTx = func(ctx context.Context, fn func(tx pgx.Tx) error) error {
		return fn(nil)
	}

	return &attendanceFixture{
		svc:       svc,
		records:   records,
		schedules: schedules,
		approvals: approvals,
		overtime:  overtimeService,
		roles:     roles,
	}
}

func checkInAt(t *testing.T, fix *attendanceFixture, at string) attendance.RecordResponse {
	t.Helper()
	resp, err := fix.svc.CheckIn(context.Background(), attendance.CheckInRequest{
		EmployeeID: testEmployeeID,
		At:         &at,
	})
	require.NoError(t, err)
	return resp
}

func checkOutAt(t *testing.T, fix *attendanceFixture, at string) (attendance.RecordResponse, error) {
	t.Helper()
	return fix.svc.CheckOut(context.Background(), attendance.CheckOutRequest{
		EmployeeID: testEmployeeID,
		At:         &at,
	})
}

func TestAttendanceService_CheckIn_OnTime(t *testing.T) {
	fix := newAttendanceFixture(t)

	resp := checkInAt(t, fix, "2026-03-02T08:55:00Z")

	require.NotNil(t, resp.CheckInStatus)
	assert.Equal(t, attendance.CheckInOnTime, *resp.CheckInStatus)
	require.NotNil(t, resp.LateMinutes)
	assert.Equal(t, -5, *resp.LateMinutes)
	assert.Equal(t, 60, resp.BreakMinutes)
}

// Lateness classification boundaries: exactly on time, the 15-minute
// grace edge, and one minute past it.
func TestAttendanceService_CheckIn_Classification(t *testing.T) {
	cases := []struct {
		name string
		at   string
		want string
		late int
	}{
		{"exactly on time", "2026-03-02T09:00:00Z", attendance.CheckInOnTime, 0},
		{"grace edge", "2026-03-02T09:15:00Z", attendance.CheckInSlightlyLate, 15},
		{"past grace", "2026-03-02T09:16:00Z", attendance.CheckInLate, 16},
		{"well late", "2026-03-02T10:30:00Z", attendance.CheckInLate, 90},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fix := newAttendanceFixture(t)

			resp := checkInAt(t, fix, tc.at)

			require.NotNil(t, resp.CheckInStatus)
			assert.Equal(t, tc.want, *resp.CheckInStatus)
			require.NotNil(t, resp.LateMinutes)
			assert.Equal(t, tc.late, *resp.LateMinutes)
		})
	}
}

func TestAttendanceService_CheckIn_Twice(t *testing.T) {
	fix := newAttendanceFixture(t)
	checkInAt(t, fix, "2026-03-02T09:00:00Z")

	at := "2026-03-02T09:05:00Z"
	_, err := fix.svc.CheckIn(context.Background(), attendance.CheckInRequest{
		EmployeeID: testEmployeeID,
		At:         &at,
	})

	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestAttendanceService_CheckIn_NoShift(t *testing.T) {
	fix := newAttendanceFixture(t)

	at := "2026-03-03T09:00:00Z"
	_, err := fix.svc.CheckIn(context.Background(), attendance.CheckInRequest{
		EmployeeID: testEmployeeID,
		At:         &at,
	})

	assert.ErrorIs(t, err, attendance.ErrNoShiftToday)
}

// A cancelled shift does not accept a check-in.
func TestAttendanceService_CheckIn_CancelledShift(t *testing.T) {
	fix := newAttendanceFixture(t)
	fix.schedules.assignments[0].Status = schedule.StatusCancelled

	at := "2026-03-02T09:00:00Z"
	_, err := fix.svc.CheckIn(context.Background(), attendance.CheckInRequest{
		EmployeeID: testEmployeeID,
		At:         &at,
	})

	assert.ErrorIs(t, err, attendance.ErrNoShiftToday)
}

// The break allowance comes from the shift's role when set.
func TestAttendanceService_CheckIn_RoleBreakAllowance(t *testing.T) {
	fix := newAttendanceFixture(t)
	roleID := "role-1"
	fix.roles.roles[roleID] = employee.Role{ID: roleID, Name: "Nurse", BreakMinutes: 45}
	fix.schedules.assignments[0].RoleID = &roleID

	resp := checkInAt(t, fix, "2026-03-02T09:00:00Z")

	assert.Equal(t, 45, resp.BreakMinutes)
}

// A full 09:00-18:00 presence less the hour of break is exactly the
// standard day: no overtime, nothing settled.
func TestAttendanceService_CheckOut_StandardDay(t *testing.T) {
	fix := newAttendanceFixture(t)
	checkInAt(t, fix, "2026-03-02T09:00:00Z")

	resp, err := checkOutAt(t, fix, "2026-03-02T18:00:00Z")

	require.NoError(t, err)
	assert.Equal(t, "8.00", resp.WorkedHours)
	assert.Equal(t, "0.00", resp.OvertimeHours)
	assert.Equal(t, schedule.StatusCompleted, fix.schedules.statuses[testAssignmentID])
	assert.Empty(t, fix.overtime.consumed, "nothing settled, nothing deducted")
}

// Overtime without an approval settles only the hours beyond the
// standard day.
func TestAttendanceService_CheckOut_OvertimeNoApproval(t *testing.T) {
	fix := newAttendanceFixture(t)
	checkInAt(t, fix, "2026-03-02T09:00:00Z")

	resp, err := checkOutAt(t, fix, "2026-03-02T19:30:00Z")

	require.NoError(t, err)
	assert.Equal(t, "9.50", resp.WorkedHours)
	assert.Equal(t, "1.50", resp.OvertimeHours)
}

// A windowed approval settles the overlap of the window and the time
// past the shift end, and the deduction hits the monthly allocation.
func TestAttendanceService_CheckOut_WindowedApproval(t *testing.T) {
	fix := newAttendanceFixture(t)
	date, _ := time.Parse("2006-01-02", "2026-03-02")
	fix.approvals.approval = &overtime.Approval{
		ID:         "appr-1",
		EmployeeID: testEmployeeID,
		Date:       date,
		WindowFrom: "17:00",
		WindowTo:   "19:00",
		CapHours:   decimal.NewFromInt(2),
	}
	checkInAt(t, fix, "2026-03-02T09:00:00Z")

	resp, err := checkOutAt(t, fix, "2026-03-02T19:30:00Z")

	require.NoError(t, err)
	assert.Equal(t, "2.00", resp.OvertimeHours)
	require.Len(t, fix.overtime.consumed, 1)
	assert.True(t, fix.overtime.consumed[0].Equal(decimal.NewFromInt(2)))
}

// The record's overtime figure never exceeds the approved cap, even
// when the employee stayed far beyond the standard day.
func TestAttendanceService_CheckOut_OvertimeCappedByApproval(t *testing.T) {
	fix := newAttendanceFixture(t)
	date, _ := time.Parse("2006-01-02", "2026-03-02")
	fix.approvals.approval = &overtime.Approval{
		ID:         "appr-1",
		EmployeeID: testEmployeeID,
		Date:       date,
		WindowFrom: "17:00",
		WindowTo:   "18:00",
		CapHours:   decimal.NewFromInt(1),
	}
	checkInAt(t, fix, "2026-03-02T09:00:00Z")

	resp, err := checkOutAt(t, fix, "2026-03-02T19:30:00Z")

	require.NoError(t, err)
	assert.Equal(t, "9.50", resp.WorkedHours)
	assert.Equal(t, "1.00", resp.OvertimeHours)
	require.Len(t, fix.overtime.consumed, 1)
	assert.True(t, fix.overtime.consumed[0].Equal(decimal.NewFromInt(1)))
}

// Short presence keeps the break deduction from going negative.
func TestAttendanceService_CheckOut_ShorterThanBreak(t *testing.T) {
	fix := newAttendanceFixture(t)
	checkInAt(t, fix, "2026-03-02T09:00:00Z")

	resp, err := checkOutAt(t, fix, "2026-03-02T09:30:00Z")

	require.NoError(t, err)
	assert.Equal(t, "0.50", resp.WorkedHours, "presence below the allowance is untouched")
}

func TestAttendanceService_CheckOut_WithoutCheckIn(t *testing.T) {
	fix := newAttendanceFixture(t)

	_, err := checkOutAt(t, fix, "2026-03-02T18:00:00Z")

	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestAttendanceService_CheckOut_Twice(t *testing.T) {
	fix := newAttendanceFixture(t)
	checkInAt(t, fix, "2026-03-02T09:00:00Z")

	_, err := checkOutAt(t, fix, "2026-03-02T18:00:00Z")
	require.NoError(t, err)

	_, err = checkOutAt(t, fix, "2026-03-02T19:00:00Z")
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

// staleSessionRepo hands out a session snapshot that the store has
// already closed, the way a second closer sees it mid-race.
type staleSessionRepo struct {
	*fakeAttendanceRepo
	stale attendance.Record
}

func (f *staleSessionRepo) GetOpenSession(ctx context.Context, employeeID string) (*attendance.Record, error) {
	open := f.stale
	return &open, nil
}

// Two closers racing on one session: the loser's write matches no open
// row and is rejected without touching the monthly allocation.
func TestAttendanceService_CheckOut_ConcurrentCloserRejected(t *testing.T) {
	fix := newAttendanceFixture(t)
	checkInAt(t, fix, "2026-03-02T09:00:00Z")
	stale := fix.records.records[0]

	_, err := checkOutAt(t, fix, "2026-03-02T19:30:00Z")
	require.NoError(t, err)
	consumedOnce := len(fix.overtime.consumed)

	fix.svc.AttendanceRepository = &staleSessionRepo{fakeAttendanceRepo: fix.records, stale: stale}

	_, err = checkOutAt(t, fix, "2026-03-02T19:45:00Z")
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
	assert.Len(t, fix.overtime.consumed, consumedOnce, "the losing closer must not debit the allocation again")
}

func TestAttendanceService_CheckOut_BeforeCheckIn(t *testing.T) {
	fix := newAttendanceFixture(t)
	checkInAt(t, fix, "2026-03-02T09:00:00Z")

	_, err := checkOutAt(t, fix, "2026-03-02T08:00:00Z")

	assert.Error(t, err)
}

func TestAttendanceService_GetRecord_NotFound(t *testing.T) {
	fix := newAttendanceFixture(t)

	_, err := fix.svc.GetRecord(context.Background(), "missing")

	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

// ListMyRecords resolves the employee from the authenticated claims.
func TestAttendanceService_ListMyRecords_FromClaims(t *testing.T) {
	fix := newAttendanceFixture(t)
	checkInAt(t, fix, "2026-03-02T09:00:00Z")

	token, err := jwt.NewBuilder().Claim("employee_id", testEmployeeID).Build()
	require.NoError(t, err)
	ctx := jwtauth.NewContext(context.Background(), token, nil)

	from, _ := time.Parse("2006-01-02", "2026-03-01")
	to, _ := time.Parse("2006-01-02", "2026-03-31")
	records, err := fix.svc.ListMyRecords(ctx, from, to)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, testEmployeeID, records[0].EmployeeID)
}

func TestAttendanceService_ListMyRecords_NoClaims(t *testing.T) {
	fix := newAttendanceFixture(t)

	from, _ := time.Parse("2006-01-02", "2026-03-01")
	to, _ := time.Parse("2006-01-02", "2026-03-31")
	_, err := fix.svc.ListMyRecords(context.Background(), from, to)

	assert.Error(t, err)
}
