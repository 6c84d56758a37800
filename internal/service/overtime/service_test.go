package overtime

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rosterlab/shift-backend-go/internal/config"
	"github.com/rosterlab/shift-backend-go/internal/domain/employee"
	"github.com/rosterlab/shift-backend-go/internal/domain/overtime"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEmployeeID = "emp-1"

type fakeApprovalRepo struct {
	approvals []overtime.Approval
}

func (f *fakeApprovalRepo) Create(ctx context.Context, a overtime.Approval) (overtime.Approval, error) {
	for _, existing := range f.approvals {
		if existing.EmployeeID == a.EmployeeID && existing.Date.Equal(a.Date) {
			return overtime.Approval{}, overtime.ErrApprovalExists
		}
	}
	f.approvals = append(f.approvals, a)
	return a, nil
}

func (f *fakeApprovalRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*overtime.Approval, error) {
	for _, a := range f.approvals {
		if a.EmployeeID == employeeID && a.Date.Equal(date) {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeApprovalRepo) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]overtime.Approval, error) {
	var out []overtime.Approval
	for _, a := range f.approvals {
		if a.EmployeeID == employeeID && !a.Date.Before(from) && !a.Date.After(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeTrackingRepo struct {
	trackings []overtime.MonthlyTracking
}

func (f *fakeTrackingRepo) GetByEmployeeAndMonth(ctx context.Context, employeeID string, year, month int) (overtime.MonthlyTracking, error) {
	for _, tr := range f.trackings {
		if tr.EmployeeID == employeeID && tr.Year == year && tr.Month == month {
			return tr, nil
		}
	}
	return overtime.MonthlyTracking{}, overtime.ErrTrackingNotFound
}

func (f *fakeTrackingRepo) Create(ctx context.Context, tr overtime.MonthlyTracking) (overtime.MonthlyTracking, error) {
	f.trackings = append(f.trackings, tr)
	return tr, nil
}

func (f *fakeTrackingRepo) AddUsedHours(ctx context.Context, id string, hours decimal.Decimal) error {
	for i := range f.trackings {
		if f.trackings[i].ID == id {
			f.trackings[i].UsedHours = f.trackings[i].UsedHours.Add(hours)
			f.trackings[i].RemainingHours = f.trackings[i].RemainingHours.Sub(hours)
			return nil
		}
	}
	return overtime.ErrTrackingNotFound
}

type fakeEmployeeRepo struct{}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if id != testEmployeeID {
		return employee.Employee{}, pgx.ErrNoRows
	}
	return employee.Employee{ID: testEmployeeID, DepartmentID: "dept-1"}, nil
}

func (f *fakeEmployeeRepo) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	return employee.Employee{}, pgx.ErrNoRows
}

func (f *fakeEmployeeRepo) List(ctx context.Context, departmentID *string) ([]employee.Employee, error) {
	return nil, nil
}

func newTestOvertimeService(trackings *fakeTrackingRepo) *OvertimeServiceImpl {
	policy := config.PolicyConfig{DefaultMonthlyOTHours: 8}
	return NewOvertimeService(nil, policy, &fakeApprovalRepo{}, trackings, &fakeEmployeeRepo{}).(*OvertimeServiceImpl)
}

func approveRequest() overtime.ApproveRequest {
	return overtime.ApproveRequest{
		EmployeeID: testEmployeeID,
		Date:       "2026-03-02",
		WindowFrom: "18:00",
		WindowTo:   "19:00",
		CapHours:   1.0,
		Reason:     "month-end closing",
		ManagerID:  "mgr-1",
	}
}

func TestOvertimeService_Approve_Success(t *testing.T) {
	svc := newTestOvertimeService(&fakeTrackingRepo{})

	resp, err := svc.Approve(context.Background(), approveRequest())

	require.NoError(t, err)
	assert.Equal(t, testEmployeeID, resp.EmployeeID)
	assert.Equal(t, "2026-03-02", resp.Date)
	assert.Equal(t, "18:00", resp.WindowFrom)
	assert.Equal(t, "19:00", resp.WindowTo)
	assert.Equal(t, "1.00", resp.CapHours)
	assert.Equal(t, "mgr-1", resp.ManagerID)
	assert.NotEmpty(t, resp.ID)
}

func TestOvertimeService_Approve_Duplicate(t *testing.T) {
	svc := newTestOvertimeService(&fakeTrackingRepo{})

	_, err := svc.Approve(context.Background(), approveRequest())
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), approveRequest())
	assert.ErrorIs(t, err, overtime.ErrApprovalExists)
}

func TestOvertimeService_Approve_UnknownEmployee(t *testing.T) {
	svc := newTestOvertimeService(&fakeTrackingRepo{})

	req := approveRequest()
	req.EmployeeID = "ghost"
	_, err := svc.Approve(context.Background(), req)

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestOvertimeService_Lookup(t *testing.T) {
	svc := newTestOvertimeService(&fakeTrackingRepo{})
	_, err := svc.Approve(context.Background(), approveRequest())
	require.NoError(t, err)

	date := mustTime(t, "2026-03-02 00:00")
	found, err := svc.Lookup(context.Background(), testEmployeeID, date)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "1.00", found.CapHours)

	missing, err := svc.Lookup(context.Background(), testEmployeeID, date.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// An unseen month materializes with the default allocation.
func TestOvertimeService_Tracking_CreatesDefault(t *testing.T) {
	trackings := &fakeTrackingRepo{}
	svc := newTestOvertimeService(trackings)

	resp, err := svc.Tracking(context.Background(), testEmployeeID, 2026, 3)

	require.NoError(t, err)
	assert.Equal(t, 2026, resp.Year)
	assert.Equal(t, 3, resp.Month)
	assert.Equal(t, "8.00", resp.AllocatedHours)
	assert.Equal(t, "0.00", resp.UsedHours)
	assert.Equal(t, "8.00", resp.RemainingHours)
	assert.Len(t, trackings.trackings, 1)
}

func TestOvertimeService_Tracking_ReadsExisting(t *testing.T) {
	trackings := &fakeTrackingRepo{trackings: []overtime.MonthlyTracking{{
		ID:             "trk-1",
		EmployeeID:     testEmployeeID,
		Year:           2026,
		Month:          3,
		AllocatedHours: decimal.NewFromInt(12),
		UsedHours:      decimal.NewFromInt(5),
		RemainingHours: decimal.NewFromInt(7),
	}}}
	svc := newTestOvertimeService(trackings)

	resp, err := svc.Tracking(context.Background(), testEmployeeID, 2026, 3)

	require.NoError(t, err)
	assert.Equal(t, "12.00", resp.AllocatedHours)
	assert.Equal(t, "5.00", resp.UsedHours)
	assert.Equal(t, "7.00", resp.RemainingHours)
	assert.Len(t, trackings.trackings, 1, "the existing row must not be duplicated")
}

func TestOvertimeService_ConsumeAllocation_DebitsMonth(t *testing.T) {
	trackings := &fakeTrackingRepo{}
	svc := newTestOvertimeService(trackings)
	date := mustTime(t, "2026-03-02 00:00")

	err := svc.ConsumeAllocation(context.Background(), testEmployeeID, date, decimal.NewFromFloat(1.5))

	require.NoError(t, err)
	require.Len(t, trackings.trackings, 1)
	assert.True(t, trackings.trackings[0].UsedHours.Equal(decimal.NewFromFloat(1.5)))
	assert.True(t, trackings.trackings[0].RemainingHours.Equal(decimal.NewFromFloat(6.5)))
}

// Zero settled hours leave the allocation untouched.
func TestOvertimeService_ConsumeAllocation_IgnoresZero(t *testing.T) {
	trackings := &fakeTrackingRepo{}
	svc := newTestOvertimeService(trackings)
	date := mustTime(t, "2026-03-02 00:00")

	err := svc.ConsumeAllocation(context.Background(), testEmployeeID, date, decimal.Zero)

	require.NoError(t, err)
	assert.Empty(t, trackings.trackings)
}

// The allocation can go negative: settlement is authoritative, the
// budget is advisory.
func TestOvertimeService_ConsumeAllocation_CanOverdraw(t *testing.T) {
	trackings := &fakeTrackingRepo{}
	svc := newTestOvertimeService(trackings)
	date := mustTime(t, "2026-03-02 00:00")

	require.NoError(t, svc.ConsumeAllocation(context.Background(), testEmployeeID, date, decimal.NewFromInt(6)))
	require.NoError(t, svc.ConsumeAllocation(context.Background(), testEmployeeID, date, decimal.NewFromInt(4)))

	require.Len(t, trackings.trackings, 1)
	assert.True(t, trackings.trackings[0].RemainingHours.Equal(decimal.NewFromInt(-2)))
}
