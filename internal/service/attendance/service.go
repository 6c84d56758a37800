package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rosterlab/shift-backend-go/internal/config"
	"github.com/rosterlab/shift-backend-go/internal/domain/attendance"
	"github.com/rosterlab/shift-backend-go/internal/domain/employee"
	"github.com/rosterlab/shift-backend-go/internal/domain/overtime"
	"github.com/rosterlab/shift-backend-go/internal/domain/schedule"
	"github.com/rosterlab/shift-backend-go/internal/pkg/database"
	"github.com/rosterlab/shift-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

type AttendanceServiceImpl struct {
	db     *database.DB
	policy config.PolicyConfig
	calc   overtime.Calculator
	attendance.AttendanceRepository
	schedule.ScheduleRepository
	overtime.ApprovalRepository
	overtimeService overtime.OvertimeService
	employee.RoleRepository

	// now and runTx are swapped out in tests.
	now   func() time.Time
	runTx func(ctx context.Context, fn func(tx pgx.Tx) error) error
}

func NewAttendanceService(
	db *database.DB,
	policy config.PolicyConfig,
	calc overtime.Calculator,
	attendanceRepository attendance.AttendanceRepository,
	scheduleRepository schedule.ScheduleRepository,
	approvalRepository overtime.ApprovalRepository,
	overtimeService overtime.OvertimeService,
	roleRepository employee.RoleRepository,
) attendance.AttendanceService {
	s := &AttendanceServiceImpl{
		db:                   db,
		policy:               policy,
		calc:                 calc,
		AttendanceRepository: attendanceRepository,
		ScheduleRepository:   scheduleRepository,
		ApprovalRepository:   approvalRepository,
		overtimeService:      overtimeService,
		RoleRepository:       roleRepository,
		now:                  time.Now,
	}
	s.runTx = func(ctx context.Context, fn func(tx pgx.Tx) error) error {
		return postgresql.WithTransaction(ctx, s.db, fn)
	}
	return s
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	employeeID, err := s.resolveEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	at := s.now()
	if override := req.ParsedAt(); override != nil {
		at = *override
	}
	date := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())

	shift, err := s.todayShift(ctx, employeeID, date)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to check existing attendance: %w", err)
	}
	if existing != nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
	}

	shiftStart, err := schedule.ClockOn(date, shift.StartTime)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("invalid shift start time: %w", err)
	}

	lateMinutes := int(at.Sub(shiftStart).Minutes())
	status := attendance.ClassifyCheckIn(lateMinutes)

	breakMinutes, err := s.breakAllowance(ctx, shift)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	record := attendance.Record{
		ID:            uuid.NewString(),
		EmployeeID:    employeeID,
		AssignmentID:  shift.ID,
		Date:          date,
		CheckIn:       &at,
		CheckInStatus: &status,
		LateMinutes:   &lateMinutes,
		BreakMinutes:  breakMinutes,
		WorkedHours:   decimal.Zero,
		OvertimeHours: decimal.Zero,
	}

	created, err := s.AttendanceRepository.Create(ctx, record)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return attendance.NewRecordResponse(created), nil
}

// CheckOut implements attendance.AttendanceService. Closing the session
// is terminal; settlement happens exactly once per record.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	employeeID, err := s.resolveEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	open, err := s.AttendanceRepository.GetOpenSession(ctx, employeeID)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to get open session: %w", err)
	}
	if open == nil {
		at := s.now()
		closed, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID,
			time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location()))
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to check existing attendance: %w", err)
		}
		if closed != nil && closed.CheckOut != nil {
			return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut
		}
		return attendance.RecordResponse{}, attendance.ErrNotCheckedIn
	}

	out := s.now()
	if override := req.ParsedAt(); override != nil {
		out = *override
	}
	if !out.After(*open.CheckIn) {
		return attendance.RecordResponse{}, fmt.Errorf("check-out must be after check-in")
	}

	shift, err := s.ScheduleRepository.GetByID(ctx, open.AssignmentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.RecordResponse{}, schedule.ErrAssignmentNotFound
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get assignment: %w", err)
	}

	totalMinutes := decimal.NewFromFloat(out.Sub(*open.CheckIn).Minutes())
	breakAllowance := decimal.NewFromInt(int64(open.BreakMinutes))
	if totalMinutes.GreaterThanOrEqual(breakAllowance) {
		totalMinutes = totalMinutes.Sub(breakAllowance)
	}
	workedHours := totalMinutes.Div(sixty).Round(2)

	shiftStart, err := schedule.ClockOn(open.Date, shift.StartTime)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("invalid shift start time: %w", err)
	}
	shiftEnd, err := schedule.ClockOn(open.Date, shift.EndTime)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("invalid shift end time: %w", err)
	}
	if !shiftEnd.After(shiftStart) {
		shiftEnd = shiftEnd.AddDate(0, 0, 1)
	}

	approval, err := s.ApprovalRepository.GetByEmployeeAndDate(ctx, employeeID, open.Date)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to look up overtime approval: %w", err)
	}

	// OvertimeHours carries the settled figure: capped at the approved
	// hours when an approval exists, worked-beyond-standard otherwise.
	settled := s.calc.Settle(shiftEnd, out, approval, workedHours)

	record := *open
	record.CheckOut = &out
	record.WorkedHours = workedHours
	record.OvertimeHours = settled

	err = s.runTx(ctx, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.AttendanceRepository.Update(txCtx, record); err != nil {
			if err == attendance.ErrAlreadyCheckedOut {
				return err
			}
			return fmt.Errorf("failed to close attendance record: %w", err)
		}
		if err := s.ScheduleRepository.UpdateStatus(txCtx, shift.ID, schedule.StatusCompleted); err != nil {
			return fmt.Errorf("failed to complete assignment: %w", err)
		}
		return s.overtimeService.ConsumeAllocation(txCtx, employeeID, open.Date, settled)
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return attendance.NewRecordResponse(record), nil
}

// GetRecord implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetRecord(ctx context.Context, id string) (attendance.RecordResponse, error) {
	record, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.RecordResponse{}, attendance.ErrRecordNotFound
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return attendance.NewRecordResponse(record), nil
}

// ListMyRecords implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListMyRecords(ctx context.Context, from, to time.Time) ([]attendance.RecordResponse, error) {
	employeeID, err := s.resolveEmployeeID(ctx, "")
	if err != nil {
		return nil, err
	}

	records, err := s.AttendanceRepository.ListByEmployeeAndRange(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.NewRecordResponse(r))
	}
	return responses, nil
}

// resolveEmployeeID prefers an explicit request value, falling back to
// the employee_id claim of the authenticated user.
func (s *AttendanceServiceImpl) resolveEmployeeID(ctx context.Context, requested string) (string, error) {
	if requested != "" {
		return requested, nil
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("employee_id claim is missing or invalid")
	}
	return employeeID, nil
}

// todayShift picks the work shift attendance runs against. Leave rows
// and cancelled shifts do not accept a check-in.
func (s *AttendanceServiceImpl) todayShift(ctx context.Context, employeeID string, date time.Time) (schedule.ShiftAssignment, error) {
	rows, err := s.ScheduleRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return schedule.ShiftAssignment{}, fmt.Errorf("failed to load today's assignments: %w", err)
	}
	for _, a := range rows {
		if a.Status == schedule.StatusScheduled {
			return a, nil
		}
	}
	return schedule.ShiftAssignment{}, attendance.ErrNoShiftToday
}

func (s *AttendanceServiceImpl) breakAllowance(ctx context.Context, shift schedule.ShiftAssignment) (int, error) {
	if shift.RoleID == nil {
		return s.policy.DefaultBreakMinutes, nil
	}
	role, err := s.RoleRepository.GetByID(ctx, *shift.RoleID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return s.policy.DefaultBreakMinutes, nil
		}
		return 0, fmt.Errorf("failed to get role: %w", err)
	}
	return role.BreakMinutes, nil
}
