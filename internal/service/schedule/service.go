package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rosterlab/shift-backend-go/internal/config"
	"github.com/rosterlab/shift-backend-go/internal/domain/employee"
	"github.com/rosterlab/shift-backend-go/internal/domain/overtime"
	"github.com/rosterlab/shift-backend-go/internal/domain/schedule"
	"github.com/rosterlab/shift-backend-go/internal/pkg/calendar"
	"github.com/rosterlab/shift-backend-go/internal/pkg/database"
	"github.com/rosterlab/shift-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
)

type ScheduleServiceImpl struct {
	db     *database.DB
	policy config.PolicyConfig
	cal    *calendar.Calendar
	schedule.ScheduleRepository
	employee.EmployeeRepository
	overtime.ApprovalRepository
	overtime.TrackingRepository

	// runTx wraps the read-decide-insert sequence; tests swap it out.
	runTx func(ctx context.Context, fn func(tx pgx.Tx) error) error
}

func NewScheduleService(
	db *database.DB,
	policy config.PolicyConfig,
	cal *calendar.Calendar,
	scheduleRepository schedule.ScheduleRepository,
	employeeRepository employee.EmployeeRepository,
	approvalRepository overtime.ApprovalRepository,
	trackingRepository overtime.TrackingRepository,
) schedule.ScheduleService {
	s := &ScheduleServiceImpl{
		db:                 db,
		policy:             policy,
		cal:                cal,
		ScheduleRepository: scheduleRepository,
		EmployeeRepository: employeeRepository,
		ApprovalRepository: approvalRepository,
		TrackingRepository: trackingRepository,
	}
	s.runTx = func(ctx context.Context, fn func(tx pgx.Tx) error) error {
		return postgresql.WithTransaction(ctx, s.db, fn)
	}
	return s
}

// Propose implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Propose(ctx context.Context, req schedule.ProposeShiftRequest) (schedule.ProposalResult, error) {
	return s.evaluate(ctx, req, false)
}

// Confirm implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) Confirm(ctx context.Context, req schedule.ProposeShiftRequest) (schedule.ProposalResult, error) {
	return s.evaluate(ctx, req, true)
}

// evaluate runs the constraint chain. Hard gates reject in both modes;
// soft overtime thresholds return a requires-approval advisory unless
// the caller already confirmed them.
func (s *ScheduleServiceImpl) evaluate(ctx context.Context, req schedule.ProposeShiftRequest, confirmed bool) (schedule.ProposalResult, error) {
	date := req.ParsedDate()

	shiftHours, err := schedule.ShiftHours(req.StartTime, req.EndTime)
	if err != nil {
		return schedule.ProposalResult{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.ProposalResult{}, employee.ErrEmployeeNotFound
		}
		return schedule.ProposalResult{}, fmt.Errorf("failed to get employee: %w", err)
	}

	var result schedule.ProposalResult

	err = s.runTx(ctx, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		// Hard gate: one work shift per employee per day.
		sameDay, err := s.ScheduleRepository.GetByEmployeeAndDate(txCtx, req.EmployeeID, date)
		if err != nil {
			return fmt.Errorf("failed to load same-day assignments: %w", err)
		}
		for _, a := range sameDay {
			if a.Status.BlocksSameDayAssignment() {
				result = rejected(fmt.Sprintf("a work shift is already assigned on %s", req.Date))
				return nil
			}
		}

		weekStart := calendar.WeekStart(date)
		weekEnd := weekStart.AddDate(0, 0, 6)

		weekRows, err := s.ScheduleRepository.ListByEmployeeAndRange(txCtx, req.EmployeeID, weekStart, weekEnd)
		if err != nil {
			return fmt.Errorf("failed to load weekly assignments: %w", err)
		}
		agg := aggregate(weekRows)

		// Hard gate: flat weekly shift cap.
		if agg.DaysCount >= s.policy.MaxShiftsPerWeek {
			result = rejected(fmt.Sprintf(
				"weekly shift limit reached: %d/%d shifts already assigned in the week of %s",
				agg.DaysCount, s.policy.MaxShiftsPerWeek, weekStart.Format("2006-01-02"),
			))
			return nil
		}

		// Hard gate: consecutive covered days, the proposal included.
		run, err := s.consecutiveRun(txCtx, req.EmployeeID, date)
		if err != nil {
			return err
		}
		if run > s.policy.MaxConsecutiveShifts {
			result = rejected(fmt.Sprintf(
				"consecutive shift limit exceeded: %d consecutive days would exceed the maximum of %d",
				run, s.policy.MaxConsecutiveShifts,
			))
			return nil
		}

		// Soft thresholds: daily and weekly overtime.
		dailyHours := decimal.Zero
		for _, a := range sameDay {
			if a.Status.CountsTowardAggregates() {
				dailyHours = dailyHours.Add(a.Hours())
			}
		}
		totalDaily := dailyHours.Add(shiftHours)
		totalWeekly := agg.TotalHours.Add(shiftHours)

		maxDaily := decimal.NewFromFloat(s.policy.MaxDailyHours)
		maxWeekly := decimal.NewFromFloat(s.policy.MaxWeeklyHours)

		dailyOT := totalDaily.GreaterThan(maxDaily)
		weeklyOT := totalWeekly.GreaterThan(maxWeekly)

		if (dailyOT || weeklyOT) && !confirmed {
			advisory, err := s.buildAdvisory(txCtx, req.EmployeeID, date, shiftHours, totalDaily, totalWeekly, dailyOT, weeklyOT, maxDaily, maxWeekly)
			if err != nil {
				return err
			}
			result = schedule.ProposalResult{
				Decision: schedule.DecisionRequiresApproval,
				Advisory: advisory,
			}
			return nil
		}

		assignment := schedule.ShiftAssignment{
			ID:           uuid.NewString(),
			DepartmentID: emp.DepartmentID,
			EmployeeID:   req.EmployeeID,
			RoleID:       req.RoleID,
			Date:         date,
			StartTime:    req.StartTime,
			EndTime:      req.EndTime,
			Status:       schedule.StatusScheduled,
			Notes:        req.Notes,
		}

		created, err := s.ScheduleRepository.Create(txCtx, assignment)
		if err != nil {
			if errors.Is(err, schedule.ErrAssignmentConflict) {
				result = rejected(fmt.Sprintf("a work shift is already assigned on %s", req.Date))
				return nil
			}
			return fmt.Errorf("failed to create assignment: %w", err)
		}

		resp := newShiftResponse(created)
		result = schedule.ProposalResult{
			Decision:   schedule.DecisionAccepted,
			Assignment: &resp,
		}
		return nil
	})

	if err != nil {
		return schedule.ProposalResult{}, err
	}

	return result, nil
}

// consecutiveRun returns the length of the covered-day run through date,
// assuming date itself gets assigned. Leave and comp-off rows extend the
// run; only a day with no surviving assignment breaks it.
func (s *ScheduleServiceImpl) consecutiveRun(ctx context.Context, employeeID string, date time.Time) (int, error) {
	span := s.policy.MaxConsecutiveShifts
	from := date.AddDate(0, 0, -span)
	to := date.AddDate(0, 0, span)

	rows, err := s.ScheduleRepository.ListByEmployeeAndRange(ctx, employeeID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to load surrounding assignments: %w", err)
	}

	covered := make(map[string]bool)
	for _, a := range rows {
		if a.Status.CountsTowardAggregates() || a.Status.IsLeave() {
			covered[a.Date.Format("2006-01-02")] = true
		}
	}
	covered[date.Format("2006-01-02")] = true

	run := 1
	for d := date.AddDate(0, 0, -1); covered[d.Format("2006-01-02")]; d = d.AddDate(0, 0, -1) {
		run++
	}
	for d := date.AddDate(0, 0, 1); covered[d.Format("2006-01-02")]; d = d.AddDate(0, 0, 1) {
		run++
	}
	return run, nil
}

func (s *ScheduleServiceImpl) buildAdvisory(
	ctx context.Context,
	employeeID string,
	date time.Time,
	shiftHours, totalDaily, totalWeekly decimal.Decimal,
	dailyOT, weeklyOT bool,
	maxDaily, maxWeekly decimal.Decimal,
) (*schedule.OvertimeAdvisory, error) {
	dailyDelta := decimal.Zero
	if dailyOT {
		dailyDelta = totalDaily.Sub(maxDaily)
	}
	weeklyDelta := decimal.Zero
	if weeklyOT {
		weeklyDelta = totalWeekly.Sub(maxWeekly)
	}
	overtimeHours := dailyDelta
	if weeklyDelta.GreaterThan(overtimeHours) {
		overtimeHours = weeklyDelta
	}

	allocated := decimal.NewFromFloat(s.policy.DefaultMonthlyOTHours)
	used := decimal.Zero
	tracking, err := s.TrackingRepository.GetByEmployeeAndMonth(ctx, employeeID, date.Year(), int(date.Month()))
	if err != nil {
		if !errors.Is(err, overtime.ErrTrackingNotFound) {
			return nil, fmt.Errorf("failed to load overtime tracking: %w", err)
		}
	} else {
		allocated = tracking.AllocatedHours
		used = tracking.UsedHours
	}
	remaining := allocated.Sub(used)
	hasSufficient := remaining.GreaterThanOrEqual(overtimeHours)

	// A standing per-date approval that covers the delta also counts.
	if !hasSufficient {
		approval, err := s.ApprovalRepository.GetByEmployeeAndDate(ctx, employeeID, date)
		if err != nil {
			return nil, fmt.Errorf("failed to look up overtime approval: %w", err)
		}
		if approval != nil && approval.CapHours.GreaterThanOrEqual(overtimeHours) {
			hasSufficient = true
		}
	}

	msg := "shift requires overtime approval"
	switch {
	case dailyOT && weeklyOT:
		msg = fmt.Sprintf("shift requires overtime approval: daily total %sh exceeds %sh and weekly total %sh exceeds %sh",
			totalDaily.StringFixed(2), maxDaily.StringFixed(0), totalWeekly.StringFixed(2), maxWeekly.StringFixed(0))
	case dailyOT:
		msg = fmt.Sprintf("shift requires overtime approval: daily total %sh exceeds %sh",
			totalDaily.StringFixed(2), maxDaily.StringFixed(0))
	case weeklyOT:
		msg = fmt.Sprintf("shift requires overtime approval: weekly total %sh exceeds %sh",
			totalWeekly.StringFixed(2), maxWeekly.StringFixed(0))
	}

	return &schedule.OvertimeAdvisory{
		Message:          msg,
		ShiftHours:       shiftHours,
		TotalDailyHours:  totalDaily,
		TotalWeeklyHours: totalWeekly,
		OvertimeHours:    overtimeHours,
		DailyOvertime:    dailyOT,
		WeeklyOvertime:   weeklyOT,
		AllocatedOTHours: allocated,
		UsedOTHours:      used,
		RemainingOTHours: remaining,
		HasSufficientOT:  hasSufficient,
	}, nil
}

// List implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) List(ctx context.Context, filter schedule.ListFilter) ([]schedule.ShiftResponse, error) {
	rows, err := s.ScheduleRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	responses := make([]schedule.ShiftResponse, 0, len(rows))
	for _, a := range rows {
		responses = append(responses, newShiftResponse(a))
	}
	return responses, nil
}

// WeeklyAggregate implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) WeeklyAggregate(ctx context.Context, employeeID string, weekStart time.Time) (schedule.WeeklyAggregate, error) {
	start := calendar.WeekStart(weekStart)
	end := start.AddDate(0, 0, 6)

	rows, err := s.ScheduleRepository.ListByEmployeeAndRange(ctx, employeeID, start, end)
	if err != nil {
		return schedule.WeeklyAggregate{}, fmt.Errorf("failed to load weekly assignments: %w", err)
	}
	return aggregate(rows), nil
}

// DailyHours implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) DailyHours(ctx context.Context, employeeID string, date time.Time) (decimal.Decimal, error) {
	rows, err := s.ScheduleRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load same-day assignments: %w", err)
	}

	total := decimal.Zero
	for _, a := range rows {
		if a.Status.CountsTowardAggregates() {
			total = total.Add(a.Hours())
		}
	}
	return total, nil
}

// ValidateWeek implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) ValidateWeek(ctx context.Context, employeeID string, weekStart time.Time) (schedule.WeekValidationResponse, error) {
	start := calendar.WeekStart(weekStart)
	end := start.AddDate(0, 0, 6)

	agg, err := s.WeeklyAggregate(ctx, employeeID, start)
	if err != nil {
		return schedule.WeekValidationResponse{}, err
	}

	return schedule.WeekValidationResponse{
		EmployeeID:     employeeID,
		WeekStart:      start.Format("2006-01-02"),
		WeekEnd:        end.Format("2006-01-02"),
		AssignedShifts: agg.DaysCount,
		RequiredShifts: s.cal.ShiftsRequiredForWeek(start),
		CanAssignMore:  agg.DaysCount < s.policy.MaxShiftsPerWeek,
		TotalHours:     agg.TotalHours.StringFixed(2),
	}, nil
}

// aggregate tallies counted days and hours. Multiple counted rows on one
// date still count as a single day.
func aggregate(rows []schedule.ShiftAssignment) schedule.WeeklyAggregate {
	days := make(map[string]bool)
	total := decimal.Zero
	for _, a := range rows {
		if !a.Status.CountsTowardAggregates() {
			continue
		}
		days[a.Date.Format("2006-01-02")] = true
		total = total.Add(a.Hours())
	}
	return schedule.WeeklyAggregate{DaysCount: len(days), TotalHours: total}
}

func rejected(reason string) schedule.ProposalResult {
	return schedule.ProposalResult{
		Decision: schedule.DecisionRejected,
		Reason:   reason,
	}
}

func newShiftResponse(a schedule.ShiftAssignment) schedule.ShiftResponse {
	return schedule.ShiftResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Date:       a.Date.Format("2006-01-02"),
		StartTime:  a.StartTime,
		EndTime:    a.EndTime,
		RoleID:     a.RoleID,
		Status:     string(a.Status),
		Notes:      a.Notes,
		Hours:      a.Hours().StringFixed(2),
		CreatedAt:  a.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
