package compoff

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rosterlab/shift-backend-go/internal/domain/compoff"
	"github.com/rosterlab/shift-backend-go/internal/domain/employee"
	"github.com/rosterlab/shift-backend-go/internal/domain/schedule"
	"github.com/rosterlab/shift-backend-go/internal/pkg/calendar"
	"github.com/rosterlab/shift-backend-go/internal/pkg/database"
	"github.com/rosterlab/shift-backend-go/internal/repository/postgresql"
)

type CompOffServiceImpl struct {
	db  *database.DB
	cal *calendar.Calendar
	compoff.EntryRepository
	compoff.RequestRepository
	schedule.ScheduleRepository
	employee.EmployeeRepository

	// now and runTx are swapped out in tests.
	now   func() time.Time
	runTx func(ctx context.Context, fn func(tx pgx.Tx) error) error
}

func NewCompOffService(
	db *database.DB,
	cal *calendar.Calendar,
	entryRepository compoff.EntryRepository,
	requestRepository compoff.RequestRepository,
	scheduleRepository schedule.ScheduleRepository,
	employeeRepository employee.EmployeeRepository,
) compoff.CompOffService {
	s := &CompOffServiceImpl{
		db:                 db,
		cal:                cal,
		EntryRepository:    entryRepository,
		RequestRepository:  requestRepository,
		ScheduleRepository: scheduleRepository,
		EmployeeRepository: employeeRepository,
		now:                time.Now,
	}
	s.runTx = func(ctx context.Context, fn func(tx pgx.Tx) error) error {
		return postgresql.WithTransaction(ctx, s.db, fn)
	}
	return s
}

// RequestEarn implements compoff.CompOffService. Only work done on a
// weekend or public holiday earns a credit.
func (s *CompOffServiceImpl) RequestEarn(ctx context.Context, req compoff.CreateRequestRequest) (compoff.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return compoff.RequestResponse{}, err
	}

	workDate := req.ParsedWorkDate()
	if nonWorking, _ := s.cal.IsNonWorkingDay(workDate); !nonWorking {
		return compoff.RequestResponse{}, compoff.ErrNotNonWorkingDay
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		if err == pgx.ErrNoRows {
			return compoff.RequestResponse{}, employee.ErrEmployeeNotFound
		}
		return compoff.RequestResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	request := compoff.Request{
		ID:         uuid.NewString(),
		EmployeeID: req.EmployeeID,
		WorkDate:   workDate,
		Reason:     req.Reason,
		Status:     compoff.RequestPending,
	}

	created, err := s.RequestRepository.Create(ctx, request)
	if err != nil {
		if errors.Is(err, compoff.ErrDuplicateEarnRequest) {
			return compoff.RequestResponse{}, compoff.ErrDuplicateEarnRequest
		}
		return compoff.RequestResponse{}, fmt.Errorf("failed to create comp-off request: %w", err)
	}

	return compoff.NewRequestResponse(created), nil
}

// Approve implements compoff.CompOffService. Granting writes the earned
// ledger entry and records the worked day as comp_off_earned so it
// counts toward the weekly aggregates.
func (s *CompOffServiceImpl) Approve(ctx context.Context, req compoff.ReviewRequest) (compoff.RequestResponse, error) {
	request, err := s.getPending(ctx, req.RequestID)
	if err != nil {
		return compoff.RequestResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, request.EmployeeID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return compoff.RequestResponse{}, employee.ErrEmployeeNotFound
		}
		return compoff.RequestResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	reviewedAt := s.now()
	request.Status = compoff.RequestApproved
	request.ReviewedBy = &req.ReviewerID
	request.ReviewedAt = &reviewedAt

	err = s.runTx(ctx, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.RequestRepository.Update(txCtx, request); err != nil {
			return fmt.Errorf("failed to update comp-off request: %w", err)
		}

		entry := compoff.Entry{
			ID:          uuid.NewString(),
			EmployeeID:  request.EmployeeID,
			Date:        request.WorkDate,
			Type:        compoff.EntryEarned,
			EarnedMonth: calendar.MonthTag(request.WorkDate),
			Notes:       request.Reason,
		}
		if _, err := s.EntryRepository.Create(txCtx, entry); err != nil {
			return fmt.Errorf("failed to create earned entry: %w", err)
		}

		assignment := schedule.ShiftAssignment{
			ID:           uuid.NewString(),
			DepartmentID: emp.DepartmentID,
			EmployeeID:   request.EmployeeID,
			Date:         request.WorkDate,
			Status:       schedule.StatusCompOffEarned,
			Notes:        request.Reason,
		}
		if _, err := s.ScheduleRepository.Create(txCtx, assignment); err != nil {
			if errors.Is(err, schedule.ErrAssignmentConflict) {
				// The worked day is already on the roster; the credit
				// still stands.
				return nil
			}
			return fmt.Errorf("failed to record worked day: %w", err)
		}
		return nil
	})
	if err != nil {
		return compoff.RequestResponse{}, err
	}

	return compoff.NewRequestResponse(request), nil
}

// Reject implements compoff.CompOffService.
func (s *CompOffServiceImpl) Reject(ctx context.Context, req compoff.ReviewRequest) (compoff.RequestResponse, error) {
	request, err := s.getPending(ctx, req.RequestID)
	if err != nil {
		return compoff.RequestResponse{}, err
	}

	reviewedAt := s.now()
	request.Status = compoff.RequestRejected
	request.ReviewedBy = &req.ReviewerID
	request.ReviewedAt = &reviewedAt
	request.RejectionReason = req.RejectionReason

	if err := s.RequestRepository.Update(ctx, request); err != nil {
		return compoff.RequestResponse{}, fmt.Errorf("failed to update comp-off request: %w", err)
	}

	return compoff.NewRequestResponse(request), nil
}

// Use implements compoff.CompOffService. Credits are consumed oldest
// first and die at the month boundary: a credit earned in an earlier
// month is flipped to expired and the use is rejected.
func (s *CompOffServiceImpl) Use(ctx context.Context, req compoff.UseRequest) (compoff.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return compoff.EntryResponse{}, err
	}

	date := req.ParsedDate()
	currentMonth := calendar.MonthTag(date)

	credit, err := s.EntryRepository.OldestUnusedEarned(ctx, req.EmployeeID)
	if err != nil {
		return compoff.EntryResponse{}, fmt.Errorf("failed to find available credit: %w", err)
	}
	if credit == nil {
		return compoff.EntryResponse{}, compoff.ErrInsufficientBalance
	}

	if credit.EarnedMonth < currentMonth {
		expired := compoff.Entry{
			ID:          uuid.NewString(),
			EmployeeID:  req.EmployeeID,
			Date:        date,
			Type:        compoff.EntryExpired,
			EarnedMonth: credit.EarnedMonth,
		}
		if _, err := s.EntryRepository.Create(ctx, expired); err != nil {
			return compoff.EntryResponse{}, fmt.Errorf("failed to expire credit: %w", err)
		}
		return compoff.EntryResponse{}, &compoff.ExpiredError{
			EarnedMonth:  credit.EarnedMonth,
			CurrentMonth: currentMonth,
		}
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return compoff.EntryResponse{}, employee.ErrEmployeeNotFound
		}
		return compoff.EntryResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	var used compoff.Entry

	err = s.runTx(ctx, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		entry := compoff.Entry{
			ID:          uuid.NewString(),
			EmployeeID:  req.EmployeeID,
			Date:        date,
			Type:        compoff.EntryUsed,
			EarnedMonth: credit.EarnedMonth,
		}
		created, err := s.EntryRepository.Create(txCtx, entry)
		if err != nil {
			return fmt.Errorf("failed to create used entry: %w", err)
		}
		used = created

		// The day off replaces any work shift still on the roster.
		workStatuses := []schedule.Status{schedule.StatusScheduled, schedule.StatusMissed}
		if err := s.ScheduleRepository.DeleteByEmployeeAndDate(txCtx, req.EmployeeID, date, workStatuses); err != nil {
			return fmt.Errorf("failed to clear replaced shift: %w", err)
		}

		assignment := schedule.ShiftAssignment{
			ID:           uuid.NewString(),
			DepartmentID: emp.DepartmentID,
			EmployeeID:   req.EmployeeID,
			Date:         date,
			Status:       schedule.StatusCompOffTaken,
		}
		if _, err := s.ScheduleRepository.Create(txCtx, assignment); err != nil {
			return fmt.Errorf("failed to record day off: %w", err)
		}
		return nil
	})
	if err != nil {
		return compoff.EntryResponse{}, err
	}

	return compoff.NewEntryResponse(used), nil
}

// Balance implements compoff.CompOffService.
func (s *CompOffServiceImpl) Balance(ctx context.Context, employeeID string) (compoff.BalanceResponse, error) {
	earned, err := s.EntryRepository.CountByType(ctx, employeeID, compoff.EntryEarned)
	if err != nil {
		return compoff.BalanceResponse{}, fmt.Errorf("failed to count earned entries: %w", err)
	}
	used, err := s.EntryRepository.CountByType(ctx, employeeID, compoff.EntryUsed)
	if err != nil {
		return compoff.BalanceResponse{}, fmt.Errorf("failed to count used entries: %w", err)
	}
	expired, err := s.EntryRepository.CountByType(ctx, employeeID, compoff.EntryExpired)
	if err != nil {
		return compoff.BalanceResponse{}, fmt.Errorf("failed to count expired entries: %w", err)
	}

	return compoff.BalanceResponse{
		EmployeeID: employeeID,
		Earned:     earned,
		Used:       used,
		Expired:    expired,
		Available:  earned - used - expired,
	}, nil
}

// MonthlyBreakdown implements compoff.CompOffService. Movements are
// attributed to the month their credit was earned in.
func (s *CompOffServiceImpl) MonthlyBreakdown(ctx context.Context, employeeID string) ([]compoff.MonthlySummaryResponse, error) {
	entries, err := s.EntryRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	byMonth := make(map[string]*compoff.MonthlySummaryResponse)
	for _, e := range entries {
		summary, ok := byMonth[e.EarnedMonth]
		if !ok {
			summary = &compoff.MonthlySummaryResponse{Month: e.EarnedMonth}
			byMonth[e.EarnedMonth] = summary
		}
		switch e.Type {
		case compoff.EntryEarned:
			summary.Earned++
		case compoff.EntryUsed:
			summary.Used++
		case compoff.EntryExpired:
			summary.Expired++
		}
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	summaries := make([]compoff.MonthlySummaryResponse, 0, len(months))
	for _, m := range months {
		summaries = append(summaries, *byMonth[m])
	}
	return summaries, nil
}

func (s *CompOffServiceImpl) getPending(ctx context.Context, requestID string) (compoff.Request, error) {
	request, err := s.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		if err == pgx.ErrNoRows || errors.Is(err, compoff.ErrRequestNotFound) {
			return compoff.Request{}, compoff.ErrRequestNotFound
		}
		return compoff.Request{}, fmt.Errorf("failed to get comp-off request: %w", err)
	}
	if request.Status != compoff.RequestPending {
		return compoff.Request{}, compoff.ErrRequestNotPending
	}
	return request, nil
}
