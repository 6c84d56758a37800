package overtime

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
	"github.com/rosterlab/shift-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type OvertimeServiceImpl struct {
	db     *database.DB
	policy config.PolicyConfig
	overtime.ApprovalRepository
	overtime.TrackingRepository
	employee.EmployeeRepository
}

func NewOvertimeService(
	db *database.DB,
	policy config.PolicyConfig,
	approvalRepository overtime.ApprovalRepository,
	trackingRepository overtime.TrackingRepository,
	employeeRepository employee.EmployeeRepository,
) overtime.OvertimeService {
	return &OvertimeServiceImpl{
		db:                 db,
		policy:             policy,
		ApprovalRepository: approvalRepository,
		TrackingRepository: trackingRepository,
		EmployeeRepository: employeeRepository,
	}
}

// Approve implements overtime.OvertimeService. The approval slot for
// (employee, date) is single-occupancy; a second grant surfaces as
// ErrApprovalExists from the store.
func (s *OvertimeServiceImpl) Approve(ctx context.Context, req overtime.ApproveRequest) (overtime.ApprovalResponse, error) {
	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		if err == pgx.ErrNoRows {
			return overtime.ApprovalResponse{}, employee.ErrEmployeeNotFound
		}
		return overtime.ApprovalResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	approval := overtime.Approval{
		ID:         uuid.NewString(),
		EmployeeID: req.EmployeeID,
		Date:       req.ParsedDate(),
		WindowFrom: req.WindowFrom,
		WindowTo:   req.WindowTo,
		CapHours:   decimal.NewFromFloat(req.CapHours),
		ManagerID:  req.ManagerID,
		Reason:     req.Reason,
		ApprovedAt: time.Now(),
	}

	created, err := s.ApprovalRepository.Create(ctx, approval)
	if err != nil {
		if errors.Is(err, overtime.ErrApprovalExists) {
			return overtime.ApprovalResponse{}, overtime.ErrApprovalExists
		}
		return overtime.ApprovalResponse{}, fmt.Errorf("failed to create approval: %w", err)
	}

	return overtime.NewApprovalResponse(created), nil
}

// Lookup implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) Lookup(ctx context.Context, employeeID string, date time.Time) (*overtime.ApprovalResponse, error) {
	approval, err := s.ApprovalRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to look up approval: %w", err)
	}
	if approval == nil {
		return nil, nil
	}
	resp := overtime.NewApprovalResponse(*approval)
	return &resp, nil
}

// Tracking implements overtime.OvertimeService. A missing month is
// materialized with the default allocation so callers always get a row.
func (s *OvertimeServiceImpl) Tracking(ctx context.Context, employeeID string, year, month int) (overtime.TrackingResponse, error) {
	tracking, err := s.getOrCreateTracking(ctx, employeeID, year, month)
	if err != nil {
		return overtime.TrackingResponse{}, err
	}
	return overtime.NewTrackingResponse(tracking), nil
}

// ConsumeAllocation implements overtime.OvertimeService.
// The debit joins the caller's transaction when one rides in ctx, so
// a checkout closes the record and debits the month atomically.
func (s *OvertimeServiceImpl) ConsumeAllocation(ctx context.Context, employeeID string, date time.Time, hours decimal.Decimal) error {
	if !hours.IsPositive() {
		return nil
	}

	tracking, err := s.getOrCreateTracking(ctx, employeeID, date.Year(), int(date.Month()))
	if err != nil {
		return err
	}
	if err := s.TrackingRepository.AddUsedHours(ctx, tracking.ID, hours); err != nil {
		return fmt.Errorf("failed to debit overtime allocation: %w", err)
	}
	return nil
}

func (s *OvertimeServiceImpl) getOrCreateTracking(ctx context.Context, employeeID string, year, month int) (overtime.MonthlyTracking, error) {
	tracking, err := s.TrackingRepository.GetByEmployeeAndMonth(ctx, employeeID, year, month)
	if err == nil {
		return tracking, nil
	}
	if !errors.Is(err, overtime.ErrTrackingNotFound) {
		return overtime.MonthlyTracking{}, fmt.Errorf("failed to get overtime tracking: %w", err)
	}

	allocated := decimal.NewFromFloat(s.policy.DefaultMonthlyOTHours)
	created, err := s.TrackingRepository.Create(ctx, overtime.MonthlyTracking{
		ID:             uuid.NewString(),
		EmployeeID:     employeeID,
		Year:           year,
		Month:          month,
		AllocatedHours: allocated,
		UsedHours:      decimal.Zero,
		RemainingHours: allocated,
	})
	if err != nil {
		return overtime.MonthlyTracking{}, fmt.Errorf("failed to create overtime tracking: %w", err)
	}
	return created, nil
}
