package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rosterlab/shift-backend-go/internal/domain/compoff"
	"github.com/rosterlab/shift-backend-go/internal/pkg/database"
)

type compOffEntryRepository struct {
	db *database.DB
}

func NewCompOffEntryRepository(db *database.DB) compoff.EntryRepository {
	return &compOffEntryRepository{db: db}
}

const entryColumns = `id, employee_id, date, type, earned_month, notes, created_at`

func scanEntry(row interface{ Scan(dest ...any) error }) (compoff.Entry, error) {
	var e compoff.Entry
	err := row.Scan(&e.ID, &e.EmployeeID, &e.Date, &e.Type, &e.EarnedMonth, &e.Notes, &e.CreatedAt)
	return e, err
}

// Create implements compoff.EntryRepository.
func (r *compOffEntryRepository) Create(ctx context.Context, entry compoff.Entry) (compoff.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO comp_off_entries (
			id, employee_id, date, type, earned_month, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		entry.ID,
		entry.EmployeeID,
		entry.Date,
		entry.Type,
		entry.EarnedMonth,
		entry.Notes,
	).Scan(&entry.CreatedAt)

	if err != nil {
		return compoff.Entry{}, fmt.Errorf("failed to create comp-off entry: %w", err)
	}

	return entry, nil
}

// ListByEmployee implements compoff.EntryRepository.
func (r *compOffEntryRepository) ListByEmployee(ctx context.Context, employeeID string) ([]compoff.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + entryColumns + ` FROM comp_off_entries WHERE employee_id = $1 ORDER BY created_at`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comp-off entries: %w", err)
	}
	defer rows.Close()

	var entries []compoff.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comp-off entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// OldestUnusedEarned implements compoff.EntryRepository. Each used or
// expired entry consumes one earned credit from its earned_month, oldest
// first.
func (r *compOffEntryRepository) OldestUnusedEarned(ctx context.Context, employeeID string) (*compoff.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + entryColumns + `
		FROM comp_off_entries e
		WHERE e.employee_id = $1
		  AND e.type = 'earned'
		  AND (
			SELECT COUNT(*) FROM comp_off_entries c
			WHERE c.employee_id = e.employee_id
			  AND c.earned_month = e.earned_month
			  AND c.type IN ('used', 'expired')
		  ) < (
			SELECT COUNT(*) FROM comp_off_entries c
			WHERE c.employee_id = e.employee_id
			  AND c.earned_month = e.earned_month
			  AND c.type = 'earned'
			  AND c.created_at <= e.created_at
		  )
		ORDER BY e.created_at
		LIMIT 1
	`

	e, err := scanEntry(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find unused earned entry: %w", err)
	}
	return &e, nil
}

// CountByType implements compoff.EntryRepository.
func (r *compOffEntryRepository) CountByType(ctx context.Context, employeeID string, entryType compoff.EntryType) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT COUNT(*) FROM comp_off_entries WHERE employee_id = $1 AND type = $2`

	var count int
	if err := q.QueryRow(ctx, query, employeeID, entryType).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count comp-off entries: %w", err)
	}
	return count, nil
}

type compOffRequestRepository struct {
	db *database.DB
}

func NewCompOffRequestRepository(db *database.DB) compoff.RequestRepository {
	return &compOffRequestRepository{db: db}
}

const requestColumns = `
	id, employee_id, work_date, reason, status, reviewed_by, reviewed_at,
	rejection_reason, created_at, updated_at
`

func scanRequest(row interface{ Scan(dest ...any) error }) (compoff.Request, error) {
	var req compoff.Request
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.WorkDate, &req.Reason, &req.Status, &req.ReviewedBy, &req.ReviewedAt,
		&req.RejectionReason, &req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}

// Create implements compoff.RequestRepository. The partial unique index
// on (employee_id, work_date) for pending and approved rows blocks
// double requests.
func (r *compOffRequestRepository) Create(ctx context.Context, request compoff.Request) (compoff.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO comp_off_requests (
			id, employee_id, work_date, reason, status
		) VALUES (
			$1, $2, $3, $4, $5
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.ID,
		request.EmployeeID,
		request.WorkDate,
		request.Reason,
		request.Status,
	).Scan(&request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return compoff.Request{}, compoff.ErrDuplicateEarnRequest
		}
		return compoff.Request{}, fmt.Errorf("failed to create comp-off request: %w", err)
	}

	return request, nil
}

// GetByID implements compoff.RequestRepository.
func (r *compOffRequestRepository) GetByID(ctx context.Context, id string) (compoff.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + requestColumns + ` FROM comp_off_requests WHERE id = $1`

	req, err := scanRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return compoff.Request{}, compoff.ErrRequestNotFound
		}
		return compoff.Request{}, fmt.Errorf("failed to get comp-off request: %w", err)
	}
	return req, nil
}

// Update implements compoff.RequestRepository.
func (r *compOffRequestRepository) Update(ctx context.Context, request compoff.Request) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE comp_off_requests
		SET status = $1,
			reviewed_by = $2,
			reviewed_at = $3,
			rejection_reason = $4,
			updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query,
		request.Status,
		request.ReviewedBy,
		request.ReviewedAt,
		request.RejectionReason,
		request.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update comp-off request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return compoff.ErrRequestNotFound
	}
	return nil
}

// ListByEmployee implements compoff.RequestRepository.
func (r *compOffRequestRepository) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]compoff.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `
		FROM comp_off_requests
		WHERE employee_id = $1 AND work_date BETWEEN $2 AND $3
		ORDER BY work_date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list comp-off requests: %w", err)
	}
	defer rows.Close()

	var requests []compoff.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comp-off request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
