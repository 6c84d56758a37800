package compoff

import "context"

// CompOffService defines business logic for the compensatory-off ledger
// and its request workflow.
type CompOffService interface {
	// RequestEarn files a request to earn comp-off for work done on a
	// non-working day
	RequestEarn(ctx context.Context, req CreateRequestRequest) (RequestResponse, error)

	// Approve grants a pending request and writes the earned ledger entry
	Approve(ctx context.Context, req ReviewRequest) (RequestResponse, error)

	// Reject declines a pending request
	Reject(ctx context.Context, req ReviewRequest) (RequestResponse, error)

	// Use consumes the oldest available credit for a day off. Credits
	// earned in an earlier month are rejected with *ExpiredError.
	Use(ctx context.Context, req UseRequest) (EntryResponse, error)

	// Balance summarizes the employee's ledger
	Balance(ctx context.Context, employeeID string) (BalanceResponse, error)

	// MonthlyBreakdown groups ledger movements by month
	MonthlyBreakdown(ctx context.Context, employeeID string) ([]MonthlySummaryResponse, error)
}
