package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rosterlab/shift-backend-go/internal/domain/attendance"
	"github.com/rosterlab/shift-backend-go/internal/domain/auth"
	"github.com/rosterlab/shift-backend-go/internal/domain/compoff"
	"github.com/rosterlab/shift-backend-go/internal/domain/employee"
	"github.com/rosterlab/shift-backend-go/internal/domain/overtime"
	"github.com/rosterlab/shift-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandleError_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"inactive user", auth.ErrUserInactive, http.StatusForbidden, "FORBIDDEN"},
		{"missing refresh cookie", auth.ErrRefreshTokenCookieNotFound, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"revoked refresh token", auth.ErrRefreshTokenRevoked, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"employee not found", employee.ErrEmployeeNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"approval exists", overtime.ErrApprovalExists, http.StatusConflict, "CONFLICT"},
		{"already checked in", attendance.ErrAlreadyCheckedIn, http.StatusBadRequest, "BAD_REQUEST"},
		{"already checked out", attendance.ErrAlreadyCheckedOut, http.StatusConflict, "CONFLICT"},
		{"no shift today", attendance.ErrNoShiftToday, http.StatusBadRequest, "BAD_REQUEST"},
		{"request not pending", compoff.ErrRequestNotPending, http.StatusConflict, "CONFLICT"},
		{"not a non-working day", compoff.ErrNotNonWorkingDay, http.StatusBadRequest, "BAD_REQUEST"},
		{"no balance", compoff.ErrInsufficientBalance, http.StatusBadRequest, "BAD_REQUEST"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			HandleError(rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			resp := decodeEnvelope(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.code, resp.Error.Code)
		})
	}
}

func TestHandleError_ValidationErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	errs := validator.ValidationErrors{
		{Field: "date", Message: "date must be in YYYY-MM-DD format"},
	}

	HandleError(rec, errs)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "date must be in YYYY-MM-DD format", resp.Error.Details["date"])
}

// The comp-off expiry error surfaces both month tags for the client.
func TestHandleError_CompOffExpired(t *testing.T) {
	rec := httptest.NewRecorder()
	err := &compoff.ExpiredError{EarnedMonth: "2026-02", CurrentMonth: "2026-03"}

	HandleError(rec, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "2026-02", resp.Error.Details["earned_month"])
	assert.Equal(t, "2026-03", resp.Error.Details["current_month"])
	assert.Contains(t, resp.Error.Message, "cannot be used")
}

func TestPolicyViolation(t *testing.T) {
	rec := httptest.NewRecorder()

	PolicyViolation(rec, map[string]string{"status": "rejected"}, "weekly shift limit reached: 5/5")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "POLICY_VIOLATION", resp.Error.Code)
	assert.Equal(t, "weekly shift limit reached: 5/5", resp.Error.Message)
	assert.NotNil(t, resp.Data, "the rejection payload rides along")
}

func TestSuccessEnvelopes(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]int{"count": 3})
	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)

	rec = httptest.NewRecorder()
	Created(rec, "Shift assigned", nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
	resp = decodeEnvelope(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Shift assigned", resp.Message)
}
