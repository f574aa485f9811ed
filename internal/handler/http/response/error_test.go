package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/attendance"
	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/auth"
	"github.com/guardpost-hq/guardpost-backend-go/internal/domain/site"
	"github.com/guardpost-hq/guardpost-backend-go/internal/pkg/geo"
	"github.com/guardpost-hq/guardpost-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"site not found", site.ErrSiteNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"no site in range", site.ErrNoSiteInRange, http.StatusNotFound, "NOT_FOUND"},
		{"nearest disabled", site.ErrNearestDisabled, http.StatusBadRequest, "BAD_REQUEST"},
		{"already checked in", attendance.ErrAlreadyCheckedIn, http.StatusConflict, "CONFLICT"},
		{"already checked out", attendance.ErrAlreadyCheckedOut, http.StatusConflict, "CONFLICT"},
		{"not checked in", attendance.ErrNotCheckedIn, http.StatusConflict, "CONFLICT"},
		{"check-in window closed", attendance.ErrCheckInNotOpen, http.StatusForbidden, "FORBIDDEN"},
		{"check-out window closed", attendance.ErrCheckOutNotOpen, http.StatusForbidden, "FORBIDDEN"},
		{"early reason missing", attendance.ErrEarlyReasonMissing, http.StatusBadRequest, "BAD_REQUEST"},
		{"unexpected error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body Response
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestHandleError_WrappedSentinel(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, errors.New("context: "+site.ErrSiteNotFound.Error()))
	// A message that merely mentions the sentinel is not the sentinel.
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	HandleError(rec, fmt.Errorf("failed to resolve: %w", site.ErrSiteNotFound))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleError_ValidationErrors(t *testing.T) {
	errs := validator.ValidationErrors{
		{Field: "site_id", Message: "site_id is required"},
	}

	rec := httptest.NewRecorder()
	HandleError(rec, errs)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "site_id is required", body.Error.Details["site_id"])
}

func TestHandleError_LocationErrors(t *testing.T) {
	tests := []struct {
		kind       geo.ErrorKind
		wantStatus int
	}{
		{geo.KindPermissionDenied, http.StatusForbidden},
		{geo.KindTimeout, http.StatusBadRequest},
		{geo.KindUnavailable, http.StatusBadRequest},
		{geo.KindInsecureContext, http.StatusBadRequest},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		HandleError(rec, &geo.LocationError{Kind: tt.kind, Err: errors.New("gps")})
		assert.Equal(t, tt.wantStatus, rec.Code, "kind %v", tt.kind)
	}
}
