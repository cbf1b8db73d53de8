package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/khatapp/khata_backend/internal/apperrors"
	"github.com/khatapp/khata_backend/internal/core/domain"
	portssvc "github.com/khatapp/khata_backend/internal/core/ports/services"
	"github.com/stretchr/testify/assert"
)

// stubEntryService satisfies EntrySvcFacade for handler tests; only the
// methods a test exercises are implemented.
type stubEntryService struct {
	portssvc.EntrySvcFacade
	getEntryErr error
}

func (s *stubEntryService) GetEntry(ctx context.Context, entryID string) (*domain.AccountEntry, error) {
	return nil, s.getEntryErr
}

func newTestContext(t *testing.T, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestParsePagination(t *testing.T) {
	token := "b2theQ"

	tests := []struct {
		name      string
		query     string
		wantLimit int
		wantToken *string
	}{
		{
			name:      "defaults when absent",
			query:     "",
			wantLimit: defaultPageLimit,
		},
		{
			name:      "explicit limit",
			query:     "?limit=7",
			wantLimit: 7,
		},
		{
			name:      "zero falls back to default",
			query:     "?limit=0",
			wantLimit: defaultPageLimit,
		},
		{
			name:      "negative falls back to default",
			query:     "?limit=-3",
			wantLimit: defaultPageLimit,
		},
		{
			name:      "non-numeric falls back to default",
			query:     "?limit=lots",
			wantLimit: defaultPageLimit,
		},
		{
			name:      "oversized limit is clamped",
			query:     "?limit=5000",
			wantLimit: maxPageLimit,
		},
		{
			name:      "next token passes through",
			query:     "?limit=10&nextToken=" + token,
			wantLimit: 10,
			wantToken: &token,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext(t, "/entries"+tt.query)

			limit, nextToken := parsePagination(c)

			assert.Equal(t, tt.wantLimit, limit)
			if tt.wantToken == nil {
				assert.Nil(t, nextToken)
			} else {
				assert.Equal(t, *tt.wantToken, *nextToken)
			}
		})
	}
}

func TestGetEntryStatusByErrorClass(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "missing entry is 404",
			err:        apperrors.NewNotFoundError("entry abc not found"),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "transient storage failure is 503",
			err:        apperrors.NewAppError(500, "failed to find entry by ID abc", errors.New("conn closed")),
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "unclassified failure is 500",
			err:        errors.New("unexpected"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newEntryHandler(&stubEntryService{getEntryErr: tt.err})
			c, w := newTestContext(t, "/entries/abc")
			c.Params = gin.Params{{Key: "id", Value: "abc"}}

			h.getEntry(c)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
