package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		transient bool
	}{
		{
			name:      "storage failure wrapped with code 500 is retryable",
			err:       NewAppError(500, "failed to scan entry row", errors.New("conn closed")),
			transient: true,
		},
		{
			name:      "code 503 is retryable",
			err:       NewAppError(503, "pool exhausted", errors.New("timeout")),
			transient: true,
		},
		{
			name:      "bare not found sentinel is terminal",
			err:       ErrNotFound,
			transient: false,
		},
		{
			name:      "wrapped not found is terminal",
			err:       NewNotFoundError("entry abc not found"),
			transient: false,
		},
		{
			name:      "validation error is terminal",
			err:       NewValidationError("title must not be blank"),
			transient: false,
		},
		{
			name:      "duplicate conflict is terminal",
			err:       NewAppError(409, "category already exists", ErrDuplicate),
			transient: false,
		},
		{
			name:      "foreign key conflict is terminal",
			err:       NewAppError(409, "category is still referenced", ErrForeignKey),
			transient: false,
		},
		{
			name:      "fmt-wrapped validation error is terminal",
			err:       fmt.Errorf("%w: amount must not be negative", ErrValidation),
			transient: false,
		},
		{
			name:      "unclassified plain error is terminal",
			err:       errors.New("something unexpected"),
			transient: false,
		},
		{
			name:      "nil error is terminal",
			err:       nil,
			transient: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.transient, IsTransient(tt.err))
		})
	}
}

func TestAppErrorUnwrapPreservesSentinel(t *testing.T) {
	err := NewAppError(409, "entry references a missing category", ErrForeignKey)

	assert.True(t, errors.Is(err, ErrForeignKey))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "missing category")
}
