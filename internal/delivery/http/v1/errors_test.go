package v1

import (
	"fmt"
	"net/http"
	"testing"

	"trendora-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.Validationf("quantity must be positive"), http.StatusBadRequest},
		{domain.NotFoundf("order x not found"), http.StatusNotFound},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrInvalidState, http.StatusBadRequest},
		{domain.ErrInvalidTransition, http.StatusBadRequest},
		{domain.ErrWindowClosed, http.StatusBadRequest},
		{domain.ErrAlreadyRequested, http.StatusBadRequest},
		{domain.ErrAlreadyReviewed, http.StatusBadRequest},
		{domain.ErrDuplicateColor, http.StatusBadRequest},
		{domain.ErrConflict, http.StatusConflict},
		{fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), "error: %v", tc.err)
	}

	// Wrapped errors still map through errors.Is.
	wrapped := fmt.Errorf("return window: %w", domain.ErrWindowClosed)
	assert.Equal(t, http.StatusBadRequest, statusFor(wrapped))
}
