package v1

import (
	"errors"
	"net/http"

	"trendora-backend/internal/domain"
	"trendora-backend/pkg/utils"
)

// statusFor maps a domain error to an HTTP status. Handlers never match on
// message text. State machine preconditions, eligibility windows and the
// idempotency guards all answer 400 like plain validation; only missing
// entities, ownership and id collisions get their own codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrWindowClosed),
		errors.Is(err, domain.ErrAlreadyRequested),
		errors.Is(err, domain.ErrAlreadyReviewed),
		errors.Is(err, domain.ErrDuplicateColor):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	utils.WriteError(w, statusFor(err), err.Error())
}

// currentUser pulls the authenticated user the middleware stored on the
// context.
func currentUser(r *http.Request) (*domain.User, bool) {
	user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
	return user, ok
}
