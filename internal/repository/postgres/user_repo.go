package postgres

import (
	"context"
	"errors"

	"trendora-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// userRepository backs both the order core's user lookups and push token
// resolution for notifications.
type userRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *userRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	q := querierFrom(ctx, r.db)
	var u domain.User
	err := q.QueryRow(ctx,
		`SELECT id, email, name, role, created_at, updated_at FROM users WHERE id = $1`,
		id).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFoundf("user %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// PushToken returns the user's registered device token, or "" when the user
// has none.
func (r *userRepository) PushToken(ctx context.Context, userID string) (string, error) {
	q := querierFrom(ctx, r.db)
	var token *string
	err := q.QueryRow(ctx,
		`SELECT push_token FROM users WHERE id = $1`, userID).Scan(&token)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if token == nil {
		return "", nil
	}
	return *token, nil
}
