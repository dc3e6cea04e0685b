package postgres

import (
	"context"
	"errors"

	"trendora-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type categoryRepository struct {
	db *pgxpool.Pool
}

func NewCategoryRepository(db *pgxpool.Pool) domain.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	q := querierFrom(ctx, r.db)
	var c domain.Category
	err := q.QueryRow(ctx,
		`SELECT id, name FROM categories WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFoundf("category %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
