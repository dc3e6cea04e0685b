package postgres

import (
	"context"
	"errors"
	"fmt"

	"trendora-backend/internal/domain"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type productRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) domain.ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, description, price, stock, category_id, category_name,
	subcategory, sub_subcategory, images, colors, reviews, rating, num_reviews,
	created_at, updated_at`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	var images, colors, reviews []byte
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.CategoryID, &p.CategoryName, &p.Subcategory, &p.SubSubcategory,
		&images, &colors, &reviews, &p.Rating, &p.NumReviews,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &p.Images); err != nil {
			return nil, fmt.Errorf("decode images: %w", err)
		}
	}
	if len(colors) > 0 {
		if err := json.Unmarshal(colors, &p.Colors); err != nil {
			return nil, fmt.Errorf("decode colors: %w", err)
		}
	}
	if len(reviews) > 0 {
		if err := json.Unmarshal(reviews, &p.Reviews); err != nil {
			return nil, fmt.Errorf("decode reviews: %w", err)
		}
	}
	return &p, nil
}

func productJSONB(p *domain.Product) (images, colors, reviews []byte, err error) {
	if images, err = json.Marshal(p.Images); err != nil {
		return nil, nil, nil, err
	}
	if colors, err = json.Marshal(p.Colors); err != nil {
		return nil, nil, nil, err
	}
	if reviews, err = json.Marshal(p.Reviews); err != nil {
		return nil, nil, nil, err
	}
	return images, colors, reviews, nil
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	images, colors, reviews, err := productJSONB(p)
	if err != nil {
		return err
	}

	q := querierFrom(ctx, r.db)
	row := q.QueryRow(ctx, `
		INSERT INTO products (id, name, description, price, stock, category_id,
			category_name, subcategory, sub_subcategory, images, colors, reviews,
			rating, num_reviews)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at`,
		p.ID, p.Name, p.Description, p.Price, p.Stock, p.CategoryID,
		p.CategoryName, p.Subcategory, p.SubSubcategory, images, colors, reviews,
		p.Rating, p.NumReviews,
	)
	return row.Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q := querierFrom(ctx, r.db)
	p, err := scanProduct(q.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFoundf("product %s not found", id)
	}
	return p, err
}

func (r *productRepository) GetAll(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	q := querierFrom(ctx, r.db)

	where := " WHERE 1=1"
	args := []any{}
	if filter.Keyword != "" {
		args = append(args, "%"+filter.Keyword+"%")
		where += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		where += fmt.Sprintf(" AND category_id = $%d", len(args))
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}
	args = append(args, limit)
	query := `SELECT ` + productColumns + ` FROM products` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args))
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, *p)
	}
	return products, total, rows.Err()
}

func (r *productRepository) GetTopRated(ctx context.Context, limit int) ([]domain.Product, error) {
	if limit < 1 {
		limit = 5
	}
	q := querierFrom(ctx, r.db)
	rows, err := q.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY rating DESC, num_reviews DESC LIMIT $1`,
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	images, colors, reviews, err := productJSONB(p)
	if err != nil {
		return err
	}

	q := querierFrom(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE products SET
			name = $2, description = $3, price = $4, stock = $5,
			category_id = $6, category_name = $7, subcategory = $8,
			sub_subcategory = $9, images = $10, colors = $11, reviews = $12,
			rating = $13, num_reviews = $14, updated_at = NOW()
		WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Price, p.Stock,
		p.CategoryID, p.CategoryName, p.Subcategory, p.SubSubcategory,
		images, colors, reviews, p.Rating, p.NumReviews,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("product %s not found", p.ID)
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	q := querierFrom(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("product %s not found", id)
	}
	return nil
}

// DecrementStock is a single arithmetic update so concurrent orders never lose
// a decrement to a stale read.
func (r *productRepository) DecrementStock(ctx context.Context, productID string, quantity int) error {
	q := querierFrom(ctx, r.db)
	tag, err := q.Exec(ctx,
		`UPDATE products SET stock = stock - $2, updated_at = NOW() WHERE id = $1`,
		productID, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("product %s not found", productID)
	}
	return nil
}
