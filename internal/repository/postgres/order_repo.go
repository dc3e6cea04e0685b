package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trendora-backend/internal/domain"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type orderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) domain.OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, user_id, shipping_info, order_items, payment_method,
	payment_info, paid_at, item_price, tax, shipping_charges, total_amount,
	status, delivered_at, notes, estimated_delivery_date, tracking_info,
	return_request, replace_request, created_at, updated_at`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var shipping, items, payment, tracking, returnReq, replaceReq []byte
	err := row.Scan(
		&o.ID, &o.UserID, &shipping, &items, &o.PaymentMethod,
		&payment, &o.PaidAt, &o.ItemPrice, &o.Tax, &o.ShippingCharges,
		&o.TotalAmount, &o.Status, &o.DeliveredAt, &o.Notes,
		&o.EstimatedDeliveryDate, &tracking, &returnReq, &replaceReq,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(shipping) > 0 {
		if err := json.Unmarshal(shipping, &o.ShippingInfo); err != nil {
			return nil, fmt.Errorf("decode shipping info: %w", err)
		}
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, fmt.Errorf("decode order items: %w", err)
		}
	}
	if len(payment) > 0 {
		if err := json.Unmarshal(payment, &o.PaymentInfo); err != nil {
			return nil, fmt.Errorf("decode payment info: %w", err)
		}
	}
	if len(tracking) > 0 {
		if err := json.Unmarshal(tracking, &o.TrackingInfo); err != nil {
			return nil, fmt.Errorf("decode tracking info: %w", err)
		}
	}
	if len(returnReq) > 0 {
		if err := json.Unmarshal(returnReq, &o.ReturnRequest); err != nil {
			return nil, fmt.Errorf("decode return request: %w", err)
		}
	}
	if len(replaceReq) > 0 {
		if err := json.Unmarshal(replaceReq, &o.ReplaceRequest); err != nil {
			return nil, fmt.Errorf("decode replace request: %w", err)
		}
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, o *domain.Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}

	shipping, err := json.Marshal(o.ShippingInfo)
	if err != nil {
		return err
	}
	items, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}
	var payment, tracking []byte
	if o.PaymentInfo != nil {
		if payment, err = json.Marshal(o.PaymentInfo); err != nil {
			return err
		}
	}
	if o.TrackingInfo != nil {
		if tracking, err = json.Marshal(o.TrackingInfo); err != nil {
			return err
		}
	}
	returnReq, err := json.Marshal(o.ReturnRequest)
	if err != nil {
		return err
	}
	replaceReq, err := json.Marshal(o.ReplaceRequest)
	if err != nil {
		return err
	}

	q := querierFrom(ctx, r.db)
	row := q.QueryRow(ctx, `
		INSERT INTO orders (id, user_id, shipping_info, order_items,
			payment_method, payment_info, paid_at, item_price, tax,
			shipping_charges, total_amount, status, delivered_at, notes,
			estimated_delivery_date, tracking_info, return_request, replace_request)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING created_at, updated_at`,
		o.ID, o.UserID, shipping, items, o.PaymentMethod, payment, o.PaidAt,
		o.ItemPrice, o.Tax, o.ShippingCharges, o.TotalAmount, o.Status,
		o.DeliveredAt, o.Notes, o.EstimatedDeliveryDate, tracking,
		returnReq, replaceReq,
	)
	return row.Scan(&o.CreatedAt, &o.UpdatedAt)
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	q := querierFrom(ctx, r.db)
	o, err := scanOrder(q.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFoundf("order %s not found", id)
	}
	return o, err
}

func (r *orderRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	q := querierFrom(ctx, r.db)
	rows, err := q.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *orderRepository) GetAll(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int64, error) {
	q := querierFrom(ctx, r.db)

	where := ""
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = " WHERE status = $1"
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}
	args = append(args, limit, (page-1)*limit)
	query := `SELECT ` + orderColumns + ` FROM orders` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders, err := collectOrders(rows)
	return orders, total, err
}

func collectOrders(rows pgx.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id, status string, deliveredAt *time.Time) error {
	q := querierFrom(ctx, r.db)
	var tag interface{ RowsAffected() int64 }
	var err error
	if deliveredAt != nil {
		tag, err = q.Exec(ctx,
			`UPDATE orders SET status = $2, delivered_at = $3, updated_at = NOW() WHERE id = $1`,
			id, status, deliveredAt)
	} else {
		tag, err = q.Exec(ctx,
			`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`,
			id, status)
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("order %s not found", id)
	}
	return nil
}

func (r *orderRepository) UpdateReturnRequest(ctx context.Context, id string, req *domain.RequestDetails) error {
	return r.updateRequest(ctx, id, "return_request", req)
}

func (r *orderRepository) UpdateReplaceRequest(ctx context.Context, id string, req *domain.RequestDetails) error {
	return r.updateRequest(ctx, id, "replace_request", req)
}

func (r *orderRepository) updateRequest(ctx context.Context, id, column string, req *domain.RequestDetails) error {
	data, err := json.Marshal(req)
	if err != nil {
		return err
	}
	q := querierFrom(ctx, r.db)
	// column is one of two compile-time constants, never user input
	tag, err := q.Exec(ctx,
		`UPDATE orders SET `+column+` = $2, updated_at = NOW() WHERE id = $1`,
		id, data)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("order %s not found", id)
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	q := querierFrom(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("order %s not found", id)
	}
	return nil
}
