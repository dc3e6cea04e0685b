package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"trendora-backend/config"
	"trendora-backend/internal/domain"
	"trendora-backend/pkg/cache"
	"trendora-backend/pkg/logger"
	"trendora-backend/pkg/utils"
)

type OrderUsecase struct {
	orderRepo   domain.OrderRepository
	productRepo domain.ProductRepository
	users       domain.UserDirectory
	notifier    domain.Notifier
	gateway     domain.PaymentGateway
	cache       cache.CacheService
	cfg         *config.Config
	now         func() time.Time
}

func NewOrderUsecase(orderRepo domain.OrderRepository, productRepo domain.ProductRepository, users domain.UserDirectory, notifier domain.Notifier, gateway domain.PaymentGateway, cacheSvc cache.CacheService, cfg *config.Config) *OrderUsecase {
	return &OrderUsecase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		users:       users,
		notifier:    notifier,
		gateway:     gateway,
		cache:       cacheSvc,
		cfg:         cfg,
		now:         time.Now,
	}
}

type CreateOrderReq struct {
	ShippingInfo          domain.ShippingInfo `json:"shippingInfo"`
	Items                 []domain.OrderItem  `json:"orderItems"`
	PaymentMethod         string              `json:"paymentMethod"`
	PaymentInfo           *domain.PaymentInfo `json:"paymentInfo,omitempty"`
	ItemPrice             float64             `json:"itemPrice"`
	Tax                   float64             `json:"tax"`
	ShippingCharges       float64             `json:"shippingCharges"`
	TotalAmount           float64             `json:"totalAmount"`
	Notes                 string              `json:"notes,omitempty"`
	EstimatedDeliveryDate *time.Time          `json:"estimatedDeliveryDate,omitempty"`
}

// CreateOrder persists the order and then decrements stock per line item.
// The decrements are deliberately outside any transaction with the insert: a
// failed decrement leaves the order in place, it is logged and surfaced, never
// rolled back. Submitted amounts are stored as-is.
func (u *OrderUsecase) CreateOrder(ctx context.Context, userID string, req CreateOrderReq) (*domain.OrderView, error) {
	if req.ShippingInfo.Address == "" || req.ShippingInfo.City == "" || req.ShippingInfo.Country == "" {
		return nil, domain.Validationf("shipping address, city and country are required")
	}
	if len(req.Items) == 0 {
		return nil, domain.Validationf("order must contain at least one item")
	}
	for _, item := range req.Items {
		if item.ProductID == "" {
			return nil, domain.Validationf("every order item needs a product id")
		}
		if item.Quantity < 1 {
			return nil, domain.Validationf("item quantity must be at least 1")
		}
	}
	if req.PaymentMethod != domain.PaymentMethodCOD && req.PaymentMethod != domain.PaymentMethodOnline {
		return nil, domain.Validationf("payment method must be %s or %s", domain.PaymentMethodCOD, domain.PaymentMethodOnline)
	}

	now := u.now()
	order := &domain.Order{
		ID:                    utils.GenerateUUID(),
		UserID:                userID,
		ShippingInfo:          req.ShippingInfo,
		Items:                 req.Items,
		PaymentMethod:         req.PaymentMethod,
		PaymentInfo:           req.PaymentInfo,
		ItemPrice:             req.ItemPrice,
		Tax:                   req.Tax,
		ShippingCharges:       req.ShippingCharges,
		TotalAmount:           req.TotalAmount,
		Status:                domain.OrderStatusProcessing,
		Notes:                 req.Notes,
		EstimatedDeliveryDate: req.EstimatedDeliveryDate,
		ReturnRequest:         domain.RequestDetails{Status: domain.RequestStatusNone},
		ReplaceRequest:        domain.RequestDetails{Status: domain.RequestStatusNone},
	}
	if req.PaymentMethod == domain.PaymentMethodOnline && req.PaymentInfo != nil {
		order.PaidAt = &now
	}

	if err := u.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	for _, item := range order.Items {
		if err := u.productRepo.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			logger.Error().
				Err(err).
				Str("order_id", order.ID).
				Str("product_id", item.ProductID).
				Msg("Stock decrement failed after order creation")
			return nil, fmt.Errorf("order %s created but stock update failed for product %s: %w", order.ID, item.ProductID, err)
		}
		logger.StockAdjust(item.ProductID, order.ID, -item.Quantity)
		// drop the cached catalog entry so reads see the new stock
		u.cache.Delete(fmt.Sprintf("product:%s", item.ProductID))
	}
	u.cache.Delete("products:top")

	u.notifier.Notify(userID, domain.NotifyOrderConfirmation, map[string]interface{}{"orderId": order.ID})

	view := domain.NewOrderView(order, now)
	return &view, nil
}

func (u *OrderUsecase) GetMyOrders(ctx context.Context, userID string) ([]domain.OrderView, error) {
	orders, err := u.orderRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.NewOrderViews(orders, u.now()), nil
}

// GetOrder enforces ownership: a non-admin requester only sees their own
// orders.
func (u *OrderUsecase) GetOrder(ctx context.Context, id string, requester *domain.User) (*domain.OrderView, error) {
	order, err := u.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !requester.IsAdmin() && order.UserID != requester.ID {
		return nil, fmt.Errorf("order %s does not belong to user %s: %w", id, requester.ID, domain.ErrForbidden)
	}
	view := domain.NewOrderView(order, u.now())
	return &view, nil
}

// GetOrderWithCustomer returns an order together with the customer record
// for the admin detail view. A deleted customer account does not hide the
// order; the customer slot is just nil then.
func (u *OrderUsecase) GetOrderWithCustomer(ctx context.Context, id string) (*domain.OrderView, *domain.User, error) {
	order, err := u.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	customer, err := u.users.GetByID(ctx, order.UserID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, nil, err
	}
	view := domain.NewOrderView(order, u.now())
	return &view, customer, nil
}

func (u *OrderUsecase) GetAllOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.OrderView, int64, error) {
	orders, total, err := u.orderRepo.GetAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return domain.NewOrderViews(orders, u.now()), total, nil
}

// Advance moves an order one step along the happy path. Anything off the
// processing -> shipped -> delivered chain is rejected; the permissive escape
// hatch is SetStatus.
func (u *OrderUsecase) Advance(ctx context.Context, orderID string) (*domain.OrderView, error) {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	from := order.Status
	var deliveredAt *time.Time
	switch order.Status {
	case domain.OrderStatusProcessing:
		order.Status = domain.OrderStatusShipped
	case domain.OrderStatusShipped:
		order.Status = domain.OrderStatusDelivered
		now := u.now()
		deliveredAt = &now
		order.DeliveredAt = deliveredAt
	default:
		return nil, fmt.Errorf("cannot advance order from status %q: %w", order.Status, domain.ErrInvalidTransition)
	}

	if err := u.orderRepo.UpdateStatus(ctx, orderID, order.Status, deliveredAt); err != nil {
		return nil, err
	}
	logger.OrderEvent(orderID, from, order.Status)
	u.notifyForStatus(order.UserID, orderID, order.Status)

	view := domain.NewOrderView(order, u.now())
	return &view, nil
}

// SetStatus is the admin override: any status value is accepted, including
// ones outside the known set. Setting delivered (any casing) stamps
// deliveredAt once; it is never cleared or overwritten.
func (u *OrderUsecase) SetStatus(ctx context.Context, orderID, status string) (*domain.OrderView, error) {
	if status == "" {
		return nil, domain.Validationf("status is required")
	}

	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	from := order.Status
	order.Status = status

	var deliveredAt *time.Time
	if strings.EqualFold(status, domain.OrderStatusDelivered) && order.DeliveredAt == nil {
		now := u.now()
		deliveredAt = &now
		order.DeliveredAt = deliveredAt
	}

	if err := u.orderRepo.UpdateStatus(ctx, orderID, status, deliveredAt); err != nil {
		return nil, err
	}
	logger.OrderEvent(orderID, from, status)
	u.notifyForStatus(order.UserID, orderID, status)

	view := domain.NewOrderView(order, u.now())
	return &view, nil
}

func (u *OrderUsecase) notifyForStatus(userID, orderID, status string) {
	var templateType string
	switch strings.ToLower(status) {
	case domain.OrderStatusShipped:
		templateType = domain.NotifyOrderShipped
	case domain.OrderStatusDelivered:
		templateType = domain.NotifyOrderDelivered
	default:
		return
	}
	u.notifier.Notify(userID, templateType, map[string]interface{}{"orderId": orderID})
}

// RequestReturn files a return request against a delivered order. The window
// check compares elapsed time against the window directly, so one second past
// seven days is already closed.
func (u *OrderUsecase) RequestReturn(ctx context.Context, orderID, userID, reason, description string) (*domain.OrderView, error) {
	return u.fileRequest(ctx, orderID, userID, reason, description, requestKindReturn)
}

// RequestReplace is RequestReturn with the fifteen-day window.
func (u *OrderUsecase) RequestReplace(ctx context.Context, orderID, userID, reason, description string) (*domain.OrderView, error) {
	return u.fileRequest(ctx, orderID, userID, reason, description, requestKindReplace)
}

type requestKind int

const (
	requestKindReturn requestKind = iota
	requestKindReplace
)

func (u *OrderUsecase) fileRequest(ctx context.Context, orderID, userID, reason, description string, kind requestKind) (*domain.OrderView, error) {
	if reason == "" || description == "" {
		return nil, domain.Validationf("reason and description are required")
	}

	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("order %s does not belong to user %s: %w", orderID, userID, domain.ErrForbidden)
	}
	if order.Status != domain.OrderStatusDelivered {
		return nil, fmt.Errorf("order %s is %s, not delivered: %w", orderID, order.Status, domain.ErrInvalidState)
	}

	now := u.now()
	window := domain.ReturnWindow
	existing := order.ReturnRequest
	if kind == requestKindReplace {
		window = domain.ReplaceWindow
		existing = order.ReplaceRequest
	}
	if order.DeliveredAt == nil || now.Sub(*order.DeliveredAt) > window {
		return nil, fmt.Errorf("order %s delivered outside the eligibility window: %w", orderID, domain.ErrWindowClosed)
	}
	if existing.Status != "" && existing.Status != domain.RequestStatusNone {
		return nil, fmt.Errorf("order %s already has a request in status %s: %w", orderID, existing.Status, domain.ErrAlreadyRequested)
	}

	req := domain.RequestDetails{
		Status:      domain.RequestStatusPending,
		Reason:      reason,
		Description: description,
		RequestedAt: &now,
	}

	templateType := domain.NotifyReturnRequested
	if kind == requestKindReplace {
		templateType = domain.NotifyReplaceRequested
		order.ReplaceRequest = req
		err = u.orderRepo.UpdateReplaceRequest(ctx, orderID, &req)
	} else {
		order.ReturnRequest = req
		err = u.orderRepo.UpdateReturnRequest(ctx, orderID, &req)
	}
	if err != nil {
		return nil, err
	}

	u.notifier.Notify(userID, templateType, map[string]interface{}{"orderId": orderID})

	view := domain.NewOrderView(order, now)
	return &view, nil
}

func (u *OrderUsecase) DeleteOrder(ctx context.Context, id string) error {
	return u.orderRepo.Delete(ctx, id)
}

// CreatePaymentIntent converts the submitted total to minor units and asks the
// gateway for an intent. Gateway failures surface unchanged.
func (u *OrderUsecase) CreatePaymentIntent(ctx context.Context, totalAmount float64) (*domain.PaymentIntent, error) {
	if totalAmount <= 0 {
		return nil, domain.Validationf("totalAmount must be positive")
	}
	amountMinor := int64(math.Round(totalAmount * 100))
	return u.gateway.CreatePaymentIntent(ctx, amountMinor, u.cfg.PaymentCurrency, nil)
}
