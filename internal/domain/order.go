package domain

import (
	"context"
	"time"
)

type OrderFilter struct {
	Page   int
	Limit  int
	Status string
}

// ShippingInfo is captured by value at checkout, not a live reference to the
// user profile.
type ShippingInfo struct {
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
	Phone   string `json:"phone,omitempty"`
}

// OrderItem is a value snapshot of the product at purchase time. Later product
// edits or deletion never alter historical orders.
type OrderItem struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"images"`
	ProductID string  `json:"product"`
}

type PaymentInfo struct {
	ID     string `json:"id,omitempty"`
	Status string `json:"status,omitempty"`
}

type TrackingInfo struct {
	Carrier        string `json:"carrier,omitempty"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
	TrackingURL    string `json:"trackingUrl,omitempty"`
}

// RequestDetails is the shared shape of a return or replace request.
type RequestDetails struct {
	Status      string     `json:"status"`
	Reason      string     `json:"reason"`
	Description string     `json:"description"`
	RequestedAt *time.Time `json:"requestedAt,omitempty"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
	ProcessedBy *string    `json:"processedBy,omitempty"`
}

type Order struct {
	ID                    string         `json:"id"`
	UserID                string         `json:"user"`
	ShippingInfo          ShippingInfo   `json:"shippingInfo"`
	Items                 []OrderItem    `json:"orderItems"`
	PaymentMethod         string         `json:"paymentMethod"`
	PaymentInfo           *PaymentInfo   `json:"paymentInfo,omitempty"`
	PaidAt                *time.Time     `json:"paidAt,omitempty"`
	ItemPrice             float64        `json:"itemPrice"`
	Tax                   float64        `json:"tax"`
	ShippingCharges       float64        `json:"shippingCharges"`
	TotalAmount           float64        `json:"totalAmount"`
	Status                string         `json:"orderStatus"`
	DeliveredAt           *time.Time     `json:"deliveredAt,omitempty"`
	Notes                 string         `json:"notes,omitempty"`
	EstimatedDeliveryDate *time.Time     `json:"estimatedDeliveryDate,omitempty"`
	TrackingInfo          *TrackingInfo  `json:"trackingInfo,omitempty"`
	ReturnRequest         RequestDetails `json:"returnRequest"`
	ReplaceRequest        RequestDetails `json:"replaceRequest"`
	CreatedAt             time.Time      `json:"createdAt"`
	UpdatedAt             time.Time      `json:"updatedAt"`
}

// OrderAge is the whole number of days since the order was created.
func (o *Order) OrderAge(now time.Time) int {
	return int(now.Sub(o.CreatedAt).Hours() / 24)
}

// CanReturn reports whether a return request is currently admissible:
// the order is delivered and the 7-day window is still open.
func (o *Order) CanReturn(now time.Time) bool {
	return o.withinWindow(now, ReturnWindow)
}

// CanReplace is CanReturn with the 15-day replacement window.
func (o *Order) CanReplace(now time.Time) bool {
	return o.withinWindow(now, ReplaceWindow)
}

func (o *Order) withinWindow(now time.Time, window time.Duration) bool {
	if o.Status != OrderStatusDelivered || o.DeliveredAt == nil {
		return false
	}
	return now.Sub(*o.DeliveredAt) <= window
}

// ReturnWindowClosesAt is nil until the order has been delivered.
func (o *Order) ReturnWindowClosesAt() *time.Time {
	return o.windowClosesAt(ReturnWindow)
}

func (o *Order) ReplaceWindowClosesAt() *time.Time {
	return o.windowClosesAt(ReplaceWindow)
}

func (o *Order) windowClosesAt(window time.Duration) *time.Time {
	if o.DeliveredAt == nil {
		return nil
	}
	t := o.DeliveredAt.Add(window)
	return &t
}

// OrderView is the read model: the stored order plus the derived fields that
// are computed on every read and never persisted.
type OrderView struct {
	*Order
	OrderAge              int        `json:"orderAge"`
	CanReturn             bool       `json:"canReturn"`
	CanReplace            bool       `json:"canReplace"`
	ReturnWindowClosesAt  *time.Time `json:"returnWindowClosesAt"`
	ReplaceWindowClosesAt *time.Time `json:"replaceWindowClosesAt"`
}

// NewOrderView derives the read model at a given instant.
func NewOrderView(o *Order, now time.Time) OrderView {
	return OrderView{
		Order:                 o,
		OrderAge:              o.OrderAge(now),
		CanReturn:             o.CanReturn(now),
		CanReplace:            o.CanReplace(now),
		ReturnWindowClosesAt:  o.ReturnWindowClosesAt(),
		ReplaceWindowClosesAt: o.ReplaceWindowClosesAt(),
	}
}

// NewOrderViews derives read models for a list of orders.
func NewOrderViews(orders []Order, now time.Time) []OrderView {
	views := make([]OrderView, len(orders))
	for i := range orders {
		views[i] = NewOrderView(&orders[i], now)
	}
	return views
}

type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	GetByUserID(ctx context.Context, userID string) ([]Order, error)
	GetAll(ctx context.Context, filter OrderFilter) ([]Order, int64, error)

	// UpdateStatus persists a status change; deliveredAt is written only when
	// non-nil so the stamp is set at most once.
	UpdateStatus(ctx context.Context, id, status string, deliveredAt *time.Time) error

	UpdateReturnRequest(ctx context.Context, id string, req *RequestDetails) error
	UpdateReplaceRequest(ctx context.Context, id string, req *RequestDetails) error

	Delete(ctx context.Context, id string) error
}
