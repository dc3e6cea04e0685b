package domain

import "time"

// Order Statuses
const (
	OrderStatusProcessing      = "processing"
	OrderStatusShipped         = "shipped"
	OrderStatusDelivered       = "delivered"
	OrderStatusCancelled       = "cancelled"
	OrderStatusReturnApproved  = "return_approved"
	OrderStatusReturnRejected  = "return_rejected"
	OrderStatusReplaceApproved = "replace_approved"
	OrderStatusReplaceRejected = "replace_rejected"
	OrderStatusReturned        = "returned"
	OrderStatusReplaced        = "replaced"
)

// Payment Methods
const (
	PaymentMethodCOD    = "COD"
	PaymentMethodOnline = "ONLINE"
)

// Return/Replace request statuses
const (
	RequestStatusNone      = "none"
	RequestStatusPending   = "pending"
	RequestStatusApproved  = "approved"
	RequestStatusRejected  = "rejected"
	RequestStatusCompleted = "completed"
)

// Eligibility windows, measured from deliveredAt.
const (
	ReturnWindow  = 7 * 24 * time.Hour
	ReplaceWindow = 15 * 24 * time.Hour
)

// Notification template types fired on order lifecycle events.
const (
	NotifyOrderConfirmation = "order_confirmation"
	NotifyOrderShipped      = "order_shipped"
	NotifyOrderDelivered    = "order_delivered"
	NotifyReturnRequested   = "return_requested"
	NotifyReplaceRequested  = "replace_requested"
)

// List Exports for API
var OrderStatuses = []string{
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusReturnApproved,
	OrderStatusReturnRejected,
	OrderStatusReplaceApproved,
	OrderStatusReplaceRejected,
	OrderStatusReturned,
	OrderStatusReplaced,
}

var PaymentMethods = []string{
	PaymentMethodCOD,
	PaymentMethodOnline,
}
