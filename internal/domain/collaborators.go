package domain

import "context"

// TransactionManager runs fn inside a database transaction. Repositories
// called with the returned context share the transaction.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier delivers a push notification to a user. Implementations must be
// fire-and-forget: Notify never blocks the caller beyond an enqueue and never
// returns an error, because notification failure must not fail the order
// operation that triggered it.
type Notifier interface {
	Notify(userID, templateType string, data map[string]interface{})
}

// PaymentIntent is the gateway's handle for a client-side payment flow.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

// PaymentGateway creates payment intents for ONLINE orders. Amounts are in
// minor units (cents). Gateway failures propagate to the caller unchanged.
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*PaymentIntent, error)
}

// ImageStore persists product images. Upload returns the public URL and the
// storage key (public id). Delete failures during product update/delete are
// logged and swallowed by callers; metadata mutation always wins over storage
// cleanup.
type ImageStore interface {
	Upload(ctx context.Context, data []byte, contentType, folder string) (url, publicID string, err error)
	Delete(ctx context.Context, publicID string) error
}
