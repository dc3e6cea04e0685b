package payment

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"trendora-backend/internal/domain"

	"github.com/goccy/go-json"
)

const stripeAPIURL = "https://api.stripe.com/v1/payment_intents"

// StripeGateway creates payment intents through the Stripe REST API.
type StripeGateway struct {
	secretKey  string
	httpClient *http.Client
}

func NewStripeGateway(secretKey string) *StripeGateway {
	return &StripeGateway{
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type stripeError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreatePaymentIntent posts a form-encoded intent request. Amount is in the
// currency's minor unit.
func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*domain.PaymentIntent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountMinor, 10))
	form.Set("currency", strings.ToLower(currency))
	form.Set("automatic_payment_methods[enabled]", "true")
	for k, v := range metadata {
		form.Set("metadata["+k+"]", v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, stripeAPIURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stripe request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr stripeError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("stripe error (status %d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("stripe error (status %d): %s", resp.StatusCode, string(body))
	}

	var intent domain.PaymentIntent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("failed to decode payment intent: %w", err)
	}
	return &intent, nil
}
