package notification

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"trendora-backend/internal/domain"
	"trendora-backend/pkg/utils"

	"github.com/goccy/go-json"
)

// template is the user-facing copy for a notification type.
type template struct {
	title string
	body  string
}

func templateFor(templateType, orderRef string) (template, bool) {
	templates := map[string]template{
		domain.NotifyOrderConfirmation: {
			title: "Order Confirmed!",
			body:  fmt.Sprintf("Your order #%s has been confirmed and is being prepared.", orderRef),
		},
		domain.NotifyOrderShipped: {
			title: "Order Shipped!",
			body:  fmt.Sprintf("Good news! Your order #%s is on its way to you.", orderRef),
		},
		domain.NotifyOrderDelivered: {
			title: "Order Delivered!",
			body:  fmt.Sprintf("Your order #%s has been delivered. Enjoy your purchase!", orderRef),
		},
		domain.NotifyReturnRequested: {
			title: "Return Requested",
			body:  fmt.Sprintf("We have received your return request for order #%s. We will update you shortly.", orderRef),
		},
		domain.NotifyReplaceRequested: {
			title: "Replacement Requested",
			body:  fmt.Sprintf("We have received your replacement request for order #%s. We will update you shortly.", orderRef),
		},
	}
	t, ok := templates[templateType]
	return t, ok
}

// PushSender delivers notifications through an Expo-compatible push endpoint.
// Token lookup goes through the user directory; users without a registered
// push token are silently skipped.
type PushSender struct {
	endpoint   string
	tokens     TokenSource
	httpClient *http.Client
}

// TokenSource resolves a user's push token. A missing token returns "".
type TokenSource interface {
	PushToken(ctx context.Context, userID string) (string, error)
}

func NewPushSender(endpoint string, tokens TokenSource) *PushSender {
	return &PushSender{
		endpoint: endpoint,
		tokens:   tokens,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type pushPayload struct {
	To    string                 `json:"to"`
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	Data  map[string]interface{} `json:"data,omitempty"`
}

// Send resolves the template and posts a single push message.
func (s *PushSender) Send(ctx context.Context, userID, templateType string, data map[string]interface{}) error {
	token, err := s.tokens.PushToken(ctx, userID)
	if err != nil {
		return fmt.Errorf("token lookup: %w", err)
	}
	if token == "" {
		return nil // user has no registered device
	}

	orderRef := ""
	if id, ok := data["orderId"].(string); ok {
		orderRef = utils.ShortID(id, 6)
	}
	tmpl, ok := templateFor(templateType, orderRef)
	if !ok {
		return fmt.Errorf("unknown notification template %q", templateType)
	}

	payload := pushPayload{
		To:    token,
		Title: tmpl.title,
		Body:  tmpl.body,
		Data:  data,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("push request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("push error (status %d): %s", resp.StatusCode, string(body))
	}
	return nil
}
