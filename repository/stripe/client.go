package striperepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"stayneos/util/httpx"
)

type stripeRepo struct {
	api           *client.API
	webhookSecret string
}

// New builds a Stripe client on the shared HTTP client. The key is held by
// this repo, never set on the package-level stripe.Key.
func New(secretKey, webhookSecret string) Repo {
	api := &client.API{}
	api.Init(secretKey, &stripe.Backends{
		API: stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
			HTTPClient: httpx.Client(),
		}),
	})
	return &stripeRepo{api: api, webhookSecret: webhookSecret}
}

func (r *stripeRepo) CreatePaymentIntent(ctx context.Context, req CreateIntentReq) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(req.Amount),
		Currency:    stripe.String(req.Currency),
		Description: stripe.String("Stay " + req.BookingNumber),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("booking_number", req.BookingNumber)
	if req.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(req.ReceiptEmail)
	}

	pi, err := r.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create intent: %w", err)
	}
	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret, Status: string(pi.Status)}, nil
}

func (r *stripeRepo) Refund(ctx context.Context, paymentIntentID string) error {
	params := &stripe.RefundParams{PaymentIntent: stripe.String(paymentIntentID)}
	params.Context = ctx
	if _, err := r.api.Refunds.New(params); err != nil {
		return fmt.Errorf("stripe refund: %w", err)
	}
	return nil
}

func (r *stripeRepo) VerifyWebhook(sigHeader string, raw []byte) (*WebhookEvent, error) {
	var ev stripe.Event
	if r.webhookSecret != "" {
		verified, err := webhook.ConstructEvent(raw, sigHeader, r.webhookSecret)
		if err != nil {
			return nil, fmt.Errorf("stripe webhook signature: %w", err)
		}
		ev = verified
	} else if err := json.Unmarshal(raw, &ev); err != nil {
		// dev mode: no signing secret configured
		return nil, fmt.Errorf("bad webhook json: %w", err)
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(ev.Data.Raw, &pi); err != nil {
		return nil, fmt.Errorf("bad webhook payload: %w", err)
	}
	return &WebhookEvent{Type: string(ev.Type), PaymentIntentID: pi.ID}, nil
}
