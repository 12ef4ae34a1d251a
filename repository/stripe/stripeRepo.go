package striperepo

import "context"

type CreateIntentReq struct {
	Amount        int64 // minor currency units
	Currency      string
	BookingNumber string
	ReceiptEmail  string
}

type Intent struct {
	ID           string
	ClientSecret string
	Status       string
}

type WebhookEvent struct {
	Type            string
	PaymentIntentID string
}

type Repo interface {
	CreatePaymentIntent(ctx context.Context, req CreateIntentReq) (*Intent, error)
	Refund(ctx context.Context, paymentIntentID string) error
	VerifyWebhook(sigHeader string, raw []byte) (*WebhookEvent, error)
}
