package paymentsvc

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"stayneos/model"
	striperepo "stayneos/repository/stripe"
	bookingsvc "stayneos/service/booking"
)

type mockStripe struct {
	verifyFn func(sigHeader string, raw []byte) (*striperepo.WebhookEvent, error)
}

var _ striperepo.Repo = (*mockStripe)(nil)

func (m *mockStripe) CreatePaymentIntent(ctx context.Context, req striperepo.CreateIntentReq) (*striperepo.Intent, error) {
	return nil, errors.New("not used")
}
func (m *mockStripe) Refund(ctx context.Context, paymentIntentID string) error {
	return errors.New("not used")
}
func (m *mockStripe) VerifyWebhook(sigHeader string, raw []byte) (*striperepo.WebhookEvent, error) {
	return m.verifyFn(sigHeader, raw)
}

type mockBookings struct {
	confirmedIntent string
	failedIntent    string
	confirmErr      error
}

var _ bookingsvc.Service = (*mockBookings)(nil)

func (m *mockBookings) Quote(ctx context.Context, propertyID int64, req bookingsvc.StayRequest) (*model.PriceBreakdown, error) {
	return nil, errors.New("not used")
}
func (m *mockBookings) Create(ctx context.Context, guestID, propertyID int64, req bookingsvc.StayRequest) (*bookingsvc.Created, error) {
	return nil, errors.New("not used")
}
func (m *mockBookings) Detail(ctx context.Context, guestID, bookingID int64) (*model.Booking, error) {
	return nil, errors.New("not used")
}
func (m *mockBookings) MyBookings(ctx context.Context, guestID int64) ([]model.Booking, error) {
	return nil, errors.New("not used")
}
func (m *mockBookings) Cancel(ctx context.Context, guestID, bookingID int64, reason string) error {
	return errors.New("not used")
}
func (m *mockBookings) CheckIn(ctx context.Context, bookingID int64) error { return errors.New("not used") }
func (m *mockBookings) CheckOut(ctx context.Context, bookingID int64) error { return errors.New("not used") }
func (m *mockBookings) ConfirmByIntent(ctx context.Context, intentID string) error {
	m.confirmedIntent = intentID
	return m.confirmErr
}
func (m *mockBookings) FailPaymentByIntent(ctx context.Context, intentID string) error {
	m.failedIntent = intentID
	return nil
}

func newTestService(x striperepo.Repo, bs bookingsvc.Service) Service {
	return New(x, bs, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHandleStripe_Succeeded(t *testing.T) {
	x := &mockStripe{
		verifyFn: func(sig string, raw []byte) (*striperepo.WebhookEvent, error) {
			require.Equal(t, "sig", sig)
			return &striperepo.WebhookEvent{Type: "payment_intent.succeeded", PaymentIntentID: "pi_1"}, nil
		},
	}
	bs := &mockBookings{}
	s := newTestService(x, bs)

	require.NoError(t, s.HandleStripe(context.Background(), "sig", []byte(`{}`)))
	require.Equal(t, "pi_1", bs.confirmedIntent)
	require.Empty(t, bs.failedIntent)
}

func TestHandleStripe_Failed(t *testing.T) {
	x := &mockStripe{
		verifyFn: func(sig string, raw []byte) (*striperepo.WebhookEvent, error) {
			return &striperepo.WebhookEvent{Type: "payment_intent.payment_failed", PaymentIntentID: "pi_2"}, nil
		},
	}
	bs := &mockBookings{}
	s := newTestService(x, bs)

	require.NoError(t, s.HandleStripe(context.Background(), "", []byte(`{}`)))
	require.Equal(t, "pi_2", bs.failedIntent)
	require.Empty(t, bs.confirmedIntent)
}

func TestHandleStripe_OtherEventsIgnored(t *testing.T) {
	x := &mockStripe{
		verifyFn: func(sig string, raw []byte) (*striperepo.WebhookEvent, error) {
			return &striperepo.WebhookEvent{Type: "charge.updated", PaymentIntentID: "pi_3"}, nil
		},
	}
	bs := &mockBookings{}
	s := newTestService(x, bs)

	require.NoError(t, s.HandleStripe(context.Background(), "", []byte(`{}`)))
	require.Empty(t, bs.confirmedIntent)
	require.Empty(t, bs.failedIntent)
}

func TestHandleStripe_BadSignature(t *testing.T) {
	x := &mockStripe{
		verifyFn: func(sig string, raw []byte) (*striperepo.WebhookEvent, error) {
			return nil, errors.New("signature mismatch")
		},
	}
	bs := &mockBookings{}
	s := newTestService(x, bs)

	require.Error(t, s.HandleStripe(context.Background(), "bad", []byte(`{}`)))
}

func TestHandleStripe_ConfirmErrorPropagates(t *testing.T) {
	x := &mockStripe{
		verifyFn: func(sig string, raw []byte) (*striperepo.WebhookEvent, error) {
			return &striperepo.WebhookEvent{Type: "payment_intent.succeeded", PaymentIntentID: "pi_4"}, nil
		},
	}
	bs := &mockBookings{confirmErr: errors.New("db down")}
	s := newTestService(x, bs)

	require.Error(t, s.HandleStripe(context.Background(), "", []byte(`{}`)))
}
