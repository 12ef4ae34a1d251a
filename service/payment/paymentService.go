package paymentsvc

import (
	"context"
	"fmt"
	"log/slog"

	striperepo "stayneos/repository/stripe"
	bookingsvc "stayneos/service/booking"
)

type Service interface {
	HandleStripe(ctx context.Context, sigHeader string, raw []byte) error
}

type service struct {
	x   striperepo.Repo
	bs  bookingsvc.Service
	log *slog.Logger
}

func New(x striperepo.Repo, bs bookingsvc.Service, log *slog.Logger) Service {
	return &service{x: x, bs: bs, log: log}
}

func (s *service) HandleStripe(ctx context.Context, sigHeader string, raw []byte) error {
	ev, err := s.x.VerifyWebhook(sigHeader, raw)
	if err != nil {
		return err
	}

	switch ev.Type {
	case "payment_intent.succeeded":
		if ev.PaymentIntentID == "" {
			return fmt.Errorf("stripe event %s: empty payment intent id", ev.Type)
		}
		if err := s.bs.ConfirmByIntent(ctx, ev.PaymentIntentID); err != nil {
			return fmt.Errorf("confirm booking for intent %s: %w", ev.PaymentIntentID, err)
		}
		s.log.Info("booking confirmed", "intent", ev.PaymentIntentID)
		return nil
	case "payment_intent.payment_failed":
		if ev.PaymentIntentID == "" {
			return fmt.Errorf("stripe event %s: empty payment intent id", ev.Type)
		}
		if err := s.bs.FailPaymentByIntent(ctx, ev.PaymentIntentID); err != nil {
			return fmt.Errorf("mark payment failed for intent %s: %w", ev.PaymentIntentID, err)
		}
		s.log.Info("payment failed, booking kept pending", "intent", ev.PaymentIntentID)
		return nil
	default:
		// other event types are acknowledged and dropped
		return nil
	}
}
