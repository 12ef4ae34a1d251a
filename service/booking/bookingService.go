package booking

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"stayneos/model"
	striperepo "stayneos/repository/stripe"
)

// insert retries on booking-number collision; each attempt runs a fresh tx
// because a unique violation aborts the current one
const bookingNumberAttempts = 3

// dto

type Created struct {
	BookingID     int64
	BookingNumber string
	Total         int64
	Currency      string
	ClientSecret  string
	PaymentStatus model.PaymentStatus
}

type PropertyRepo interface {
	Get(ctx context.Context, id int64) (*model.Property, error)
	LockForBooking(ctx context.Context, tx *sql.Tx, id int64) error
}

type Repo interface {
	Insert(ctx context.Context, tx *sql.Tx, b *model.Booking) error
	Blocking(ctx context.Context, tx *sql.Tx, propertyID int64) ([]model.Reservation, error)

	GetByID(ctx context.Context, id int64) (*model.Booking, error)
	GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Booking, error)
	GetForUpdateByIntent(ctx context.Context, tx *sql.Tx, intentID string) (*model.Booking, error)
	ListByGuest(ctx context.Context, guestID int64) ([]model.Booking, error)

	SetPaymentIntent(ctx context.Context, id int64, intentID string) error
	MarkConfirmed(ctx context.Context, tx *sql.Tx, id int64) error
	MarkCancelled(ctx context.Context, tx *sql.Tx, id int64, reason string, refunded bool) error
	MarkCheckedIn(ctx context.Context, tx *sql.Tx, id int64) error
	MarkCheckedOut(ctx context.Context, tx *sql.Tx, id int64) error
	MarkPaymentFailed(ctx context.Context, tx *sql.Tx, id int64) error
}

type Service interface {
	// Quote prices a stay without creating anything.
	Quote(ctx context.Context, propertyID int64, req StayRequest) (*model.PriceBreakdown, error)

	// Create validates the stay, checks availability under the property
	// row lock, persists a PENDING booking and opens a payment intent.
	Create(ctx context.Context, guestID, propertyID int64, req StayRequest) (*Created, error)

	Detail(ctx context.Context, guestID, bookingID int64) (*model.Booking, error)
	MyBookings(ctx context.Context, guestID int64) ([]model.Booking, error)

	Cancel(ctx context.Context, guestID, bookingID int64, reason string) error
	CheckIn(ctx context.Context, bookingID int64) error
	CheckOut(ctx context.Context, bookingID int64) error

	// ConfirmByIntent is driven by the payment-success callback.
	ConfirmByIntent(ctx context.Context, intentID string) error
	FailPaymentByIntent(ctx context.Context, intentID string) error
}

// ----- Service implementation -----

type service struct {
	db  *sql.DB
	r   Repo
	pr  PropertyRepo
	x   striperepo.Repo
	log *slog.Logger
	now func() time.Time
}

func New(db *sql.DB, r Repo, pr PropertyRepo, x striperepo.Repo, log *slog.Logger) Service {
	return &service{db: db, r: r, pr: pr, x: x, log: log, now: time.Now}
}

func (s *service) Quote(ctx context.Context, propertyID int64, req StayRequest) (*model.PriceBreakdown, error) {
	p, err := s.property(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if err := s.validate(p, req); err != nil {
		return nil, err
	}
	nights := Nights(req.CheckIn, req.CheckOut)
	pb := CalculatePrice(p.NightlyPrice, nights, p.CleaningFee, p.MonthlyDiscountPct, p.Currency)
	return &pb, nil
}

func (s *service) Create(ctx context.Context, guestID, propertyID int64, req StayRequest) (*Created, error) {
	p, err := s.property(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if err := s.validate(p, req); err != nil {
		return nil, err
	}
	nights := Nights(req.CheckIn, req.CheckOut)
	price := CalculatePrice(p.NightlyPrice, nights, p.CleaningFee, p.MonthlyDiscountPct, p.Currency)

	var b *model.Booking
	for attempt := 0; attempt < bookingNumberAttempts; attempt++ {
		b, err = s.createOnce(ctx, guestID, p.ID, req, price)
		if err != nil && isBookingNumberCollision(err) {
			s.log.Warn("booking number collision, retrying", "attempt", attempt+1)
			continue
		}
		break
	}
	if err != nil {
		return nil, err
	}

	out := &Created{
		BookingID:     b.ID,
		BookingNumber: b.BookingNumber,
		Total:         price.Total,
		Currency:      price.Currency,
		PaymentStatus: model.PaymentPending,
	}

	// Payment capture happens against the intent; a gateway failure leaves
	// the booking PENDING so the guest can retry payment, not re-book.
	in, err := s.x.CreatePaymentIntent(ctx, striperepo.CreateIntentReq{
		Amount:        price.Total * 100,
		Currency:      strings.ToLower(price.Currency),
		BookingNumber: b.BookingNumber,
	})
	if err != nil {
		s.log.Error("payment intent create failed", "booking_number", b.BookingNumber, "err", err)
		return out, nil
	}
	if err := s.r.SetPaymentIntent(ctx, b.ID, in.ID); err != nil {
		s.log.Error("attach payment intent failed", "booking_id", b.ID, "err", err)
		return out, nil
	}
	out.ClientSecret = in.ClientSecret
	out.PaymentStatus = model.PaymentProcessing
	return out, nil
}

func (s *service) createOnce(ctx context.Context, guestID, propertyID int64, req StayRequest, price model.PriceBreakdown) (b *model.Booking, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Serialize conflicting availability checks per property: the in-memory
	// overlap test alone is not atomic across requests.
	if err = s.pr.LockForBooking(ctx, tx, propertyID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrPropertyNotFound)
		}
		return nil, err
	}

	existing, err := s.r.Blocking(ctx, tx, propertyID)
	if err != nil {
		return nil, err
	}
	if HasConflict(existing, req) {
		return nil, makeErr(ErrConflict)
	}

	b = &model.Booking{
		BookingNumber: GenerateBookingNumber(),
		PropertyID:    propertyID,
		GuestID:       guestID,
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
		Price:         price,
		Status:        model.BookingPending,
		PaymentStatus: model.PaymentPending,
	}
	if err = s.r.Insert(ctx, tx, b); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Detail(ctx context.Context, guestID, bookingID int64) (*model.Booking, error) {
	b, err := s.r.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	if b.GuestID != guestID {
		return nil, makeErr(ErrNotOwner)
	}
	return b, nil
}

func (s *service) MyBookings(ctx context.Context, guestID int64) ([]model.Booking, error) {
	return s.r.ListByGuest(ctx, guestID)
}

func (s *service) Cancel(ctx context.Context, guestID, bookingID int64, reason string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	b, err := s.r.GetForUpdate(ctx, tx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrNotFound)
		}
		return err
	}
	if b.GuestID != guestID {
		return makeErr(ErrNotOwner)
	}
	switch b.Status {
	case model.BookingCancelled:
		return makeErr(ErrAlreadyCancelled)
	case model.BookingCheckedIn, model.BookingCheckedOut:
		return makeErr(ErrNotCancellable)
	}

	refunded := b.PaymentStatus == model.PaymentCompleted
	if err = s.r.MarkCancelled(ctx, tx, bookingID, reason, refunded); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return err
	}

	// Refund is signalled once, not retried; a gateway failure is logged and
	// left for reconciliation.
	if refunded && b.PaymentIntentID != nil {
		if rerr := s.x.Refund(ctx, *b.PaymentIntentID); rerr != nil {
			s.log.Error("refund failed", "booking_id", bookingID, "intent", *b.PaymentIntentID, "err", rerr)
		}
	}
	return nil
}

func (s *service) CheckIn(ctx context.Context, bookingID int64) error {
	return s.transition(ctx, bookingID, model.BookingConfirmed, ErrNotConfirmed, s.r.MarkCheckedIn)
}

func (s *service) CheckOut(ctx context.Context, bookingID int64) error {
	return s.transition(ctx, bookingID, model.BookingCheckedIn, ErrNotCheckedIn, s.r.MarkCheckedOut)
}

func (s *service) transition(ctx context.Context, bookingID int64, from model.BookingStatus, code ErrCode, mark func(context.Context, *sql.Tx, int64) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	b, err := s.r.GetForUpdate(ctx, tx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrNotFound)
		}
		return err
	}
	if b.Status != from {
		return makeErr(code)
	}
	if err = mark(ctx, tx, bookingID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) ConfirmByIntent(ctx context.Context, intentID string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	b, err := s.r.GetForUpdateByIntent(ctx, tx, intentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrNotFound)
		}
		return err
	}
	if b.Status == model.BookingConfirmed {
		// webhook redelivery
		return tx.Commit()
	}
	if b.Status != model.BookingPending {
		return makeErr(ErrBadTransition)
	}
	if err = s.r.MarkConfirmed(ctx, tx, b.ID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) FailPaymentByIntent(ctx context.Context, intentID string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	b, err := s.r.GetForUpdateByIntent(ctx, tx, intentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrNotFound)
		}
		return err
	}
	// booking stays PENDING so payment can be retried
	if err = s.r.MarkPaymentFailed(ctx, tx, b.ID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) property(ctx context.Context, id int64) (*model.Property, error) {
	p, err := s.pr.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrPropertyNotFound)
		}
		return nil, err
	}
	return p, nil
}

func (s *service) validate(p *model.Property, req StayRequest) error {
	if err := ValidateStay(req.CheckIn, req.CheckOut, p.MinNights, s.now()); err != nil {
		return err
	}
	if p.MaxNights > 0 && Nights(req.CheckIn, req.CheckOut) > p.MaxNights {
		return makeErr(ErrAboveMaxStay)
	}
	return nil
}

func isBookingNumberCollision(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return strings.Contains(strings.ToLower(pgErr.ConstraintName), "booking_number")
	}
	return false
}
