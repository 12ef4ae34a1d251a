package booking

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stayneos/model"
	striperepo "stayneos/repository/stripe"
)

type mockPropertyRepo struct {
	getFn func(ctx context.Context, id int64) (*model.Property, error)
}

var _ PropertyRepo = (*mockPropertyRepo)(nil)

func (m *mockPropertyRepo) Get(ctx context.Context, id int64) (*model.Property, error) {
	return m.getFn(ctx, id)
}
func (m *mockPropertyRepo) LockForBooking(ctx context.Context, tx *sql.Tx, id int64) error {
	return nil
}

type mockRepo struct {
	getByIDFn     func(ctx context.Context, id int64) (*model.Booking, error)
	listByGuestFn func(ctx context.Context, guestID int64) ([]model.Booking, error)
}

var _ Repo = (*mockRepo)(nil)

func (m *mockRepo) Insert(ctx context.Context, tx *sql.Tx, b *model.Booking) error { return nil }
func (m *mockRepo) Blocking(ctx context.Context, tx *sql.Tx, propertyID int64) ([]model.Reservation, error) {
	return nil, nil
}
func (m *mockRepo) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockRepo) GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Booking, error) {
	return nil, sql.ErrNoRows
}
func (m *mockRepo) GetForUpdateByIntent(ctx context.Context, tx *sql.Tx, intentID string) (*model.Booking, error) {
	return nil, sql.ErrNoRows
}
func (m *mockRepo) ListByGuest(ctx context.Context, guestID int64) ([]model.Booking, error) {
	return m.listByGuestFn(ctx, guestID)
}
func (m *mockRepo) SetPaymentIntent(ctx context.Context, id int64, intentID string) error {
	return nil
}
func (m *mockRepo) MarkConfirmed(ctx context.Context, tx *sql.Tx, id int64) error { return nil }
func (m *mockRepo) MarkCancelled(ctx context.Context, tx *sql.Tx, id int64, reason string, refunded bool) error {
	return nil
}
func (m *mockRepo) MarkCheckedIn(ctx context.Context, tx *sql.Tx, id int64) error { return nil }
func (m *mockRepo) MarkCheckedOut(ctx context.Context, tx *sql.Tx, id int64) error { return nil }
func (m *mockRepo) MarkPaymentFailed(ctx context.Context, tx *sql.Tx, id int64) error { return nil }

type mockGateway struct {
	createFn func(ctx context.Context, req striperepo.CreateIntentReq) (*striperepo.Intent, error)
	refundFn func(ctx context.Context, paymentIntentID string) error
}

var _ striperepo.Repo = (*mockGateway)(nil)

func (m *mockGateway) CreatePaymentIntent(ctx context.Context, req striperepo.CreateIntentReq) (*striperepo.Intent, error) {
	if m.createFn == nil {
		return &striperepo.Intent{ID: "pi_test", ClientSecret: "cs_test"}, nil
	}
	return m.createFn(ctx, req)
}
func (m *mockGateway) Refund(ctx context.Context, paymentIntentID string) error {
	if m.refundFn == nil {
		return nil
	}
	return m.refundFn(ctx, paymentIntentID)
}
func (m *mockGateway) VerifyWebhook(sigHeader string, raw []byte) (*striperepo.WebhookEvent, error) {
	return nil, nil
}

func testProperty() *model.Property {
	return &model.Property{
		ID:                 7,
		Name:               "Lakeview Loft",
		City:               "Toronto",
		NightlyPrice:       680,
		Currency:           "CAD",
		CleaningFee:        80,
		MinNights:          2,
		MaxNights:          90,
		MonthlyDiscountPct: 20,
	}
}

func newTestService(pr PropertyRepo, r Repo, today string) *service {
	return &service{
		r:   r,
		pr:  pr,
		x:   &mockGateway{},
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now: func() time.Time { return d(today) },
	}
}

func TestQuote_Success(t *testing.T) {
	pr := &mockPropertyRepo{
		getFn: func(ctx context.Context, id int64) (*model.Property, error) {
			require.Equal(t, int64(7), id)
			return testProperty(), nil
		},
	}
	s := newTestService(pr, &mockRepo{}, "2026-02-01")

	pb, err := s.Quote(context.Background(), 7, stay("2026-03-01", "2026-03-31"))
	require.NoError(t, err)
	require.Equal(t, 30, pb.Nights)
	require.Equal(t, int64(16320), pb.Subtotal)
	require.Equal(t, int64(20376), pb.Total)
	require.Equal(t, "CAD", pb.Currency)
}

func TestQuote_PropertyNotFound(t *testing.T) {
	pr := &mockPropertyRepo{
		getFn: func(ctx context.Context, id int64) (*model.Property, error) {
			return nil, sql.ErrNoRows
		},
	}
	s := newTestService(pr, &mockRepo{}, "2026-02-01")

	_, err := s.Quote(context.Background(), 404, stay("2026-03-01", "2026-03-05"))
	require.Error(t, err)
	require.Equal(t, ErrPropertyNotFound, Code(err))
}

func TestQuote_BelowMinimumStay(t *testing.T) {
	p := testProperty()
	p.MinNights = 28
	pr := &mockPropertyRepo{
		getFn: func(ctx context.Context, id int64) (*model.Property, error) { return p, nil },
	}
	s := newTestService(pr, &mockRepo{}, "2026-02-01")

	_, err := s.Quote(context.Background(), 7, stay("2026-03-01", "2026-03-15"))
	require.Error(t, err)
	require.Equal(t, ErrBelowMinStay, Code(err))
}

func TestCreate_DateValidationBeforeAnyWrite(t *testing.T) {
	pr := &mockPropertyRepo{
		getFn: func(ctx context.Context, id int64) (*model.Property, error) {
			return testProperty(), nil
		},
	}
	// db is nil: reaching the transaction would panic the test
	s := newTestService(pr, &mockRepo{}, "2026-02-01")

	_, err := s.Create(context.Background(), 1, 7, stay("2026-01-10", "2026-01-12"))
	require.Error(t, err)
	require.Equal(t, ErrPastCheckIn, Code(err))

	_, err = s.Create(context.Background(), 1, 7, stay("2026-03-10", "2026-03-10"))
	require.Error(t, err)
	require.Equal(t, ErrInvalidRange, Code(err))
}

func TestCreate_AboveMaximumStay(t *testing.T) {
	p := testProperty()
	p.MaxNights = 10
	pr := &mockPropertyRepo{
		getFn: func(ctx context.Context, id int64) (*model.Property, error) { return p, nil },
	}
	s := newTestService(pr, &mockRepo{}, "2026-02-01")

	_, err := s.Create(context.Background(), 1, 7, stay("2026-03-01", "2026-03-31"))
	require.Error(t, err)
	require.Equal(t, ErrAboveMaxStay, Code(err))
}

func TestDetail_OwnerOnly(t *testing.T) {
	r := &mockRepo{
		getByIDFn: func(ctx context.Context, id int64) (*model.Booking, error) {
			return &model.Booking{ID: id, GuestID: 42}, nil
		},
	}
	s := newTestService(&mockPropertyRepo{}, r, "2026-02-01")

	b, err := s.Detail(context.Background(), 42, 9)
	require.NoError(t, err)
	require.Equal(t, int64(9), b.ID)

	_, err = s.Detail(context.Background(), 1, 9)
	require.Error(t, err)
	require.Equal(t, ErrNotOwner, Code(err))
}

func TestDetail_NotFound(t *testing.T) {
	r := &mockRepo{
		getByIDFn: func(ctx context.Context, id int64) (*model.Booking, error) {
			return nil, sql.ErrNoRows
		},
	}
	s := newTestService(&mockPropertyRepo{}, r, "2026-02-01")

	_, err := s.Detail(context.Background(), 42, 9)
	require.Error(t, err)
	require.Equal(t, ErrNotFound, Code(err))
}
