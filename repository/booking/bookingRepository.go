// repository/booking/repo.go
package bookingrepo

import (
	"context"
	"database/sql"

	"stayneos/model"
)

const bookingColumns = `
	id, booking_number, property_id, guest_id, check_in, check_out,
	nights, base_price, subtotal, cleaning_fee, service_fee,
	discount_amount, discount_pct, tax, total, currency,
	status, payment_status, payment_intent_id, cancel_reason,
	created_at, confirmed_at, checked_in_at, checked_out_at, cancelled_at`

type Repo interface {
	Insert(ctx context.Context, tx *sql.Tx, b *model.Booking) error

	// Blocking returns the reservations that prevent new overlapping
	// bookings for the property (CONFIRMED or CHECKED_IN).
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

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `
		INSERT INTO bookings (
			booking_number, property_id, guest_id, check_in, check_out,
			nights, base_price, subtotal, cleaning_fee, service_fee,
			discount_amount, discount_pct, tax, total, currency,
			status, payment_status
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		RETURNING id, created_at`
	return tx.QueryRowContext(ctx, q,
		b.BookingNumber, b.PropertyID, b.GuestID, b.CheckIn, b.CheckOut,
		b.Price.Nights, b.Price.BasePrice, b.Price.Subtotal, b.Price.CleaningFee, b.Price.ServiceFee,
		b.Price.DiscountAmount, b.Price.DiscountPct, b.Price.Tax, b.Price.Total, b.Price.Currency,
		b.Status, b.PaymentStatus,
	).Scan(&b.ID, &b.CreatedAt)
}

func (r *repo) Blocking(ctx context.Context, tx *sql.Tx, propertyID int64) ([]model.Reservation, error) {
	const q = `
		SELECT check_in, check_out, status
		FROM bookings
		WHERE property_id = $1
		AND status IN ('CONFIRMED','CHECKED_IN')`
	rows, err := tx.QueryContext(ctx, q, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Reservation
	for rows.Next() {
		var rv model.Reservation
		if err := rows.Scan(&rv.CheckIn, &rv.CheckOut, &rv.Status); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *repo) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	return scanBooking(r.db.QueryRowContext(ctx, `SELECT`+bookingColumns+` FROM bookings WHERE id = $1`, id))
}

func (r *repo) GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Booking, error) {
	return scanBooking(tx.QueryRowContext(ctx, `SELECT`+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id))
}

func (r *repo) GetForUpdateByIntent(ctx context.Context, tx *sql.Tx, intentID string) (*model.Booking, error) {
	return scanBooking(tx.QueryRowContext(ctx, `SELECT`+bookingColumns+` FROM bookings WHERE payment_intent_id = $1 FOR UPDATE`, intentID))
}

func (r *repo) ListByGuest(ctx context.Context, guestID int64) ([]model.Booking, error) {
	const q = `SELECT` + bookingColumns + `
		FROM bookings
		WHERE guest_id = $1
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, guestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *repo) SetPaymentIntent(ctx context.Context, id int64, intentID string) error {
	const q = `
		UPDATE bookings
		SET payment_intent_id = $2,
			payment_status = 'PROCESSING'
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, intentID)
	return err
}

func (r *repo) MarkConfirmed(ctx context.Context, tx *sql.Tx, id int64) error {
	const q = `
		UPDATE bookings
		SET status = 'CONFIRMED',
			payment_status = 'COMPLETED',
			confirmed_at = NOW()
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, id)
	return err
}

func (r *repo) MarkCancelled(ctx context.Context, tx *sql.Tx, id int64, reason string, refunded bool) error {
	const q = `
		UPDATE bookings
		SET status = 'CANCELLED',
			payment_status = CASE WHEN $3 THEN 'REFUNDED' ELSE payment_status END,
			cancel_reason = NULLIF($2, ''),
			cancelled_at = NOW()
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, id, reason, refunded)
	return err
}

func (r *repo) MarkCheckedIn(ctx context.Context, tx *sql.Tx, id int64) error {
	const q = `
		UPDATE bookings
		SET status = 'CHECKED_IN',
			checked_in_at = NOW()
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, id)
	return err
}

func (r *repo) MarkCheckedOut(ctx context.Context, tx *sql.Tx, id int64) error {
	const q = `
		UPDATE bookings
		SET status = 'CHECKED_OUT',
			checked_out_at = NOW()
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, id)
	return err
}

func (r *repo) MarkPaymentFailed(ctx context.Context, tx *sql.Tx, id int64) error {
	const q = `
		UPDATE bookings
		SET payment_status = 'FAILED'
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*model.Booking, error) {
	var b model.Booking
	if err := row.Scan(
		&b.ID, &b.BookingNumber, &b.PropertyID, &b.GuestID, &b.CheckIn, &b.CheckOut,
		&b.Price.Nights, &b.Price.BasePrice, &b.Price.Subtotal, &b.Price.CleaningFee, &b.Price.ServiceFee,
		&b.Price.DiscountAmount, &b.Price.DiscountPct, &b.Price.Tax, &b.Price.Total, &b.Price.Currency,
		&b.Status, &b.PaymentStatus, &b.PaymentIntentID, &b.CancelReason,
		&b.CreatedAt, &b.ConfirmedAt, &b.CheckedInAt, &b.CheckedOutAt, &b.CancelledAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}
