package propertyrepo

import (
	"context"
	"database/sql"

	"stayneos/model"
)

type Repo interface {
	Create(ctx context.Context, p *model.Property) error
	Get(ctx context.Context, id int64) (*model.Property, error)
	List(ctx context.Context) ([]model.Property, error)

	// LockForBooking takes the property row lock that serializes
	// concurrent booking attempts for the same property.
	LockForBooking(ctx context.Context, tx *sql.Tx, id int64) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, p *model.Property) error {
	const q = `
INSERT INTO properties (name, city, nightly_price, currency, cleaning_fee, min_nights, max_nights, monthly_discount_pct)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q,
		p.Name, p.City, p.NightlyPrice, p.Currency, p.CleaningFee,
		p.MinNights, p.MaxNights, p.MonthlyDiscountPct,
	).Scan(&p.ID, &p.CreatedAt)
}

func (r *repo) Get(ctx context.Context, id int64) (*model.Property, error) {
	const q = `
SELECT id, name, city, nightly_price, currency, cleaning_fee, min_nights, max_nights, monthly_discount_pct, created_at
FROM properties
WHERE id = $1`
	var p model.Property
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&p.ID, &p.Name, &p.City, &p.NightlyPrice, &p.Currency, &p.CleaningFee,
		&p.MinNights, &p.MaxNights, &p.MonthlyDiscountPct, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repo) List(ctx context.Context) ([]model.Property, error) {
	const q = `
SELECT id, name, city, nightly_price, currency, cleaning_fee, min_nights, max_nights, monthly_discount_pct, created_at
FROM properties
ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Property
	for rows.Next() {
		var p model.Property
		if err := rows.Scan(
			&p.ID, &p.Name, &p.City, &p.NightlyPrice, &p.Currency, &p.CleaningFee,
			&p.MinNights, &p.MaxNights, &p.MonthlyDiscountPct, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repo) LockForBooking(ctx context.Context, tx *sql.Tx, id int64) error {
	const q = `
		SELECT id
		FROM properties
		WHERE id = $1
		FOR UPDATE`
	var got int64
	return tx.QueryRowContext(ctx, q, id).Scan(&got)
}
