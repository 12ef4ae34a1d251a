package propertysvc

import (
	"context"
	"errors"

	"stayneos/model"
)

type Repo interface {
	Create(ctx context.Context, p *model.Property) error
	Get(ctx context.Context, id int64) (*model.Property, error)
	List(ctx context.Context) ([]model.Property, error)
}

type Service interface {
	Create(ctx context.Context, p *model.Property) error
	List(ctx context.Context) ([]model.Property, error)
	Detail(ctx context.Context, id int64) (*model.Property, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, p *model.Property) error {
	if p.Name == "" || p.NightlyPrice <= 0 || p.Currency == "" {
		return errors.New("invalid payload")
	}
	if p.CleaningFee < 0 || p.MonthlyDiscountPct < 0 || p.MonthlyDiscountPct >= 100 {
		return errors.New("invalid payload")
	}
	if p.MinNights < 1 {
		p.MinNights = 1
	}
	if p.MaxNights > 0 && p.MaxNights < p.MinNights {
		return errors.New("invalid payload")
	}
	return s.r.Create(ctx, p)
}

func (s *service) List(ctx context.Context) ([]model.Property, error) { return s.r.List(ctx) }
func (s *service) Detail(ctx context.Context, id int64) (*model.Property, error) {
	return s.r.Get(ctx, id)
}
