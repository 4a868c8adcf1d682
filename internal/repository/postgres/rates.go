package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"resort-booking-backend/internal/calendar"
	"resort-booking-backend/internal/domain"
	"resort-booking-backend/internal/repository"
)

type rateRepository struct {
	db *sql.DB
}

func NewRateRepository(db *sql.DB) repository.RateRepository {
	return &rateRepository{db: db}
}

func (r *rateRepository) GetSeasonForDate(ctx context.Context, date time.Time) (*domain.Season, error) {
	// Overlapping seasons resolve deterministically: latest start date wins,
	// then lowest id.
	query := `SELECT id, name, start_date, end_date, multiplier_bps, is_active
	          FROM seasons
	          WHERE is_active = true AND start_date <= $1 AND end_date >= $1
	          ORDER BY start_date DESC, id ASC
	          LIMIT 1`
	s := &domain.Season{}
	err := r.db.QueryRowContext(ctx, query, calendar.Normalize(date)).
		Scan(&s.ID, &s.Name, &s.StartDate, &s.EndDate, &s.MultiplierBps, &s.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	s.StartDate = calendar.Normalize(s.StartDate)
	s.EndDate = calendar.Normalize(s.EndDate)
	return s, nil
}

func (r *rateRepository) GetMealPlan(ctx context.Context, code string) (*domain.MealPlanPrice, error) {
	query := `SELECT id, code, name, adult_paise, child_paise, is_active
	          FROM meal_plan_prices WHERE code = $1 AND is_active = true`
	mp := &domain.MealPlanPrice{}
	err := r.db.QueryRowContext(ctx, query, code).
		Scan(&mp.ID, &mp.Code, &mp.Name, &mp.AdultPaise, &mp.ChildPaise, &mp.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("meal plan %q: %w", code, domain.ErrNotFound)
		}
		return nil, err
	}
	return mp, nil
}

func (r *rateRepository) GetPackage(ctx context.Context, id int32) (*domain.Package, error) {
	query := `SELECT id, name, price_type, price_paise, min_guests, max_guests, valid_from, valid_to, is_active
	          FROM packages WHERE id = $1 AND is_active = true`
	p := &domain.Package{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.Name, &p.PriceType, &p.PricePaise, &p.MinGuests, &p.MaxGuests, &p.ValidFrom, &p.ValidTo, &p.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("package %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return p, nil
}

func (r *rateRepository) EffectiveTaxRateBps(ctx context.Context) (int64, error) {
	var rate sql.NullInt64
	err := r.db.QueryRowContext(ctx, `SELECT sum(percent_bps) FROM tax_configs WHERE is_active = true`).Scan(&rate)
	if err != nil {
		return 0, err
	}
	return rate.Int64, nil
}
