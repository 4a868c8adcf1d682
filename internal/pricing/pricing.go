// Package pricing computes the guest-facing price breakdown for a stay.
//
// All arithmetic is integer-exact: money is carried in paise and multipliers
// and tax rates in basis points (domain.BpsScale). The only two divisions are
// the season-multiplier product and the tax product, both rounded half-up to
// the paise, so identical inputs always reproduce an identical breakdown.
package pricing

import (
	"fmt"

	"resort-booking-backend/internal/calendar"
	"resort-booking-backend/internal/domain"
)

// Inputs carries everything the computation needs. Callers resolve the
// season multiplier, meal plan and tax rate before calling; the engine
// itself reads nothing from storage.
type Inputs struct {
	Category            *domain.RoomCategory
	CheckIn             string // YYYY-MM-DD
	CheckOut            string // YYYY-MM-DD
	NumAdults           int
	NumChildren         int
	SeasonMultiplierBps int64
	MealPlan            *domain.MealPlanPrice // nil means room only at zero add-on
	Package             *domain.Package       // nil means no package selected
	TaxRateBps          int64
}

// Breakdown is the fully itemized result. Every field is in paise and
// GrandTotal always equals Subtotal+Tax exactly.
type Breakdown struct {
	NumNights           int   `json:"num_nights"`
	SeasonMultiplierBps int64 `json:"season_multiplier_bps"`
	AdjustedRoomRate    int64 `json:"adjusted_room_rate_paise"`
	RoomTotal           int64 `json:"room_total_paise"`
	ExtraAdults         int   `json:"extra_adults"`
	ExtraChildren       int   `json:"extra_children"`
	ExtraAdultTotal     int64 `json:"extra_adult_total_paise"`
	ExtraChildTotal     int64 `json:"extra_child_total_paise"`
	ExtraGuestTotal     int64 `json:"extra_guest_total_paise"`
	MealPlanAdultTotal  int64 `json:"meal_plan_adult_total_paise"`
	MealPlanChildTotal  int64 `json:"meal_plan_child_total_paise"`
	MealPlanTotal       int64 `json:"meal_plan_total_paise"`
	PackageTotal        int64 `json:"package_total_paise"`
	Subtotal            int64 `json:"subtotal_paise"`
	TaxRateBps          int64 `json:"tax_rate_bps"`
	Tax                 int64 `json:"tax_paise"`
	GrandTotal          int64 `json:"grand_total_paise"`
}

// divRoundHalfUp divides a by b rounding half away from zero. Inputs in this
// engine are non-negative.
func divRoundHalfUp(a, b int64) int64 {
	return (a + b/2) / b
}

// Compute derives the price breakdown. It is pure: no clock, no storage, no
// randomness. The season multiplier covers the whole stay (resolved from the
// check-in date by the caller, not blended per night).
func Compute(in Inputs) (*Breakdown, error) {
	if in.Category == nil {
		return nil, fmt.Errorf("pricing: %w", domain.ErrNotFound)
	}
	checkIn, err := calendar.ParseDate(in.CheckIn)
	if err != nil {
		return nil, fmt.Errorf("pricing: %w", domain.ErrInvalidRange)
	}
	checkOut, err := calendar.ParseDate(in.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("pricing: %w", domain.ErrInvalidRange)
	}
	nights := calendar.NightsBetween(checkIn, checkOut)
	if nights <= 0 {
		return nil, fmt.Errorf("pricing: stay of %d nights: %w", nights, domain.ErrInvalidRange)
	}
	mult := in.SeasonMultiplierBps
	if mult <= 0 {
		mult = domain.BpsScale
	}

	b := &Breakdown{
		NumNights:           nights,
		SeasonMultiplierBps: mult,
		TaxRateBps:          in.TaxRateBps,
	}

	b.AdjustedRoomRate = divRoundHalfUp(in.Category.BasePricePaise*mult, domain.BpsScale)
	// Keep the multiplier product at full precision across the night count and
	// divide once, so a fractional rate cannot drift night by night.
	b.RoomTotal = divRoundHalfUp(in.Category.BasePricePaise*mult*int64(nights), domain.BpsScale)

	if extra := in.NumAdults - in.Category.BaseOccupancy; extra > 0 {
		b.ExtraAdults = extra
	}
	// Base occupancy is defined purely in adult terms: every child is an
	// extra guest.
	b.ExtraChildren = in.NumChildren
	b.ExtraAdultTotal = int64(b.ExtraAdults) * in.Category.ExtraAdultPaise * int64(nights)
	b.ExtraChildTotal = int64(b.ExtraChildren) * in.Category.ExtraChildPaise * int64(nights)
	b.ExtraGuestTotal = b.ExtraAdultTotal + b.ExtraChildTotal

	if in.MealPlan != nil {
		// Meal plans price the full guest count, not just the extras.
		b.MealPlanAdultTotal = in.MealPlan.AdultPaise * int64(in.NumAdults) * int64(nights)
		b.MealPlanChildTotal = in.MealPlan.ChildPaise * int64(in.NumChildren) * int64(nights)
		b.MealPlanTotal = b.MealPlanAdultTotal + b.MealPlanChildTotal
	}

	if in.Package != nil {
		switch in.Package.PriceType {
		case domain.PackagePriceFixed:
			b.PackageTotal = in.Package.PricePaise
		case domain.PackagePricePerNight:
			b.PackageTotal = in.Package.PricePaise * int64(nights)
		default:
			return nil, fmt.Errorf("pricing: unknown package price type %q", in.Package.PriceType)
		}
	}

	b.Subtotal = b.RoomTotal + b.ExtraGuestTotal + b.MealPlanTotal + b.PackageTotal
	b.Tax = divRoundHalfUp(b.Subtotal*in.TaxRateBps, domain.BpsScale)
	b.GrandTotal = b.Subtotal + b.Tax
	return b, nil
}
