package domain

import "time"

// BpsScale is the denominator for basis-point fields: a season multiplier of
// 1.30 is stored as 13000, a tax rate of 12% as 1200. Keeping multipliers and
// percentages integral lets the pricing engine stay in exact integer
// arithmetic through every additive stage.
const BpsScale = 10000

// Season is a named date interval whose multiplier scales the base nightly
// price. Intervals are inclusive on both ends and may overlap; the rate
// repository resolves overlaps deterministically (latest start date wins,
// then lowest id).
type Season struct {
	ID            int32     `json:"id"`
	Name          string    `json:"name"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	MultiplierBps int64     `json:"multiplier_bps"`
	IsActive      bool      `json:"is_active"`
}

// Meal plan codes follow the Indian hotel plan taxonomy.
const (
	MealPlanRoomOnly  = "EP"  // European Plan: room only
	MealPlanBreakfast = "CP"  // Continental Plan: breakfast
	MealPlanHalfBoard = "MAP" // Modified American Plan: breakfast + one meal
	MealPlanFullBoard = "AP"  // American Plan: all meals
)

// MealPlanPrice is the nightly per-guest add-on for a meal plan code.
type MealPlanPrice struct {
	ID         int32  `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	AdultPaise int64  `json:"adult_paise"`
	ChildPaise int64  `json:"child_paise"`
	IsActive   bool   `json:"is_active"`
}

type PackagePriceType string

const (
	PackagePriceFixed    PackagePriceType = "fixed"
	PackagePricePerNight PackagePriceType = "per_night"
)

// Package is an optional add-on priced either as a fixed total or per night,
// with guest-count eligibility bounds and an optional validity window.
type Package struct {
	ID         int32            `json:"id"`
	Name       string           `json:"name"`
	PriceType  PackagePriceType `json:"price_type"`
	PricePaise int64            `json:"price_paise"`
	MinGuests  int              `json:"min_guests"`
	MaxGuests  int              `json:"max_guests"`
	ValidFrom  *time.Time       `json:"valid_from,omitempty"`
	ValidTo    *time.Time       `json:"valid_to,omitempty"`
	IsActive   bool             `json:"is_active"`
}

// TaxConfig is one named percentage rate; all active rates sum into the
// effective rate applied to the subtotal.
type TaxConfig struct {
	ID         int32  `json:"id"`
	Name       string `json:"name"`
	PercentBps int64  `json:"percent_bps"`
	IsActive   bool   `json:"is_active"`
}
