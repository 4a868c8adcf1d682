package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resort-booking-backend/internal/calendar"
	"resort-booking-backend/internal/domain"
	"resort-booking-backend/internal/logger"
	"resort-booking-backend/internal/pricing"
	"resort-booking-backend/internal/repository"
)

type bookingService struct {
	bookingRepo   repository.BookingRepository
	blockRepo     repository.BlockRepository
	inventoryRepo repository.InventoryRepository
	rateRepo      repository.RateRepository
	availability  AvailabilityService

	// maxAssignRetries bounds the retry-on-conflict loop when a candidate
	// room loses the blocking race to a concurrent writer.
	maxAssignRetries int
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	blockRepo repository.BlockRepository,
	inventoryRepo repository.InventoryRepository,
	rateRepo repository.RateRepository,
	availability AvailabilityService,
	maxAssignRetries int,
) BookingService {
	if maxAssignRetries <= 0 {
		maxAssignRetries = 3
	}
	return &bookingService{
		bookingRepo:      bookingRepo,
		blockRepo:        blockRepo,
		inventoryRepo:    inventoryRepo,
		rateRepo:         rateRepo,
		availability:     availability,
		maxAssignRetries: maxAssignRetries,
	}
}

// resolveRates gathers the pricing inputs the pure engine needs: season
// multiplier from the check-in date (one multiplier for the whole stay, not a
// per-night blend), meal plan, package and effective tax rate.
func (s *bookingService) resolveRates(ctx context.Context, category *domain.RoomCategory, checkIn time.Time, mealPlanCode string, packageID *int32, guests int) (pricing.Inputs, error) {
	in := pricing.Inputs{Category: category}

	season, err := s.rateRepo.GetSeasonForDate(ctx, checkIn)
	if err != nil {
		return in, err
	}
	in.SeasonMultiplierBps = domain.BpsScale
	if season != nil {
		in.SeasonMultiplierBps = season.MultiplierBps
	}

	if mealPlanCode != "" && !strings.EqualFold(mealPlanCode, domain.MealPlanRoomOnly) {
		mp, err := s.rateRepo.GetMealPlan(ctx, strings.ToUpper(mealPlanCode))
		if err != nil {
			return in, err
		}
		in.MealPlan = mp
	}

	if packageID != nil {
		pkg, err := s.rateRepo.GetPackage(ctx, *packageID)
		if err != nil {
			return in, err
		}
		ve := domain.NewValidationError()
		if guests < pkg.MinGuests || (pkg.MaxGuests > 0 && guests > pkg.MaxGuests) {
			ve.Add("package_id", fmt.Sprintf("package %q requires %d-%d guests", pkg.Name, pkg.MinGuests, pkg.MaxGuests))
		}
		if pkg.ValidFrom != nil && pkg.ValidTo != nil && !calendar.ContainsDate(*pkg.ValidFrom, *pkg.ValidTo, checkIn) {
			ve.Add("package_id", fmt.Sprintf("package %q is not valid for the selected dates", pkg.Name))
		}
		if ve.HasErrors() {
			return in, ve
		}
		in.Package = pkg
	}

	in.TaxRateBps, err = s.rateRepo.EffectiveTaxRateBps(ctx)
	if err != nil {
		return in, err
	}
	return in, nil
}

func (s *bookingService) Quote(ctx context.Context, in QuoteInput) (*pricing.Breakdown, error) {
	checkIn, checkOut, err := parseStay(in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, err
	}
	category, err := s.inventoryRepo.GetActiveCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if err := validateGuests(category, in.NumAdults, in.NumChildren); err != nil {
		return nil, err
	}
	rates, err := s.resolveRates(ctx, category, checkIn, in.MealPlanCode, in.PackageID, in.NumAdults+in.NumChildren)
	if err != nil {
		return nil, err
	}
	rates.CheckIn = calendar.FormatDate(checkIn)
	rates.CheckOut = calendar.FormatDate(checkOut)
	rates.NumAdults = in.NumAdults
	rates.NumChildren = in.NumChildren
	return pricing.Compute(rates)
}

func parseStay(checkInStr, checkOutStr string) (time.Time, time.Time, error) {
	checkIn, err := calendar.ParseDate(checkInStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("check_in: %w", domain.ErrInvalidRange)
	}
	checkOut, err := calendar.ParseDate(checkOutStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("check_out: %w", domain.ErrInvalidRange)
	}
	if calendar.NightsBetween(checkIn, checkOut) <= 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("stay must cover at least one night: %w", domain.ErrInvalidRange)
	}
	return checkIn, checkOut, nil
}

func validateGuests(category *domain.RoomCategory, adults, children int) error {
	ve := domain.NewValidationError()
	if adults < 1 {
		ve.Add("num_adults", "at least one adult is required")
	}
	if adults > category.MaxAdults {
		ve.Add("num_adults", fmt.Sprintf("category %q allows at most %d adults", category.Name, category.MaxAdults))
	}
	if children < 0 {
		ve.Add("num_children", "cannot be negative")
	}
	if children > category.MaxChildren {
		ve.Add("num_children", fmt.Sprintf("category %q allows at most %d children", category.Name, category.MaxChildren))
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

func validateGuestIdentity(in CreateBookingInput) error {
	ve := domain.NewValidationError()
	if strings.TrimSpace(in.GuestName) == "" {
		ve.Add("guest_name", "required")
	}
	if strings.TrimSpace(in.GuestEmail) == "" {
		ve.Add("guest_email", "required")
	}
	if in.DiscountPaise < 0 {
		ve.Add("discount_paise", "cannot be negative")
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

func (s *bookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*domain.Booking, error) {
	if err := validateGuestIdentity(in); err != nil {
		return nil, err
	}
	checkIn, checkOut, err := parseStay(in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, err
	}
	category, err := s.inventoryRepo.GetActiveCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if err := validateGuests(category, in.NumAdults, in.NumChildren); err != nil {
		return nil, err
	}

	rates, err := s.resolveRates(ctx, category, checkIn, in.MealPlanCode, in.PackageID, in.NumAdults+in.NumChildren)
	if err != nil {
		return nil, err
	}
	rates.CheckIn = calendar.FormatDate(checkIn)
	rates.CheckOut = calendar.FormatDate(checkOut)
	rates.NumAdults = in.NumAdults
	rates.NumChildren = in.NumChildren
	breakdown, err := pricing.Compute(rates)
	if err != nil {
		return nil, err
	}
	if in.DiscountPaise > breakdown.GrandTotal {
		ve := domain.NewValidationError()
		ve.Add("discount_paise", "exceeds the grand total")
		return nil, ve
	}

	mealPlanCode := strings.ToUpper(in.MealPlanCode)
	if mealPlanCode == "" {
		mealPlanCode = domain.MealPlanRoomOnly
	}
	source := in.Source
	if source == "" {
		source = domain.BlockSourceGuest
	}
	booking := &domain.Booking{
		Reference:     uuid.NewString(),
		GuestName:     in.GuestName,
		GuestEmail:    in.GuestEmail,
		GuestPhone:    in.GuestPhone,
		CategoryID:    in.CategoryID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		NumAdults:     in.NumAdults,
		NumChildren:   in.NumChildren,
		MealPlanCode:  mealPlanCode,
		PackageID:     in.PackageID,
		IsEnquiryOnly: in.IsEnquiryOnly,
		Source:        source,
		Notes:         in.Notes,
	}
	applyBreakdown(booking, breakdown, in.DiscountPaise)

	// Enquiries never hold a room and never produce date blocks.
	if in.IsEnquiryOnly {
		booking.Status = domain.StatusNewEnquiry
		if err := s.bookingRepo.Create(ctx, booking); err != nil {
			return nil, err
		}
		logger.Info("enquiry created", "booking_id", booking.ID, "category_id", booking.CategoryID)
		return booking, nil
	}

	candidates, err := s.availability.FindAvailableRooms(ctx, in.CategoryID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		// The booking row is not created: the guest sees an explicit
		// unavailability message, never a confirmed-looking booking.
		return nil, fmt.Errorf("category %d for %s to %s: %w",
			in.CategoryID, in.CheckIn, in.CheckOut, domain.ErrNoAvailability)
	}

	booking.Status = domain.StatusQuoteSent
	if in.Confirm {
		booking.Status = domain.StatusBookingConfirmed
	}
	booking.RoomID = &candidates[0].ID
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}
	if err := s.blockCandidates(ctx, booking, candidates, source); err != nil {
		return nil, err
	}
	logger.Info("booking created", "booking_id", booking.ID, "room_id", *booking.RoomID,
		"status", booking.Status, "grand_total_paise", booking.GrandTotalPaise)
	return booking, nil
}

func applyBreakdown(b *domain.Booking, bd *pricing.Breakdown, discount int64) {
	b.RoomTotalPaise = bd.RoomTotal
	b.ExtraGuestPaise = bd.ExtraGuestTotal
	b.MealPlanPaise = bd.MealPlanTotal
	b.PackagePaise = bd.PackageTotal
	b.SubtotalPaise = bd.Subtotal
	b.TaxPaise = bd.Tax
	b.SeasonMultiplierBps = bd.SeasonMultiplierBps
	// Discount is an externally supplied adjustment applied after the pure
	// computation, never inside it.
	b.DiscountPaise = discount
	b.GrandTotalPaise = bd.GrandTotal - discount
}

// blockCandidates walks the ordered candidate rooms trying the ledger's
// atomic insert against each, re-pointing the persisted booking at the next
// room whenever a candidate loses the race. If every attempt conflicts, the
// booking row stays behind without an inventory hold; that inconsistency is
// logged for reconciliation and surfaced to the caller, never presented as a
// confirmed booking.
func (s *bookingService) blockCandidates(ctx context.Context, booking *domain.Booking, candidates []domain.Room, source string) error {
	attempts := len(candidates)
	if attempts > s.maxAssignRetries {
		attempts = s.maxAssignRetries
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		room := candidates[i]
		if booking.RoomID == nil || *booking.RoomID != room.ID {
			booking.RoomID = &room.ID
			if err := s.bookingRepo.Update(ctx, booking); err != nil {
				return err
			}
		}
		err := s.blockRepo.BlockRange(ctx, room.ID, booking.CheckIn, booking.CheckOut,
			domain.BlockReasonBooking, &booking.ID, source, "")
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrBlockConflict) {
			return err
		}
		lastErr = err
		logger.Warn("lost blocking race, retrying next room",
			"booking_id", booking.ID, "room_id", room.ID, "attempt", i+1)
	}
	logger.Error("booking persisted without inventory hold, needs reconciliation",
		"booking_id", booking.ID, "category_id", booking.CategoryID,
		"check_in", calendar.FormatDate(booking.CheckIn), "check_out", calendar.FormatDate(booking.CheckOut))

	// Every candidate lost its race. If a fresh check shows the category sold
	// out, the guest should see unavailability rather than a raw conflict.
	remaining, checkErr := s.availability.FindAvailableRooms(ctx, booking.CategoryID, booking.CheckIn, booking.CheckOut)
	if checkErr == nil && len(remaining) == 0 {
		return fmt.Errorf("booking %d: %w", booking.ID, domain.ErrNoAvailability)
	}
	if lastErr != nil {
		return fmt.Errorf("booking %d: %w", booking.ID, lastErr)
	}
	return fmt.Errorf("booking %d: %w", booking.ID, domain.ErrBlockConflict)
}

func (s *bookingService) ConvertEnquiry(ctx context.Context, id int32) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.Status.CanTransitionTo(domain.StatusQuoteSent) {
		return nil, fmt.Errorf("%s -> %s: %w", booking.Status, domain.StatusQuoteSent, domain.ErrInvalidStatusTransition)
	}
	// No room assignment here: that only happens at confirmation, against a
	// fresh availability check.
	booking.Status = domain.StatusQuoteSent
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	logger.Info("enquiry converted", "booking_id", booking.ID)
	return booking, nil
}

func (s *bookingService) ConfirmBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.Status.CanTransitionTo(domain.StatusBookingConfirmed) {
		return nil, fmt.Errorf("%s -> %s: %w", booking.Status, domain.StatusBookingConfirmed, domain.ErrInvalidStatusTransition)
	}

	held, err := s.blockRepo.CountBlocksForBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	nights := calendar.NightsBetween(booking.CheckIn, booking.CheckOut)
	if booking.RoomID == nil || held != nights {
		// Stale quote-time results are never reused: re-run availability at
		// confirmation time.
		candidates, err := s.availability.FindAvailableRooms(ctx, booking.CategoryID, booking.CheckIn, booking.CheckOut)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			return nil, fmt.Errorf("booking %d: %w", booking.ID, domain.ErrNoAvailability)
		}
		if err := s.blockCandidates(ctx, booking, candidates, booking.Source); err != nil {
			return nil, err
		}
	}

	booking.Status = domain.StatusBookingConfirmed
	booking.IsEnquiryOnly = false
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	logger.Info("booking confirmed", "booking_id", booking.ID, "room_id", *booking.RoomID)
	return booking, nil
}

func (s *bookingService) TransitionStatus(ctx context.Context, id int32, target domain.BookingStatus) (*domain.Booking, error) {
	switch target {
	case domain.StatusCancelled:
		return s.CancelBooking(ctx, id)
	case domain.StatusBookingConfirmed:
		return s.ConfirmBooking(ctx, id)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%s -> %s: %w", booking.Status, target, domain.ErrInvalidStatusTransition)
	}
	booking.Status = target
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	if target == domain.StatusNoShow {
		// No-shows release inventory the same way cancellations do.
		removed, err := s.blockRepo.DeleteBlocksForBooking(ctx, booking.ID)
		if err != nil {
			return nil, err
		}
		logger.Info("no-show recorded, inventory released", "booking_id", booking.ID, "blocks_removed", removed)
	}
	return booking, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.Status.CanTransitionTo(domain.StatusCancelled) {
		return nil, fmt.Errorf("%s -> %s: %w", booking.Status, domain.StatusCancelled, domain.ErrInvalidStatusTransition)
	}
	booking.Status = domain.StatusCancelled
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	removed, err := s.blockRepo.DeleteBlocksForBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	logger.Info("booking cancelled", "booking_id", booking.ID, "blocks_removed", removed)
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

// ImportChannelBlocks resolves a channel-manager reservation to a concrete
// room via the same availability and blocking path guest bookings use.
func (s *bookingService) ImportChannelBlocks(ctx context.Context, categorySlug, guestName, checkIn, checkOut string) (*domain.Booking, error) {
	category, err := s.inventoryRepo.GetActiveCategoryBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}
	if guestName == "" {
		guestName = "Channel reservation"
	}
	return s.CreateBooking(ctx, CreateBookingInput{
		GuestName:    guestName,
		GuestEmail:   "channel@import.invalid",
		CategoryID:   category.ID,
		CheckIn:      checkIn,
		CheckOut:     checkOut,
		NumAdults:    category.BaseOccupancy,
		MealPlanCode: domain.MealPlanRoomOnly,
		Confirm:      true,
		Source:       domain.BlockSourceChannelManager,
	})
}
