// Package memory is an in-process implementation of the repository
// interfaces, used by service tests and local development. BlockRange keeps
// the ledger's all-or-nothing semantics under a single mutex, so the
// concurrent-booking race behaves the same way it does against the Postgres
// unique constraint.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"resort-booking-backend/internal/calendar"
	"resort-booking-backend/internal/domain"
)

type Store struct {
	mu sync.Mutex

	categories map[int32]*domain.RoomCategory
	rooms      map[int32]*domain.Room
	blocks     map[string]*domain.DateBlock // key: roomID|date
	bookings   map[int32]*domain.Booking
	seasons    []domain.Season
	mealPlans  map[string]*domain.MealPlanPrice
	packages   map[int32]*domain.Package
	taxes      []domain.TaxConfig

	nextBookingID int32
	nextBlockID   int64
}

func NewStore() *Store {
	return &Store{
		categories: make(map[int32]*domain.RoomCategory),
		rooms:      make(map[int32]*domain.Room),
		blocks:     make(map[string]*domain.DateBlock),
		bookings:   make(map[int32]*domain.Booking),
		mealPlans:  make(map[string]*domain.MealPlanPrice),
	}
}

func blockKey(roomID int32, date time.Time) string {
	return fmt.Sprintf("%d|%s", roomID, calendar.FormatDate(date))
}

// Seed helpers

func (s *Store) AddCategory(c domain.RoomCategory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = &c
}

func (s *Store) AddRoom(r domain.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[r.ID] = &r
}

func (s *Store) AddSeason(season domain.Season) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seasons = append(s.seasons, season)
}

func (s *Store) AddMealPlan(mp domain.MealPlanPrice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mealPlans[mp.Code] = &mp
}

func (s *Store) AddPackage(p domain.Package) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.packages == nil {
		s.packages = make(map[int32]*domain.Package)
	}
	s.packages[p.ID] = &p
}

func (s *Store) AddTax(t domain.TaxConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.taxes = append(s.taxes, t)
}

// InventoryRepository

func (s *Store) GetActiveCategory(_ context.Context, id int32) (*domain.RoomCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok || !c.IsActive {
		return nil, fmt.Errorf("room category %d: %w", id, domain.ErrNotFound)
	}
	clone := *c
	return &clone, nil
}

func (s *Store) GetActiveCategoryBySlug(_ context.Context, slug string) (*domain.RoomCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.Slug == slug && c.IsActive {
			clone := *c
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("room category %q: %w", slug, domain.ErrNotFound)
}

func (s *Store) ListActiveCategories(_ context.Context) ([]domain.RoomCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.RoomCategory
	for _, c := range s.categories {
		if c.IsActive {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) ListActiveRoomsInCategory(_ context.Context, categoryID int32) ([]domain.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Room
	for _, r := range s.rooms {
		if r.CategoryID == categoryID && r.IsActive {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomNumber < out[j].RoomNumber })
	return out, nil
}

func (s *Store) GetRoom(_ context.Context, id int32) (*domain.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	if !ok {
		return nil, fmt.Errorf("room %d: %w", id, domain.ErrNotFound)
	}
	clone := *r
	return &clone, nil
}

// BlockRepository

func sameOwner(existing *domain.DateBlock, bookingID *int32) bool {
	if existing.BookingID == nil && bookingID == nil {
		return true
	}
	if existing.BookingID == nil || bookingID == nil {
		return false
	}
	return *existing.BookingID == *bookingID
}

func (s *Store) BlockRange(_ context.Context, roomID int32, checkIn, checkOut time.Time, reason domain.BlockReason, bookingID *int32, source, notes string) error {
	nights := calendar.EnumerateNights(checkIn, checkOut)
	if len(nights) == 0 {
		return fmt.Errorf("block range: %w", domain.ErrInvalidRange)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// All-or-nothing: reject the whole batch before touching anything.
	for _, night := range nights {
		if existing, ok := s.blocks[blockKey(roomID, night)]; ok && !sameOwner(existing, bookingID) {
			return fmt.Errorf("room %d on %s: %w", roomID, calendar.FormatDate(night), domain.ErrBlockConflict)
		}
	}
	for _, night := range nights {
		key := blockKey(roomID, night)
		if existing, ok := s.blocks[key]; ok {
			existing.Notes = notes
			existing.Source = source
			continue
		}
		s.nextBlockID++
		s.blocks[key] = &domain.DateBlock{
			ID:        s.nextBlockID,
			RoomID:    roomID,
			Date:      night,
			Reason:    reason,
			BookingID: bookingID,
			Source:    source,
			Notes:     notes,
			CreatedOn: time.Now(),
		}
	}
	return nil
}

func (s *Store) UnblockRange(_ context.Context, roomID int32, checkIn, checkOut time.Time) (int64, error) {
	nights := calendar.EnumerateNights(checkIn, checkOut)
	if len(nights) == 0 {
		return 0, fmt.Errorf("unblock range: %w", domain.ErrInvalidRange)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for _, night := range nights {
		key := blockKey(roomID, night)
		if existing, ok := s.blocks[key]; ok && existing.BookingID == nil {
			delete(s.blocks, key)
			removed++
		}
	}
	return removed, nil
}

func (s *Store) DeleteBlocksForBooking(_ context.Context, bookingID int32) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for key, b := range s.blocks {
		if b.BookingID != nil && *b.BookingID == bookingID {
			delete(s.blocks, key)
			removed++
		}
	}
	return removed, nil
}

func (s *Store) ListBlocks(_ context.Context, roomIDs []int32, start, end time.Time) ([]domain.DateBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[int32]bool, len(roomIDs))
	for _, id := range roomIDs {
		wanted[id] = true
	}
	var out []domain.DateBlock
	for _, b := range s.blocks {
		if wanted[b.RoomID] && calendar.RangesOverlap(b.Date, b.Date.AddDate(0, 0, 1), start, end) {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RoomID != out[j].RoomID {
			return out[i].RoomID < out[j].RoomID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (s *Store) CountBlocksForBooking(_ context.Context, bookingID int32) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, b := range s.blocks {
		if b.BookingID != nil && *b.BookingID == bookingID {
			count++
		}
	}
	return count, nil
}

// BookingRepository

func (s *Store) Create(_ context.Context, b *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextBookingID++
	b.ID = s.nextBookingID
	now := time.Now()
	b.CreatedOn = now
	b.UpdatedOn = now
	clone := *b
	s.bookings[b.ID] = &clone
	return nil
}

func (s *Store) GetByID(_ context.Context, id int32) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %d: %w", id, domain.ErrNotFound)
	}
	clone := *b
	return &clone, nil
}

func (s *Store) Update(_ context.Context, b *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[b.ID]; !ok {
		return fmt.Errorf("booking %d: %w", b.ID, domain.ErrNotFound)
	}
	b.UpdatedOn = time.Now()
	clone := *b
	s.bookings[b.ID] = &clone
	return nil
}

func (s *Store) ListByStatus(_ context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Booking
	for _, b := range s.bookings {
		if b.Status == status {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ListHoldingInventory(_ context.Context) ([]domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Booking
	for _, b := range s.bookings {
		if b.Status.HoldsInventory() {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// RateRepository

func (s *Store) GetSeasonForDate(_ context.Context, date time.Time) (*domain.Season, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var best *domain.Season
	for i := range s.seasons {
		season := &s.seasons[i]
		if !season.IsActive || !calendar.ContainsDate(season.StartDate, season.EndDate, date) {
			continue
		}
		if best == nil ||
			season.StartDate.After(best.StartDate) ||
			(season.StartDate.Equal(best.StartDate) && season.ID < best.ID) {
			best = season
		}
	}
	if best == nil {
		return nil, nil
	}
	clone := *best
	return &clone, nil
}

func (s *Store) GetMealPlan(_ context.Context, code string) (*domain.MealPlanPrice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mp, ok := s.mealPlans[strings.ToUpper(code)]
	if !ok || !mp.IsActive {
		return nil, fmt.Errorf("meal plan %q: %w", code, domain.ErrNotFound)
	}
	clone := *mp
	return &clone, nil
}

func (s *Store) GetPackage(_ context.Context, id int32) (*domain.Package, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.packages[id]
	if !ok || !p.IsActive {
		return nil, fmt.Errorf("package %d: %w", id, domain.ErrNotFound)
	}
	clone := *p
	return &clone, nil
}

func (s *Store) EffectiveTaxRateBps(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, t := range s.taxes {
		if t.IsActive {
			total += t.PercentBps
		}
	}
	return total, nil
}
