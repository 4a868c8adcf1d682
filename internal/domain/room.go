package domain

import "time"

// RoomCategory is a class of interchangeable rooms sharing one price
// schedule. All monetary fields are in paise (INR minor units), mirroring the
// paise snapshot fields on Booking.
type RoomCategory struct {
	ID                  int32     `json:"id"`
	Name                string    `json:"name"`
	Slug                string    `json:"slug"`
	BasePricePaise      int64     `json:"base_price_paise"`
	ExtraAdultPaise     int64     `json:"extra_adult_paise"`
	ExtraChildPaise     int64     `json:"extra_child_paise"`
	BaseOccupancy       int       `json:"base_occupancy"`
	MaxAdults           int       `json:"max_adults"`
	MaxChildren         int       `json:"max_children"`
	TotalRooms          int       `json:"total_rooms"`
	IsActive            bool      `json:"is_active"`
	DisplayOrder        int       `json:"display_order"`
	CreatedOn           time.Time `json:"created_on"`
	UpdatedOn           time.Time `json:"updated_on"`
}

// Room is one physical unit belonging to exactly one category. The category
// reference is fixed at creation; reassignment is an administrative concern
// handled outside this core.
type Room struct {
	ID         int32     `json:"id"`
	CategoryID int32     `json:"category_id"`
	RoomNumber string    `json:"room_number"`
	IsActive   bool      `json:"is_active"`
	CreatedOn  time.Time `json:"created_on"`
	UpdatedOn  time.Time `json:"updated_on"`
}
