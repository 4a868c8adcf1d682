package domain

import "time"

type BlockReason string

const (
	BlockReasonBooking     BlockReason = "booking"
	BlockReasonMaintenance BlockReason = "maintenance"
	BlockReasonPrivate     BlockReason = "private"
	BlockReasonOther       BlockReason = "other"
)

// Valid reports whether r is a known block reason.
func (r BlockReason) Valid() bool {
	switch r {
	case BlockReasonBooking, BlockReasonMaintenance, BlockReasonPrivate, BlockReasonOther:
		return true
	}
	return false
}

// Block sources distinguish who produced a block for audit purposes.
const (
	BlockSourceGuest          = "guest"
	BlockSourceAdmin          = "admin"
	BlockSourceChannelManager = "channel_manager"
)

// DateBlock reserves one (room, calendar date) pair. The ledger enforces
// uniqueness on the pair; a block with a booking id is system-owned and is
// only removed through that booking's lifecycle, while blocks without one
// are administrator-owned and freely removable.
type DateBlock struct {
	ID        int64       `json:"id"`
	RoomID    int32       `json:"room_id"`
	Date      time.Time   `json:"date"`
	Reason    BlockReason `json:"reason"`
	BookingID *int32      `json:"booking_id,omitempty"`
	Source    string      `json:"source"`
	Notes     string      `json:"notes"`
	CreatedOn time.Time   `json:"created_on"`
}
