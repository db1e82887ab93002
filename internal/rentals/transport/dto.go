// Package transport defines the wire types for the rental API. Field names
// are snake_case to stay compatible with the existing dashboard frontend.
package transport

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest is a single rental entry submission.
type CreateEntryRequest struct {
	WeekStart string          `json:"week_start" validate:"required"`
	WeekEnd   string          `json:"week_end" validate:"required"`
	Therapist string          `json:"therapist" validate:"required"`
	Location  string          `json:"location"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Category  string          `json:"category" validate:"omitempty,oneof=room_rental marketing testing"`
	Notes     string          `json:"notes"`
}

// BulkEntry is one line of a bulk week submission. Lines without a therapist
// or amount are skipped rather than rejected.
type BulkEntry struct {
	Therapist string          `json:"therapist"`
	Location  string          `json:"location"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	Notes     string          `json:"notes"`
}

// CreateBulkRequest records a whole week of entries at once.
type CreateBulkRequest struct {
	WeekStart string      `json:"week_start" validate:"required"`
	WeekEnd   string      `json:"week_end" validate:"required"`
	Entries   []BulkEntry `json:"entries" validate:"required,min=1"`
}

// UpdateEntryRequest is the request body for updating an entry. All fields
// are optional; only the ones present are written.
type UpdateEntryRequest struct {
	WeekStart *string          `json:"week_start,omitempty"`
	WeekEnd   *string          `json:"week_end,omitempty"`
	Therapist *string          `json:"therapist,omitempty"`
	Location  *string          `json:"location,omitempty"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	Category  *string          `json:"category,omitempty" validate:"omitempty,oneof=room_rental marketing testing"`
	Notes     *string          `json:"notes,omitempty"`
}

// DeleteWeekRequest removes every entry of one week.
type DeleteWeekRequest struct {
	WeekStart string `json:"week_start" validate:"required"`
	WeekEnd   string `json:"week_end" validate:"required"`
}

// EntryResponse is the response body for a rental entry.
type EntryResponse struct {
	ID        uuid.UUID       `json:"id"`
	WeekStart string          `json:"week_start"`
	WeekEnd   string          `json:"week_end"`
	Therapist string          `json:"therapist"`
	Location  string          `json:"location"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	Notes     string          `json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// WeekResponse is a distinct week that has entries.
type WeekResponse struct {
	WeekStart string `json:"week_start"`
	WeekEnd   string `json:"week_end"`
}

// CreateEntryResponse acknowledges a created entry.
type CreateEntryResponse struct {
	OK bool      `json:"ok"`
	ID uuid.UUID `json:"id"`
}

// CreateBulkResponse acknowledges a bulk insert.
type CreateBulkResponse struct {
	OK    bool        `json:"ok"`
	IDs   []uuid.UUID `json:"ids"`
	Count int         `json:"count"`
}

// UpdateEntryResponse acknowledges an update and echoes the new state.
type UpdateEntryResponse struct {
	OK    bool          `json:"ok"`
	Entry EntryResponse `json:"entry"`
}

// DeleteEntryResponse acknowledges a deleted entry.
type DeleteEntryResponse struct {
	OK      bool      `json:"ok"`
	Deleted uuid.UUID `json:"deleted"`
}

// DeleteWeekResponse acknowledges a deleted week.
type DeleteWeekResponse struct {
	OK bool `json:"ok"`
}
