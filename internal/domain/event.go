package domain

import (
	"context"
	"time"
)

// Event is a party or gathering whose guests share photos to a live wall.
// Events are created by organizer onboarding; this core only reads them.
// The slug is immutable once created, so lookups by slug are stable.
// swagger:model Event
type Event struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	OrganizerID string     `json:"organizer_id"`
	Date        *time.Time `json:"date,omitempty"`
	QRTargetURL string     `json:"qr_target_url"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// EventRepository defines read access to events.
type EventRepository interface {
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
}
