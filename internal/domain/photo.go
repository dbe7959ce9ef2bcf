package domain

import (
	"context"
	"time"
)

// MediaType is the kind of media a guest uploaded.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// ModerationStatus tracks moderation of an upload. Only approved media is
// eligible for the live wall. Status transitions happen in the moderation
// pipeline, never here.
type ModerationStatus string

const (
	StatusPending  ModerationStatus = "pending"
	StatusApproved ModerationStatus = "approved"
	StatusRejected ModerationStatus = "rejected"
)

// Photo is a guest upload. MissionID associates the upload with a mission
// checklist entry; it is passed through untouched.
// swagger:model Photo
type Photo struct {
	ID         string           `json:"id"`
	EventID    string           `json:"event_id"`
	URL        string           `json:"url"`
	MediaType  MediaType        `json:"media_type"`
	Status     ModerationStatus `json:"status"`
	MissionID  *string          `json:"mission_id,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	ApprovedAt *time.Time       `json:"approved_at,omitempty"`
}

// PhotoRepository reads bounded windows of approved media for one event.
// With after nil the window is ordered by creation time descending (ties
// broken by id descending). When after is non-nil, only photos approved
// strictly later are returned, ordered by approval time ascending: a window
// truncated by limit is then a clean prefix of the unseen backlog, so the
// watermark derived from it never skips a photo and a client polling with an
// increasing approval watermark sees each photo exactly once even when
// moderation lags the upload or approves in bulk.
type PhotoRepository interface {
	ListApproved(ctx context.Context, eventID string, after *time.Time, limit int) ([]*Photo, error)
}

// FeedWindow is one bounded slice of the approved feed plus the approval
// watermark the client should pass to its next refresh. Watermark is nil
// when the window is empty and the caller supplied no previous watermark.
type FeedWindow struct {
	Photos    []*Photo   `json:"photos"`
	Watermark *time.Time `json:"watermark,omitempty"`
}

// FeedService produces the deduplicated, incrementally-refreshing view of
// approved media for one event. Each call is a single bounded query; the
// display client owns the polling cadence.
type FeedService interface {
	// Snapshot returns the most recent approved photos up to limit
	// (clamped to the configured maximum; non-positive means the default).
	Snapshot(ctx context.Context, eventID string, limit int) (*FeedWindow, error)
	// Refresh returns only photos approved strictly after the watermark.
	// An empty window is a valid result meaning nothing new.
	Refresh(ctx context.Context, eventID string, after time.Time) (*FeedWindow, error)
}
