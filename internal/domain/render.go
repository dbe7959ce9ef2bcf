package domain

import (
	"context"
	"time"
)

// ViewKind is the top-level presentation state. There are exactly two.
type ViewKind string

const (
	// ViewWall is the raw photo grid.
	ViewWall ViewKind = "wall"
	// ViewStage is the ambient presentation shown between photo bursts.
	ViewStage ViewKind = "stage"
)

// EventSummary is the subset of Event safe to send across the trust boundary
// to an unauthenticated display. It deliberately omits the organizer ID.
type EventSummary struct {
	Slug string     `json:"slug"`
	Name string     `json:"name"`
	Date *time.Time `json:"date,omitempty"`
}

// WallPhoto is one item of the live wall.
type WallPhoto struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	MediaType MediaType `json:"media_type"`
	MissionID *string   `json:"mission_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// WallView is the live photo grid plus the approval watermark the client
// passes to its next refresh.
type WallView struct {
	Photos    []WallPhoto `json:"photos"`
	Watermark *time.Time  `json:"watermark,omitempty"`
}

// MusicView describes background music for lounge and hype modes. For the
// custom type only the external link is rendered; the audio is never proxied.
type MusicView struct {
	Type       MusicType `json:"type"`
	SpotifyURL string    `json:"spotify_url,omitempty"`
}

// LoungeView is the low-motion ambient surface.
type LoungeView struct {
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	ShowClock   bool       `json:"show_clock"`
	ShowQR      bool       `json:"show_qr"`
	QRTargetURL string     `json:"qr_target_url,omitempty"`
	Music       *MusicView `json:"music,omitempty"`
}

// HypeView is the high-energy surface. CountdownSeconds is nil when no
// countdown is configured; it floors at zero and reaching zero never
// auto-reverts the mode.
type HypeView struct {
	Title            string     `json:"title"`
	Message          string     `json:"message"`
	ShowClock        bool       `json:"show_clock"`
	ShowQR           bool       `json:"show_qr"`
	QRTargetURL      string     `json:"qr_target_url,omitempty"`
	Music            *MusicView `json:"music,omitempty"`
	CountdownSeconds *int64     `json:"countdown_seconds,omitempty"`
}

// CinemaView plays a video in place of the photo grid. While it is active
// the display client should stop polling the photo feed.
type CinemaView struct {
	VideoURL string `json:"video_url"`
}

// StageView is a tagged union: exactly one of Lounge, Hype, Cinema is set,
// matching Mode.
type StageView struct {
	Mode   StageMode   `json:"mode"`
	Lounge *LoungeView `json:"lounge,omitempty"`
	Hype   *HypeView   `json:"hype,omitempty"`
	Cinema *CinemaView `json:"cinema,omitempty"`
}

// StageControls carries the organizer's editing affordances: the raw partial
// config and the switchable modes. It is present in a RenderModel only for
// the organizer role; guest and projector models never contain it.
type StageControls struct {
	Config StageConfig `json:"config"`
	Modes  []StageMode `json:"modes"`
}

// RenderModel is the single model the display surface consumes.
// swagger:model RenderModel
type RenderModel struct {
	Event       EventSummary   `json:"event"`
	Viewer      ViewerContext  `json:"viewer"`
	View        ViewKind       `json:"view"`
	Wall        *WallView      `json:"wall,omitempty"`
	Stage       *StageView     `json:"stage,omitempty"`
	Controls    *StageControls `json:"controls,omitempty"`
	PollSeconds int            `json:"poll_seconds"`
}

// Renderer combines event, config, feed and viewer into a RenderModel.
// It never fails on absent optional fields; it fails with ErrInvalidState
// only on a mode outside the known enumeration.
type Renderer interface {
	Render(ctx context.Context, event *Event, cfg StageConfig, feed *FeedWindow, viewer ViewerContext, now time.Time) (*RenderModel, error)
}
