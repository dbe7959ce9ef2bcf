package domain

import (
	"context"
	"time"
)

// StageMode selects the ambient presentation shown between photo bursts.
type StageMode string

const (
	// ModeLounge is a low-motion background with optional clock and QR prompt.
	ModeLounge StageMode = "lounge"
	// ModeHype adds a countdown surface for high-energy moments.
	ModeHype StageMode = "hype"
	// ModeCinema plays a video in place of the photo grid.
	ModeCinema StageMode = "cinema"
)

// Valid reports whether the mode is one of the known enumeration values.
// Unknown tags come only from untrusted or corrupt input and must fail
// closed at render time.
func (m StageMode) Valid() bool {
	switch m {
	case ModeLounge, ModeHype, ModeCinema:
		return true
	}
	return false
}

// MusicType selects the background music source for lounge and hype modes.
type MusicType string

const (
	MusicAmbient  MusicType = "ambient"
	MusicPlaylist MusicType = "playlist"
	// MusicCustom renders an external link/embed (e.g. Spotify); the audio
	// itself is never fetched or proxied.
	MusicCustom MusicType = "custom"
)

// Valid reports whether the music type is a known enumeration value.
func (m MusicType) Valid() bool {
	switch m {
	case MusicAmbient, MusicPlaylist, MusicCustom:
		return true
	}
	return false
}

// StageConfig is the presentation configuration of one event. It is a
// partial document: every field may be absent, and absent fields resolve to
// a defined default at render time. The same type serves as the stored
// document and as a merge patch.
//
// ActivatedAt is maintained by the stage service when a write turns the
// stage on or switches its mode; clients cannot set it.
// swagger:model StageConfig
type StageConfig struct {
	IsActive         *bool      `json:"is_active,omitempty"`
	Mode             *StageMode `json:"mode,omitempty"`
	Title            *string    `json:"title,omitempty"`
	Message          *string    `json:"message,omitempty"`
	ShowClock        *bool      `json:"show_clock,omitempty"`
	ShowQR           *bool      `json:"show_qr,omitempty"`
	MusicEnabled     *bool      `json:"music_enabled,omitempty"`
	MusicType        *MusicType `json:"music_type,omitempty"`
	SpotifyURL       *string    `json:"spotify_url,omitempty"`
	CountdownMinutes *int       `json:"countdown_minutes,omitempty"`
	CountdownTarget  *time.Time `json:"countdown_target,omitempty"`
	VideoURL         *string    `json:"video_url,omitempty"`
	ActivatedAt      *time.Time `json:"activated_at,omitempty"`
}

// Merge overlays patch onto current, field by field: a non-nil patch field
// replaces the current value, a nil patch field leaves it untouched. Neither
// argument is mutated. This is the only merge semantics in the system; the
// surrounding read-merge-write carries a documented last-write-wins race
// (two concurrent patches race on whole snapshots, not on fields).
func Merge(current, patch StageConfig) StageConfig {
	out := current
	if patch.IsActive != nil {
		out.IsActive = patch.IsActive
	}
	if patch.Mode != nil {
		out.Mode = patch.Mode
	}
	if patch.Title != nil {
		out.Title = patch.Title
	}
	if patch.Message != nil {
		out.Message = patch.Message
	}
	if patch.ShowClock != nil {
		out.ShowClock = patch.ShowClock
	}
	if patch.ShowQR != nil {
		out.ShowQR = patch.ShowQR
	}
	if patch.MusicEnabled != nil {
		out.MusicEnabled = patch.MusicEnabled
	}
	if patch.MusicType != nil {
		out.MusicType = patch.MusicType
	}
	if patch.SpotifyURL != nil {
		out.SpotifyURL = patch.SpotifyURL
	}
	if patch.CountdownMinutes != nil {
		out.CountdownMinutes = patch.CountdownMinutes
	}
	if patch.CountdownTarget != nil {
		out.CountdownTarget = patch.CountdownTarget
	}
	if patch.VideoURL != nil {
		out.VideoURL = patch.VideoURL
	}
	if patch.ActivatedAt != nil {
		out.ActivatedAt = patch.ActivatedAt
	}
	return out
}

// Active resolves the is_active default (false when absent).
func (c StageConfig) Active() bool {
	return c.IsActive != nil && *c.IsActive
}

// ResolvedMode resolves the mode default (lounge when absent).
func (c StageConfig) ResolvedMode() StageMode {
	if c.Mode == nil {
		return ModeLounge
	}
	return *c.Mode
}

// StageConfigRepository stores the whole partial document, one per event.
// Read reports found=false when no document exists yet, which is not an
// error. Write persists the whole document atomically at single-document
// granularity; a failed write leaves the previous document intact.
type StageConfigRepository interface {
	Read(ctx context.Context, eventID string) (StageConfig, bool, error)
	Write(ctx context.Context, eventID string, cfg StageConfig) error
}

// StageService is the single mutation path for stage configs. Mutations are
// accepted only from the event's organizer. eventRef may be an event id or
// its slug. Read takes the resolved event so callers that already looked it
// up do not pay for a second lookup on every poll.
type StageService interface {
	// Read returns the current document, or the all-defaults (zero) document
	// when none exists. A storage failure on read degrades to defaults.
	Read(ctx context.Context, event *Event) (StageConfig, error)
	// MergePatch overlays patch onto the current document, persists the
	// merged whole, and returns it. Unknown enum values in the patch are
	// rejected with ErrInvalidState before the merge.
	MergePatch(ctx context.Context, eventRef, actorID string, patch StageConfig) (StageConfig, error)
	// SetActive flips only is_active, preserving every other field.
	SetActive(ctx context.Context, eventRef, actorID string, isActive bool) (StageConfig, error)
}
