package services

import (
	"context"
	"fmt"
	"time"

	"socialwall/internal/domain"
)

// Poll hints handed to the display client. Projectors poll every 5-15s for
// the wall; ambient modes change less often, and cinema pauses the photo
// feed entirely, so only the stage state needs an occasional re-check.
const (
	wallPollSeconds   = 10
	stagePollSeconds  = 15
	cinemaPollSeconds = 30
)

type renderService struct{}

// NewRenderer returns the presentation renderer. It is stateless and pure
// aside from the caller-supplied clock.
func NewRenderer() domain.Renderer {
	return &renderService{}
}

func (s *renderService) Render(ctx context.Context, event *domain.Event, cfg domain.StageConfig, feed *domain.FeedWindow, viewer domain.ViewerContext, now time.Time) (*domain.RenderModel, error) {
	model := &domain.RenderModel{
		Event: domain.EventSummary{
			Slug: event.Slug,
			Name: event.Name,
			Date: event.Date,
		},
		Viewer: viewer,
	}

	if !cfg.Active() {
		// Live wall: the raw photo grid. Mode is irrelevant while the
		// stage is off.
		model.View = domain.ViewWall
		model.Wall = wallView(feed)
		model.PollSeconds = wallPollSeconds
	} else {
		stage, poll, err := stageView(event, cfg, now)
		if err != nil {
			return nil, err
		}
		model.View = domain.ViewStage
		model.Stage = stage
		model.PollSeconds = poll
	}

	// Control affordances exist in the model only for the organizer. This
	// is a data-shape guarantee: the model crosses a trust boundary to an
	// unauthenticated display, so hiding in the UI is not enough.
	if viewer.Role == domain.RoleOrganizer {
		model.Controls = &domain.StageControls{
			Config: cfg,
			Modes:  []domain.StageMode{domain.ModeLounge, domain.ModeHype, domain.ModeCinema},
		}
	}
	return model, nil
}

func wallView(feed *domain.FeedWindow) *domain.WallView {
	view := &domain.WallView{Photos: []domain.WallPhoto{}}
	if feed == nil {
		return view
	}
	view.Watermark = feed.Watermark
	for _, p := range feed.Photos {
		view.Photos = append(view.Photos, domain.WallPhoto{
			ID:        p.ID,
			URL:       p.URL,
			MediaType: p.MediaType,
			MissionID: p.MissionID,
			CreatedAt: p.CreatedAt,
		})
	}
	return view
}

func stageView(event *domain.Event, cfg domain.StageConfig, now time.Time) (*domain.StageView, int, error) {
	mode := cfg.ResolvedMode()
	if !mode.Valid() {
		// Fail closed: guessing a mode could put the wrong content in
		// front of a live audience.
		return nil, 0, fmt.Errorf("%w: unknown mode %q", domain.ErrInvalidState, mode)
	}

	title := strVal(cfg.Title)
	message := strVal(cfg.Message)
	showClock := boolVal(cfg.ShowClock, false)
	// The QR prompt is how guests reach the upload page; default on.
	showQR := boolVal(cfg.ShowQR, true)
	qrURL := ""
	if showQR {
		qrURL = event.QRTargetURL
	}
	music := musicView(cfg)

	switch mode {
	case domain.ModeLounge:
		return &domain.StageView{
			Mode: mode,
			Lounge: &domain.LoungeView{
				Title:       title,
				Message:     message,
				ShowClock:   showClock,
				ShowQR:      showQR,
				QRTargetURL: qrURL,
				Music:       music,
			},
		}, stagePollSeconds, nil
	case domain.ModeHype:
		return &domain.StageView{
			Mode: mode,
			Hype: &domain.HypeView{
				Title:            title,
				Message:          message,
				ShowClock:        showClock,
				ShowQR:           showQR,
				QRTargetURL:      qrURL,
				Music:            music,
				CountdownSeconds: countdownSeconds(cfg, now),
			},
		}, stagePollSeconds, nil
	default: // cinema
		return &domain.StageView{
			Mode:   mode,
			Cinema: &domain.CinemaView{VideoURL: strVal(cfg.VideoURL)},
		}, cinemaPollSeconds, nil
	}
}

// countdownSeconds computes the hype countdown. An absolute target is
// authoritative when present; otherwise a configured duration runs from the
// most recent activation. The value floors at zero and zero never reverts
// the mode, that is an explicit organizer action.
func countdownSeconds(cfg domain.StageConfig, now time.Time) *int64 {
	var end time.Time
	switch {
	case cfg.CountdownTarget != nil:
		end = *cfg.CountdownTarget
	case cfg.CountdownMinutes != nil && cfg.ActivatedAt != nil:
		end = cfg.ActivatedAt.Add(time.Duration(*cfg.CountdownMinutes) * time.Minute)
	default:
		return nil
	}
	remaining := end.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	secs := int64(remaining / time.Second)
	return &secs
}

func musicView(cfg domain.StageConfig) *domain.MusicView {
	if !boolVal(cfg.MusicEnabled, false) {
		return nil
	}
	mt := domain.MusicAmbient
	if cfg.MusicType != nil && cfg.MusicType.Valid() {
		mt = *cfg.MusicType
	}
	view := &domain.MusicView{Type: mt}
	if mt == domain.MusicCustom {
		// Link only; the audio is never fetched or proxied.
		view.SpotifyURL = strVal(cfg.SpotifyURL)
	}
	return view
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func boolVal(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
