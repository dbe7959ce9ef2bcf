package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"socialwall/internal/domain"
)

type stageConfigRepository struct {
	DB *sql.DB
}

func NewStageConfigRepository(db *sql.DB) domain.StageConfigRepository {
	return &stageConfigRepository{
		DB: db,
	}
}

// Read returns the stored partial document for the event. Absent fields stay
// NULL in the row and come back as nil pointers; a missing row means no
// document exists yet, which is not an error.
func (r *stageConfigRepository) Read(ctx context.Context, eventID string) (domain.StageConfig, bool, error) {
	query := `
		SELECT is_active, mode, title, message, show_clock, show_qr,
		       music_enabled, music_type, spotify_url,
		       countdown_minutes, countdown_target, video_url, activated_at
		FROM stage_configs
		WHERE event_id = $1
	`
	var (
		isActive         sql.NullBool
		mode             sql.NullString
		title            sql.NullString
		message          sql.NullString
		showClock        sql.NullBool
		showQR           sql.NullBool
		musicEnabled     sql.NullBool
		musicType        sql.NullString
		spotifyURL       sql.NullString
		countdownMinutes sql.NullInt64
		countdownTarget  sql.NullTime
		videoURL         sql.NullString
		activatedAt      sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, query, eventID).Scan(
		&isActive, &mode, &title, &message, &showClock, &showQR,
		&musicEnabled, &musicType, &spotifyURL,
		&countdownMinutes, &countdownTarget, &videoURL, &activatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.StageConfig{}, false, nil
		}
		return domain.StageConfig{}, false, err
	}

	cfg := domain.StageConfig{}
	if isActive.Valid {
		cfg.IsActive = &isActive.Bool
	}
	if mode.Valid {
		m := domain.StageMode(mode.String)
		cfg.Mode = &m
	}
	if title.Valid {
		cfg.Title = &title.String
	}
	if message.Valid {
		cfg.Message = &message.String
	}
	if showClock.Valid {
		cfg.ShowClock = &showClock.Bool
	}
	if showQR.Valid {
		cfg.ShowQR = &showQR.Bool
	}
	if musicEnabled.Valid {
		cfg.MusicEnabled = &musicEnabled.Bool
	}
	if musicType.Valid {
		m := domain.MusicType(musicType.String)
		cfg.MusicType = &m
	}
	if spotifyURL.Valid {
		cfg.SpotifyURL = &spotifyURL.String
	}
	if countdownMinutes.Valid {
		m := int(countdownMinutes.Int64)
		cfg.CountdownMinutes = &m
	}
	if countdownTarget.Valid {
		cfg.CountdownTarget = &countdownTarget.Time
	}
	if videoURL.Valid {
		cfg.VideoURL = &videoURL.String
	}
	if activatedAt.Valid {
		cfg.ActivatedAt = &activatedAt.Time
	}
	return cfg, true, nil
}

// Write upserts the whole document in a single statement, so a failed write
// leaves the previous row intact. The merge itself happens above this layer
// and is not transactional with this write.
func (r *stageConfigRepository) Write(ctx context.Context, eventID string, cfg domain.StageConfig) error {
	query := `
		INSERT INTO stage_configs (
			event_id, is_active, mode, title, message, show_clock, show_qr,
			music_enabled, music_type, spotify_url,
			countdown_minutes, countdown_target, video_url, activated_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (event_id) DO UPDATE SET
			is_active = EXCLUDED.is_active,
			mode = EXCLUDED.mode,
			title = EXCLUDED.title,
			message = EXCLUDED.message,
			show_clock = EXCLUDED.show_clock,
			show_qr = EXCLUDED.show_qr,
			music_enabled = EXCLUDED.music_enabled,
			music_type = EXCLUDED.music_type,
			spotify_url = EXCLUDED.spotify_url,
			countdown_minutes = EXCLUDED.countdown_minutes,
			countdown_target = EXCLUDED.countdown_target,
			video_url = EXCLUDED.video_url,
			activated_at = EXCLUDED.activated_at,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.DB.ExecContext(ctx, query,
		eventID,
		nullBool(cfg.IsActive),
		nullStageMode(cfg.Mode),
		nullString(cfg.Title),
		nullString(cfg.Message),
		nullBool(cfg.ShowClock),
		nullBool(cfg.ShowQR),
		nullBool(cfg.MusicEnabled),
		nullMusicType(cfg.MusicType),
		nullString(cfg.SpotifyURL),
		nullInt(cfg.CountdownMinutes),
		nullTime(cfg.CountdownTarget),
		nullString(cfg.VideoURL),
		nullTime(cfg.ActivatedAt),
		time.Now(),
	)
	return err
}

func nullBool(p *bool) sql.NullBool {
	if p == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *p, Valid: true}
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func nullTime(p *time.Time) sql.NullTime {
	if p == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *p, Valid: true}
}

func nullStageMode(p *domain.StageMode) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*p), Valid: true}
}

func nullMusicType(p *domain.MusicType) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*p), Valid: true}
}
