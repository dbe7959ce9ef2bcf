package postgres

import (
	"context"
	"database/sql"
	"time"

	"socialwall/internal/domain"
)

type photoRepository struct {
	DB *sql.DB
}

func NewPhotoRepository(db *sql.DB) domain.PhotoRepository {
	return &photoRepository{
		DB: db,
	}
}

// ListApproved returns one bounded window of wall-eligible media: approved
// images and videos. The snapshot window (after nil) is newest first by
// creation time, id as tiebreaker, so the order stays deterministic when
// timestamps collide. With after set, only rows approved strictly later are
// returned, oldest approval first: when a batch approval exceeds the limit,
// the window is a clean prefix of the backlog and the caller's watermark
// stays behind the truncated remainder instead of skipping past it.
func (r *photoRepository) ListApproved(ctx context.Context, eventID string, after *time.Time, limit int) ([]*domain.Photo, error) {
	var rows *sql.Rows
	var err error
	if after == nil {
		query := `
			SELECT id, event_id, url, media_type, status, mission_id, created_at, approved_at
			FROM photos
			WHERE event_id = $1
			  AND status = 'approved'
			  AND media_type IN ('image', 'video')
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		`
		rows, err = r.DB.QueryContext(ctx, query, eventID, limit)
	} else {
		query := `
			SELECT id, event_id, url, media_type, status, mission_id, created_at, approved_at
			FROM photos
			WHERE event_id = $1
			  AND status = 'approved'
			  AND media_type IN ('image', 'video')
			  AND approved_at > $2
			ORDER BY approved_at ASC, id ASC
			LIMIT $3
		`
		rows, err = r.DB.QueryContext(ctx, query, eventID, *after, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := make([]*domain.Photo, 0)
	for rows.Next() {
		p := &domain.Photo{}
		var missionNull sql.NullString
		var approvedNull sql.NullTime
		if err := rows.Scan(
			&p.ID, &p.EventID, &p.URL, &p.MediaType, &p.Status,
			&missionNull, &p.CreatedAt, &approvedNull,
		); err != nil {
			return nil, err
		}
		if missionNull.Valid {
			p.MissionID = &missionNull.String
		}
		if approvedNull.Valid {
			p.ApprovedAt = &approvedNull.Time
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return photos, nil
}
