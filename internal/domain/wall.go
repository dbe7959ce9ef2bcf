package domain

import (
	"context"
	"time"
)

// WallUpdates is the delta a polling display merges into its local photo
// sequence, plus a stage hint so a projector notices an activation without
// waiting for its next full render.
type WallUpdates struct {
	Photos      []WallPhoto `json:"photos"`
	Watermark   *time.Time  `json:"watermark,omitempty"`
	StageActive bool        `json:"stage_active"`
	Mode        StageMode   `json:"mode"`
}

// WallService is the read surface of the live wall: it resolves the event,
// the viewer, the stage config and the photo window into the models the
// display layer polls. eventRef may be an event id or its slug.
type WallService interface {
	RenderWall(ctx context.Context, eventRef string, req ViewerRequest) (*RenderModel, error)
	Updates(ctx context.Context, eventRef string, after time.Time) (*WallUpdates, error)
}
