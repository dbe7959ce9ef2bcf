package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"time"

	"socialwall/internal/domain"
)

// testLogger is a no-op logger so tests don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID    map[string]*domain.Event
	err     error // if set, every lookup returns this error
	lookups int
}

func newFakeEventRepo(events ...*domain.Event) *fakeEventRepo {
	f := &fakeEventRepo{byID: make(map[string]*domain.Event)}
	for _, e := range events {
		f.byID[e.ID] = e
	}
	return f
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	f.lookups++
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	f.lookups++
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.byID {
		if e.Slug == slug {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

// fakeStageRepo is an in-memory StageConfigRepository for tests.
type fakeStageRepo struct {
	docs       map[string]domain.StageConfig
	readErr    error
	writeErr   error
	lastWrite  *domain.StageConfig
	writeCalls int
}

func newFakeStageRepo() *fakeStageRepo {
	return &fakeStageRepo{docs: make(map[string]domain.StageConfig)}
}

func (f *fakeStageRepo) Read(ctx context.Context, eventID string) (domain.StageConfig, bool, error) {
	if f.readErr != nil {
		return domain.StageConfig{}, false, f.readErr
	}
	cfg, ok := f.docs[eventID]
	return cfg, ok, nil
}

func (f *fakeStageRepo) Write(ctx context.Context, eventID string, cfg domain.StageConfig) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.docs[eventID] = cfg
	f.lastWrite = &cfg
	f.writeCalls++
	return nil
}

// fakePhotoRepo holds a canned photo list, records query arguments, and
// mirrors the postgres repo's ordering and limit: snapshot windows are
// newest-created first, refresh deltas are oldest-approved first.
type fakePhotoRepo struct {
	photos    []*domain.Photo
	err       error
	lastAfter *time.Time
	lastLimit int
}

func (f *fakePhotoRepo) ListApproved(ctx context.Context, eventID string, after *time.Time, limit int) ([]*domain.Photo, error) {
	f.lastAfter = after
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Photo
	for _, p := range f.photos {
		if p.EventID != eventID || p.Status != domain.StatusApproved {
			continue
		}
		if after != nil && (p.ApprovedAt == nil || !p.ApprovedAt.After(*after)) {
			continue
		}
		out = append(out, p)
	}
	if after == nil {
		sort.Slice(out, func(i, j int) bool {
			if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return out[i].ID > out[j].ID
		})
	} else {
		sort.Slice(out, func(i, j int) bool {
			if !out[i].ApprovedAt.Equal(*out[j].ApprovedAt) {
				return out[i].ApprovedAt.Before(*out[j].ApprovedAt)
			}
			return out[i].ID < out[j].ID
		})
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeVerifier maps tokens to user IDs and counts calls.
type fakeVerifier struct {
	byToken map[string]string
	calls   int
}

func (f *fakeVerifier) Verify(token string) (string, error) {
	f.calls++
	if id, ok := f.byToken[token]; ok {
		return id, nil
	}
	return "", errors.New("invalid token")
}

// fakeInvalidator records MarkStale calls.
type fakeInvalidator struct {
	slugs []string
	err   error
}

func (f *fakeInvalidator) MarkStale(ctx context.Context, slug string) error {
	f.slugs = append(f.slugs, slug)
	return f.err
}

func testEvent() *domain.Event {
	now := time.Date(2026, 6, 20, 12, 0, 0, 0, time.UTC)
	return &domain.Event{
		ID:          "ev-1",
		Name:        "Hanna & Tom",
		Slug:        "hanna-and-tom",
		OrganizerID: "user-1",
		QRTargetURL: "https://wall.example/e/hanna-and-tom",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
