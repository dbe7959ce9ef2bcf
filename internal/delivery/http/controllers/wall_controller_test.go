package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialwall/internal/delivery/http/helpers"
	"socialwall/internal/domain"
)

func newWallRequest(t *testing.T, target string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, target, nil)
	r.SetPathValue("eventSlug", "hanna-and-tom")
	return r
}

func TestWallController_GetWall(t *testing.T) {
	wall := &fakeWallService{model: guestModel()}
	ctrl := NewWallController(testLogger, wall, nil)

	w := httptest.NewRecorder()
	ctrl.GetWall(w, newWallRequest(t, "/events/hanna-and-tom/wall"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hanna-and-tom", wall.lastRef)
	assert.False(t, wall.lastReq.Projector)

	var resp helpers.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.Error)
	assert.NotContains(t, w.Body.String(), "controls")
	assert.NotContains(t, w.Body.String(), "organizer_id")
}

func TestWallController_GetWall_ProjectorFlag(t *testing.T) {
	wall := &fakeWallService{model: guestModel()}
	ctrl := NewWallController(testLogger, wall, nil)

	w := httptest.NewRecorder()
	r := newWallRequest(t, "/events/hanna-and-tom/wall?display=projector")
	r.Header.Set("Authorization", "Bearer organizer-token")
	ctrl.GetWall(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, wall.lastReq.Projector)
	assert.Equal(t, "organizer-token", wall.lastReq.BearerToken)
}

func TestWallController_GetWall_ProjectorCache(t *testing.T) {
	wall := &fakeWallService{model: guestModel()}
	cache := newFakeRenderCache()
	ctrl := NewWallController(testLogger, wall, cache)

	w := httptest.NewRecorder()
	ctrl.GetWall(w, newWallRequest(t, "/events/hanna-and-tom/wall?display=projector"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	require.Equal(t, 1, cache.sets)
	first := w.Body.Bytes()

	w = httptest.NewRecorder()
	ctrl.GetWall(w, newWallRequest(t, "/events/hanna-and-tom/wall?display=projector"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.Equal(t, first, w.Body.Bytes())
	assert.Equal(t, 1, wall.renderCalls)
}

func TestWallController_GetWall_InteractiveSkipsCache(t *testing.T) {
	wall := &fakeWallService{model: guestModel()}
	cache := newFakeRenderCache()
	ctrl := NewWallController(testLogger, wall, cache)

	w := httptest.NewRecorder()
	ctrl.GetWall(w, newWallRequest(t, "/events/hanna-and-tom/wall"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, cache.gets)
	assert.Zero(t, cache.sets)
	assert.Empty(t, w.Header().Get("X-Cache"))
}

func TestWallController_GetWall_NotFound(t *testing.T) {
	wall := &fakeWallService{renderErr: domain.ErrNotFound}
	ctrl := NewWallController(testLogger, wall, nil)

	w := httptest.NewRecorder()
	ctrl.GetWall(w, newWallRequest(t, "/events/hanna-and-tom/wall"))

	require.Equal(t, http.StatusNotFound, w.Code)
	var resp helpers.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, helpers.ErrCodeNotFound, resp.Error.Code)
}

func TestWallController_GetWall_ProjectorErrorsAreNeutral(t *testing.T) {
	for name, err := range map[string]error{
		"not found":   domain.ErrNotFound,
		"persistence": domain.ErrPersistence,
		"internal":    errors.New("boom"),
	} {
		t.Run(name, func(t *testing.T) {
			wall := &fakeWallService{renderErr: err}
			ctrl := NewWallController(testLogger, wall, nil)

			w := httptest.NewRecorder()
			ctrl.GetWall(w, newWallRequest(t, "/events/hanna-and-tom/wall?display=projector"))

			require.Equal(t, http.StatusServiceUnavailable, w.Code)
			var resp helpers.APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, helpers.ErrCodeUnavailable, resp.Error.Code)
			assert.NotContains(t, w.Body.String(), "boom")
		})
	}
}

func TestWallController_GetUpdates(t *testing.T) {
	mark := time.Date(2026, 6, 1, 20, 30, 0, 0, time.UTC)
	wall := &fakeWallService{updates: &domain.WallUpdates{
		Photos:    []domain.WallPhoto{{ID: "ph-2", URL: "https://cdn.example.com/ph-2.jpg"}},
		Watermark: &mark,
		Mode:      domain.ModeLounge,
	}}
	ctrl := NewWallController(testLogger, wall, nil)

	after := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)
	w := httptest.NewRecorder()
	ctrl.GetUpdates(w, newWallRequest(t, "/events/hanna-and-tom/wall/updates?after="+after.Format(time.RFC3339)))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, wall.lastAfter.Equal(after))
	assert.Contains(t, w.Body.String(), "ph-2")
}

func TestWallController_GetUpdates_BadAfter(t *testing.T) {
	ctrl := NewWallController(testLogger, &fakeWallService{}, nil)

	tests := map[string]string{
		"missing":     "/events/hanna-and-tom/wall/updates",
		"unparseable": "/events/hanna-and-tom/wall/updates?after=yesterday",
	}
	for name, target := range tests {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctrl.GetUpdates(w, newWallRequest(t, target))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestWallController_GetUpdates_ProjectorErrorsAreNeutral(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
	}{
		{
			name:   "unknown event",
			target: "/events/hanna-and-tom/wall/updates?display=projector&after=2026-06-01T20:00:00Z",
			err:    domain.ErrNotFound,
		},
		{
			name:   "internal failure",
			target: "/events/hanna-and-tom/wall/updates?display=projector&after=2026-06-01T20:00:00Z",
			err:    errors.New("boom"),
		},
		{
			name:   "missing watermark",
			target: "/events/hanna-and-tom/wall/updates?display=projector",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewWallController(testLogger, &fakeWallService{updatesErr: tt.err}, nil)

			w := httptest.NewRecorder()
			ctrl.GetUpdates(w, newWallRequest(t, tt.target))

			require.Equal(t, http.StatusServiceUnavailable, w.Code)
			var resp helpers.APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, helpers.ErrCodeUnavailable, resp.Error.Code)
			assert.NotContains(t, w.Body.String(), "boom")
		})
	}
}

func TestWallController_GetUpdates_NotFound(t *testing.T) {
	wall := &fakeWallService{updatesErr: domain.ErrNotFound}
	ctrl := NewWallController(testLogger, wall, nil)

	w := httptest.NewRecorder()
	ctrl.GetUpdates(w, newWallRequest(t, "/events/hanna-and-tom/wall/updates?after=2026-06-01T20:00:00Z"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
