package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/puckline/stats-api/internal/models"
)

// Health check endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready reports whether a fitted session is available, plus dataset
// shape and the fit generation so operators can confirm a refresh.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess := h.sessions.Current()
	ready := sess != nil

	checks := map[string]bool{
		"session": ready,
	}
	if h.redis != nil {
		checks["redis"] = h.redis.Ping(ctx).Err() == nil
	}

	body := map[string]interface{}{
		"ready":  ready,
		"checks": checks,
		"uptime": time.Since(h.startedAt).String(),
	}
	if ready {
		body["session_id"] = sess.ID
		body["fitted_at"] = sess.BuiltAt.UTC()
		body["skater_rows"] = len(sess.Category(models.CategorySkaters).Logs)
		body["goalie_rows"] = len(sess.Category(models.CategoryGoalies).Logs)
		body["schedule_rows"] = len(sess.Schedule)
	}

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	h.jsonResponse(w, status, body)
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}

// cacheGet returns the cached JSON body for key, if caching is on.
func (h *Handler) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if h.redis == nil {
		return nil, false
	}
	body, err := h.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return body, true
}

func (h *Handler) cacheSet(ctx context.Context, key string, body []byte) {
	if h.redis == nil {
		return
	}
	if err := h.redis.Set(ctx, key, body, h.cacheTTL).Err(); err != nil {
		h.logger.Warnw("Cache write failed", "key", key, "error", err)
	}
}
