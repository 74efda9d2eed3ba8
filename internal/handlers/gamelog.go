package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/puckline/stats-api/internal/logic"
	"github.com/puckline/stats-api/internal/models"
)

// GetPlayers lists a category's players
// @Summary List players
// @Tags GameLog
// @Produce json
// @Param category query string true "skaters or goalies"
// @Success 200 {object} map[string]interface{}
// @Router /players [get]
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	category, ok := models.ParseCategory(r.URL.Query().Get("category"))
	if !ok {
		h.errorResponse(w, http.StatusBadRequest, "category must be skaters or goalies")
		return
	}
	players := h.gameLog.Players(r.Context(), category)
	if players == nil {
		players = []string{}
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"category": category,
		"players":  players,
	})
}

// GetStats lists a category's tracked stat catalog
// @Summary List tracked stats
// @Tags GameLog
// @Produce json
// @Param category query string true "skaters or goalies"
// @Success 200 {object} map[string]interface{}
// @Router /stats [get]
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	category, ok := models.ParseCategory(r.URL.Query().Get("category"))
	if !ok {
		h.errorResponse(w, http.StatusBadRequest, "category must be skaters or goalies")
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"category": category,
		"stats":    models.TrackedStats(category),
	})
}

// GetGameLog returns a date-filtered per-game series for one player/stat
// @Summary Filtered game log series
// @Tags GameLog
// @Produce json
// @Param category query string true "skaters or goalies"
// @Param player query string true "Player display name"
// @Param stat query string true "Stat column"
// @Param from query string false "Range start, MM/DD/YYYY"
// @Param to query string false "Range end, MM/DD/YYYY"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /gamelog [get]
func (h *Handler) GetGameLog(w http.ResponseWriter, r *http.Request) {
	req := models.GameLogRequest{
		Category: r.URL.Query().Get("category"),
		Player:   strings.TrimSpace(r.URL.Query().Get("player")),
		Stat:     r.URL.Query().Get("stat"),
		From:     r.URL.Query().Get("from"),
		To:       r.URL.Query().Get("to"),
	}
	if err := h.validator.Struct(req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "category, player and stat are required")
		return
	}
	category, _ := models.ParseCategory(req.Category)

	from, to, err := parseRange(req.From, req.To)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	points, err := h.gameLog.Series(r.Context(), category, req.Player, req.Stat, from, to)
	if err != nil {
		h.respondServiceError(w, err, "game log query failed")
		return
	}
	if points == nil {
		points = []models.GameLogPoint{}
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"category": category,
		"player":   req.Player,
		"stat":     req.Stat,
		"points":   points,
	})
}

// GetDistribution returns a threshold-classified stat distribution
// @Summary Stat distribution vs threshold
// @Tags GameLog
// @Produce json
// @Param category query string true "skaters or goalies"
// @Param player query string true "Player display name"
// @Param stat query string true "Stat column"
// @Param threshold query number false "Classification threshold"
// @Param from query string false "Range start, MM/DD/YYYY"
// @Param to query string false "Range end, MM/DD/YYYY"
// @Success 200 {object} models.DistributionSummary
// @Failure 400 {object} map[string]string
// @Router /distribution [get]
func (h *Handler) GetDistribution(w http.ResponseWriter, r *http.Request) {
	req := models.DistributionRequest{
		Category: r.URL.Query().Get("category"),
		Player:   strings.TrimSpace(r.URL.Query().Get("player")),
		Stat:     r.URL.Query().Get("stat"),
		From:     r.URL.Query().Get("from"),
		To:       r.URL.Query().Get("to"),
	}
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.errorResponse(w, http.StatusBadRequest, "threshold must be numeric")
			return
		}
		req.Threshold = v
	}
	if err := h.validator.Struct(req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "category, player and stat are required")
		return
	}
	category, _ := models.ParseCategory(req.Category)

	from, to, err := parseRange(req.From, req.To)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.gameLog.Distribution(r.Context(), category, req.Player, req.Stat, from, to, req.Threshold)
	if err != nil {
		h.respondServiceError(w, err, "distribution query failed")
		return
	}
	h.jsonResponse(w, http.StatusOK, summary)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error, fallback string) {
	var inputErr *logic.InputError
	if errors.As(err, &inputErr) {
		h.errorResponse(w, http.StatusBadRequest, inputErr.Error())
		return
	}
	h.logger.Errorw(fallback, "error", err)
	h.errorResponse(w, http.StatusInternalServerError, fallback)
}

func parseRange(fromStr, toStr string) (from, to time.Time, err error) {
	if fromStr != "" {
		if from, err = time.Parse(logic.RequestDateLayout, fromStr); err != nil {
			return time.Time{}, time.Time{}, errors.New("from must be MM/DD/YYYY")
		}
	}
	if toStr != "" {
		if to, err = time.Parse(logic.RequestDateLayout, toStr); err != nil {
			return time.Time{}, time.Time{}, errors.New("to must be MM/DD/YYYY")
		}
	}
	return from, to, nil
}
