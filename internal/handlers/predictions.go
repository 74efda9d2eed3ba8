package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/puckline/stats-api/internal/logic"
	"github.com/puckline/stats-api/internal/models"
)

// GetPredictions returns predicted stat lines for a player's scheduled game
// @Summary Predict player stats
// @Description Predict per-stat values for a player's next game on a date, one row per (team, opponent) schedule match
// @Tags Predictions
// @Produce json
// @Param category query string true "Player category (skaters or goalies)"
// @Param player query string true "Player display name"
// @Param date query string true "Game date, MM/DD/YYYY"
// @Success 200 {object} models.PredictionsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /predictions [get]
func (h *Handler) GetPredictions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := models.PredictionsRequest{
		Category: r.URL.Query().Get("category"),
		Player:   strings.TrimSpace(r.URL.Query().Get("player")),
		Date:     r.URL.Query().Get("date"),
	}
	if err := h.validator.Struct(req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "category, player and date are required; category must be skaters or goalies")
		return
	}
	category, _ := models.ParseCategory(req.Category)

	cacheKey := fmt.Sprintf("predictions:%s:%s:%s", category, strings.ToLower(req.Player), req.Date)
	if body, ok := h.cacheGet(ctx, cacheKey); ok {
		predictionCacheHits.Inc()
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
		return
	}
	predictionCacheMisses.Inc()

	results, reason, err := h.prediction.Predict(ctx, req.Date, req.Player, category)
	if err != nil {
		var inputErr *logic.InputError
		if errors.As(err, &inputErr) {
			h.errorResponse(w, http.StatusBadRequest, inputErr.Error())
			return
		}
		h.logger.Errorw("Prediction failed", "player", req.Player, "date", req.Date, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "prediction failed")
		return
	}
	predictionsServed.WithLabelValues(string(category)).Inc()

	resp := models.PredictionsResponse{
		Date:     req.Date,
		Player:   req.Player,
		Category: category,
		Results:  results,
		Reason:   reason,
	}
	if resp.Results == nil {
		resp.Results = []models.PredictionResult{}
	}

	body, err := json.Marshal(resp)
	if err != nil {
		h.errorResponse(w, http.StatusInternalServerError, "encoding failed")
		return
	}
	h.cacheSet(ctx, cacheKey, body)

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}
