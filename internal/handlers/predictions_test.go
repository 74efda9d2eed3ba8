package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/puckline/stats-api/internal/logic"
	"github.com/puckline/stats-api/internal/models"
)

func TestGetPredictions_TableDriven(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name           string
		query          string
		mockPredict    func(ctx context.Context, dateStr, playerName string, category models.Category) ([]models.PredictionResult, string, error)
		expectedStatus int
		checkBody      func(t *testing.T, body []byte)
	}{
		{
			name:  "happy path",
			query: "category=skaters&player=Pastrnak&date=12/01/2024",
			mockPredict: func(ctx context.Context, dateStr, playerName string, category models.Category) ([]models.PredictionResult, string, error) {
				if category != models.CategorySkaters {
					t.Errorf("category = %s, want skaters", category)
				}
				return []models.PredictionResult{{
					Date: dateStr, Player: playerName, Team: "BOS", Opponent: "TOR",
					Stats: map[string]float64{"G": 0.6042},
				}}, "", nil
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body []byte) {
				var resp models.PredictionsResponse
				if err := json.Unmarshal(body, &resp); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if len(resp.Results) != 1 || resp.Results[0].Opponent != "TOR" {
					t.Errorf("unexpected results: %+v", resp.Results)
				}
			},
		},
		{
			name:  "soft no-match keeps 200 with reason",
			query: "category=skaters&player=Pastrnak&date=12/25/2024",
			mockPredict: func(ctx context.Context, dateStr, playerName string, category models.Category) ([]models.PredictionResult, string, error) {
				return nil, "no games scheduled on 12/25/2024", nil
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body []byte) {
				var resp models.PredictionsResponse
				if err := json.Unmarshal(body, &resp); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if len(resp.Results) != 0 || !strings.Contains(resp.Reason, "no games scheduled") {
					t.Errorf("unexpected response: %+v", resp)
				}
			},
		},
		{
			name:  "single-character player name is valid",
			query: "category=skaters&player=A&date=12/01/2024",
			mockPredict: func(ctx context.Context, dateStr, playerName string, category models.Category) ([]models.PredictionResult, string, error) {
				if playerName != "A" {
					t.Errorf("player = %q, want A", playerName)
				}
				return []models.PredictionResult{{
					Date: dateStr, Player: playerName, Team: "ATM", Opponent: "X",
					Stats: map[string]float64{"G": 1.5},
				}}, "", nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing player",
			query:          "category=skaters&date=12/01/2024",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad category",
			query:          "category=coaches&player=Pastrnak&date=12/01/2024",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "input error from service",
			query: "category=skaters&player=Pastrnak&date=junk",
			mockPredict: func(ctx context.Context, dateStr, playerName string, category models.Category) ([]models.PredictionResult, string, error) {
				return nil, "", inputError(t)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "internal error from service",
			query: "category=skaters&player=Pastrnak&date=12/01/2024",
			mockPredict: func(ctx context.Context, dateStr, playerName string, category models.Category) ([]models.PredictionResult, string, error) {
				return nil, "", errors.New("boom")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(Config{
				Logger:     logger,
				Prediction: &MockPredictionService{PredictFunc: tt.mockPredict},
			})

			req := httptest.NewRequest("GET", "/api/v1/predictions?"+tt.query, nil)
			w := httptest.NewRecorder()
			h.GetPredictions(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
			if tt.checkBody != nil {
				tt.checkBody(t, w.Body.Bytes())
			}
		})
	}
}

// inputError produces a real logic.InputError through the public
// surface (a bad date on a throwaway service would do the same).
func inputError(t *testing.T) error {
	t.Helper()
	svc := logic.NewPredictionService(testSessionHolder(t), zap.NewNop())
	_, _, err := svc.Predict(context.Background(), "not-a-date", "A", models.CategorySkaters)
	if err == nil {
		t.Fatal("expected input error")
	}
	return err
}
