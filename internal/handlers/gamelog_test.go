package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/puckline/stats-api/internal/models"
)

func TestGetPlayers(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name           string
		query          string
		expectedStatus int
	}{
		{name: "skaters", query: "category=skaters", expectedStatus: http.StatusOK},
		{name: "goalies", query: "category=goalies", expectedStatus: http.StatusOK},
		{name: "missing category", query: "", expectedStatus: http.StatusBadRequest},
		{name: "bad category", query: "category=refs", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(Config{
				Logger: logger,
				GameLog: &MockGameLogService{
					PlayersFunc: func(ctx context.Context, category models.Category) []string {
						return []string{"A", "B"}
					},
				},
			})

			req := httptest.NewRequest("GET", "/api/v1/players?"+tt.query, nil)
			w := httptest.NewRecorder()
			h.GetPlayers(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestGetStats_ReturnsCatalog(t *testing.T) {
	h := New(Config{Logger: zap.NewNop()})

	req := httptest.NewRequest("GET", "/api/v1/stats?category=goalies", nil)
	w := httptest.NewRecorder()
	h.GetStats(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body struct {
		Stats []models.StatDef `json:"stats"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Stats) != len(models.TrackedStats(models.CategoryGoalies)) {
		t.Errorf("got %d stats, want %d", len(body.Stats), len(models.TrackedStats(models.CategoryGoalies)))
	}
}

func TestGetGameLog_TableDriven(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name           string
		query          string
		mockSeries     func(ctx context.Context, category models.Category, player, statColumn string, from, to time.Time) ([]models.GameLogPoint, error)
		expectedStatus int
	}{
		{
			name:  "happy path with range",
			query: "category=skaters&player=A&stat=G&from=10/01/2024&to=11/01/2024",
			mockSeries: func(ctx context.Context, category models.Category, player, statColumn string, from, to time.Time) ([]models.GameLogPoint, error) {
				if from.IsZero() || to.IsZero() {
					t.Error("expected parsed range bounds")
				}
				return []models.GameLogPoint{{Date: "10/21/2024", Opponent: "X", Value: 2}}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing stat",
			query:          "category=skaters&player=A",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad from date",
			query:          "category=skaters&player=A&stat=G&from=2024-10-01",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(Config{
				Logger:  logger,
				GameLog: &MockGameLogService{SeriesFunc: tt.mockSeries},
			})

			req := httptest.NewRequest("GET", "/api/v1/gamelog?"+tt.query, nil)
			w := httptest.NewRecorder()
			h.GetGameLog(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestGetDistribution_ThresholdParsing(t *testing.T) {
	logger := zap.NewNop()

	var gotThreshold float64
	h := New(Config{
		Logger: logger,
		GameLog: &MockGameLogService{
			DistributionFunc: func(ctx context.Context, category models.Category, player, statColumn string, from, to time.Time, threshold float64) (*models.DistributionSummary, error) {
				gotThreshold = threshold
				return &models.DistributionSummary{Player: player, Stat: statColumn, Threshold: threshold}, nil
			},
		},
	})

	req := httptest.NewRequest("GET", "/api/v1/distribution?category=skaters&player=A&stat=G&threshold=2.5", nil)
	w := httptest.NewRecorder()
	h.GetDistribution(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotThreshold != 2.5 {
		t.Errorf("threshold = %v, want 2.5", gotThreshold)
	}

	req = httptest.NewRequest("GET", "/api/v1/distribution?category=skaters&player=A&stat=G&threshold=lots", nil)
	w = httptest.NewRecorder()
	h.GetDistribution(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for non-numeric threshold", w.Code)
	}
}
