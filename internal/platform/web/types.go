package web

import (
	"time"

	"github.com/vovakirdan/gameroom/internal/storage"
)

// GameResponse describes one registered game.
type GameResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Controls  string `json:"controls"`
	HighScore int    `json:"high_score"`
}

// GamesResponse is the body of GET /games.
type GamesResponse struct {
	Games []GameResponse `json:"games"`
}

// ScoreResponse is one ranked high score.
type ScoreResponse struct {
	Rank      int       `json:"rank"`
	Score     int       `json:"score"`
	RunID     string    `json:"run_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ScoresResponse is the body of GET /games/{id}/scores.
type ScoresResponse struct {
	GameID string          `json:"game_id"`
	Scores []ScoreResponse `json:"scores"`
}

// StatsResponse is the body of GET /games/{id}/stats.
type StatsResponse struct {
	GameID     string     `json:"game_id"`
	Games      int        `json:"games"`
	HighScore  int        `json:"high_score"`
	AvgScore   float64    `json:"avg_score"`
	TotalScore int64      `json:"total_score"`
	LastPlayed *time.Time `json:"last_played,omitempty"`
}

// RunResponse is one entry of the run log.
type RunResponse struct {
	RunID      string    `json:"run_id"`
	GameID     string    `json:"game_id"`
	Score      int       `json:"score"`
	Ticks      uint64    `json:"ticks"`
	EndReason  string    `json:"end_reason"`
	Seed       int64     `json:"seed"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// RunsResponse is the body of GET /runs/recent.
type RunsResponse struct {
	Runs []RunResponse `json:"runs"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func newRunResponse(r storage.RunRecord) RunResponse {
	return RunResponse{
		RunID:      r.RunID,
		GameID:     r.GameID,
		Score:      r.Score,
		Ticks:      r.Ticks,
		EndReason:  r.EndReason,
		Seed:       r.Seed,
		DurationMS: r.Duration.Milliseconds(),
		CreatedAt:  r.CreatedAt,
	}
}
