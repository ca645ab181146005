package game

import "time"

const (
	StatusScheduled = "scheduled"
	StatusFinished  = "finished"
)

// Game is one played or scheduled match between two league teams. Scores are
// pointers because scheduled games have none yet.
type Game struct {
	ID         string
	HomeTeamID string
	AwayTeamID string
	HomeScore  *int
	AwayScore  *int
	Status     string
	PlayedAt   time.Time
}

// Finished reports whether the game has a final score to count in standings.
func (g Game) Finished() bool {
	return g.Status == StatusFinished && g.HomeScore != nil && g.AwayScore != nil
}
