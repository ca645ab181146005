package standings

// Row is one team's aggregated record, ranked within the league table.
type Row struct {
	TeamID       string
	TeamName     string
	Position     int
	Played       int
	Wins         int
	Draws        int
	Losses       int
	GoalsFor     int
	GoalsAgainst int
	Points       int
}

// Diff is the goal differential used as the first tie-breaker after points.
func (r Row) Diff() int {
	return r.GoalsFor - r.GoalsAgainst
}
