package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/leagueops/league-office/internal/domain/game"
	"github.com/leagueops/league-office/internal/domain/standings"
	"github.com/leagueops/league-office/internal/domain/team"
)

const (
	pointsPerWin  = 3
	pointsPerDraw = 1
)

// StandingsService computes the league table from finished games. Every team
// appears in the table, including teams yet to play.
type StandingsService struct {
	teamRepo team.Repository
	gameRepo game.Repository
}

func NewStandingsService(teamRepo team.Repository, gameRepo game.Repository) *StandingsService {
	return &StandingsService{
		teamRepo: teamRepo,
		gameRepo: gameRepo,
	}
}

func (s *StandingsService) Table(ctx context.Context) ([]standings.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Table")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	games, err := s.gameRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	rows := make(map[string]*standings.Row, len(teams))
	for _, t := range teams {
		rows[t.ID] = &standings.Row{
			TeamID:   t.ID,
			TeamName: t.Name,
		}
	}

	for _, g := range games {
		if !g.Finished() {
			continue
		}
		home, homeOK := rows[g.HomeTeamID]
		away, awayOK := rows[g.AwayTeamID]
		if !homeOK || !awayOK || g.HomeScore == nil || g.AwayScore == nil {
			continue
		}

		homeScore := *g.HomeScore
		awayScore := *g.AwayScore

		home.Played++
		away.Played++
		home.GoalsFor += homeScore
		home.GoalsAgainst += awayScore
		away.GoalsFor += awayScore
		away.GoalsAgainst += homeScore

		switch {
		case homeScore > awayScore:
			home.Wins++
			home.Points += pointsPerWin
			away.Losses++
		case homeScore < awayScore:
			away.Wins++
			away.Points += pointsPerWin
			home.Losses++
		default:
			home.Draws++
			away.Draws++
			home.Points += pointsPerDraw
			away.Points += pointsPerDraw
		}
	}

	table := make([]standings.Row, 0, len(rows))
	for _, row := range rows {
		table = append(table, *row)
	}

	sort.SliceStable(table, func(i, j int) bool {
		if table[i].Points != table[j].Points {
			return table[i].Points > table[j].Points
		}
		if table[i].Diff() != table[j].Diff() {
			return table[i].Diff() > table[j].Diff()
		}
		return table[i].TeamName < table[j].TeamName
	})
	for i := range table {
		table[i].Position = i + 1
	}

	return table, nil
}
