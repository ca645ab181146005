package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/leagueops/league-office/internal/domain/game"
	"github.com/leagueops/league-office/internal/domain/player"
	"github.com/leagueops/league-office/internal/domain/team"
)

func intPtr(v int) *int { return &v }

func TestStandingsService_Table(t *testing.T) {
	t.Parallel()

	teamRepo := &stubTeamRepository{byID: map[string]team.Team{
		"t1": {ID: "t1", Name: "Harbor City"},
		"t2": {ID: "t2", Name: "Ridgeline"},
		"t3": {ID: "t3", Name: "Ashford"},
	}}
	gameRepo := &stubGameRepository{games: []game.Game{
		{ID: "g1", HomeTeamID: "t1", AwayTeamID: "t2", HomeScore: intPtr(2), AwayScore: intPtr(1), Status: game.StatusFinished},
		{ID: "g2", HomeTeamID: "t2", AwayTeamID: "t3", HomeScore: intPtr(0), AwayScore: intPtr(3), Status: game.StatusFinished},
		{ID: "g3", HomeTeamID: "t3", AwayTeamID: "t1", HomeScore: intPtr(1), AwayScore: intPtr(1), Status: game.StatusFinished},
		{ID: "g4", HomeTeamID: "t1", AwayTeamID: "t3", Status: game.StatusScheduled},
	}}

	svc := NewStandingsService(teamRepo, gameRepo)

	table, err := svc.Table(context.Background())
	if err != nil {
		t.Fatalf("Table error: %v", err)
	}
	if len(table) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(table))
	}

	// Ashford: 4 pts, +3. Harbor City: 4 pts, +1. Ridgeline: 0 pts.
	if table[0].TeamID != "t3" || table[0].Points != 4 || table[0].Position != 1 {
		t.Fatalf("unexpected rank 1 row: %+v", table[0])
	}
	if table[1].TeamID != "t1" || table[1].Points != 4 || table[1].Position != 2 {
		t.Fatalf("unexpected rank 2 row: %+v", table[1])
	}
	if table[2].TeamID != "t2" || table[2].Points != 0 || table[2].Position != 3 {
		t.Fatalf("unexpected rank 3 row: %+v", table[2])
	}
}

func TestStandingsService_Table_TeamsWithoutGames(t *testing.T) {
	t.Parallel()

	teamRepo := &stubTeamRepository{byID: map[string]team.Team{
		"t1": {ID: "t1", Name: "Beacon"},
		"t2": {ID: "t2", Name: "Alder"},
	}}
	svc := NewStandingsService(teamRepo, &stubGameRepository{})

	table, err := svc.Table(context.Background())
	if err != nil {
		t.Fatalf("Table error: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table))
	}
	// All-zero rows rank alphabetically.
	if table[0].TeamName != "Alder" || table[1].TeamName != "Beacon" {
		t.Fatalf("unexpected order: %+v", table)
	}
}

func TestLeagueService_ListPlayers_RejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	svc := NewLeagueService(&stubTeamRepository{}, &stubPlayerRepository{})

	if _, err := svc.ListPlayers(context.Background(), "benched"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLeagueService_ListPlayers_FiltersByStatus(t *testing.T) {
	t.Parallel()

	playerRepo := &stubPlayerRepository{byID: map[string]player.Player{
		"p1": {ID: "p1", Name: "A", Status: player.StatusFreeAgent},
		"p2": {ID: "p2", Name: "B", Status: player.StatusActive, TeamID: "t1"},
	}}
	svc := NewLeagueService(&stubTeamRepository{}, playerRepo)

	got, err := svc.ListPlayers(context.Background(), "free_agent")
	if err != nil {
		t.Fatalf("ListPlayers error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("unexpected players: %+v", got)
	}
}

func TestLeagueService_GetPlayer_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewLeagueService(&stubTeamRepository{}, &stubPlayerRepository{byID: map[string]player.Player{}})

	if _, err := svc.GetPlayer(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
