package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/leagueops/league-office/internal/domain/player"
	"github.com/leagueops/league-office/internal/domain/team"
)

// LeagueService serves the read model behind the roster screens: teams,
// players, and single-player lookups.
type LeagueService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
}

func NewLeagueService(teamRepo team.Repository, playerRepo player.Repository) *LeagueService {
	return &LeagueService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
	}
}

func (s *LeagueService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListTeams")
	defer span.End()

	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return items, nil
}

// ListPlayers returns the player pool, optionally narrowed to one roster
// status. An empty status means everyone.
func (s *LeagueService) ListPlayers(ctx context.Context, status string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListPlayers")
	defer span.End()

	status = strings.TrimSpace(status)
	parsed := player.Status(status)
	if status != "" {
		if _, ok := player.AllStatuses[parsed]; !ok {
			return nil, fmt.Errorf("%w: unknown player status %q", ErrInvalidInput, status)
		}
	}

	items, err := s.playerRepo.List(ctx, parsed)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	return items, nil
}

func (s *LeagueService) GetPlayer(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetPlayer")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	return item, nil
}
