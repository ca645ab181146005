package cache

import (
	"context"
	"testing"
	"time"

	"github.com/leagueops/league-office/internal/domain/player"
	"github.com/leagueops/league-office/internal/domain/team"
	basecache "github.com/leagueops/league-office/internal/platform/cache"
)

type countingTeamRepository struct {
	teams []team.Team
	lists int
	gets  int
}

func (r *countingTeamRepository) List(context.Context) ([]team.Team, error) {
	r.lists++
	return r.teams, nil
}

func (r *countingTeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.gets++
	for _, item := range r.teams {
		if item.ID == teamID {
			return item, true, nil
		}
	}
	return team.Team{}, false, nil
}

type countingPlayerRepository struct {
	players []player.Player
	lists   int
}

func (r *countingPlayerRepository) List(_ context.Context, status player.Status) ([]player.Player, error) {
	r.lists++
	out := make([]player.Player, 0, len(r.players))
	for _, item := range r.players {
		if status == "" || item.Status == status {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *countingPlayerRepository) GetByID(context.Context, string) (player.Player, bool, error) {
	return player.Player{}, false, nil
}

func TestTeamRepository_ListServesSecondCallFromCache(t *testing.T) {
	t.Parallel()

	next := &countingTeamRepository{teams: []team.Team{{ID: "team-1", Name: "Harbor City"}}}
	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))

	for i := 0; i < 2; i++ {
		items, err := repo.List(context.Background())
		if err != nil {
			t.Fatalf("list teams: %v", err)
		}
		if len(items) != 1 || items[0].ID != "team-1" {
			t.Fatalf("unexpected teams: %+v", items)
		}
	}

	if next.lists != 1 {
		t.Fatalf("expected 1 backing list call, got %d", next.lists)
	}
}

func TestTeamRepository_CachesMisses(t *testing.T) {
	t.Parallel()

	next := &countingTeamRepository{}
	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))

	for i := 0; i < 2; i++ {
		_, found, err := repo.GetByID(context.Background(), "team-missing")
		if err != nil {
			t.Fatalf("get team: %v", err)
		}
		if found {
			t.Fatalf("expected miss")
		}
	}

	if next.gets != 1 {
		t.Fatalf("expected 1 backing get call, got %d", next.gets)
	}
}

func TestPlayerRepository_ListKeyedByStatus(t *testing.T) {
	t.Parallel()

	next := &countingPlayerRepository{players: []player.Player{
		{ID: "player-1", Status: player.StatusFreeAgent},
		{ID: "player-2", Status: player.StatusActive},
	}}
	repo := NewPlayerRepository(next, basecache.NewStore(time.Minute))

	freeAgents, err := repo.List(context.Background(), player.StatusFreeAgent)
	if err != nil {
		t.Fatalf("list free agents: %v", err)
	}
	if len(freeAgents) != 1 || freeAgents[0].ID != "player-1" {
		t.Fatalf("unexpected free agents: %+v", freeAgents)
	}

	active, err := repo.List(context.Background(), player.StatusActive)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].ID != "player-2" {
		t.Fatalf("unexpected active players: %+v", active)
	}

	if next.lists != 2 {
		t.Fatalf("expected distinct cache entries per status, got %d backing calls", next.lists)
	}
}

func TestTeamRepository_ReturnsCopies(t *testing.T) {
	t.Parallel()

	next := &countingTeamRepository{teams: []team.Team{{ID: "team-1", Name: "Harbor City"}}}
	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))

	first, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	first[0].Name = "mutated"

	second, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list teams again: %v", err)
	}
	if second[0].Name != "Harbor City" {
		t.Fatalf("cached slice was mutated by caller: %+v", second)
	}
}
