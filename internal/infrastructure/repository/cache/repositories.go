// Package cache wraps the postgres repositories with a short-TTL read
// cache. Only the league read model goes through these decorators; the bid
// and sweep paths always read fresh rows.
package cache

import (
	"context"

	"github.com/leagueops/league-office/internal/domain/game"
	"github.com/leagueops/league-office/internal/domain/player"
	"github.com/leagueops/league-office/internal/domain/team"
	basecache "github.com/leagueops/league-office/internal/platform/cache"
)

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, "team:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	key := "team:id:" + teamID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value, cached.exists, nil
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context, status player.Status) ([]player.Player, error) {
	key := "player:list:" + string(status)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx, status)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	key := "player:id:" + playerID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return nil, err
		}
		return cachedPlayerByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayerByID)
	return cached.value, cached.exists, nil
}

type cachedPlayerByID struct {
	value  player.Player
	exists bool
}

type GameRepository struct {
	next  game.Repository
	cache *basecache.Store
}

func NewGameRepository(next game.Repository, cache *basecache.Store) *GameRepository {
	return &GameRepository{next: next, cache: cache}
}

func (r *GameRepository) List(ctx context.Context) ([]game.Game, error) {
	v, err := r.cache.GetOrLoad(ctx, "game:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]game.Game(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]game.Game)
	return append([]game.Game(nil), items...), nil
}
