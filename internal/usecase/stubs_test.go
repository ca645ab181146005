package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/leagueops/league-office/internal/domain/bid"
	"github.com/leagueops/league-office/internal/domain/game"
	"github.com/leagueops/league-office/internal/domain/player"
	"github.com/leagueops/league-office/internal/domain/settings"
	"github.com/leagueops/league-office/internal/domain/team"
)

type stubBidRepository struct {
	mu sync.Mutex

	byID          map[string]bid.Bid
	byPlayer      map[string][]bid.Bid
	expiredIDs    []string
	insertErr     error
	listErr       error
	finalizeErr   map[string]error
	inserted      []bid.Bid
	finalized     []bid.Resolution
	extendMissing bool
	cancelMissing bool
}

func (s *stubBidRepository) Insert(_ context.Context, b bid.Bid) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.mu.Lock()
	s.inserted = append(s.inserted, b)
	s.mu.Unlock()
	return nil
}

func (s *stubBidRepository) GetByID(_ context.Context, bidID string) (bid.Bid, bool, error) {
	item, ok := s.byID[bidID]
	return item, ok, nil
}

func (s *stubBidRepository) ListActiveByPlayer(_ context.Context, playerID string, now time.Time) ([]bid.Bid, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []bid.Bid
	for _, b := range s.byPlayer[playerID] {
		if b.Active(now) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *stubBidRepository) ListUnfinalizedByPlayer(_ context.Context, playerID string) ([]bid.Bid, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []bid.Bid
	for _, b := range s.byPlayer[playerID] {
		if !b.Finalized {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *stubBidRepository) ListExpiredPlayerIDs(_ context.Context, _ time.Time) ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.expiredIDs, nil
}

func (s *stubBidRepository) ExtendExpiry(_ context.Context, bidID string, hours int) (bid.Bid, bool, error) {
	if s.extendMissing {
		return bid.Bid{}, false, nil
	}
	item, ok := s.byID[bidID]
	if !ok || item.Finalized {
		return bid.Bid{}, false, nil
	}
	item.ExpiresAt = item.ExpiresAt.Add(time.Duration(hours) * time.Hour)
	return item, true, nil
}

func (s *stubBidRepository) Cancel(_ context.Context, bidID string) (bid.Bid, bool, error) {
	if s.cancelMissing {
		return bid.Bid{}, false, nil
	}
	item, ok := s.byID[bidID]
	if !ok || item.Finalized {
		return bid.Bid{}, false, nil
	}
	item.Finalized = true
	item.Outcome = bid.OutcomeCancelled
	return item, true, nil
}

func (s *stubBidRepository) Finalize(_ context.Context, r bid.Resolution) error {
	if err := s.finalizeErr[r.PlayerID]; err != nil {
		return err
	}
	s.mu.Lock()
	s.finalized = append(s.finalized, r)
	s.mu.Unlock()
	return nil
}

type stubPlayerRepository struct {
	byID    map[string]player.Player
	listErr error
}

func (s *stubPlayerRepository) List(_ context.Context, status player.Status) ([]player.Player, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []player.Player
	for _, p := range s.byID {
		if status == "" || p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubPlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	item, ok := s.byID[playerID]
	return item, ok, nil
}

type stubTeamRepository struct {
	byID   map[string]team.Team
	getErr error
}

func (s *stubTeamRepository) List(_ context.Context) ([]team.Team, error) {
	var out []team.Team
	for _, t := range s.byID {
		out = append(out, t)
	}
	return out, nil
}

func (s *stubTeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	if s.getErr != nil {
		return team.Team{}, false, s.getErr
	}
	item, ok := s.byID[teamID]
	return item, ok, nil
}

type stubGameRepository struct {
	games []game.Game
}

func (s *stubGameRepository) List(_ context.Context) ([]game.Game, error) {
	return s.games, nil
}

type stubSettingsRepository struct {
	bidding settings.Bidding
	loadErr error
	saveErr error
	saved   []settings.Bidding
	loads   int
}

func (s *stubSettingsRepository) LoadBidding(_ context.Context) (settings.Bidding, error) {
	s.loads++
	if s.loadErr != nil {
		return settings.Bidding{}, s.loadErr
	}
	return s.bidding, nil
}

func (s *stubSettingsRepository) SaveBidding(_ context.Context, b settings.Bidding) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, b)
	s.bidding = b
	return nil
}
