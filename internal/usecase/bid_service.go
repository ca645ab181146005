package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/leagueops/league-office/internal/domain/bid"
	"github.com/leagueops/league-office/internal/domain/player"
	"github.com/leagueops/league-office/internal/domain/team"
	"github.com/leagueops/league-office/internal/platform/id"
	"github.com/leagueops/league-office/internal/platform/logging"
)

const (
	MinExtendHours = 1
	MaxExtendHours = 168
)

type PlaceBidInput struct {
	PlayerID string
	TeamID   string
	Amount   int64
}

// BidService owns the bid lifecycle outside the sweep: placement, admin
// extension, and admin cancellation.
type BidService struct {
	bidRepo    bid.Repository
	playerRepo player.Repository
	teamRepo   team.Repository
	settings   *SettingsService
	idGen      id.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewBidService(
	bidRepo bid.Repository,
	playerRepo player.Repository,
	teamRepo team.Repository,
	settingsSvc *SettingsService,
	idGen id.Generator,
	logger *logging.Logger,
) *BidService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &BidService{
		bidRepo:    bidRepo,
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		settings:   settingsSvc,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

// PlaceBid records a new bid for a free agent. The expiry window comes from
// the bidding settings; the one-active-bid-per-team-per-player rule is
// enforced by the repository's unique constraint, not by a read-then-write
// check here.
func (s *BidService) PlaceBid(ctx context.Context, input PlaceBidInput) (bid.Bid, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BidService.PlaceBid")
	defer span.End()

	input.PlayerID = strings.TrimSpace(input.PlayerID)
	input.TeamID = strings.TrimSpace(input.TeamID)
	if input.PlayerID == "" {
		return bid.Bid{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if input.TeamID == "" {
		return bid.Bid{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if input.Amount <= 0 {
		return bid.Bid{}, fmt.Errorf("%w: bid amount must be greater than zero", ErrInvalidInput)
	}

	cfg, err := s.settings.Bidding(ctx)
	if err != nil {
		return bid.Bid{}, fmt.Errorf("load bidding settings: %w", err)
	}
	if !cfg.Enabled {
		return bid.Bid{}, fmt.Errorf("%w: bidding is currently disabled", ErrInvalidInput)
	}

	if _, exists, err := s.teamRepo.GetByID(ctx, input.TeamID); err != nil {
		return bid.Bid{}, fmt.Errorf("get team: %w", err)
	} else if !exists {
		return bid.Bid{}, fmt.Errorf("%w: team=%s", ErrNotFound, input.TeamID)
	}

	playerItem, exists, err := s.playerRepo.GetByID(ctx, input.PlayerID)
	if err != nil {
		return bid.Bid{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return bid.Bid{}, fmt.Errorf("%w: player=%s", ErrNotFound, input.PlayerID)
	}
	if !playerItem.Biddable() {
		return bid.Bid{}, fmt.Errorf("%w: player %s is not open to bids", ErrInvalidInput, input.PlayerID)
	}

	now := s.now().UTC()
	active, err := s.bidRepo.ListActiveByPlayer(ctx, input.PlayerID, now)
	if err != nil {
		return bid.Bid{}, fmt.Errorf("list active bids: %w", err)
	}
	if high, ok := highestBid(active); ok && input.Amount <= high.Amount {
		return bid.Bid{}, fmt.Errorf("%w: bid must exceed the current high bid of %d", ErrInvalidInput, high.Amount)
	}

	bidID, err := s.idGen.NewID()
	if err != nil {
		return bid.Bid{}, fmt.Errorf("generate bid id: %w", err)
	}

	item := bid.Bid{
		ID:        bidID,
		PlayerID:  input.PlayerID,
		TeamID:    input.TeamID,
		Amount:    input.Amount,
		PlacedAt:  now,
		ExpiresAt: now.Add(cfg.BidDuration),
	}
	if err := item.Validate(); err != nil {
		return bid.Bid{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.bidRepo.Insert(ctx, item); err != nil {
		if errors.Is(err, bid.ErrActiveBidExists) {
			return bid.Bid{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return bid.Bid{}, fmt.Errorf("insert bid: %w", err)
	}

	s.logger.InfoContext(ctx, "bid placed",
		"bidId", item.ID,
		"playerId", item.PlayerID,
		"teamId", item.TeamID,
		"amount", item.Amount,
		"expiresAt", item.ExpiresAt.Format(time.RFC3339),
	)
	return item, nil
}

// ExtendBid pushes an active bid's expiry forward by whole hours. Finalized
// bids cannot be extended.
func (s *BidService) ExtendBid(ctx context.Context, bidID string, hours int) (bid.Bid, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BidService.ExtendBid")
	defer span.End()

	bidID = strings.TrimSpace(bidID)
	if bidID == "" {
		return bid.Bid{}, fmt.Errorf("%w: bid id is required", ErrInvalidInput)
	}
	if hours < MinExtendHours || hours > MaxExtendHours {
		return bid.Bid{}, fmt.Errorf("%w: hours to add must be between %d and %d", ErrInvalidInput, MinExtendHours, MaxExtendHours)
	}

	item, ok, err := s.bidRepo.ExtendExpiry(ctx, bidID, hours)
	if err != nil {
		return bid.Bid{}, fmt.Errorf("extend bid expiry: %w", err)
	}
	if !ok {
		return bid.Bid{}, fmt.Errorf("%w: active bid=%s", ErrNotFound, bidID)
	}

	s.logger.InfoContext(ctx, "bid extended",
		"bidId", item.ID,
		"hoursAdded", hours,
		"expiresAt", item.ExpiresAt.Format(time.RFC3339),
	)
	return item, nil
}

// CancelBid finalizes an active bid with a cancelled outcome. The row stays
// behind for auditing.
func (s *BidService) CancelBid(ctx context.Context, bidID string) (bid.Bid, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BidService.CancelBid")
	defer span.End()

	bidID = strings.TrimSpace(bidID)
	if bidID == "" {
		return bid.Bid{}, fmt.Errorf("%w: bid id is required", ErrInvalidInput)
	}

	item, ok, err := s.bidRepo.Cancel(ctx, bidID)
	if err != nil {
		return bid.Bid{}, fmt.Errorf("cancel bid: %w", err)
	}
	if !ok {
		return bid.Bid{}, fmt.Errorf("%w: active bid=%s", ErrNotFound, bidID)
	}

	s.logger.InfoContext(ctx, "bid cancelled", "bidId", item.ID, "playerId", item.PlayerID)
	return item, nil
}

// ListPlayerBids returns the active bids on a player, highest first.
func (s *BidService) ListPlayerBids(ctx context.Context, playerID string) ([]bid.Bid, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BidService.ListPlayerBids")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	if _, exists, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		return nil, fmt.Errorf("get player: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	items, err := s.bidRepo.ListActiveByPlayer(ctx, playerID, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("list active bids: %w", err)
	}

	return items, nil
}

func highestBid(bids []bid.Bid) (bid.Bid, bool) {
	var best bid.Bid
	found := false
	for _, b := range bids {
		if !found || b.Amount > best.Amount {
			best = b
			found = true
		}
	}
	return best, found
}
