package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/leagueops/league-office/internal/domain/settings"
	"github.com/leagueops/league-office/internal/platform/cache"
	"github.com/leagueops/league-office/internal/platform/logging"
)

const biddingSettingsCacheKey = "settings:bidding"

type UpdateBiddingSettingsInput struct {
	Enabled     bool
	BidDuration time.Duration
}

// SettingsService serves the typed bidding settings record. Reads go through
// a short-TTL cache so the bid handlers and the sweep do not hit the settings
// table on every request; writes invalidate the cached entry.
type SettingsService struct {
	repo   settings.Repository
	cache  *cache.Store
	logger *logging.Logger
}

func NewSettingsService(repo settings.Repository, store *cache.Store, logger *logging.Logger) *SettingsService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &SettingsService{
		repo:   repo,
		cache:  store,
		logger: logger,
	}
}

func (s *SettingsService) Bidding(ctx context.Context) (settings.Bidding, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettingsService.Bidding")
	defer span.End()

	if s.cache == nil {
		return s.loadBidding(ctx)
	}

	value, err := s.cache.GetOrLoad(ctx, biddingSettingsCacheKey, func(ctx context.Context) (any, error) {
		return s.loadBidding(ctx)
	})
	if err != nil {
		return settings.Bidding{}, err
	}

	item, ok := value.(settings.Bidding)
	if !ok {
		return s.loadBidding(ctx)
	}
	return item, nil
}

// BiddingEnabled reports whether bids may be placed right now. When the
// settings record cannot be loaded it returns false so that an outage never
// opens the bidding window by accident.
func (s *SettingsService) BiddingEnabled(ctx context.Context) bool {
	item, err := s.Bidding(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "bidding settings unavailable, reporting disabled", "error", err)
		return false
	}
	return item.Enabled
}

func (s *SettingsService) UpdateBidding(ctx context.Context, input UpdateBiddingSettingsInput) (settings.Bidding, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettingsService.UpdateBidding")
	defer span.End()

	item := settings.Bidding{
		Enabled:     input.Enabled,
		BidDuration: input.BidDuration,
	}
	if item.BidDuration == 0 {
		item.BidDuration = settings.DefaultBidDuration
	}
	if err := item.Validate(); err != nil {
		return settings.Bidding{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.SaveBidding(ctx, item); err != nil {
		return settings.Bidding{}, fmt.Errorf("save bidding settings: %w", err)
	}

	if s.cache != nil {
		s.cache.Delete(ctx, biddingSettingsCacheKey)
	}

	s.logger.InfoContext(ctx, "bidding settings updated",
		"enabled", item.Enabled,
		"bidDuration", item.BidDuration.String(),
	)
	return item, nil
}

func (s *SettingsService) loadBidding(ctx context.Context) (settings.Bidding, error) {
	item, err := s.repo.LoadBidding(ctx)
	if err != nil {
		return settings.Bidding{}, fmt.Errorf("load bidding settings: %w", err)
	}
	return item, nil
}
