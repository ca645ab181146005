package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/leagueops/league-office/internal/domain/bid"
	"github.com/leagueops/league-office/internal/domain/team"
	"github.com/leagueops/league-office/internal/platform/logging"
)

const (
	sweepStatusResolved = "resolved"
	sweepStatusExpired  = "expired"
	sweepStatusFailed   = "failed"

	defaultSweepWorkers = 4
	maxSweepWorkers     = 16
)

type SweepResult struct {
	Processed   int           `json:"processed"`
	Errors      []string      `json:"errors"`
	WorkerCount int           `json:"workerCount"`
	Details     []SweepDetail `json:"details"`
}

type SweepDetail struct {
	PlayerID     string `json:"playerId"`
	Status       string `json:"status"`
	WinningBidID string `json:"winningBidId,omitempty"`
	WinnerTeamID string `json:"winnerTeamId,omitempty"`
	Amount       int64  `json:"amount,omitempty"`
	Bids         int    `json:"bids"`
	Message      string `json:"message,omitempty"`
}

// SweepService finalizes expired bids. Each player's bid group resolves in
// its own transaction, so one failing player never blocks the rest of the
// sweep; a failed group is retried on the next run.
type SweepService struct {
	bidRepo    bid.Repository
	teamRepo   team.Repository
	maxWorkers int
	logger     *logging.Logger
	now        func() time.Time
}

func NewSweepService(bidRepo bid.Repository, teamRepo team.Repository, maxWorkers int, logger *logging.Logger) *SweepService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &SweepService{
		bidRepo:    bidRepo,
		teamRepo:   teamRepo,
		maxWorkers: maxWorkers,
		logger:     logger,
		now:        time.Now,
	}
}

// ProcessExpired runs one sweep over every player holding expired bids.
// Processed counts the bids finalized this run. The sweep is idempotent:
// finalized groups match nothing on a rerun.
func (s *SweepService) ProcessExpired(ctx context.Context) (SweepResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SweepService.ProcessExpired")
	defer span.End()

	now := s.now().UTC()
	playerIDs, err := s.bidRepo.ListExpiredPlayerIDs(ctx, now)
	if err != nil {
		return SweepResult{}, fmt.Errorf("list expired players: %w", err)
	}

	workerCount := normalizeSweepWorkerCount(s.maxWorkers, len(playerIDs))
	result := SweepResult{
		Errors:      []string{},
		WorkerCount: workerCount,
		Details:     make([]SweepDetail, 0, len(playerIDs)),
	}
	if len(playerIDs) == 0 {
		return result, nil
	}

	details := make(chan SweepDetail, len(playerIDs))
	var processed atomic.Int64

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return SweepResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, playerID := range playerIDs {
		playerID := playerID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			detail := s.resolvePlayer(ctx, playerID, now)
			if detail.Status != sweepStatusFailed {
				processed.Add(int64(detail.Bids))
			}
			details <- detail
		}); err != nil {
			workers.Done()
			return SweepResult{}, fmt.Errorf("submit sweep task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(details)

	for detail := range details {
		result.Details = append(result.Details, detail)
		if detail.Status == sweepStatusFailed {
			result.Errors = append(result.Errors, fmt.Sprintf("player %s: %s", detail.PlayerID, detail.Message))
		}
	}

	sort.SliceStable(result.Details, func(i, j int) bool {
		return result.Details[i].PlayerID < result.Details[j].PlayerID
	})
	sort.Strings(result.Errors)

	result.Processed = int(processed.Load())
	s.logger.InfoContext(ctx, "expired bid sweep finished",
		"players", len(playerIDs),
		"processed", result.Processed,
		"errors", len(result.Errors),
	)
	return result, nil
}

func (s *SweepService) resolvePlayer(ctx context.Context, playerID string, now time.Time) SweepDetail {
	detail := SweepDetail{PlayerID: playerID}

	bids, err := s.bidRepo.ListUnfinalizedByPlayer(ctx, playerID)
	if err != nil {
		detail.Status = sweepStatusFailed
		detail.Message = err.Error()
		return detail
	}

	resolution, ok := bid.Resolve(playerID, bids, now)
	if !ok {
		// Another sweep got here first.
		detail.Status = sweepStatusExpired
		return detail
	}
	detail.Bids = 1 + len(resolution.LoserIDs) + len(resolution.ExpiredIDs)

	if resolution.WinnerID != "" {
		_, exists, err := s.teamRepo.GetByID(ctx, resolution.WinnerTeamID)
		if err != nil {
			detail.Status = sweepStatusFailed
			detail.Message = fmt.Sprintf("get winning team: %v", err)
			return detail
		}
		if !exists {
			s.logger.WarnContext(ctx, "winning team no longer exists, expiring bid group",
				"playerId", playerID,
				"teamId", resolution.WinnerTeamID,
			)
			resolution = resolution.WithoutWinner()
		}
	}

	if err := s.bidRepo.Finalize(ctx, resolution); err != nil {
		detail.Status = sweepStatusFailed
		detail.Message = err.Error()
		return detail
	}

	if resolution.WinnerID == "" {
		detail.Status = sweepStatusExpired
		return detail
	}

	detail.Status = sweepStatusResolved
	detail.WinningBidID = resolution.WinnerID
	detail.WinnerTeamID = resolution.WinnerTeamID
	detail.Amount = resolution.Amount
	return detail
}

func normalizeSweepWorkerCount(requested, tasks int) int {
	count := requested
	if count <= 0 {
		count = defaultSweepWorkers
	}
	if count > maxSweepWorkers {
		count = maxSweepWorkers
	}
	if tasks > 0 && count > tasks {
		count = tasks
	}
	if count < 1 {
		count = 1
	}
	return count
}
