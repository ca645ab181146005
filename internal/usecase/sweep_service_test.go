package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leagueops/league-office/internal/domain/bid"
	"github.com/leagueops/league-office/internal/domain/team"
)

func TestSweepService_ProcessExpired_NoExpiredBids(t *testing.T) {
	t.Parallel()

	svc := NewSweepService(&stubBidRepository{}, &stubTeamRepository{}, 4, nil)

	result, err := svc.ProcessExpired(context.Background())
	if err != nil {
		t.Fatalf("ProcessExpired error: %v", err)
	}
	if result.Processed != 0 {
		t.Fatalf("expected 0 processed, got %d", result.Processed)
	}
	if result.Errors == nil || len(result.Errors) != 0 {
		t.Fatalf("expected empty error list, got %v", result.Errors)
	}
}

func TestSweepService_ProcessExpired_ResolvesHighestBid(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	bidRepo := &stubBidRepository{
		expiredIDs: []string{"p1"},
		byPlayer: map[string][]bid.Bid{
			"p1": {
				{ID: "b1", PlayerID: "p1", TeamID: "t1", Amount: 300, PlacedAt: now.Add(-5 * time.Hour), ExpiresAt: now.Add(-time.Hour)},
				{ID: "b2", PlayerID: "p1", TeamID: "t2", Amount: 500, PlacedAt: now.Add(-4 * time.Hour), ExpiresAt: now.Add(-time.Hour)},
			},
		},
	}
	teamRepo := &stubTeamRepository{byID: map[string]team.Team{
		"t1": {ID: "t1"},
		"t2": {ID: "t2"},
	}}

	svc := NewSweepService(bidRepo, teamRepo, 4, nil)
	svc.now = func() time.Time { return now }

	result, err := svc.ProcessExpired(context.Background())
	if err != nil {
		t.Fatalf("ProcessExpired error: %v", err)
	}
	if result.Processed != 2 {
		t.Fatalf("expected 2 processed bids, got %d", result.Processed)
	}
	if len(result.Details) != 1 {
		t.Fatalf("expected 1 detail, got %d", len(result.Details))
	}

	detail := result.Details[0]
	if detail.Status != sweepStatusResolved {
		t.Fatalf("unexpected status: %s", detail.Status)
	}
	if detail.WinningBidID != "b2" || detail.WinnerTeamID != "t2" || detail.Amount != 500 {
		t.Fatalf("unexpected winner: %+v", detail)
	}

	if len(bidRepo.finalized) != 1 {
		t.Fatalf("expected 1 finalized resolution, got %d", len(bidRepo.finalized))
	}
	resolution := bidRepo.finalized[0]
	if resolution.WinnerID != "b2" || len(resolution.LoserIDs) != 1 || resolution.LoserIDs[0] != "b1" {
		t.Fatalf("unexpected resolution: %+v", resolution)
	}
}

func TestSweepService_ProcessExpired_TieBreaksOnEarliestPlacement(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	bidRepo := &stubBidRepository{
		expiredIDs: []string{"p1"},
		byPlayer: map[string][]bid.Bid{
			"p1": {
				{ID: "late", PlayerID: "p1", TeamID: "t2", Amount: 500, PlacedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Minute)},
				{ID: "early", PlayerID: "p1", TeamID: "t1", Amount: 500, PlacedAt: now.Add(-6 * time.Hour), ExpiresAt: now.Add(-time.Minute)},
			},
		},
	}
	teamRepo := &stubTeamRepository{byID: map[string]team.Team{
		"t1": {ID: "t1"},
		"t2": {ID: "t2"},
	}}

	svc := NewSweepService(bidRepo, teamRepo, 1, nil)
	svc.now = func() time.Time { return now }

	result, err := svc.ProcessExpired(context.Background())
	if err != nil {
		t.Fatalf("ProcessExpired error: %v", err)
	}
	if result.Details[0].WinningBidID != "early" {
		t.Fatalf("expected earliest placement to win the tie, got %+v", result.Details[0])
	}
}

func TestSweepService_ProcessExpired_MissingWinnerTeamExpiresGroup(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	bidRepo := &stubBidRepository{
		expiredIDs: []string{"p1"},
		byPlayer: map[string][]bid.Bid{
			"p1": {
				{ID: "b1", PlayerID: "p1", TeamID: "gone", Amount: 900, PlacedAt: now.Add(-3 * time.Hour), ExpiresAt: now.Add(-time.Minute)},
			},
		},
	}
	teamRepo := &stubTeamRepository{byID: map[string]team.Team{}}

	svc := NewSweepService(bidRepo, teamRepo, 2, nil)
	svc.now = func() time.Time { return now }

	result, err := svc.ProcessExpired(context.Background())
	if err != nil {
		t.Fatalf("ProcessExpired error: %v", err)
	}
	if result.Details[0].Status != sweepStatusExpired {
		t.Fatalf("expected expired status, got %+v", result.Details[0])
	}
	if len(bidRepo.finalized) != 1 || bidRepo.finalized[0].WinnerID != "" {
		t.Fatalf("expected winnerless resolution, got %+v", bidRepo.finalized)
	}
	if got := bidRepo.finalized[0].ExpiredIDs; len(got) != 1 || got[0] != "b1" {
		t.Fatalf("expected b1 expired, got %v", got)
	}
}

func TestSweepService_ProcessExpired_FailedPlayerDoesNotBlockOthers(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	bidRepo := &stubBidRepository{
		expiredIDs: []string{"p1", "p2"},
		byPlayer: map[string][]bid.Bid{
			"p1": {
				{ID: "b1", PlayerID: "p1", TeamID: "t1", Amount: 100, PlacedAt: now.Add(-3 * time.Hour), ExpiresAt: now.Add(-time.Minute)},
			},
			"p2": {
				{ID: "b2", PlayerID: "p2", TeamID: "t1", Amount: 100, PlacedAt: now.Add(-3 * time.Hour), ExpiresAt: now.Add(-time.Minute)},
			},
		},
		finalizeErr: map[string]error{
			"p1": errors.New("deadlock detected"),
		},
	}
	teamRepo := &stubTeamRepository{byID: map[string]team.Team{"t1": {ID: "t1"}}}

	svc := NewSweepService(bidRepo, teamRepo, 4, nil)
	svc.now = func() time.Time { return now }

	result, err := svc.ProcessExpired(context.Background())
	if err != nil {
		t.Fatalf("ProcessExpired error: %v", err)
	}
	if result.Processed != 1 {
		t.Fatalf("expected 1 processed bid, got %d", result.Processed)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 sweep error, got %v", result.Errors)
	}
	if result.Details[0].PlayerID != "p1" || result.Details[0].Status != sweepStatusFailed {
		t.Fatalf("expected p1 to fail, got %+v", result.Details[0])
	}
	if result.Details[1].PlayerID != "p2" || result.Details[1].Status != sweepStatusResolved {
		t.Fatalf("expected p2 to resolve, got %+v", result.Details[1])
	}
}

func TestNormalizeSweepWorkerCount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		requested int
		tasks     int
		want      int
	}{
		{requested: 0, tasks: 10, want: defaultSweepWorkers},
		{requested: 8, tasks: 3, want: 3},
		{requested: 100, tasks: 100, want: maxSweepWorkers},
		{requested: 2, tasks: 0, want: 2},
	}
	for _, tc := range cases {
		if got := normalizeSweepWorkerCount(tc.requested, tc.tasks); got != tc.want {
			t.Fatalf("normalizeSweepWorkerCount(%d, %d)=%d, want %d", tc.requested, tc.tasks, got, tc.want)
		}
	}
}
