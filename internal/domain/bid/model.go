package bid

import (
	"fmt"
	"time"
)

// Outcome is the terminal state recorded when a bid is finalized.
type Outcome string

const (
	OutcomeWon       Outcome = "won"
	OutcomeLost      Outcome = "lost"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeExpired   Outcome = "expired"
)

// Bid is one team's standing offer for a free agent's rights. A bid stays
// active until its expiry passes and the sweep finalizes it, or until an admin
// cancels it. Rows are never deleted; Finalized plus Outcome record how the
// bid ended.
type Bid struct {
	ID           string
	PlayerID     string
	TeamID       string
	Amount       int64
	PlacedAt     time.Time
	ExpiresAt    time.Time
	Finalized    bool
	Outcome      Outcome
	WinnerTeamID string
}

func (b Bid) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("bid id is required")
	}
	if b.PlayerID == "" {
		return fmt.Errorf("bid player id is required")
	}
	if b.TeamID == "" {
		return fmt.Errorf("bid team id is required")
	}
	if b.Amount <= 0 {
		return fmt.Errorf("bid amount must be greater than zero")
	}
	if b.ExpiresAt.IsZero() || !b.ExpiresAt.After(b.PlacedAt) {
		return fmt.Errorf("bid expiry must be after placement time")
	}

	return nil
}

// Active reports whether the bid still drives the player's current price.
func (b Bid) Active(now time.Time) bool {
	return !b.Finalized && b.ExpiresAt.After(now)
}

// Expired reports whether the bid is past expiry but not yet finalized.
func (b Bid) Expired(now time.Time) bool {
	return !b.Finalized && !b.ExpiresAt.After(now)
}
