package bid

import (
	"context"
	"errors"
	"time"
)

// ErrActiveBidExists is returned when a team already has an unfinalized bid
// on the same player. The schema's partial unique index backs this.
var ErrActiveBidExists = errors.New("team already has an active bid for this player")

// Repository describes bid persistence needs from use cases.
type Repository interface {
	Insert(ctx context.Context, b Bid) error
	GetByID(ctx context.Context, bidID string) (Bid, bool, error)
	ListActiveByPlayer(ctx context.Context, playerID string, now time.Time) ([]Bid, error)
	ListUnfinalizedByPlayer(ctx context.Context, playerID string) ([]Bid, error)
	// ListExpiredPlayerIDs returns the distinct players holding at least one
	// bid past expiry that the sweep has not finalized yet.
	ListExpiredPlayerIDs(ctx context.Context, cutoff time.Time) ([]string, error)
	// ExtendExpiry pushes an unfinalized bid's expiry forward by whole hours.
	// The second return is false when the bid is missing or already finalized.
	ExtendExpiry(ctx context.Context, bidID string, hours int) (Bid, bool, error)
	// Cancel finalizes an unfinalized bid without a winner. The return mirrors
	// ExtendExpiry.
	Cancel(ctx context.Context, bidID string) (Bid, bool, error)
	// Finalize applies a sweep resolution in one transaction: the winning bid,
	// its competitors, and the player's reassignment all commit together.
	// Guarded by finalized = FALSE predicates so repeated sweeps are no-ops.
	Finalize(ctx context.Context, r Resolution) error
}
