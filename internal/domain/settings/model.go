package settings

import (
	"fmt"
	"time"
)

const (
	// DefaultBidDuration is the expiry window applied to new bids when no
	// override is stored.
	DefaultBidDuration = 4 * time.Hour

	MinBidDuration = 5 * time.Minute
	MaxBidDuration = 168 * time.Hour
)

// Bidding is the typed view over the bidding-related settings rows. It is
// loaded per request (through a short-TTL cache), never held across requests.
type Bidding struct {
	Enabled     bool
	BidDuration time.Duration
}

// Defaults returns the safe configuration used when settings rows are missing
// or unreadable: bidding disabled, standard duration.
func Defaults() Bidding {
	return Bidding{
		Enabled:     false,
		BidDuration: DefaultBidDuration,
	}
}

func (b Bidding) Validate() error {
	if b.BidDuration < MinBidDuration || b.BidDuration > MaxBidDuration {
		return fmt.Errorf("bid duration must be between %s and %s", MinBidDuration, MaxBidDuration)
	}

	return nil
}
