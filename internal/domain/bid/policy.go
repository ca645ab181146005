package bid

import (
	"sort"
	"time"
)

// Resolution is the computed terminal outcome for one player's expired bid
// group. When WinnerID is empty the whole group finalizes as expired without
// a winner and the player keeps their current assignment.
type Resolution struct {
	PlayerID     string
	WinnerID     string
	WinnerTeamID string
	Amount       int64
	LoserIDs     []string
	ExpiredIDs   []string
}

// Resolve picks the winning bid among a player's unfinalized bids at sweep
// time. Highest amount wins; ties break on earliest placement. Bids still
// active at the cutoff are left alone for a later sweep.
func Resolve(playerID string, bids []Bid, now time.Time) (Resolution, bool) {
	expired := make([]Bid, 0, len(bids))
	for _, b := range bids {
		if b.PlayerID != playerID {
			continue
		}
		if b.Expired(now) {
			expired = append(expired, b)
		}
	}
	if len(expired) == 0 {
		return Resolution{}, false
	}

	sort.SliceStable(expired, func(i, j int) bool {
		if expired[i].Amount != expired[j].Amount {
			return expired[i].Amount > expired[j].Amount
		}
		return expired[i].PlacedAt.Before(expired[j].PlacedAt)
	})

	winner := expired[0]
	out := Resolution{
		PlayerID:     playerID,
		WinnerID:     winner.ID,
		WinnerTeamID: winner.TeamID,
		Amount:       winner.Amount,
	}
	for _, b := range expired[1:] {
		out.LoserIDs = append(out.LoserIDs, b.ID)
	}

	return out, true
}

// WithoutWinner demotes the resolution to expired-without-winner, used when
// the winning team no longer exists by the time the sweep runs.
func (r Resolution) WithoutWinner() Resolution {
	out := Resolution{PlayerID: r.PlayerID}
	if r.WinnerID != "" {
		out.ExpiredIDs = append(out.ExpiredIDs, r.WinnerID)
	}
	out.ExpiredIDs = append(out.ExpiredIDs, r.LoserIDs...)
	out.ExpiredIDs = append(out.ExpiredIDs, r.ExpiredIDs...)

	return out
}
