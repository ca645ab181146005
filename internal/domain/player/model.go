package player

import "fmt"

// Status tracks where a player currently sits in the league roster lifecycle.
type Status string

const (
	StatusActive    Status = "active"
	StatusFreeAgent Status = "free_agent"
	StatusWaived    Status = "waived"
	StatusRetired   Status = "retired"
)

var AllStatuses = map[Status]struct{}{
	StatusActive:    {},
	StatusFreeAgent: {},
	StatusWaived:    {},
	StatusRetired:   {},
}

// Player is an athlete registered with the league. TeamID is empty while the
// player is a free agent.
type Player struct {
	ID       string
	Name     string
	Position string
	Status   Status
	TeamID   string
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllStatuses[p.Status]; !ok {
		return fmt.Errorf("invalid player status: %s", p.Status)
	}
	if p.Status == StatusActive && p.TeamID == "" {
		return fmt.Errorf("active player requires a team assignment")
	}

	return nil
}

// Biddable reports whether teams may place bids on the player.
func (p Player) Biddable() bool {
	return p.Status == StatusFreeAgent || p.Status == StatusWaived
}
