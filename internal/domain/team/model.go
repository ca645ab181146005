package team

import "fmt"

// Team is a franchise in the league, run by a single manager account.
type Team struct {
	ID            string
	Name          string
	Short         string
	ManagerUserID string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
