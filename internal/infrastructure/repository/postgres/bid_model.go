package postgres

import (
	"database/sql"
	"time"

	"github.com/leagueops/league-office/internal/domain/bid"
)

type bidTableModel struct {
	ID           int64          `db:"id"`
	PublicID     string         `db:"public_id"`
	PlayerID     string         `db:"player_public_id"`
	TeamID       string         `db:"team_public_id"`
	Amount       int64          `db:"amount"`
	PlacedAt     time.Time      `db:"placed_at"`
	ExpiresAt    time.Time      `db:"bid_expires_at"`
	Finalized    bool           `db:"finalized"`
	Outcome      sql.NullString `db:"outcome"`
	WinnerTeamID sql.NullString `db:"winner_team_public_id"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

type bidInsertModel struct {
	PublicID  string    `db:"public_id"`
	PlayerID  string    `db:"player_public_id"`
	TeamID    string    `db:"team_public_id"`
	Amount    int64     `db:"amount"`
	PlacedAt  time.Time `db:"placed_at"`
	ExpiresAt time.Time `db:"bid_expires_at"`
}

func (m bidTableModel) toDomain() bid.Bid {
	return bid.Bid{
		ID:           m.PublicID,
		PlayerID:     m.PlayerID,
		TeamID:       m.TeamID,
		Amount:       m.Amount,
		PlacedAt:     m.PlacedAt,
		ExpiresAt:    m.ExpiresAt,
		Finalized:    m.Finalized,
		Outcome:      bid.Outcome(nullStringValue(m.Outcome)),
		WinnerTeamID: nullStringValue(m.WinnerTeamID),
	}
}
