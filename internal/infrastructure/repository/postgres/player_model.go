package postgres

import (
	"database/sql"
	"time"

	"github.com/leagueops/league-office/internal/domain/player"
)

type playerTableModel struct {
	ID        int64          `db:"id"`
	PublicID  string         `db:"public_id"`
	Name      string         `db:"name"`
	Position  string         `db:"position"`
	Status    string         `db:"status"`
	TeamID    sql.NullString `db:"team_public_id"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
	DeletedAt *time.Time     `db:"deleted_at"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:       m.PublicID,
		Name:     m.Name,
		Position: m.Position,
		Status:   player.Status(m.Status),
		TeamID:   nullStringValue(m.TeamID),
	}
}
