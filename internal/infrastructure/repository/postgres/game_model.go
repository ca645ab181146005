package postgres

import (
	"database/sql"
	"time"

	"github.com/leagueops/league-office/internal/domain/game"
)

type gameTableModel struct {
	ID         int64         `db:"id"`
	PublicID   string        `db:"public_id"`
	HomeTeamID string        `db:"home_team_public_id"`
	AwayTeamID string        `db:"away_team_public_id"`
	HomeScore  sql.NullInt64 `db:"home_score"`
	AwayScore  sql.NullInt64 `db:"away_score"`
	Status     string        `db:"status"`
	PlayedAt   *time.Time    `db:"played_at"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
}

func (m gameTableModel) toDomain() game.Game {
	out := game.Game{
		ID:         m.PublicID,
		HomeTeamID: m.HomeTeamID,
		AwayTeamID: m.AwayTeamID,
		Status:     m.Status,
	}
	if m.HomeScore.Valid {
		score := int(m.HomeScore.Int64)
		out.HomeScore = &score
	}
	if m.AwayScore.Valid {
		score := int(m.AwayScore.Int64)
		out.AwayScore = &score
	}
	if m.PlayedAt != nil {
		out.PlayedAt = *m.PlayedAt
	}
	return out
}
