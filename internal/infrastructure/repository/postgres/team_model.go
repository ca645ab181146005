package postgres

import (
	"time"

	"github.com/leagueops/league-office/internal/domain/team"
)

type teamTableModel struct {
	ID            int64      `db:"id"`
	PublicID      string     `db:"public_id"`
	Name          string     `db:"name"`
	Short         string     `db:"short"`
	ManagerUserID string     `db:"manager_user_id"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:            m.PublicID,
		Name:          m.Name,
		Short:         m.Short,
		ManagerUserID: m.ManagerUserID,
	}
}
