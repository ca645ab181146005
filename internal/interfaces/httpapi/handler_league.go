package httpapi

import (
	"net/http"
	"strings"

	"github.com/leagueops/league-office/internal/domain/player"
	"github.com/leagueops/league-office/internal/domain/standings"
	"github.com/leagueops/league-office/internal/domain/team"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.leagueService.ListTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	status := strings.TrimSpace(r.URL.Query().Get("status"))
	players, err := h.leagueService.ListPlayers(ctx, status)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "status", status, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	item, err := h.leagueService.GetPlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	table, err := h.standingsService.Table(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingRowDTO, 0, len(table))
	for _, row := range table {
		items = append(items, standingRowToDTO(row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type teamDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Short         string `json:"short"`
	ManagerUserID string `json:"managerUserId"`
}

type playerDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Status   string `json:"status"`
	TeamID   string `json:"teamId,omitempty"`
}

type standingRowDTO struct {
	Position     int    `json:"position"`
	TeamID       string `json:"teamId"`
	TeamName     string `json:"teamName"`
	Played       int    `json:"played"`
	Wins         int    `json:"wins"`
	Draws        int    `json:"draws"`
	Losses       int    `json:"losses"`
	GoalsFor     int    `json:"goalsFor"`
	GoalsAgainst int    `json:"goalsAgainst"`
	GoalDiff     int    `json:"goalDiff"`
	Points       int    `json:"points"`
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:            v.ID,
		Name:          v.Name,
		Short:         v.Short,
		ManagerUserID: v.ManagerUserID,
	}
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:       v.ID,
		Name:     v.Name,
		Position: v.Position,
		Status:   string(v.Status),
		TeamID:   v.TeamID,
	}
}

func standingRowToDTO(v standings.Row) standingRowDTO {
	return standingRowDTO{
		Position:     v.Position,
		TeamID:       v.TeamID,
		TeamName:     v.TeamName,
		Played:       v.Played,
		Wins:         v.Wins,
		Draws:        v.Draws,
		Losses:       v.Losses,
		GoalsFor:     v.GoalsFor,
		GoalsAgainst: v.GoalsAgainst,
		GoalDiff:     v.Diff(),
		Points:       v.Points,
	}
}
