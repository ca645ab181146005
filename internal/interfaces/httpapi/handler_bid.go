package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/leagueops/league-office/internal/domain/bid"
	"github.com/leagueops/league-office/internal/usecase"
)

func (h *Handler) PlaceBid(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PlaceBid")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req placeBidRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	// Managers bid for their own franchise; the payload team must match the
	// session unless league staff is acting on a team's behalf.
	if !principal.IsAdmin() && principal.TeamID != "" && principal.TeamID != req.TeamID {
		writeError(ctx, w, fmt.Errorf("%w: cannot place a bid for another team", usecase.ErrForbidden))
		return
	}

	item, err := h.bidService.PlaceBid(ctx, usecase.PlaceBidInput{
		PlayerID: req.PlayerID,
		TeamID:   req.TeamID,
		Amount:   req.BidAmount,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "place bid failed",
			"player_id", req.PlayerID,
			"team_id", req.TeamID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, bidToDTO(item))
}

func (h *Handler) ListBids(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListBids")
	defer span.End()

	playerID := strings.TrimSpace(r.URL.Query().Get("playerId"))
	items, err := h.bidService.ListPlayerBids(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "list bids failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]bidDTO, 0, len(items))
	for _, item := range items {
		out = append(out, bidToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ExtendBid(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExtendBid")
	defer span.End()

	var req extendBidRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.bidService.ExtendBid(ctx, req.BidID, req.HoursToAdd)
	if err != nil {
		h.logger.WarnContext(ctx, "extend bid failed", "bid_id", req.BidID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, bidToDTO(item))
}

func (h *Handler) CancelBid(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelBid")
	defer span.End()

	var req cancelBidRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.bidService.CancelBid(ctx, req.BidID)
	if err != nil {
		h.logger.WarnContext(ctx, "cancel bid failed", "bid_id", req.BidID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, bidToDTO(item))
}

type placeBidRequest struct {
	PlayerID  string `json:"playerId" validate:"required"`
	TeamID    string `json:"teamId" validate:"required"`
	BidAmount int64  `json:"bidAmount" validate:"required,gt=0"`
}

type extendBidRequest struct {
	BidID      string `json:"bidId" validate:"required"`
	HoursToAdd int    `json:"hoursToAdd" validate:"required,min=1,max=168"`
}

type cancelBidRequest struct {
	BidID string `json:"bidId" validate:"required"`
}

type bidDTO struct {
	ID           string `json:"id"`
	PlayerID     string `json:"playerId"`
	TeamID       string `json:"teamId"`
	Amount       int64  `json:"amount"`
	PlacedAt     string `json:"placedAt"`
	ExpiresAt    string `json:"expiresAt"`
	Finalized    bool   `json:"finalized"`
	Outcome      string `json:"outcome,omitempty"`
	WinnerTeamID string `json:"winnerTeamId,omitempty"`
}

func bidToDTO(v bid.Bid) bidDTO {
	return bidDTO{
		ID:           v.ID,
		PlayerID:     v.PlayerID,
		TeamID:       v.TeamID,
		Amount:       v.Amount,
		PlacedAt:     v.PlacedAt.UTC().Format(time.RFC3339),
		ExpiresAt:    v.ExpiresAt.UTC().Format(time.RFC3339),
		Finalized:    v.Finalized,
		Outcome:      string(v.Outcome),
		WinnerTeamID: v.WinnerTeamID,
	}
}
