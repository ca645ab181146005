package httpapi

import (
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/leagueops/league-office/internal/usecase"
)

// BiddingStatus never fails: when settings are unreadable it reports bidding
// disabled so clients stop offering the bid flow.
func (h *Handler) BiddingStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BiddingStatus")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, biddingStatusDTO{
		Enabled: h.settingsService.BiddingEnabled(ctx),
	})
}

func (h *Handler) UpdateBiddingSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateBiddingSettings")
	defer span.End()

	var req updateBiddingSettingsRequest
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

	updated, err := h.settingsService.UpdateBidding(ctx, usecase.UpdateBiddingSettingsInput{
		Enabled:     req.Enabled,
		BidDuration: time.Duration(req.DurationHours) * time.Hour,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update bidding settings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, biddingSettingsDTO{
		Enabled:       updated.Enabled,
		DurationHours: int(updated.BidDuration / time.Hour),
	})
}

type updateBiddingSettingsRequest struct {
	Enabled       bool `json:"enabled"`
	DurationHours int  `json:"durationHours" validate:"omitempty,min=1,max=168"`
}

type biddingStatusDTO struct {
	Enabled bool `json:"enabled"`
}

type biddingSettingsDTO struct {
	Enabled       bool `json:"enabled"`
	DurationHours int  `json:"durationHours"`
}
