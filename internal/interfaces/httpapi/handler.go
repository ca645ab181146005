package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/leagueops/league-office/internal/platform/logging"
	"github.com/leagueops/league-office/internal/usecase"
)

type Handler struct {
	bidService       *usecase.BidService
	sweepService     *usecase.SweepService
	settingsService  *usecase.SettingsService
	leagueService    *usecase.LeagueService
	standingsService *usecase.StandingsService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	bidService *usecase.BidService,
	sweepService *usecase.SweepService,
	settingsService *usecase.SettingsService,
	leagueService *usecase.LeagueService,
	standingsService *usecase.StandingsService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		bidService:       bidService,
		sweepService:     sweepService,
		settingsService:  settingsService,
		leagueService:    leagueService,
		standingsService: standingsService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
