package httpapi

import (
	"net/http"
)

// ProcessExpiredBids runs one sweep over expired bids. The scheduler calls
// this on an interval; a rerun after partial failure only touches the groups
// still unfinalized.
func (h *Handler) ProcessExpiredBids(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ProcessExpiredBids")
	defer span.End()

	result, err := h.sweepService.ProcessExpired(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "expired bid sweep failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
