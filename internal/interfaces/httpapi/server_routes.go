package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /teams", handler.ListTeams)
	mux.HandleFunc("GET /players", handler.ListPlayers)
	mux.HandleFunc("GET /players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /standings", handler.ListStandings)
	mux.HandleFunc("GET /bidding/status", handler.BiddingStatus)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /bids", RequireAuth(verifier, http.HandlerFunc(handler.PlaceBid)))
	mux.Handle("GET /bids", RequireAuth(verifier, http.HandlerFunc(handler.ListBids)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /admin/bids/extend", RequireAuth(verifier, RequireAdmin(http.HandlerFunc(handler.ExtendBid))))
	mux.Handle("POST /admin/bids/cancel", RequireAuth(verifier, RequireAdmin(http.HandlerFunc(handler.CancelBid))))
	mux.Handle("POST /admin/settings/bidding", RequireAuth(verifier, RequireAdmin(http.HandlerFunc(handler.UpdateBiddingSettings))))
}

func registerCronRoutes(mux *http.ServeMux, handler *Handler, cronSecret string) {
	mux.Handle("POST /cron/process-expired-bids", RequireCronSecret(cronSecret, http.HandlerFunc(handler.ProcessExpiredBids)))
}
