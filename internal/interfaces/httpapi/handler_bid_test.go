package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/leagueops/league-office/internal/domain/bid"
	"github.com/leagueops/league-office/internal/domain/game"
	"github.com/leagueops/league-office/internal/domain/player"
	"github.com/leagueops/league-office/internal/domain/settings"
	"github.com/leagueops/league-office/internal/domain/team"
	"github.com/leagueops/league-office/internal/domain/user"
	"github.com/leagueops/league-office/internal/platform/id"
	"github.com/leagueops/league-office/internal/platform/logging"
	"github.com/leagueops/league-office/internal/usecase"
)

type routerBidRepo struct {
	inserted   []bid.Bid
	active     []bid.Bid
	expiredIDs []string
}

func (r *routerBidRepo) Insert(_ context.Context, b bid.Bid) error {
	r.inserted = append(r.inserted, b)
	return nil
}

func (r *routerBidRepo) GetByID(context.Context, string) (bid.Bid, bool, error) {
	return bid.Bid{}, false, nil
}

func (r *routerBidRepo) ListActiveByPlayer(_ context.Context, playerID string, _ time.Time) ([]bid.Bid, error) {
	out := make([]bid.Bid, 0, len(r.active))
	for _, item := range r.active {
		if item.PlayerID == playerID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *routerBidRepo) ListUnfinalizedByPlayer(context.Context, string) ([]bid.Bid, error) {
	return nil, nil
}

func (r *routerBidRepo) ListExpiredPlayerIDs(context.Context, time.Time) ([]string, error) {
	return r.expiredIDs, nil
}

func (r *routerBidRepo) ExtendExpiry(context.Context, string, int) (bid.Bid, bool, error) {
	return bid.Bid{}, false, nil
}

func (r *routerBidRepo) Cancel(context.Context, string) (bid.Bid, bool, error) {
	return bid.Bid{}, false, nil
}

func (r *routerBidRepo) Finalize(context.Context, bid.Resolution) error {
	return nil
}

type routerPlayerRepo struct {
	players map[string]player.Player
}

func (r *routerPlayerRepo) List(context.Context, player.Status) ([]player.Player, error) {
	return nil, nil
}

func (r *routerPlayerRepo) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	item, ok := r.players[playerID]
	return item, ok, nil
}

type routerTeamRepo struct {
	teams map[string]team.Team
}

func (r *routerTeamRepo) List(context.Context) ([]team.Team, error) {
	return nil, nil
}

func (r *routerTeamRepo) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	item, ok := r.teams[teamID]
	return item, ok, nil
}

type routerGameRepo struct{}

func (routerGameRepo) List(context.Context) ([]game.Game, error) { return nil, nil }

type routerSettingsRepo struct {
	bidding settings.Bidding
	err     error
}

func (r *routerSettingsRepo) LoadBidding(context.Context) (settings.Bidding, error) {
	return r.bidding, r.err
}

func (r *routerSettingsRepo) SaveBidding(_ context.Context, b settings.Bidding) error {
	r.bidding = b
	return nil
}

type routerFixture struct {
	bidRepo      *routerBidRepo
	settingsRepo *routerSettingsRepo
	verifier     stubVerifier
}

func newBidTestRouter(t *testing.T, fx routerFixture) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	if fx.bidRepo == nil {
		fx.bidRepo = &routerBidRepo{}
	}
	if fx.settingsRepo == nil {
		fx.settingsRepo = &routerSettingsRepo{
			bidding: settings.Bidding{Enabled: true, BidDuration: 4 * time.Hour},
		}
	}

	playerRepo := &routerPlayerRepo{players: map[string]player.Player{
		"player-1": {ID: "player-1", Name: "Jordan Vale", Status: player.StatusFreeAgent},
	}}
	teamRepo := &routerTeamRepo{teams: map[string]team.Team{
		"team-1": {ID: "team-1", Name: "Harbor City"},
		"team-2": {ID: "team-2", Name: "North Ridge"},
	}}

	settingsSvc := usecase.NewSettingsService(fx.settingsRepo, nil, logger)
	bidSvc := usecase.NewBidService(fx.bidRepo, playerRepo, teamRepo, settingsSvc, id.NewRandomGenerator(), logger)
	sweepSvc := usecase.NewSweepService(fx.bidRepo, teamRepo, 2, logger)
	leagueSvc := usecase.NewLeagueService(teamRepo, playerRepo)
	standingsSvc := usecase.NewStandingsService(teamRepo, routerGameRepo{})

	handler := NewHandler(bidSvc, sweepSvc, settingsSvc, leagueSvc, standingsSvc, logger)
	return NewRouter(handler, fx.verifier, logger, []string{"*"}, "sweep-secret")
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (bool, map[string]any, map[string]any) {
	t.Helper()

	var decoded struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   map[string]any  `json:"error"`
	}
	if err := jsoniter.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode envelope: %v (body=%s)", err, rec.Body.String())
	}

	var data map[string]any
	if len(decoded.Data) > 0 && decoded.Data[0] == '{' {
		if err := jsoniter.Unmarshal(decoded.Data, &data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return decoded.Success, data, decoded.Error
}

func TestRouter_PlaceBid_Created(t *testing.T) {
	t.Parallel()

	repo := &routerBidRepo{}
	router := newBidTestRouter(t, routerFixture{
		bidRepo:  repo,
		verifier: stubVerifier{principal: user.Principal{UserID: "u1", TeamID: "team-1", Role: user.RoleManager}},
	})

	body := `{"playerId":"player-1","teamId":"team-1","bidAmount":500}`
	req := httptest.NewRequest(http.MethodPost, "/bids", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer token-abc")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (body=%s)", rec.Code, rec.Body.String())
	}

	success, data, _ := decodeEnvelope(t, rec)
	if !success {
		t.Fatalf("expected success envelope")
	}
	if data["playerId"] != "player-1" || data["teamId"] != "team-1" {
		t.Fatalf("unexpected bid payload: %+v", data)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected 1 inserted bid, got %d", len(repo.inserted))
	}
	if repo.inserted[0].ExpiresAt.Sub(repo.inserted[0].PlacedAt) != 4*time.Hour {
		t.Fatalf("unexpected expiry window: %s", repo.inserted[0].ExpiresAt.Sub(repo.inserted[0].PlacedAt))
	}
}

func TestRouter_PlaceBid_OtherTeamForbidden(t *testing.T) {
	t.Parallel()

	router := newBidTestRouter(t, routerFixture{
		verifier: stubVerifier{principal: user.Principal{UserID: "u1", TeamID: "team-2", Role: user.RoleManager}},
	})

	body := `{"playerId":"player-1","teamId":"team-1","bidAmount":500}`
	req := httptest.NewRequest(http.MethodPost, "/bids", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer token-abc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d (body=%s)", rec.Code, rec.Body.String())
	}

	success, _, errBody := decodeEnvelope(t, rec)
	if success {
		t.Fatalf("expected error envelope")
	}
	if errBody["code"] != "forbidden" {
		t.Fatalf("unexpected error code: %v", errBody["code"])
	}
}

func TestRouter_PlaceBid_DisabledBiddingRejected(t *testing.T) {
	t.Parallel()

	router := newBidTestRouter(t, routerFixture{
		settingsRepo: &routerSettingsRepo{bidding: settings.Bidding{Enabled: false, BidDuration: 4 * time.Hour}},
		verifier:     stubVerifier{principal: user.Principal{UserID: "u1", TeamID: "team-1", Role: user.RoleManager}},
	})

	body := `{"playerId":"player-1","teamId":"team-1","bidAmount":500}`
	req := httptest.NewRequest(http.MethodPost, "/bids", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer token-abc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (body=%s)", rec.Code, rec.Body.String())
	}
}

func TestRouter_BiddingStatus_ReportsDisabledOnSettingsError(t *testing.T) {
	t.Parallel()

	router := newBidTestRouter(t, routerFixture{
		settingsRepo: &routerSettingsRepo{err: fmt.Errorf("settings table unavailable")},
	})

	req := httptest.NewRequest(http.MethodGet, "/bidding/status", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body=%s)", rec.Code, rec.Body.String())
	}

	success, data, _ := decodeEnvelope(t, rec)
	if !success {
		t.Fatalf("expected success envelope")
	}
	if data["enabled"] != false {
		t.Fatalf("expected bidding reported disabled, got %+v", data)
	}
}

func TestRouter_ProcessExpiredBids_EmptySweep(t *testing.T) {
	t.Parallel()

	router := newBidTestRouter(t, routerFixture{})

	req := httptest.NewRequest(http.MethodPost, "/cron/process-expired-bids", nil)
	req.Header.Set("Authorization", "Bearer sweep-secret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body=%s)", rec.Code, rec.Body.String())
	}

	success, data, _ := decodeEnvelope(t, rec)
	if !success {
		t.Fatalf("expected success envelope")
	}
	if data["processed"] != float64(0) {
		t.Fatalf("unexpected processed count: %v", data["processed"])
	}
	errList, ok := data["errors"].([]any)
	if !ok || len(errList) != 0 {
		t.Fatalf("expected empty errors list, got %v", data["errors"])
	}
}
