package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/leagueops/league-office/internal/config"
	"github.com/leagueops/league-office/internal/domain/game"
	"github.com/leagueops/league-office/internal/domain/player"
	"github.com/leagueops/league-office/internal/domain/team"
	"github.com/leagueops/league-office/internal/infrastructure/account/janus"
	cacherepo "github.com/leagueops/league-office/internal/infrastructure/repository/cache"
	"github.com/leagueops/league-office/internal/infrastructure/repository/postgres"
	"github.com/leagueops/league-office/internal/interfaces/httpapi"
	"github.com/leagueops/league-office/internal/platform/cache"
	idgen "github.com/leagueops/league-office/internal/platform/id"
	"github.com/leagueops/league-office/internal/platform/logging"
	"github.com/leagueops/league-office/internal/platform/resilience"
	"github.com/leagueops/league-office/internal/usecase"
)

// App holds the wired service graph. Close releases the resources the wiring
// opened, currently just the database pool.
type App struct {
	Server *http.Server
	DB     *sqlx.DB
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	bidRepo := postgres.NewBidRepository(db)
	playerRepo := postgres.NewPlayerRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	gameRepo := postgres.NewGameRepository(db)
	settingRepo := postgres.NewSettingRepository(db)

	// The read model tolerates slightly stale rows; bid placement and the
	// sweep always read fresh ones.
	readTeamRepo := team.Repository(teamRepo)
	readPlayerRepo := player.Repository(playerRepo)
	readGameRepo := game.Repository(gameRepo)
	var settingsCache *cache.Store
	if cfg.CacheEnabled {
		settingsCache = cache.NewStore(cfg.CacheTTL)
		readCache := cache.NewStore(cfg.CacheTTL)
		readTeamRepo = cacherepo.NewTeamRepository(teamRepo, readCache)
		readPlayerRepo = cacherepo.NewPlayerRepository(playerRepo, readCache)
		readGameRepo = cacherepo.NewGameRepository(gameRepo, readCache)
	}

	settingsSvc := usecase.NewSettingsService(settingRepo, settingsCache, logger)
	bidSvc := usecase.NewBidService(bidRepo, playerRepo, teamRepo, settingsSvc, idgen.NewRandomGenerator(), logger)
	sweepSvc := usecase.NewSweepService(bidRepo, teamRepo, cfg.SweepMaxWorkers, logger)
	leagueSvc := usecase.NewLeagueService(readTeamRepo, readPlayerRepo)
	standingsSvc := usecase.NewStandingsService(readTeamRepo, readGameRepo)

	verifier := janus.NewClient(janus.ClientConfig{
		BaseURL:        cfg.JanusBaseURL,
		IntrospectPath: cfg.JanusIntrospectPath,
		Timeout:        cfg.JanusTimeout,
		Logger:         logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.JanusCircuitEnabled,
			FailureThreshold: cfg.JanusCircuitFailureCount,
			OpenTimeout:      cfg.JanusCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.JanusCircuitHalfOpenMaxReq,
		},
		PrincipalCacheTTL:        cfg.JanusPrincipalCacheTTL,
		PrincipalCacheMaxEntries: cfg.JanusPrincipalCacheMax,
	})

	handler := httpapi.NewHandler(bidSvc, sweepSvc, settingsSvc, leagueSvc, standingsSvc, logger)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins, cfg.CronSecret)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		closeDB(db, logger)
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{Server: server, DB: db}, nil
}

func (a *App) Close(logger *logging.Logger) {
	closeDB(a.DB, logger)
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	return db, nil
}

func closeDB(db *sqlx.DB, logger *logging.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil && logger != nil {
		logger.Error("close database", "error", err)
	}
}
