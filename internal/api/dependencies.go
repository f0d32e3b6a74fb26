package api

import (
	"github.com/StratosphereLabs/flight-logger-sub000/internal/common"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/config"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/db"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/db/repositories"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/engine"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/logging"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/metrics"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/pending"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/providers"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/resolver"
)

type Repositories struct {
	Reference *repositories.ReferenceRepository
	Flights   *repositories.FlightRepository
	Pending   *repositories.PendingFlightRepository
	Sources   *repositories.CalendarSourceRepository
}

type Services struct {
	Cache    *common.CacheService
	Queue    *common.TaskQueueService
	Resolver *resolver.Resolver
	Chain    *providers.LookupChain
	Engine   *engine.ResolutionEngine
	Batch    *engine.BatchRunner
	Pending  *pending.Service
}

type Dependencies struct {
	Cfg      *config.Config
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
}

// InitDependencies wires repositories and services together. Database and
// Redis handles must already be initialized.
func InitDependencies(cfg *config.Config, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {
	repos := &Repositories{
		Reference: repositories.NewReferenceRepository(db.PgDB, db.DB),
		Flights:   repositories.NewFlightRepository(db.PgDB),
		Pending:   repositories.NewPendingFlightRepository(db.PgDB),
		Sources:   repositories.NewCalendarSourceRepository(db.PgDB),
	}

	cacheSvc := common.NewCacheService(21600, 600)
	redisClient := common.NewRedisClient(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	queueSvc := common.NewTaskQueueService(redisClient)

	res := resolver.NewResolver(repos.Reference, cacheSvc)

	// Providers join the chain in priority order; an endpoint without
	// credentials is left out rather than guaranteed to fail at runtime.
	var chainProviders []providers.FlightStatusProvider
	if cfg.Providers.AeroDataBox.APIKey != "" {
		chainProviders = append(chainProviders,
			providers.NewAeroDataBoxProvider(cfg.Providers.AeroDataBox.BaseURL, cfg.Providers.AeroDataBox.APIKey))
	}
	if cfg.Providers.FlightStats.APIKey != "" {
		chainProviders = append(chainProviders,
			providers.NewFlightStatsProvider(cfg.Providers.FlightStats.BaseURL, cfg.Providers.FlightStats.AppID, cfg.Providers.FlightStats.APIKey))
	}
	chain := providers.NewLookupChain(chainProviders, cfg.Providers.Timeout, logging.Named("lookup_chain"), metricsReg)

	eng := engine.NewResolutionEngine(res, chain)
	batch := engine.NewBatchRunner(eng, repos.Flights, queueSvc, logging.Named("batch_runner"), metricsReg)
	pendingSvc := pending.NewService(db.PgDB, repos.Pending, repos.Flights, eng, queueSvc, logging.Named("pending_lifecycle"), metricsReg)

	return &Dependencies{
		Cfg:  cfg,
		Repo: repos,
		Services: &Services{
			Cache:    cacheSvc,
			Queue:    queueSvc,
			Resolver: res,
			Chain:    chain,
			Engine:   eng,
			Batch:    batch,
			Pending:  pendingSvc,
		},
		Metrics: metricsReg,
	}, nil
}
