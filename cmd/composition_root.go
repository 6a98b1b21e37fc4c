package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	apihttp "parceltrack/internal/adapters/in/http"
	"parceltrack/internal/adapters/out/metrics"
	"parceltrack/internal/adapters/out/networkfile"
	"parceltrack/internal/adapters/out/postgres"
	"parceltrack/internal/adapters/out/recordfile"
	"parceltrack/internal/adapters/out/redis/trackingcache"
	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/network"
	"parceltrack/internal/core/domain/model/rider"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/jobs"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const cachePingTimeout = 3 * time.Second

// CompositionRoot owns the long-lived dependencies and builds handlers on demand.
type CompositionRoot struct {
	config  Config
	logger  *slog.Logger
	engine  *services.DispatchEngine
	metrics *metrics.Metrics

	uowFactory ports.UnitOfWorkFactory
	gormDB     *gorm.DB
	cache      ports.TrackingCache
	closers    []func() error
}

// NewCompositionRoot builds the engine and connects the configured storage
// and cache. A cache that cannot be reached is logged and left out.
func NewCompositionRoot(config Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		config:  config,
		logger:  logger,
		metrics: metrics.New(),
	}

	engine, err := c.buildEngine()
	if err != nil {
		return nil, err
	}
	c.engine = engine

	if err = c.connectStorage(); err != nil {
		return nil, errors.Join(err, c.Close())
	}
	c.connectCache()

	return c, nil
}

func (c *CompositionRoot) buildEngine() (*services.DispatchEngine, error) {
	def := network.DefaultDefinition()
	if c.config.NetworkFile != "" {
		loaded, err := networkfile.Load(c.config.NetworkFile)
		if err != nil {
			return nil, err
		}
		def = loaded
	}
	if c.config.Hub != "" {
		def.Hub = c.config.Hub
	}

	graph, err := network.Build(def)
	if err != nil {
		return nil, fmt.Errorf("build network: %w", err)
	}

	names := c.config.RiderNames()
	if len(names) == 0 {
		names = rider.DefaultNames()
	}
	riders, err := rider.NewPool(names...)
	if err != nil {
		return nil, fmt.Errorf("build rider pool: %w", err)
	}

	opts := []services.EngineOption{
		services.WithLogger(c.logger),
		services.WithRecorder(c.metrics),
		services.WithStoreCapacity(c.config.StoreCapacity, c.config.StoreMaxCapacity),
	}
	if c.config.RandomSeed != 0 {
		opts = append(opts, services.WithRandom(kernel.NewSeededRandom(c.config.RandomSeed)))
	}

	return services.NewDispatchEngine(graph, riders, opts...)
}

func (c *CompositionRoot) connectStorage() error {
	switch c.config.Storage {
	case StoragePostgres:
		db, err := gorm.Open(gormpostgres.Open(c.config.PostgresDSN()), &gorm.Config{})
		if err != nil {
			return fmt.Errorf("connect to postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		c.closers = append(c.closers, sqlDB.Close)
		if err = postgres.Migrate(db); err != nil {
			return err
		}
		c.gormDB = db
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
	default:
		c.uowFactory = recordfile.NewFileUnitOfWorkFactory(c.config.RecordsPath)
	}
	return nil
}

func (c *CompositionRoot) connectCache() {
	if c.config.RedisURL == "" {
		return
	}

	cache, err := trackingcache.NewRedisTrackingCache(c.config.RedisURL, c.config.CacheTTL)
	if err != nil {
		c.logger.Warn("tracking cache disabled", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cachePingTimeout)
	defer cancel()
	if err = cache.Ping(ctx); err != nil {
		c.logger.Warn("tracking cache disabled", "error", err)
		_ = cache.Close()
		return
	}

	c.cache = cache
	c.closers = append(c.closers, cache.Close)
}

// Close releases the database pool and the cache client.
func (c *CompositionRoot) Close() error {
	var errList []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errList = append(errList, err)
		}
	}
	c.closers = nil
	return errors.Join(errList...)
}

// Metrics returns the registry-backed collectors shared by the engine and the
// HTTP middleware.
func (c *CompositionRoot) Metrics() *metrics.Metrics {
	return c.metrics
}

func (c *CompositionRoot) recordUoWFactory() commands.RecordUoWFactory {
	return FuncRecordUoWFactory(func() commands.RecordUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateIntakeParcelCommandHandler() commands.IntakeParcelCommandHandler {
	return commands.NewIntakeParcelCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateDispatchNextCommandHandler() commands.DispatchNextCommandHandler {
	return commands.NewDispatchNextCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateCancelParcelCommandHandler() commands.CancelParcelCommandHandler {
	return commands.NewCancelParcelCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateUndoLastActionCommandHandler() commands.UndoLastActionCommandHandler {
	return commands.NewUndoLastActionCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateReopenRoadsCommandHandler() commands.ReopenRoadsCommandHandler {
	return commands.NewReopenRoadsCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateAdvanceLifecycleCommandHandler() commands.AdvanceLifecycleCommandHandler {
	return commands.NewAdvanceLifecycleCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateSaveSnapshotCommandHandler() commands.SaveSnapshotCommandHandler {
	return commands.NewSaveSnapshotCommandHandler(c.engine, c.recordUoWFactory(), c.cache)
}

func (c *CompositionRoot) CreateLoadSnapshotCommandHandler() commands.LoadSnapshotCommandHandler {
	return commands.NewLoadSnapshotCommandHandler(c.engine, c.recordUoWFactory())
}

func (c *CompositionRoot) CreateGetParcelQueryHandler() queries.GetParcelQueryHandler {
	return queries.NewGetParcelQueryHandler(c.engine)
}

func (c *CompositionRoot) CreateListParcelsQueryHandler() queries.ListParcelsQueryHandler {
	return queries.NewListParcelsQueryHandler(c.engine)
}

func (c *CompositionRoot) CreateTrackParcelQueryHandler() queries.TrackParcelQueryHandler {
	return queries.NewTrackParcelQueryHandler(c.engine, c.cache, c.logger)
}

func (c *CompositionRoot) CreateGetNetworkQueryHandler() queries.GetNetworkQueryHandler {
	return queries.NewGetNetworkQueryHandler(c.engine)
}

func (c *CompositionRoot) CreateListActiveShipmentsQueryHandler() queries.ListActiveShipmentsQueryHandler {
	return queries.NewListActiveShipmentsQueryHandler(c.engine)
}

// CreateCountStoredParcelsQueryHandler returns nil unless records live in PostgreSQL.
func (c *CompositionRoot) CreateCountStoredParcelsQueryHandler() *queries.CountStoredParcelsQueryHandler {
	if c.gormDB == nil {
		return nil
	}
	h := queries.NewCountStoredParcelsQueryHandler(c.gormDB)
	return &h
}

// CreateServer wires every API handler into the HTTP server.
func (c *CompositionRoot) CreateServer() *apihttp.Server {
	return apihttp.NewServer(apihttp.Handlers{
		IntakeParcel:       c.CreateIntakeParcelCommandHandler(),
		DispatchNext:       c.CreateDispatchNextCommandHandler(),
		CancelParcel:       c.CreateCancelParcelCommandHandler(),
		UndoLastAction:     c.CreateUndoLastActionCommandHandler(),
		ReopenRoads:        c.CreateReopenRoadsCommandHandler(),
		SaveSnapshot:       c.CreateSaveSnapshotCommandHandler(),
		GetParcel:          c.CreateGetParcelQueryHandler(),
		ListParcels:        c.CreateListParcelsQueryHandler(),
		TrackParcel:        c.CreateTrackParcelQueryHandler(),
		GetNetwork:         c.CreateGetNetworkQueryHandler(),
		ActiveShipments:    c.CreateListActiveShipmentsQueryHandler(),
		CountStoredParcels: c.CreateCountStoredParcelsQueryHandler(),
	})
}

// CreateJobManager builds the lifecycle tick and snapshot jobs from the configured schedules.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateAdvanceLifecycleCommandHandler(),
		c.CreateSaveSnapshotCommandHandler(),
		kernel.SystemClock,
		jobs.Schedules{Tick: c.config.TickSchedule, Snapshot: c.config.SnapshotSchedule},
		c.logger,
	)
}

// FuncRecordUoWFactory adapts a function to commands.RecordUoWFactory.
type FuncRecordUoWFactory func() commands.RecordUoW

func (f FuncRecordUoWFactory) Create() commands.RecordUoW {
	return f()
}
