package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/levelup/internal/config"
	"github.com/2beens/levelup/internal/db"
	"github.com/2beens/levelup/internal/leveling"
	levelupmcp "github.com/2beens/levelup/internal/mcp"
	"github.com/2beens/levelup/internal/middleware"
	"github.com/2beens/levelup/internal/missions"
	"github.com/2beens/levelup/internal/notify"
	"github.com/2beens/levelup/internal/records"
	"github.com/2beens/levelup/internal/scheduler"
	"github.com/2beens/levelup/internal/telemetry/metrics"
	"github.com/2beens/levelup/internal/telemetry/tracing"
	"github.com/2beens/levelup/internal/training"
	"github.com/2beens/levelup/internal/users"
	"github.com/2beens/levelup/pkg"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	loc         *time.Location
	dbPool      *pgxpool.Pool
	redisClient *redis.Client // nil when state is kept in memory
	defaultUser *users.User

	usersRepo    *users.Repo
	trainingRepo *training.Repo
	notifyStore  notify.Store
	missions     *missions.Engine
	training     *training.Engine
	tracker      *records.Tracker
	series       *records.Series

	scheduler      *scheduler.Scheduler
	trigger        *scheduler.TimerTrigger
	schedulerStop  context.CancelFunc
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}
	if err := dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if err := db.Migrate(ctx, dbPool); err != nil {
		dbPool.Close()
		return nil, err
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("levelup", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	var rdb *redis.Client
	if cfg.RedisHost != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: params.RedisPassword,
			DB:       0, // use default DB
		})
		rdbStatus := rdb.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		log.Debugf("redis ping: %s", rdbStatus.Val())
	} else {
		log.Warnln("redis host not set, mission flags and notifications are kept in memory")
	}

	closeStores := func() {
		if rdb != nil {
			_ = rdb.Close()
		}
		dbPool.Close()
	}

	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "levelup-backend", rdb)
	if err != nil {
		closeStores()
		return nil, err
	}

	usersRepo := users.NewRepo(dbPool)
	defaultUser, err := usersRepo.EnsureDefault(ctx, cfg.DefaultUserName)
	if err != nil {
		otelShutdown()
		closeStores()
		return nil, fmt.Errorf("ensure default user: %w", err)
	}
	log.Infof("default user: %d [%s], level %d", defaultUser.ID, defaultUser.Name, defaultUser.Level)

	var (
		flagStore    missions.FlagStore
		lastRunStore scheduler.LastRunStore
		notifyStore  notify.Store
	)
	if rdb != nil {
		flagStore = missions.NewRedisFlagStore(rdb, missions.DefaultFlagsKey)
		lastRunStore = scheduler.NewRedisLastRunStore(rdb)
		notifyStore = notify.NewRedisStore(rdb)
	} else {
		flagStore = missions.NewMemoryFlagStore()
		lastRunStore = scheduler.NewMemoryLastRunStore()
		notifyStore = notify.NewMemoryStore()
	}

	notifier := notify.NewNotifier(notifyStore)
	levelingService := leveling.NewService(usersRepo, notifier, metricsManager)

	missionsEngine, err := missions.NewEngine(ctx, missions.EngineParams{
		Catalog:        missions.DefaultCatalog(),
		Store:          flagStore,
		XP:             levelingService,
		Badge:          notifier,
		MetricsManager: metricsManager,
	})
	if err != nil {
		otelShutdown()
		closeStores()
		return nil, fmt.Errorf("new missions engine: %w", err)
	}

	trainingRepo := training.NewRepo(dbPool)
	recordsRepo := records.NewRepo(dbPool)
	series := records.NewSeries(recordsRepo, trainingRepo, loc)

	trainingEngine, err := training.NewEngine(training.EngineParams{
		Repo:           trainingRepo,
		XP:             levelingService,
		Missions:       missionsEngine,
		Stats:          series,
		MetricsManager: metricsManager,
		Location:       loc,
	})
	if err != nil {
		otelShutdown()
		closeStores()
		return nil, fmt.Errorf("new training engine: %w", err)
	}

	tracker := records.NewTracker(records.TrackerParams{
		Repo:                 recordsRepo,
		Users:                usersRepo,
		Missions:             missionsEngine,
		Series:               series,
		MetricsManager:       metricsManager,
		Location:             loc,
		WaterExerciseMinutes: cfg.WaterExerciseMinutes,
	})

	trigger := scheduler.NewTimerTrigger(cfg.SchedulerCheckInterval())

	return &Server{
		versionInfo: params.VersionInfo,
		config:      cfg,
		loc:         loc,
		dbPool:      dbPool,
		redisClient: rdb,
		defaultUser: defaultUser,

		usersRepo:    usersRepo,
		trainingRepo: trainingRepo,
		notifyStore:  notifyStore,
		missions:     missionsEngine,
		training:     trainingEngine,
		tracker:      tracker,
		series:       series,

		scheduler: scheduler.New(trigger, lastRunStore, loc),
		trigger:   trigger,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	missions.NewHandler(s.missions, s.defaultUser.ID).SetupRoutes(r)
	training.NewHandler(s.training, s.trainingRepo, s.defaultUser.ID).SetupRoutes(r)
	records.NewHandler(s.tracker, s.series, s.defaultUser.ID).SetupRoutes(r)
	users.NewHandler(s.usersRepo, s.missions, s.config.WaterExerciseMinutes).SetupRoutes(r)
	notify.NewHandler(s.notifyStore).SetupRoutes(r)

	mcpServer := levelupmcp.NewServer(levelupmcp.ServerParams{
		Schema:        levelupmcp.NewPoolSchemaRepo(s.dbPool),
		Users:         s.usersRepo,
		Missions:      s.missions,
		Series:        s.series,
		DefaultUserID: s.defaultUser.ID,
	})
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return mcpServer
	}, nil)
	r.PathPrefix("/mcp").Handler(otelhttp.NewHandler(mcpHandler, "mcp"))

	r.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteResponse(w, pkg.ContentType.Text, s.versionInfo, http.StatusOK)
	}).Methods("GET")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	if s.redisClient != nil {
		r.Use(middleware.RateLimit(
			redis_rate.NewLimiter(s.redisClient),
			"levelup:writes",
			s.config.WriteRateLimitAllowedPerMin,
			s.metricsManager,
		))
	}
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

// Serve starts the scheduler, the API and the metrics servers.
func (s *Server) Serve(ctx context.Context, host string, port int) error {
	schedulerCtx, cancel := context.WithCancel(ctx)
	s.schedulerStop = cancel
	for _, job := range scheduler.ResetJobs(s.missions) {
		if err := s.scheduler.Schedule(schedulerCtx, job); err != nil {
			cancel()
			return fmt.Errorf("schedule %s: %w", job.Name, err)
		}
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:     s.routerSetup(),
		Addr:        ipAndPort,
		ReadTimeout: time.Minute,
		// no write timeout, /missions/events and /mcp stream responses
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:        metricsAddr,
		Handler:     metricsRouter,
		ReadTimeout: time.Minute,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
	return nil
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")
	s.metricsManager.GaugeLifeSignal.Set(0)

	if s.schedulerStop != nil {
		s.schedulerStop()
		s.trigger.Wait()
		log.Debugln("scheduler stopped")
	}
	if n := s.training.ActiveCount(); n > 0 {
		log.Warnf("%d unfinished training sessions are dropped", n)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	var err error
	if s.httpServer != nil {
		err = multierr.Append(err, s.httpServer.Shutdown(ctx))
		log.Warnln("server shut down")
	}
	if s.metricsHttpServer != nil {
		err = multierr.Append(err, s.metricsHttpServer.Shutdown(ctx))
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		err = multierr.Append(err, s.redisClient.Close())
	}
	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	for _, e := range multierr.Errors(err) {
		log.Errorf(" >>> shutdown: %s", e)
	}
}
