package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/2beens/workouts/internal/auth"
	"github.com/2beens/workouts/internal/config"
	"github.com/2beens/workouts/internal/db"
	"github.com/2beens/workouts/internal/middleware"
	"github.com/2beens/workouts/internal/misc"
	"github.com/2beens/workouts/internal/telemetry/metrics"
	"github.com/2beens/workouts/internal/telemetry/tracing"
	"github.com/2beens/workouts/internal/workouts/executions"
	"github.com/2beens/workouts/internal/workouts/limits"
	"github.com/2beens/workouts/internal/workouts/plans"
	"github.com/2beens/workouts/internal/workouts/premium"
	"github.com/2beens/workouts/internal/workouts/sessions"
)

const (
	serviceName   = "workouts-api"
	metricsDBName = "workouts_db"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string
	issuerSecretHash  string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client
	authService *auth.Service
	authChecker *auth.SessionChecker

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	DBPassword              string
	RedisPassword           string
	SessionIssuerSecretHash string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		DBUser:         params.Config.PostgresUser,
		DBPassword:     params.DBPassword,
		MaxConns:       params.Config.PostgresMaxConns,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	if params.Config.ApplySchema {
		if err := db.ApplySchema(ctx, dbPool); err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
		log.Debugln("db schema applied")
	}

	promRegistry := metrics.SetupPrometheus()
	if err := metrics.RegisterDBPool(promRegistry, dbPool, metricsDBName); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("register db pool metrics: %w", err)
	}
	metricsManager := metrics.NewManager("workouts", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	authService := auth.NewService(params.Config.AuthSessionTTL, rdb)
	go func() {
		ticker := time.NewTicker(8 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				authService.ScanAndClean(ctx)
			}
		}
	}()

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, serviceName, rdb)
	if err != nil {
		dbPool.Close()
		return nil, err
	}

	return &Server{
		config:           params.Config,
		dbPool:           dbPool,
		versionInfo:      params.VersionInfo,
		issuerSecretHash: params.SessionIssuerSecretHash,

		redisClient: rdb,
		authService: authService,
		authChecker: auth.NewSessionChecker(params.Config.AuthSessionTTL, rdb),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	policy := limits.NewPolicy()
	premiumService := premium.NewService(premium.NewRepo(s.dbPool), s.config.PremiumCacheTTL)
	plansRepo := plans.NewRepo(s.dbPool)
	sessionsRepo := sessions.NewRepo(s.dbPool)
	executionsRepo := executions.NewRepo(s.dbPool)

	plansHandler := plans.NewHandler(
		plans.NewService(plansRepo, premiumService, sessionsRepo, policy),
		s.metricsManager,
	)
	plansHandler.SetupRoutes(r)

	sessionsHandler := sessions.NewHandler(
		sessions.NewService(sessionsRepo, plansRepo, executionsRepo, premiumService, policy),
		s.metricsManager,
	)
	sessionsHandler.SetupRoutes(r)

	executionsHandler := executions.NewHandler(
		executions.NewService(executionsRepo, sessionsRepo, plansRepo),
		s.metricsManager,
	)
	executionsHandler.SetupRoutes(r)

	premiumHandler := premium.NewHandler(premiumService)
	premiumHandler.SetupRoutes(r)

	miscHandler := misc.NewHandler(
		misc.VersionInfo{Version: s.versionInfo, Env: s.config.Environment},
		map[string]misc.Pinger{
			"postgres": misc.PingerFunc(s.dbPool.Ping),
			"redis": misc.PingerFunc(func(ctx context.Context) error {
				return s.redisClient.Ping(ctx).Err()
			}),
		},
	)
	miscHandler.SetupRoutes(r)

	// session issuing is rate limited on its own
	authRouter := r.NewRoute().Subrouter()
	authRouter.Use(middleware.RateLimit(
		redis_rate.NewLimiter(s.redisClient),
		"auth-session",
		s.config.AuthSessionRateLimitPerMin,
		s.metricsManager,
	))
	auth.NewHandler(s.authService, s.issuerSecretHash).SetupRoutes(authRouter)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.NewAuthMiddlewareHandler(s.authChecker).AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
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
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking requests before the stores go away
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Errorf(" >>> failed to gracefully shutdown http server: %s", err)
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Errorf(" >>> failed to gracefully shutdown metrics http server: %s", err)
		}
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeOpenConnections.Inc()
	case http.StateClosed, http.StateHijacked:
		s.metricsManager.GaugeOpenConnections.Dec()
	default:
		// do nothing
	}
}
