package misc

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/workouts/internal/telemetry/tracing"
	"github.com/2beens/workouts/pkg"
)

const readinessTimeout = 2 * time.Second

// Pinger is a dependency the service cannot work without.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger, e.g. a redis client ping.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

type VersionInfo struct {
	Version string `json:"version"`
	Env     string `json:"env"`
}

type Handler struct {
	versionInfo  VersionInfo
	dependencies map[string]Pinger
}

func NewHandler(versionInfo VersionInfo, dependencies map[string]Pinger) *Handler {
	return &Handler{
		versionInfo:  versionInfo,
		dependencies: dependencies,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "POST", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")
	mainRouter.HandleFunc("/health/ready", handler.handleReady).Methods("GET").Name("health-ready")
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, http.StatusOK, handler.versionInfo)
}

// handleReady pings every dependency and reports each one as ok or failing.
func (handler *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.ready")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()

	status := http.StatusOK
	report := make(map[string]string, len(handler.dependencies))
	for name, dep := range handler.dependencies {
		if err := dep.Ping(ctx); err != nil {
			log.Errorf("readiness: %s: %s", name, err)
			report[name] = "failing"
			status = http.StatusServiceUnavailable
			continue
		}
		report[name] = "ok"
	}

	if status != http.StatusOK {
		span.SetStatus(codes.Error, "not-ready")
	}
	pkg.WriteJSON(w, status, report)
}
