package sessions

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/workouts/internal/apperr"
	"github.com/2beens/workouts/internal/auth"
	"github.com/2beens/workouts/internal/telemetry/metrics"
	"github.com/2beens/workouts/internal/telemetry/tracing"
	"github.com/2beens/workouts/pkg"
)

type sessionsService interface {
	Start(ctx context.Context, input StartSessionInput) (*StartSessionOutput, error)
	Pause(ctx context.Context, input SessionInput) (*TransitionOutput, error)
	Resume(ctx context.Context, input SessionInput) (*TransitionOutput, error)
	Complete(ctx context.Context, input CompleteSessionInput) (*CompleteSessionOutput, error)
	Cancel(ctx context.Context, input CancelSessionInput) (*CancelSessionOutput, error)
	GetActive(ctx context.Context, userID string) (*SessionDetailsOutput, error)
	Get(ctx context.Context, input SessionInput) (*SessionDetailsOutput, error)
	History(ctx context.Context, input HistoryInput) (*HistoryOutput, error)
}

type Handler struct {
	service        sessionsService
	metricsManager *metrics.Manager
}

func NewHandler(service sessionsService, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		metricsManager: metricsManager,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/workout-sessions", h.HandleStart).Methods("POST", "OPTIONS").Name("sessions-start")
	r.HandleFunc("/workout-sessions/active", h.HandleGetActive).Methods("GET").Name("sessions-active")
	r.HandleFunc("/workout-sessions/history", h.HandleHistory).Methods("GET").Name("sessions-history")
	r.HandleFunc("/workout-sessions/{id}", h.HandleGet).Methods("GET").Name("sessions-get")
	r.HandleFunc("/workout-sessions/{id}/pause", h.HandlePause).Methods("PUT", "OPTIONS").Name("sessions-pause")
	r.HandleFunc("/workout-sessions/{id}/resume", h.HandleResume).Methods("PUT", "OPTIONS").Name("sessions-resume")
	r.HandleFunc("/workout-sessions/{id}/complete", h.HandleComplete).Methods("PUT", "OPTIONS").Name("sessions-complete")
	r.HandleFunc("/workout-sessions/{id}/cancel", h.HandleCancel).Methods("PUT", "OPTIONS").Name("sessions-cancel")
}

func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.start")
	defer span.End()

	userID, ok := auth.RequireUserID(w, r)
	if !ok {
		return
	}

	var input StartSessionInput
	if !pkg.DecodeJSONBody(w, r, &input) {
		return
	}
	input.UserID = userID

	out, err := h.service.Start(ctx, input)
	if err != nil {
		apperr.Respond(w, "start session", err)
		return
	}

	h.metricsManager.CounterSessionsStarted.Inc()
	log.Debugf("workout session [%s] started for plan [%s]", out.ID, out.WorkoutPlan.ID)
	pkg.WriteJSON(w, http.StatusCreated, out)
}

func (h *Handler) HandleGetActive(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.active")
	defer span.End()

	userID, ok := auth.RequireUserID(w, r)
	if !ok {
		return
	}

	out, err := h.service.GetActive(ctx, userID)
	if err != nil {
		apperr.Respond(w, "get active session", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.get")
	defer span.End()

	userID, ok := auth.RequireUserID(w, r)
	if !ok {
		return
	}

	out, err := h.service.Get(ctx, SessionInput{
		UserID:    userID,
		SessionID: mux.Vars(r)["id"],
	})
	if err != nil {
		apperr.Respond(w, "get session", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.history")
	defer span.End()

	userID, ok := auth.RequireUserID(w, r)
	if !ok {
		return
	}

	input := HistoryInput{UserID: userID}
	var err error
	if input.Page, err = pkg.IntQueryParam(r, "page"); err != nil {
		http.Error(w, "error, page NaN", http.StatusBadRequest)
		return
	}
	if input.Limit, err = pkg.IntQueryParam(r, "limit"); err != nil {
		http.Error(w, "error, limit NaN", http.StatusBadRequest)
		return
	}
	if from := r.URL.Query().Get("from"); from != "" {
		fromTime, err := parseDate(from)
		if err != nil {
			http.Error(w, "error, invalid from date", http.StatusBadRequest)
			return
		}
		input.From = &fromTime
	}

	out, err := h.service.History(ctx, input)
	if err != nil {
		if apperr.IsKind(err, apperr.KindLimitExceeded) {
			h.metricsManager.CounterLimitRejections.WithLabelValues(metrics.ResourceHistory).Inc()
		}
		apperr.Respond(w, "session history", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) HandlePause(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.pause")
	defer span.End()

	userID, ok := auth.RequireUserID(w, r)
	if !ok {
		return
	}

	out, err := h.service.Pause(ctx, SessionInput{
		UserID:    userID,
		SessionID: mux.Vars(r)["id"],
	})
	if err != nil {
		apperr.Respond(w, "pause session", err)
		return
	}

	h.metricsManager.CounterSessionTransitions.WithLabelValues(metrics.TransitionPause).Inc()
	pkg.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) HandleResume(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.resume")
	defer span.End()

	userID, ok := auth.RequireUserID(w, r)
	if !ok {
		return
	}

	out, err := h.service.Resume(ctx, SessionInput{
		UserID:    userID,
		SessionID: mux.Vars(r)["id"],
	})
	if err != nil {
		apperr.Respond(w, "resume session", err)
		return
	}

	h.metricsManager.CounterSessionTransitions.WithLabelValues(metrics.TransitionResume).Inc()
	pkg.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.complete")
	defer span.End()

	userID, ok := auth.RequireUserID(w, r)
	if !ok {
		return
	}

	// the body is optional
	var input CompleteSessionInput
	if r.ContentLength > 0 && !pkg.DecodeJSONBody(w, r, &input) {
		return
	}
	input.UserID = userID
	input.SessionID = mux.Vars(r)["id"]

	out, err := h.service.Complete(ctx, input)
	if err != nil {
		apperr.Respond(w, "complete session", err)
		return
	}

	h.metricsManager.CounterSessionTransitions.WithLabelValues(metrics.TransitionComplete).Inc()
	h.metricsManager.HistSessionDuration.Observe(float64(out.TotalDurationMs) / 1000)
	log.Debugf("workout session [%s] completed in %s", out.ID, out.FormattedDuration)
	pkg.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.cancel")
	defer span.End()

	userID, ok := auth.RequireUserID(w, r)
	if !ok {
		return
	}

	var input CancelSessionInput
	if r.ContentLength > 0 && !pkg.DecodeJSONBody(w, r, &input) {
		return
	}
	input.UserID = userID
	input.SessionID = mux.Vars(r)["id"]

	out, err := h.service.Cancel(ctx, input)
	if err != nil {
		apperr.Respond(w, "cancel session", err)
		return
	}

	h.metricsManager.CounterSessionTransitions.WithLabelValues(metrics.TransitionCancel).Inc()
	h.metricsManager.HistSessionDuration.Observe(float64(out.TotalDurationMs) / 1000)
	pkg.WriteJSON(w, http.StatusOK, out)
}

// parseDate accepts RFC 3339 timestamps and plain dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}
