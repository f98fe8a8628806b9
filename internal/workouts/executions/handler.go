package executions

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/workouts/internal/apperr"
	"github.com/2beens/workouts/internal/auth"
	"github.com/2beens/workouts/internal/telemetry/metrics"
	"github.com/2beens/workouts/internal/telemetry/tracing"
	"github.com/2beens/workouts/pkg"
)

type executionsService interface {
	Start(ctx context.Context, input StartExecutionInput) (*StartExecutionOutput, error)
	CompleteSet(ctx context.Context, input CompleteSetInput) (*CompleteSetOutput, error)
	UpdateSetWeight(ctx context.Context, input UpdateSetWeightInput) (*UpdateSetWeightOutput, error)
	Finish(ctx context.Context, input FinishExecutionInput) (*FinishExecutionOutput, error)
	Skip(ctx context.Context, input SkipExecutionInput) (*SkipExecutionOutput, error)
	Get(ctx context.Context, input GetExecutionInput) (*ExecutionDetailsOutput, error)
}

type Handler struct {
	service        executionsService
	metricsManager *metrics.Manager
}

func NewHandler(service executionsService, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		metricsManager: metricsManager,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/exercise-executions", h.HandleStart).Methods("POST", "OPTIONS").Name("executions-start")
	r.HandleFunc("/exercise-executions/{id}", h.HandleGet).Methods("GET").Name("executions-get")
	r.HandleFunc("/exercise-executions/{id}/sets/{setNumber}/complete", h.HandleCompleteSet).Methods("PUT", "OPTIONS").Name("executions-sets-complete")
	r.HandleFunc("/exercise-executions/{id}/sets/{setNumber}/weight", h.HandleUpdateSetWeight).Methods("PUT", "OPTIONS").Name("executions-sets-weight")
	r.HandleFunc("/exercise-executions/{id}/finish", h.HandleFinish).Methods("PUT", "OPTIONS").Name("executions-finish")
	r.HandleFunc("/exercise-executions/{id}/skip", h.HandleSkip).Methods("PUT", "OPTIONS").Name("executions-skip")
}

func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.executions.start")
	defer span.End()

	userID, ok := auth.RequireUserID(w, r)
	if !ok {
		return
	}

	var input StartExecutionInput
	if !pkg.DecodeJSONBody(w, r, &input) {
		return
	}
	input.UserID = userID

	out, err := h.service.Start(ctx, input)
	if err != nil {
		apperr.Respond(w, "start execution", err)
		return
	}

	log.Debugf("exercise execution [%s] started with %d sets", out.ID, len(out.Sets))
	pkg.WriteJSON(w, http.StatusCreated, out)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.executions.get")
	defer span.End()

	userID, ok := auth.RequireUserID(w, r)
	if !ok {
		return
	}

	out, err := h.service.Get(ctx, GetExecutionInput{
		UserID:      userID,
		ExecutionID: mux.Vars(r)["id"],
	})
	if err != nil {
		apperr.Respond(w, "get execution", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) HandleCompleteSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.executions.completeset")
	defer span.End()

	userID, ok := auth.RequireUserID(w, r)
	if !ok {
		return
	}
	setNumber, err := strconv.Atoi(mux.Vars(r)["setNumber"])
	if err != nil {
		http.Error(w, "error, set number NaN", http.StatusBadRequest)
		return
	}

	var input CompleteSetInput
	if !pkg.DecodeJSONBody(w, r, &input) {
		return
	}
	input.UserID = userID
	input.ExecutionID = mux.Vars(r)["id"]
	input.SetNumber = setNumber

	out, err := h.service.CompleteSet(ctx, input)
	if err != nil {
		apperr.Respond(w, "complete set", err)
		return
	}

	h.metricsManager.CounterSetsCompleted.Inc()
	pkg.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) HandleUpdateSetWeight(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.executions.updatesetweight")
	defer span.End()

	userID, ok := auth.RequireUserID(w, r)
	if !ok {
		return
	}
	setNumber, err := strconv.Atoi(mux.Vars(r)["setNumber"])
	if err != nil {
		http.Error(w, "error, set number NaN", http.StatusBadRequest)
		return
	}

	var input UpdateSetWeightInput
	if !pkg.DecodeJSONBody(w, r, &input) {
		return
	}
	input.UserID = userID
	input.ExecutionID = mux.Vars(r)["id"]
	input.SetNumber = setNumber

	out, err := h.service.UpdateSetWeight(ctx, input)
	if err != nil {
		apperr.Respond(w, "update set weight", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) HandleFinish(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.executions.finish")
	defer span.End()

	userID, ok := auth.RequireUserID(w, r)
	if !ok {
		return
	}

	var input FinishExecutionInput
	if r.ContentLength > 0 && !pkg.DecodeJSONBody(w, r, &input) {
		return
	}
	input.UserID = userID
	input.ExecutionID = mux.Vars(r)["id"]

	out, err := h.service.Finish(ctx, input)
	if err != nil {
		apperr.Respond(w, "finish execution", err)
		return
	}

	log.Debugf("exercise execution [%s] finished: %d/%d sets", out.ID, out.Performance.CompletedSets, out.Performance.TotalSets)
	pkg.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) HandleSkip(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.executions.skip")
	defer span.End()

	userID, ok := auth.RequireUserID(w, r)
	if !ok {
		return
	}

	var input SkipExecutionInput
	if r.ContentLength > 0 && !pkg.DecodeJSONBody(w, r, &input) {
		return
	}
	input.UserID = userID
	input.ExecutionID = mux.Vars(r)["id"]

	out, err := h.service.Skip(ctx, input)
	if err != nil {
		apperr.Respond(w, "skip execution", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, out)
}
