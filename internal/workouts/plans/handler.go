package plans

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/workouts/internal/apperr"
	"github.com/2beens/workouts/internal/auth"
	"github.com/2beens/workouts/internal/telemetry/metrics"
	"github.com/2beens/workouts/internal/telemetry/tracing"
	"github.com/2beens/workouts/pkg"
)

type plansService interface {
	Create(ctx context.Context, input CreatePlanInput) (*CreatePlanOutput, error)
	List(ctx context.Context, input ListPlansInput) (*ListPlansOutput, error)
	Get(ctx context.Context, input GetPlanInput) (*PlanDetailsOutput, error)
	Update(ctx context.Context, input UpdatePlanInput) (*UpdatePlanOutput, error)
	Delete(ctx context.Context, input DeletePlanInput) (*DeletePlanOutput, error)
	AddExercise(ctx context.Context, input AddExerciseInput) (*AddExerciseOutput, error)
	ListExercises(ctx context.Context, input ListExercisesInput) (*ListExercisesOutput, error)
	RemoveExercise(ctx context.Context, input RemoveExerciseInput) (*ExercisesOrderOutput, error)
	ReorderExercise(ctx context.Context, input ReorderExerciseInput) (*ExercisesOrderOutput, error)
}

type Handler struct {
	service        plansService
	metricsManager *metrics.Manager
}

func NewHandler(service plansService, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		metricsManager: metricsManager,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/workout-plans", h.HandleCreate).Methods("POST", "OPTIONS").Name("plans-create")
	r.HandleFunc("/workout-plans", h.HandleList).Methods("GET").Name("plans-list")
	r.HandleFunc("/workout-plans/{id}", h.HandleGet).Methods("GET").Name("plans-get")
	r.HandleFunc("/workout-plans/{id}", h.HandleUpdate).Methods("PUT", "OPTIONS").Name("plans-update")
	r.HandleFunc("/workout-plans/{id}", h.HandleDelete).Methods("DELETE", "OPTIONS").Name("plans-delete")
	r.HandleFunc("/workout-plans/{id}/exercises", h.HandleAddExercise).Methods("POST", "OPTIONS").Name("plans-exercises-add")
	r.HandleFunc("/workout-plans/{id}/exercises", h.HandleListExercises).Methods("GET").Name("plans-exercises-list")
	r.HandleFunc("/workout-plans/{id}/exercises/{exerciseId}", h.HandleRemoveExercise).Methods("DELETE", "OPTIONS").Name("plans-exercises-remove")
	r.HandleFunc("/workout-plans/{id}/exercises/{exerciseId}/order", h.HandleReorderExercise).Methods("PUT", "OPTIONS").Name("plans-exercises-reorder")
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.create")
	defer span.End()

	userID, ok := auth.RequireUserID(w, r)
	if !ok {
		return
	}

	var input CreatePlanInput
	if !pkg.DecodeJSONBody(w, r, &input) {
		return
	}
	input.UserID = userID

	out, err := h.service.Create(ctx, input)
	if err != nil {
		h.countLimitRejection(err, metrics.ResourceWorkoutPlan)
		apperr.Respond(w, "create plan", err)
		return
	}

	log.Debugf("new workout plan created: [%s] %s", out.ID, out.Name)
	pkg.WriteJSON(w, http.StatusCreated, out)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.list")
	defer span.End()

	userID, ok := auth.RequireUserID(w, r)
	if !ok {
		return
	}

	input := ListPlansInput{
		UserID: userID,
		Search: r.URL.Query().Get("search"),
	}
	var err error
	if input.Page, err = pkg.IntQueryParam(r, "page"); err != nil {
		http.Error(w, "error, page NaN", http.StatusBadRequest)
		return
	}
	if input.Limit, err = pkg.IntQueryParam(r, "limit"); err != nil {
		http.Error(w, "error, limit NaN", http.StatusBadRequest)
		return
	}
	input.IncludeInactive = r.URL.Query().Get("includeInactive") == "true"

	out, err := h.service.List(ctx, input)
	if err != nil {
		apperr.Respond(w, "list plans", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.get")
	defer span.End()

	userID, ok := auth.RequireUserID(w, r)
	if !ok {
		return
	}

	out, err := h.service.Get(ctx, GetPlanInput{
		UserID: userID,
		PlanID: mux.Vars(r)["id"],
	})
	if err != nil {
		apperr.Respond(w, "get plan", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.update")
	defer span.End()

	userID, ok := auth.RequireUserID(w, r)
	if !ok {
		return
	}

	var input UpdatePlanInput
	if !pkg.DecodeJSONBody(w, r, &input) {
		return
	}
	input.UserID = userID
	input.PlanID = mux.Vars(r)["id"]

	out, err := h.service.Update(ctx, input)
	if err != nil {
		apperr.Respond(w, "update plan", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.delete")
	defer span.End()

	userID, ok := auth.RequireUserID(w, r)
	if !ok {
		return
	}

	out, err := h.service.Delete(ctx, DeletePlanInput{
		UserID: userID,
		PlanID: mux.Vars(r)["id"],
		Force:  r.URL.Query().Get("force") == "true",
	})
	if err != nil {
		apperr.Respond(w, "delete plan", err)
		return
	}

	log.Debugf("workout plan deleted: %s", out.DeletedPlanName)
	pkg.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.addexercise")
	defer span.End()

	userID, ok := auth.RequireUserID(w, r)
	if !ok {
		return
	}

	var input AddExerciseInput
	if !pkg.DecodeJSONBody(w, r, &input) {
		return
	}
	input.UserID = userID
	input.PlanID = mux.Vars(r)["id"]

	out, err := h.service.AddExercise(ctx, input)
	if err != nil {
		h.countLimitRejection(err, metrics.ResourceExercise)
		apperr.Respond(w, "add exercise", err)
		return
	}
	pkg.WriteJSON(w, http.StatusCreated, out)
}

func (h *Handler) HandleListExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.listexercises")
	defer span.End()

	userID, ok := auth.RequireUserID(w, r)
	if !ok {
		return
	}

	out, err := h.service.ListExercises(ctx, ListExercisesInput{
		UserID: userID,
		PlanID: mux.Vars(r)["id"],
	})
	if err != nil {
		apperr.Respond(w, "list exercises", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) HandleRemoveExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.removeexercise")
	defer span.End()

	userID, ok := auth.RequireUserID(w, r)
	if !ok {
		return
	}

	vars := mux.Vars(r)
	out, err := h.service.RemoveExercise(ctx, RemoveExerciseInput{
		UserID:     userID,
		PlanID:     vars["id"],
		ExerciseID: vars["exerciseId"],
	})
	if err != nil {
		apperr.Respond(w, "remove exercise", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) HandleReorderExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.reorderexercise")
	defer span.End()

	userID, ok := auth.RequireUserID(w, r)
	if !ok {
		return
	}

	var input ReorderExerciseInput
	if !pkg.DecodeJSONBody(w, r, &input) {
		return
	}
	vars := mux.Vars(r)
	input.UserID = userID
	input.PlanID = vars["id"]
	input.ExerciseID = vars["exerciseId"]

	out, err := h.service.ReorderExercise(ctx, input)
	if err != nil {
		apperr.Respond(w, "reorder exercise", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) countLimitRejection(err error, resource string) {
	if apperr.IsKind(err, apperr.KindLimitExceeded) {
		h.metricsManager.CounterLimitRejections.WithLabelValues(resource).Inc()
	}
}
