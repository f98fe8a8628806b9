package premium

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/2beens/workouts/internal/apperr"
	"github.com/2beens/workouts/internal/auth"
	"github.com/2beens/workouts/internal/telemetry/tracing"
	"github.com/2beens/workouts/pkg"
)

type statusChecker interface {
	CheckStatus(ctx context.Context, userID string) (*StatusOutput, error)
}

type Handler struct {
	service statusChecker
}

func NewHandler(service statusChecker) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/premium/status", h.HandleStatus).Methods("GET").Name("premium-status")
}

func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.premium.status")
	defer span.End()

	userID, ok := auth.RequireUserID(w, r)
	if !ok {
		return
	}

	out, err := h.service.CheckStatus(ctx, userID)
	if err != nil {
		apperr.Respond(w, "check premium status", err)
		return
	}
	pkg.WriteJSON(w, http.StatusOK, out)
}
