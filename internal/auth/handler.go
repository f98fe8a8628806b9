package auth

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/workouts/internal/telemetry/tracing"
	"github.com/2beens/workouts/pkg"
)

const (
	TokenHeader        = "X-Workouts-Token"
	IssuerSecretHeader = "X-Issuer-Secret"
)

type sessionIssuer interface {
	NewSession(ctx context.Context, userID string) (*Session, error)
	Revoke(ctx context.Context, token string) (bool, error)
}

type NewSessionRequest struct {
	UserID string `json:"userId"`
}

type NewSessionResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"userId"`
	CreatedAt int64  `json:"createdAt"`
}

// Handler lets a trusted identity provider open sessions on behalf of users.
// The provider authenticates with a shared secret, only its bcrypt hash is
// kept in the config.
type Handler struct {
	issuer           sessionIssuer
	issuerSecretHash string
}

func NewHandler(issuer sessionIssuer, issuerSecretHash string) *Handler {
	return &Handler{
		issuer:           issuer,
		issuerSecretHash: issuerSecretHash,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/auth/session", h.HandleNewSession).Methods("POST", "OPTIONS").Name("new-session")
	r.HandleFunc("/auth/session", h.HandleRevokeSession).Methods("DELETE", "OPTIONS").Name("revoke-session")
}

func (h *Handler) HandleNewSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.newsession")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	if !pkg.CheckPasswordHash(r.Header.Get(IssuerSecretHeader), h.issuerSecretHash) {
		reqIP, _ := pkg.ReadUserIP(r)
		log.Warnf("new session: invalid issuer secret from %s", reqIP)
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req NewSessionRequest
	if !pkg.DecodeJSONBody(w, r, &req) {
		return
	}
	if req.UserID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}

	session, err := h.issuer.NewSession(ctx, req.UserID)
	if err != nil {
		log.Errorf("new session for user %s: %s", req.UserID, err)
		http.Error(w, "failed to create session", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, http.StatusCreated, NewSessionResponse{
		Token:     session.Token,
		UserID:    session.UserID,
		CreatedAt: session.CreatedAt.Unix(),
	})
}

func (h *Handler) HandleRevokeSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.revokesession")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "DELETE, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	token := r.Header.Get(TokenHeader)
	if token == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	revoked, err := h.issuer.Revoke(ctx, token)
	if err != nil {
		log.Errorf("revoke session: %s", err)
		http.Error(w, "failed to revoke session", http.StatusInternalServerError)
		return
	}
	if !revoked {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}
