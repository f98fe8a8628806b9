package auth

import (
	"context"
	"net/http"

	"github.com/2beens/workouts/internal/apperr"
)

type ctxKey struct{}

func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(ctxKey{}).(string)
	return userID, ok && userID != ""
}

// RequireUserID writes 401 and returns false when the request carries no
// authenticated user.
func RequireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		apperr.WriteUnauthorized(w)
		return "", false
	}
	return userID, true
}
