package apperr

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/workouts/pkg"
)

type ErrorResponse struct {
	Code    Kind           `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindLimitExceeded:
		return http.StatusForbidden
	case KindInvalidStateTransition, KindDuplicateName, KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteError maps err to a status code and a JSON body. Errors without a
// domain kind are reported as internal, without leaking their text.
func WriteError(w http.ResponseWriter, err error) {
	appErr, ok := As(err)
	if !ok {
		pkg.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL",
			Message: "internal server error",
		})
		return
	}

	resp := ErrorResponse{
		Code:    appErr.Kind,
		Message: appErr.Message,
	}
	if appErr.Kind == KindLimitExceeded {
		resp.Details = map[string]any{
			"current": appErr.Current,
			"limit":   appErr.Limit,
		}
	}
	pkg.WriteJSON(w, HTTPStatus(appErr.Kind), resp)
}

func WriteUnauthorized(w http.ResponseWriter) {
	pkg.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
		Code:    "UNAUTHORIZED",
		Message: "no can do",
	})
}

// Respond logs err and writes it. Domain errors are expected outcomes and
// only logged at debug level.
func Respond(w http.ResponseWriter, op string, err error) {
	if KindOf(err) == "" {
		log.Errorf("%s: %s", op, err)
	} else {
		log.Debugf("%s: %s", op, err)
	}
	WriteError(w, err)
}
