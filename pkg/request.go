package pkg

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"
)

// DecodeJSONBody decodes the JSON request body into v. On failure it writes
// a 400 response and returns false.
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if !IsJSONContent(r) {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Errorf("%s %s, unmarshal json params: %s", r.Method, r.URL.Path, err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// IsJSONContent reports whether the request body is declared as JSON.
// Parameters such as charset are ignored.
func IsJSONContent(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == ContentType.JSON
}

// IntQueryParam returns 0 when the parameter is absent.
func IntQueryParam(r *http.Request, name string) (int, error) {
	val := r.URL.Query().Get(name)
	if val == "" {
		return 0, nil
	}
	return strconv.Atoi(val)
}
