package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-pkgz/auth/v2/token"

	"wishloop/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			log.Printf("[handlers] failed to encode response: %v", err)
		}
	}
}

// writeError maps the shared error taxonomy onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, models.ErrInvalidState):
		status = http.StatusConflict
	case errors.Is(err, models.ErrPriceParse):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		log.Printf("[handlers] internal error: %v", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// actor returns the authenticated user's id, or "" with false for anonymous
// requests. Handlers never trust an actor id from the request payload.
func actor(r *http.Request) (string, bool) {
	u, err := token.GetUserInfo(r)
	if err != nil || u.ID == "" {
		return "", false
	}
	return u.ID, true
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
