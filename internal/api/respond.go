// ABOUTME: JSON response helpers shared by the API handlers
// ABOUTME: Uniform success encoding and {"error": message} error bodies

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/calibra/calibra-api/internal/store"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondStoreError maps store sentinels to 404 and everything else to a
// generic 500 so database details never reach the client.
func respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, store.ErrCompanyNotFound),
		errors.Is(err, store.ErrCalibrationNotFound),
		errors.Is(err, store.ErrProductNotFound),
		errors.Is(err, store.ErrAccountNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
