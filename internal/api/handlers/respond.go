package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
)

var errRange = errors.New("to must not be before from")

func errInvalidDate(param string) error {
	return fmt.Errorf("%s must be a YYYY-MM-DD date", param)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
