package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

// envelope is the response wrapper used by every endpoint:
// {success, message?, <entity>?}.
type envelope map[string]interface{}

func respondJSON(w http.ResponseWriter, status int, payload envelope) {
	payload["success"] = status < 400
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, envelope{"message": message})
}
