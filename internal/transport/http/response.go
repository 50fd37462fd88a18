package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type successResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := errorResponse{Success: false, Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	writeJSON(w, status, resp)
}
