package handlers

import (
	"encoding/json"
	"net/http"

	"todo/internal/http/dto"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, dto.ErrorResponse{Error: msg})
}

func writeFieldError(w http.ResponseWriter, status int, msg, field string) {
	writeJSON(w, status, dto.ErrorResponse{Error: msg, Field: field})
}
