// internal/app/system/webjson/webjson.go

// Package webjson holds the small request/response helpers every feature
// handler uses. Success bodies are the caller's own structs; errors are
// always {"error": "..."} so clients can distinguish them from results.
package webjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// MaxBodyBytes bounds request bodies; mobile clients send small JSON.
const MaxBodyBytes = 1 << 20

// Write encodes v as the response body with the given status.
func Write(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes {"ok": true}.
func OK(w http.ResponseWriter) {
	Write(w, http.StatusOK, map[string]bool{"ok": true})
}

// Error writes {"error": msg} with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]string{"error": msg})
}

// Decode reads the request body into v, rejecting unknown fields and
// oversized payloads.
func Decode(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}
