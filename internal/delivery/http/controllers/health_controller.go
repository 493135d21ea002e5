package controllers

import (
	"net/http"
	"strings"

	h "contactrelay/internal/delivery/http/helpers"
)

// HealthResponse is the response body for GET /health
type HealthResponse struct {
	Status string `json:"status"`
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse "data.status is ok"
// @Router /health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	h.WriteJSONSuccess(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// NotFound answers requests no route matched with a JSON 404.
func NotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "no route for "+r.URL.Path)
}

// MethodNotAllowed returns a handler answering a JSON 405 that lists the
// methods the route accepts.
func MethodNotAllowed(allow ...string) http.HandlerFunc {
	allowed := strings.Join(allow, ", ")
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allowed)
		h.WriteJSONError(w, http.StatusMethodNotAllowed, h.ErrCodeMethodNotAllowed, r.Method+" is not allowed on "+r.URL.Path)
	}
}
