package handler

import "net/http"

// Home answers the root endpoint with a greeting.
func Home(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, "Welcome to PR-review-agent API")
}
