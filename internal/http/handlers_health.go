package httpx

import (
	"net/http"
)

// sessionCounter is implemented by registries that can report how many client sessions they hold.
type sessionCounter interface {
	Len() int
}

type healthResponse struct {
	Status   string `json:"status"`
	Sessions *int   `json:"sessions,omitempty"`
}

// healthHandler returns 200 OK for readiness/liveness checks.
// When sessions can be counted the number of live client sessions is included.
func healthHandler(sessions SessionProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			return
		}

		resp := healthResponse{Status: "ok"}
		if counter, ok := sessions.(sessionCounter); ok {
			n := counter.Len()
			resp.Sessions = &n
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}
