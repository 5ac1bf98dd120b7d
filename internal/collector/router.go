package collector

import (
	"net/http"
)

// SetupRouter sets up HTTP routes
func SetupRouter(handler *Handler, apiKey string) http.Handler {
	mux := http.NewServeMux()

	// GET /version
	mux.HandleFunc("/version", handler.GetVersion)

	// POST /app/validate
	mux.HandleFunc("/app/validate", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			handler.ValidateApp(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// POST /errors
	mux.HandleFunc("/errors", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			handler.CollectError(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// GET /stats
	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			handler.GetStats(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Apply auth middleware, but exclude /version endpoint
	wrapped := AuthMiddleware(mux, apiKey)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/version" {
			mux.ServeHTTP(w, r)
			return
		}
		wrapped.ServeHTTP(w, r)
	})
}
