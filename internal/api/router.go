package api

import "net/http"

func Router(h *Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /message", h.CreateMessage)
	mux.HandleFunc("GET /messages/recent", h.RecentMessages)

	mux.HandleFunc("GET /printer/next-to-print", h.NextToPrint)
	mux.HandleFunc("POST /printer/mark-printed", h.MarkPrinted)

	mux.HandleFunc("GET /health", h.Health)

	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("return-to-print"))
	})

	return withCORS(mux)
}

// withCORS allows the static message form to call the API from any
// origin. There is no auth, so the open policy gives nothing away.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
