package intake

import (
	"net/http"
	"slices"
	"strings"
)

func Routes(h *Handler, displayName string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("POST /target_url", h)
	mux.Handle("GET /integration.json", DescriptorHandler(displayName))
	mux.Handle("GET /status", StatusHandler())
	mux.Handle("GET /{$}", StatusHandler())
	return mux
}

// CORS allows the listed origins ("*" for any) and answers preflight requests itself.
func CORS(origins []string) func(http.Handler) http.Handler {
	anyOrigin := len(origins) == 0 || slices.Contains(origins, "*")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case anyOrigin:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin != "" && slices.Contains(origins, origin):
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Expose-Headers", "X-Job-ID")

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join([]string{http.MethodGet, http.MethodPost, http.MethodOptions}, ", "))
				if hdr := r.Header.Get("Access-Control-Request-Headers"); hdr != "" {
					w.Header().Set("Access-Control-Allow-Headers", hdr)
				}
				w.Header().Set("Access-Control-Max-Age", "600")
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
