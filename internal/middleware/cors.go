package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig configures cross-origin access for browser clients.
type CORSConfig struct {
	// AllowedOrigins lists origins allowed to call the API. Entries may
	// use a "*.example.com" wildcard for subdomains. Empty denies all
	// cross-origin requests.
	AllowedOrigins []string

	// AllowedMethods for preflight responses.
	AllowedMethods []string

	// AllowedHeaders a cross-origin request may send.
	AllowedHeaders []string

	// ExposedHeaders the browser may read from responses.
	ExposedHeaders []string

	// AllowCredentials permits cookies on cross-origin requests. The
	// session cookie needs this; never combine it with a "*" origin.
	AllowCredentials bool

	// MaxAge is how long browsers may cache the preflight, in seconds.
	MaxAge int
}

// DefaultCORSConfig returns defaults with no origins allowed.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: []string{},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Content-Type",
			"X-Request-ID",
			"Accept",
			"Accept-Language",
		},
		ExposedHeaders: []string{
			"X-Request-ID",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
		},
		AllowCredentials: false,
		MaxAge:           86400,
	}
}

// CORS handles cross-origin requests, including preflights. Requests
// from origins outside the allow list get no CORS headers, which makes
// the browser block the response; disallowed preflights get 403.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	exposed := strings.Join(cfg.ExposedHeaders, ", ")

	exact := make(map[string]bool, len(cfg.AllowedOrigins))
	var wildcards []string
	for _, origin := range cfg.AllowedOrigins {
		if strings.HasPrefix(origin, "*.") {
			wildcards = append(wildcards, strings.ToLower(origin))
			continue
		}
		exact[strings.ToLower(origin)] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			// Same-origin requests carry no Origin header.
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !originAllowed(origin, exact, wildcards) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			if cfg.AllowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			if exposed != "" {
				w.Header().Set("Access-Control-Expose-Headers", exposed)
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				if cfg.MaxAge > 0 {
					w.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, exact map[string]bool, wildcards []string) bool {
	lowered := strings.ToLower(origin)
	if exact[lowered] {
		return true
	}
	for _, pattern := range wildcards {
		// "*.example.com" matches "https://sub.example.com" but not
		// "https://example.com" or "https://notexample.com".
		suffix := strings.TrimPrefix(pattern, "*")
		if !strings.HasSuffix(lowered, suffix) {
			continue
		}
		prefix := strings.TrimSuffix(lowered, suffix)
		if strings.HasSuffix(prefix, "://") || strings.Contains(prefix, ".") {
			return true
		}
	}
	return false
}
