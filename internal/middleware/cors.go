package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORSMiddleware configures the browser origin policy. Preflights are
// answered 200 immediately; every other response carries the
// Allow-Origin/Allow-Credentials pair for an allowed origin.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD", "PATCH"},
		AllowedHeaders: []string{
			"Content-Type", "Authorization", "Accept", "Origin", "X-Requested-With",
			"Access-Control-Request-Method", "Access-Control-Request-Headers",
		},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           86400,
	})
}

// AllowOptions answers OPTIONS probes that carry no
// Access-Control-Request-Method with a plain 200. Real preflights never
// reach this point; cors.Handler short-circuits them.
func AllowOptions(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
