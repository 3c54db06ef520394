package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the web clients that talk to this API. Origins are fixed
// rather than configurable so a misconfigured deploy cannot open the API to
// arbitrary sites.
func CORS() func(http.Handler) http.Handler {
	allowedOrigins := []string{
		"http://localhost:3000",      // local dev
		"https://app.equilog.fr",     // production web client
		"https://staging.equilog.fr", // staging web client
	}

	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
