// Package kernel assembles the HTTP handler: the global middleware stack,
// the operational endpoints, and the application routes.
package kernel

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/inkstore/app/routes"
	"github.com/shashiranjanraj/inkstore/pkg/metrics"
	"github.com/shashiranjanraj/inkstore/pkg/middleware"
	"github.com/shashiranjanraj/inkstore/pkg/reqid"
	"github.com/shashiranjanraj/inkstore/pkg/response"
	"github.com/shashiranjanraj/inkstore/pkg/router"
	"github.com/shashiranjanraj/inkstore/pkg/session"
)

// Handler builds the complete HTTP handler.
//
// Global middleware stack (outermost → innermost):
//  1. Prometheus metrics — outermost for accurate total latency
//  2. Recovery           — catches panics before they kill the goroutine
//  3. Request ID         — inject unique ID before anything logs
//  4. Logger             — logs request_id from context
//  5. Session            — load/create session cookie via Redis
//  6. CORS               — set CORS headers
//  7. Rate limiter       — reject abusers early
func Handler() http.Handler {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(session.Middleware(session.DefaultOptions()))
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	// Operational endpoints, outside /api: no auth, no rate limit concerns
	// beyond the global limiter.
	r.HandleFunc("/metrics", metrics.Handler())
	r.Get("/api/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})

	routes.RegisterAPI(r)

	return r.Handler()
}
