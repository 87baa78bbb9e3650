package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"relet/internal/platform/metrics"
	"relet/internal/platform/middleware"
	renewalhandler "relet/internal/renewal/handler"
	"relet/pkg/platform/httputil"
)

// HealthCheck reports the liveness of one backing dependency.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Deps carries everything the router mounts.
type Deps struct {
	Renewal   *renewalhandler.Handler
	Validator middleware.TokenValidator
	Logger    *slog.Logger
	HTTP      *metrics.HTTP
	Health    []HealthCheck
}

// NewRouter wires all public endpoints behind the shared middleware stack.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(d.HTTP.Middleware)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Principal(d.Validator, d.Logger))

	d.Renewal.Register(r)

	r.Get("/healthz", handleHealth(d.Health))
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func handleHealth(checks []HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		status := http.StatusOK
		body := map[string]string{"status": "ok"}
		for _, c := range checks {
			if err := c.Check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
				body[c.Name] = err.Error()
			} else {
				body[c.Name] = "ok"
			}
		}
		httputil.WriteJSON(w, status, body)
	}
}
