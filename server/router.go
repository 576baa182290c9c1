package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/blogem/campus-feedback/authenticator"
	"github.com/blogem/campus-feedback/controllers"
	"github.com/blogem/campus-feedback/metrics"
	"github.com/blogem/campus-feedback/middleware"
)

const sessionCookieName = "campus_feedback_session"

// RouterOptions are the collaborators the HTTP surface is built from
type RouterOptions struct {
	Controllers    *controllers.Controllers
	Verifier       authenticator.Verifier
	Audit          middleware.AuditRecorder
	LiveHandler    http.Handler
	RateLimiter    *middleware.RateLimiter
	Registry       *prometheus.Registry
	HTTPMetrics    *metrics.HTTPMetrics
	AllowedOrigins []string
	Production     bool

	// TrustProxyHeaders rewrites RemoteAddr from proxy headers before any
	// middleware keys on the client IP
	TrustProxyHeaders bool
	Logger            *zap.Logger
}

// NewRouter configures all routes
func NewRouter(opts RouterOptions) (*chi.Mux, error) {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	if opts.TrustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(opts.HTTPMetrics.Middleware)
	if opts.Production {
		r.Use(middleware.SecurityHeaders)
	}

	// Session middleware
	sessionHandler, err := session.Sessioner(session.Options{
		Provider:       "memory",
		ProviderConfig: "",
		CookieName:     sessionCookieName,
		Secure:         opts.Production,
		Gclifetime:     3600,
		Maxlifetime:    3600,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}

	ctrl := opts.Controllers

	r.Get("/health", ctrl.Health.Check)
	r.Handle("/metrics", metrics.Handler(opts.Registry))
	if opts.LiveHandler != nil {
		r.Handle("/ws", opts.LiveHandler)
	}

	// JSON API (no session)
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
		r.Use(chimiddleware.Timeout(30 * time.Second))
		r.Get("/summary", ctrl.API.Summary)
		r.With(opts.RateLimiter.Middleware).Post("/feedback", ctrl.API.SubmitFeedback)
	})

	// HTML pages
	r.Group(func(r chi.Router) {
		r.Use(chimiddleware.Timeout(30 * time.Second))
		r.Use(chimiddleware.Compress(5))
		r.Use(sessionHandler)
		r.Use(middleware.Actor(opts.Verifier))

		r.Get("/", ctrl.Dashboard.Index)
		r.With(opts.RateLimiter.Middleware).Post("/feedback", ctrl.Dashboard.Submit)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AuditLogger(opts.Audit, opts.Logger))

			r.Get("/", ctrl.Admin.Index)
			r.With(opts.RateLimiter.Middleware).Post("/login", ctrl.Admin.Login)
			r.Post("/logout", ctrl.Admin.Logout)

			// PROTECTED ROUTES (admin gate required)
			r.With(middleware.RequireAdmin).Get("/export.csv", ctrl.Admin.Export)
		})
	})

	return r, nil
}

// SameOrigin accepts WebSocket upgrades from the serving host or one of the allowed origins
func SameOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		if strings.EqualFold(u.Host, r.Host) {
			return true
		}
		for _, a := range allowed {
			if strings.EqualFold(strings.TrimSpace(a), origin) {
				return true
			}
		}
		return false
	}
}
