// Package http exposes the dashboard view models as a JSON API.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"famboard/internal/cache"
	"famboard/internal/log"
	"famboard/internal/middleware/ratelimit"
	"famboard/internal/middleware/security"
	"famboard/internal/middleware/trace"
	"famboard/internal/services"
	"famboard/internal/views"
)

const (
	overviewCacheSize = 100
	taskCacheSize     = 10
	cacheTTL          = 5 * time.Minute
	cleanupInterval   = 10 * time.Minute
)

type Server struct {
	http.Server

	dashboard *services.DashboardService
	archiver  *services.ReportArchiver

	limiter  *ratelimit.Limiter
	detector *security.Detector
	headers  *security.HeadersMiddleware
	tracer   *trace.Middleware
	reqLog   *log.StructuredLogger

	overviewCache *cache.LRUCache[services.DashboardOverview]
	budgetCache   *cache.LRUCache[budgetResponse]
	taskCache     *cache.LRUCache[services.TaskBoard]
	cacheManager  *cache.Manager

	shutdownOnce sync.Once
}

type budgetResponse struct {
	Report views.BudgetReport `json:"report"`
	Source views.PeriodState  `json:"source"`
}

// NewServer wires routes, caches and the middleware stack. The archiver may
// be nil when no local archive is configured; POST /reports/archive then
// returns 503.
func NewServer(addr string, dashboard *services.DashboardService, archiver *services.ReportArchiver) *Server {
	mux := http.NewServeMux()

	detector := security.NewDetector()
	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		dashboard:     dashboard,
		archiver:      archiver,
		limiter:       ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		detector:      detector,
		headers:       security.NewHeadersMiddleware(security.DefaultHeadersConfig()),
		tracer:        trace.NewMiddleware(detector.ExtractClientIP),
		reqLog:        log.NewStructuredLogger(log.New(log.Config{Component: log.ComponentHTTP})),
		overviewCache: cache.NewLRUCache[services.DashboardOverview](overviewCacheSize, cacheTTL),
		budgetCache:   cache.NewLRUCache[budgetResponse](overviewCacheSize, cacheTTL),
		taskCache:     cache.NewLRUCache[services.TaskBoard](taskCacheSize, cacheTTL),
		cacheManager:  cache.NewManager(),
	}

	s.cacheManager.Register(s.overviewCache)
	s.cacheManager.Register(s.budgetCache)
	s.cacheManager.Register(s.taskCache)
	s.cacheManager.StartCleanup(cleanupInterval)

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.Handle("/dashboard/overview", s.protected(s.handleOverview))
	mux.Handle("/dashboard/categories", s.protected(s.handleCategories))
	mux.Handle("/dashboard/weekly", s.protected(s.handleWeekly))
	mux.Handle("/dashboard/top", s.protected(s.handleTop))
	mux.Handle("/dashboard/members", s.protected(s.handleMembers))
	mux.Handle("/budgets", s.protected(s.handleBudgets))
	mux.Handle("/tasks", s.protected(s.handleTasks))
	mux.Handle("/reports/archive", s.protected(s.handleArchiveReport))

	return s
}

// protected applies the full middleware stack to an endpoint.
func (s *Server) protected(handler http.HandlerFunc) http.Handler {
	limited := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := s.detector.ExtractClientIP(r)

		if s.detector.DetectSuspiciousRequest(r) {
			slog.WarnContext(r.Context(), "Suspicious request detected",
				"client_ip", clientIP,
				"method", r.Method,
				"path", r.URL.Path)
		}

		if r.Method == http.MethodPost && !s.limiter.Allow(clientIP) {
			slog.WarnContext(r.Context(), "Rate limit exceeded",
				"client_ip", clientIP, "path", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		handler(w, r)
	})

	return s.tracer.Middleware(s.headers.Middleware(limited))
}

// Shutdown stops the HTTP listener and the cache and limiter cleanup
// goroutines exactly once.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// invalidateCaches drops cached reads after an archive changes the data a
// historical month resolves to.
func (s *Server) invalidateCaches() {
	s.overviewCache.Purge()
	s.budgetCache.Purge()
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
