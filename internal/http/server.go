// Package http exposes the REST API.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fintrack/internal/auth"
	"fintrack/internal/cache"
	"fintrack/internal/core"
	applog "fintrack/internal/log"
	"fintrack/internal/ocr"
	"fintrack/internal/services"
)

type Server struct {
	http.Server

	bills        *services.BillService
	transactions *services.TransactionService
	categories   *services.CategoryService
	users        *services.UserService
	authn        *auth.PasswordAuthenticator
	tokens       *auth.JWTManager
	receipts     ocr.ReceiptReader

	rateLimiter   *rateLimiter
	metrics       *metrics
	categoryCache *cache.LRUCache[[]core.Category]
	cacheManager  *cache.Manager

	shutdownOnce sync.Once
}

// Options carries the collaborators the server needs. Receipts may be nil,
// which disables the scan endpoint.
type Options struct {
	Bills        *services.BillService
	Transactions *services.TransactionService
	Categories   *services.CategoryService
	Users        *services.UserService
	Authn        *auth.PasswordAuthenticator
	Tokens       *auth.JWTManager
	Receipts     ocr.ReceiptReader

	RateLimitPerMinute int
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, opts Options) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		bills:         opts.Bills,
		transactions:  opts.Transactions,
		categories:    opts.Categories,
		users:         opts.Users,
		authn:         opts.Authn,
		tokens:        opts.Tokens,
		receipts:      opts.Receipts,
		rateLimiter:   newRateLimiter(opts.RateLimitPerMinute),
		metrics:       newMetrics(),
		categoryCache: cache.NewLRUCache[[]core.Category](500, 5*time.Minute),
		cacheManager:  cache.NewManager(),
	}
	s.cacheManager.Register(s.categoryCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	mux.HandleFunc("POST /api/auth/register", s.wrap(s.handleRegister))
	mux.HandleFunc("POST /api/auth/login", s.wrap(s.handleLogin))

	mux.HandleFunc("GET /api/users/me", s.protected(s.handleGetProfile))
	mux.HandleFunc("PUT /api/users/me", s.protected(s.handleUpdateProfile))
	mux.HandleFunc("PUT /api/users/me/password", s.protected(s.handleChangePassword))

	mux.HandleFunc("GET /api/bills", s.protected(s.handleListBills))
	mux.HandleFunc("POST /api/bills", s.protected(s.handleCreateBill))
	mux.HandleFunc("GET /api/bills/upcoming", s.protected(s.handleUpcomingBills))
	mux.HandleFunc("GET /api/bills/overdue", s.protected(s.handleOverdueBills))
	mux.HandleFunc("GET /api/bills/activity", s.protected(s.handleBillActivity))
	mux.HandleFunc("GET /api/bills/{id}", s.protected(s.handleGetBill))
	mux.HandleFunc("PUT /api/bills/{id}", s.protected(s.handleUpdateBill))
	mux.HandleFunc("DELETE /api/bills/{id}", s.protected(s.handleDeleteBill))
	mux.HandleFunc("POST /api/bills/{id}/pay", s.protected(s.handleMarkBillPaid))
	mux.HandleFunc("POST /api/bills/{id}/generate-next", s.protected(s.handleGenerateNextBill))

	mux.HandleFunc("GET /api/transactions", s.protected(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.protected(s.handleCreateTransaction))
	mux.HandleFunc("GET /api/transactions/expenses/range", s.protected(s.handleExpensesByRange))
	mux.HandleFunc("POST /api/transactions/scan-receipt", s.protected(s.handleScanReceipt))
	mux.HandleFunc("GET /api/transactions/{id}", s.protected(s.handleGetTransaction))
	mux.HandleFunc("PUT /api/transactions/{id}", s.protected(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.protected(s.handleDeleteTransaction))

	mux.HandleFunc("GET /api/categories", s.protected(s.handleListCategories))
	mux.HandleFunc("POST /api/categories", s.protected(s.handleCreateCategory))
	mux.HandleFunc("PUT /api/categories/{id}", s.protected(s.handleUpdateCategory))
	mux.HandleFunc("DELETE /api/categories/{id}", s.protected(s.handleDeleteCategory))

	return s
}

// Shutdown stops the HTTP listener and the background cleanup goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// wrap applies security headers, rate limiting, request IDs, metrics, and
// access logging. The request context carries a logger stamped with the
// request ID so handlers and the access log share it.
func (s *Server) wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := clientAddr(r)

		requestID := generateRequestID()
		w.Header().Set("X-Request-ID", requestID)
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		logger := applog.FromContext(ctx).With(applog.FieldRequestID, requestID)
		ctx = context.WithValue(ctx, applog.LoggerContextKey, logger)
		r = r.WithContext(ctx)

		if isMutation(r.Method) && !s.rateLimiter.allow(clientIP) {
			logger.Logger.WarnContext(ctx, "Rate limit exceeded",
				applog.FieldComponent, applog.ComponentRateLimit,
				applog.FieldClientIP, clientIP,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Cache-Control", "no-store")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		s.metrics.observe(r.Method, r.Pattern, rw.statusCode, duration)
		applog.AccessLog(ctx, r, rw.statusCode, duration.Milliseconds(), clientIP)
	}
}

// protected is wrap plus token authentication.
func (s *Server) protected(next http.HandlerFunc) http.HandlerFunc {
	return s.wrap(s.requireAuth(next))
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func clientAddr(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

type contextKey string

const requestIDKey contextKey = "request_id"

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
