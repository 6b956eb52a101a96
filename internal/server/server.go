// Package server assembles the RPC services into one HTTP handler.
package server

import (
	"log/slog"
	"net/http"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/godutch/internal/auth"
	"github.com/mmynk/godutch/internal/ledger"
	"github.com/mmynk/godutch/internal/middleware"
	"github.com/mmynk/godutch/internal/service"
	"github.com/mmynk/godutch/internal/storage"
	"github.com/mmynk/godutch/pkg/api/apiconnect"
)

// Deps are the collaborators the server is built from.
type Deps struct {
	Store      storage.Store
	Ledger     *ledger.Ledger
	Deriver    auth.Deriver
	JWTManager *auth.JWTManager
	Logger     *slog.Logger
	Registry   *prometheus.Registry
}

// NewHandler mounts every service plus /metrics and /healthz.
// The result speaks HTTP/1.1 and cleartext HTTP/2.
func NewHandler(d Deps) http.Handler {
	metrics := middleware.NewMetrics(d.Registry)
	logging := middleware.LoggingInterceptor(d.Logger)

	public := connect.WithInterceptors(metrics.Interceptor(), logging)
	protected := connect.WithInterceptors(metrics.Interceptor(), middleware.RequireAuth(d.JWTManager), logging)

	authSvc := service.NewAuthService(auth.NewIdentityStore(d.Store), d.Deriver, d.JWTManager, d.Logger)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(authSvc, public))
	mux.Handle(apiconnect.NewGroupServiceHandler(service.NewGroupService(d.Ledger), protected))
	mux.Handle(apiconnect.NewExpenseServiceHandler(service.NewExpenseService(d.Ledger), protected))
	mux.Handle("/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	return h2c.NewHandler(corsMiddleware(mux), &http2.Server{})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
