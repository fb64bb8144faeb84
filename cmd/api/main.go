// cmd/api/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"aiqx/internal/adapters/in/http/middleware"
	"aiqx/internal/infra/config"
	"aiqx/internal/platform/di"
)

func main() {
	ctx := context.Background()

	// local development convenience; the file is absent on Cloud Run
	if err := godotenv.Load(); err == nil {
		log.Printf("[boot] loaded .env")
	}

	cfg := config.Load()

	// ─────────────────────────────────────────────────────────────
	// Lightweight healthz first so PORT is LISTENed quickly
	// ─────────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// ─────────────────────────────────────────────────────────────
	// DI container & heavy deps; keep /healthz even on failure
	// ─────────────────────────────────────────────────────────────
	cont, err := di.Build(ctx, cfg)
	if err != nil {
		log.Printf("[boot] WARN: di init failed: %v (serving /healthz only)", err)
	} else {
		defer cont.Close()
		cont.Register(mux)
		log.Printf("[boot] api mounted network=%s wallet_auth=%v", cfg.SolanaNetwork, cfg.WalletAuthRequired)
	}

	// ─────────────────────────────────────────────────────────────
	// Global middleware: CORS outermost, then panic recovery, then
	// wallet signature verification on /api routes
	// ─────────────────────────────────────────────────────────────
	var handler http.Handler = mux
	handler = middleware.WalletAuth(cfg.WalletAuthRequired)(handler)
	handler = middleware.Recover(handler)
	handler = middleware.CORS(cfg.AllowedOrigins)(handler)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─────────────────────────────────────────────────────────────
	// Graceful shutdown for Cloud Run
	// ─────────────────────────────────────────────────────────────
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		sig := <-c
		log.Printf("[boot] received signal: %v; shutting down...", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[boot] server shutdown error: %v", err)
		}
		close(idleConnsClosed)
	}()

	log.Printf("[boot] listening on :%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("[boot] server error: %v", err)
	}

	<-idleConnsClosed
	log.Printf("[boot] server stopped")
}
