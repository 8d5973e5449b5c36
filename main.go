package main

import (
	analysis "Impas/internal/calc/analysis"
	batch "Impas/internal/calc/batch"
	breakeven "Impas/internal/calc/breakeven"
	metrics "Impas/internal/calc/metrics"
	report "Impas/internal/calc/report"
	sensitivity "Impas/internal/calc/sensitivity"
	workbook "Impas/internal/calc/workbook"
	config "Impas/internal/config"
	logging "Impas/internal/logging"
	middleware "Impas/internal/middleware"
	preset "Impas/internal/preset"
	share "Impas/internal/share"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, cfg *config.Config, logger *zap.Logger, presets []preset.Preset) error {
	mux.Use(middleware.RequestLogger(logger))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}).Methods("GET")

	limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	analysisH := &analysis.Handler{Log: logger}
	breakevenH := &breakeven.Handler{}
	metricsH := &metrics.Handler{}
	sensitivityH := &sensitivity.Handler{}
	reportH := &report.Handler{Log: logger}
	batchH := &batch.Handler{}
	workbookH := &workbook.Handler{Log: logger}
	presetH := &preset.Handler{Presets: presets}

	api.HandleFunc("/tools/analysis/calc", analysisH.Calc).Methods("POST")
	api.HandleFunc("/tools/breakeven/calc", breakevenH.Calc).Methods("POST")
	api.HandleFunc("/tools/metrics/calc", metricsH.Calc).Methods("POST")
	api.HandleFunc("/tools/sensitivity/calc", sensitivityH.Calc).Methods("POST")
	api.HandleFunc("/tools/chart", analysisH.Chart).Methods("POST")
	api.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")
	api.HandleFunc("/tools/batch/calc", batchH.Calc).Methods("POST")
	api.HandleFunc("/tools/workbook/import", workbookH.Import).Methods("POST")
	api.HandleFunc("/tools/workbook/export", workbookH.Export).Methods("POST")
	api.HandleFunc("/presets", presetH.List).Methods("GET")

	if cfg.ShareKey != "" {
		signer, err := share.NewSigner([]byte(cfg.ShareKey), cfg.ShareTTL)
		if err != nil {
			return fmt.Errorf("share signer: %w", err)
		}
		shareH := &share.Handler{Signer: signer, PublicURL: cfg.PublicURL, Log: logger}
		api.HandleFunc("/share", shareH.Create).Methods("POST")
		api.HandleFunc("/share/{token}", shareH.Open).Methods("GET")
	} else {
		logger.Warn("SHARE_KEY not set, share links disabled")
	}

	mainFileServer := http.FileServer(http.Dir(cfg.StaticDir))
	mux.PathPrefix("/").
		Handler(mainFileServer)
	return nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	presets, err := preset.Load(cfg.PresetsFile)
	if err != nil {
		logger.Fatal("failed to load presets", zap.Error(err))
	}

	mux := mux.NewRouter()
	if err := HandleList(mux, cfg, logger, presets); err != nil {
		logger.Fatal("failed to register routes", zap.Error(err))
	}
	handler := CORS(mux)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", zap.String("addr", cfg.Addr), zap.Bool("tls", cfg.TLSEnabled()))
		var err error
		if cfg.TLSEnabled() {
			err = server.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	wg.Wait()
	logger.Info("server stopped")
}
