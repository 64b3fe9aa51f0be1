package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"tabsplit/internal/config"
	"tabsplit/internal/middleware"
	"tabsplit/internal/service"
	"tabsplit/internal/storage/memory"
	"tabsplit/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel)

	store := memory.New()
	defer store.Close()

	svc := service.NewSessionService(store, cfg.MaxImportRows)

	mux := http.NewServeMux()
	mux.Handle("/api/", service.Handler(svc))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := middleware.Logging(middleware.Metrics(middleware.CORS(mux)))

	// h2c lets HTTP/2 clients connect without TLS behind a local proxy.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	slog.Info("Server starting", "address", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
