// Command audiomon-panel runs the AudioMon admin panel: it serves the
// admin pages and the same-origin proxy API that forwards authenticated
// requests to the external AudioMon backend.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"audiomonpanel/pkg/api"
	"audiomonpanel/pkg/config"
	"audiomonpanel/pkg/gateway"
	"audiomonpanel/pkg/health"
	"audiomonpanel/pkg/logger"
	"audiomonpanel/pkg/session"

	"github.com/gin-gonic/gin"
)

func main() {
	addr := flag.String("addr", "", "Server address (overrides config)")
	configPath := flag.String("config", "", "Config file path (optional)")
	backendURL := flag.String("backend", "", "Backend base URL (overrides config)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	logFormat := flag.String("log-format", "text", "Log format: text or json")
	flag.Parse()

	logger.Init(logger.LogLevel(*logLevel), *logFormat)
	log := logger.Get()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.ErrorWithErr("failed to load configuration", err)
		os.Exit(1)
	}

	// Command-line flags take precedence over file and environment
	if *addr != "" {
		cfg.Address = *addr
	}
	if *backendURL != "" {
		cfg.Backend.BaseURL = *backendURL
	}

	log.InfoWith("configuration loaded",
		"address", cfg.Address,
		"backend", cfg.Backend.BaseURL,
		"environment", cfg.Environment,
		"tls", cfg.TLS.Enabled,
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(api.RequestID())
	router.Use(api.AccessLog(log))
	router.LoadHTMLGlob("web/templates/*.html")

	handler := api.NewHandler(
		gateway.NewClient(cfg.Backend.BaseURL),
		session.NewStore(cfg.IsProduction()),
		health.NewMonitor(),
	)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Address,
		Handler: router,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errorChan := make(chan error, 1)
	go func() {
		var err error
		if cfg.TLS.Enabled {
			log.InfoWith("starting panel with TLS", "address", cfg.Address)
			err = srv.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			log.InfoWith("starting panel with HTTP", "address", cfg.Address)
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errorChan <- err
		}
	}()

	select {
	case sig := <-sigChan:
		log.InfoWith("received signal, shutting down", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.ErrorWithErr("error during shutdown", err)
		}
		log.InfoWith("panel stopped")

	case err := <-errorChan:
		log.ErrorWithErr("panel encountered fatal error", err)
		os.Exit(1)
	}
}
