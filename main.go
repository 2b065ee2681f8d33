package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"lg/fitpulse-api/internal/config"
	"lg/fitpulse-api/internal/logging"
	"lg/fitpulse-api/internal/metrics"
	"lg/fitpulse-api/internal/nutrition"
	"lg/fitpulse-api/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	hostname, _ := os.Hostname()
	logCloser := logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogFile,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryDSN != "",
		SentryDSN:        cfg.SentryDSN,
		SentryServerName: hostname,
	})

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := store.Connect(ctx, cfg.DBURL)
	if err != nil {
		log.Fatalf("unable to connect to database: %s", err)
	}

	planner, err := nutrition.NewPlanner(cfg.Planner, nil)
	if err != nil {
		log.Fatalf("planner settings: %s", err)
	}

	reg := metrics.SetupPrometheus()
	h := newHandler(db, planner, cache.New(cfg.PlanCacheTTL, cfg.PlanCacheTTL/2), metrics.NewManager("fitpulse", "api", reg))

	corsOrigins := cfg.CORSAllowedOrigins
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           corsHandler.Handler(h.newRouter(reg)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("listening on %s (%s)", server.Addr, cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("server: %s", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Infoln("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	err = multierr.Combine(
		server.Shutdown(shutdownCtx),
		db.Close(),
		logCloser.Close(),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "shutdown: %v\n", err)
		os.Exit(1)
	}
}
