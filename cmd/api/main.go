package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"hybrid-sim/internal/api"
	"hybrid-sim/internal/api/handlers"
	"hybrid-sim/internal/api/middleware"
	"hybrid-sim/internal/data"
	"hybrid-sim/internal/engine/reference"
	"hybrid-sim/internal/hybrid"
	"hybrid-sim/internal/logger"
	"hybrid-sim/internal/metrics"
)

func main() {
	log := logger.New("api")

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	storeSize := 256
	if v, err := strconv.Atoi(os.Getenv("RESULT_STORE_SIZE")); err == nil && v > 0 {
		storeSize = v
	}
	storeTTL := time.Hour
	if v, err := time.ParseDuration(os.Getenv("RESULT_STORE_TTL")); err == nil {
		storeTTL = v
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	collector, err := metrics.NewCollector(nil)
	if err != nil {
		log.Errorf("register metrics: %v", err)
		os.Exit(1)
	}
	runner := hybrid.New(reference.New())
	runner.Log = logger.New("hybrid")
	runner.Recorder = collector

	presetDir := handlers.PresetDirFromEnv()
	log.Infof("serving presets from %s", presetDir)

	router := api.NewRouter(api.Options{
		Runner:         runner,
		Store:          data.NewResultStore[*hybrid.Result](storeSize, storeTTL),
		PresetDir:      presetDir,
		AllowedOrigins: middleware.AllowedOriginsFromEnv(),
		Log:            logger.New("http"),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infof("starting API server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("server: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
}
