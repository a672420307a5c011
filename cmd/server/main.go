package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MoosaTae/license-plate-ocr/internal/config"
	"github.com/MoosaTae/license-plate-ocr/internal/logger"
	"github.com/MoosaTae/license-plate-ocr/internal/ocr"
	"github.com/MoosaTae/license-plate-ocr/internal/plate"
	"github.com/MoosaTae/license-plate-ocr/internal/server"
	"github.com/MoosaTae/license-plate-ocr/pkg/utils"
	"github.com/MoosaTae/license-plate-ocr/pkg/version"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	fmt.Printf("Starting %s...\n", version.GetFullName())

	// Initialize logger
	if _, err := logger.Setup(logger.INFO); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("Logger initialized")
	logger.Infof("Application: %s", version.GetFullName())
	logger.Infof("Author: %s", version.Author)

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Errorf("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	logger.Info("Configuration loaded successfully")
	logger.Debugf("Confidence threshold: %.2f", cfg.Validation.ConfidenceThreshold)
	logger.Debugf("Fuzzy threshold: %.2f", cfg.Validation.FuzzyThreshold)

	// Load reference data; missing files degrade with a warning
	provinces, err := plate.LoadProvinceList(utils.GetDataPath(cfg.Data.ProvinceList))
	if err != nil {
		logger.Errorf("Failed to load province list: %v", err)
		os.Exit(1)
	}

	registry, err := plate.LoadRegistry(utils.GetDataPath(cfg.Data.Registry))
	if err != nil {
		logger.Errorf("Failed to load registry: %v", err)
		os.Exit(1)
	}

	engine := ocr.NewTesseractEngine()
	if !ocr.Available {
		logger.Warning("OCR support not compiled in, image analysis will fail (build with -tags=ocr)")
	}

	srv := server.New(cfg, registry, provinces, engine)

	httpSrv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Router(),
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Criticalf("Server failed: %v", err)
			os.Exit(1)
		}
	}()

	logger.Infof("Listening on %s", cfg.Server.Addr)
	logger.Info("Press Ctrl+C to exit")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	logger.Infof("Received signal: %v", sig)
	logger.Info("Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		logger.Errorf("Error shutting down server: %v", err)
	}

	logger.Info("Application stopped")
}
