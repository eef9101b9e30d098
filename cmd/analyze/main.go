package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/geolife-analytics/trajectory-backend-go/internal/config"
	"github.com/geolife-analytics/trajectory-backend-go/internal/database"
	"github.com/geolife-analytics/trajectory-backend-go/internal/report"
	"github.com/geolife-analytics/trajectory-backend-go/internal/service"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	batch := service.NewBatchService(cfg, database.GetDB())
	rep, err := batch.Run(ctx)
	if err != nil {
		log.Fatal("Batch run failed:", err)
	}

	report.Render(os.Stdout, rep)
}
