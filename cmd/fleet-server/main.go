package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/frotafleet/frotafleet/internal/common/config"
	"github.com/frotafleet/frotafleet/internal/common/logger"
	"github.com/frotafleet/frotafleet/internal/common/metrics"
	"github.com/frotafleet/frotafleet/internal/common/tracing"
	"github.com/frotafleet/frotafleet/internal/company"
	"github.com/frotafleet/frotafleet/internal/httpapi"
	"github.com/frotafleet/frotafleet/internal/rental"
	"github.com/frotafleet/frotafleet/internal/storage"
	"github.com/frotafleet/frotafleet/internal/transfer"
	"github.com/frotafleet/frotafleet/internal/user"
	"github.com/frotafleet/frotafleet/internal/vehicle"
)

var configPath = flag.String("config", "configs/fleet-server.json", "path to the config file")

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.Path)
	if err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}

	metrics.Init()

	tracer, closer, err := tracing.InitTracer(cfg.Server.Name, cfg.Jaeger.Endpoint, cfg.Jaeger.Sampler)
	if err != nil {
		log.Warnf("failed to init tracer: %v", err)
	} else {
		defer closer.Close()
	}
	_ = tracer

	db, err := storage.Open(cfg.Database)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	if err := storage.Migrate(db); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	userRepo := user.NewRepo(db)
	vehicleRepo := vehicle.NewRepo(db)
	rentalRepo := rental.NewRepo(db)
	companyRepo := company.NewRepo(db)

	userSvc := user.NewService(userRepo, log)
	vehicleSvc := vehicle.NewService(vehicleRepo)
	rentalSvc := rental.NewService(rentalRepo, vehicleRepo)
	companySvc := company.NewService(companyRepo)
	transferSvc := transfer.NewService(vehicleRepo, rentalRepo, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := userSvc.Seed(ctx, cfg.Seed.Tenants, cfg.Seed.InitialPassword); err != nil {
		log.Fatalf("failed to seed bootstrap admins: %v", err)
	}

	api := httpapi.NewAPI(cfg, log, userSvc, vehicleSvc, rentalSvc, companySvc, transferSvc)
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: api.Router(),
	}

	go func() {
		log.Infof("%s listening on %s", cfg.Server.Name, server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownSecs)*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("http shutdown error: %v", err)
	}

	log.Info("graceful shutdown complete")
}
