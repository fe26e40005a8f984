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

	"github.com/rs/zerolog"

	"github.com/nurpe/courier-payroll/internal/auth"
	"github.com/nurpe/courier-payroll/internal/config"
	"github.com/nurpe/courier-payroll/internal/db"
	"github.com/nurpe/courier-payroll/internal/excel"
	httphandler "github.com/nurpe/courier-payroll/internal/http"
	"github.com/nurpe/courier-payroll/internal/http/middleware"
	"github.com/nurpe/courier-payroll/internal/jobs"
	"github.com/nurpe/courier-payroll/internal/logger"
	"github.com/nurpe/courier-payroll/internal/pdf"
	"github.com/nurpe/courier-payroll/internal/repository"
	"github.com/nurpe/courier-payroll/internal/repository/memory"
	"github.com/nurpe/courier-payroll/internal/service"
)

type stores struct {
	couriers   service.CourierStore
	deliveries service.DeliveryStore
	closings   service.PayrollStore
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	st, err := openStores(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open record store")
	}

	now := time.Now
	loc := cfg.Report.Location

	courierService := service.NewCourierService(st.couriers, now)
	deliveryService := service.NewDeliveryService(st.deliveries, st.couriers, now)
	reportService := service.NewReportService(st.couriers, st.deliveries, pdf.NewGenerator(), excel.NewGenerator(), now, loc)
	payrollService := service.NewPayrollService(st.couriers, st.deliveries, st.closings, now, loc)

	issuer := auth.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.AccessTTL, now)
	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	gate := auth.NewGate(cfg.Auth.PasswordHash, issuer)

	handler := httphandler.NewHandler(courierService, deliveryService, reportService, payrollService, gate, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, cfg.HTTP.AllowedOrigins, log)

	if cfg.Payroll.CloseEnabled {
		jobManager := jobs.NewJobManager(payrollService, cfg.Payroll.CloseCron, loc, now, log)
		if err := jobManager.StartAll(); err != nil {
			log.Fatal().Err(err).Msg("failed to start jobs")
		}
		defer jobManager.StopAll()
	}

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", addr).Str("store", cfg.DB.Driver).Msg("starting payroll service")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("payroll service stopped")
}

func openStores(cfg *config.Config, log zerolog.Logger) (stores, error) {
	if cfg.DB.Driver == config.DriverMemory {
		log.Warn().Msg("using in-memory record store, data is lost on restart")
		return stores{
			couriers:   memory.NewCouriers(),
			deliveries: memory.NewDeliveries(),
			closings:   memory.NewClosings(),
		}, nil
	}

	database, err := db.New(cfg, log)
	if err != nil {
		return stores{}, err
	}
	return stores{
		couriers:   repository.NewCourierRepository(database),
		deliveries: repository.NewDeliveryRepository(database),
		closings:   repository.NewPayrollRepository(database),
	}, nil
}
