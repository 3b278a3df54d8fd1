package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vollmed/clinic-api/internal/config"
	"github.com/vollmed/clinic-api/internal/domain/appointment/validation"
	v1 "github.com/vollmed/clinic-api/internal/handler/v1"
	"github.com/vollmed/clinic-api/internal/repository"
	"github.com/vollmed/clinic-api/internal/service"
	"github.com/vollmed/clinic-api/pkg/auth"
	"github.com/vollmed/clinic-api/pkg/database"
	"github.com/vollmed/clinic-api/pkg/logger"
	"github.com/vollmed/clinic-api/pkg/metrics"
	"github.com/vollmed/clinic-api/pkg/tracer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	log.Info("starting",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Warn("tracer shutdown", zap.Error(err))
		}
	}()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, log); err != nil {
		return err
	}

	collector := metrics.NewCollector("clinic")
	jwtManager := auth.NewJWTManager(cfg.JWT)

	doctorRepo := repository.NewDoctorRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	userRepo := repository.NewUserRepository(db)

	auditSvc := service.NewAuditService(auditRepo, log)
	defer auditSvc.Shutdown()

	rules := validation.Default(doctorRepo, patientRepo, appointmentRepo)

	bookingSvc := service.NewBookingService(appointmentRepo, doctorRepo, patientRepo, rules, auditSvc, nil, log)
	doctorSvc := service.NewDoctorService(doctorRepo, auditSvc, log)
	patientSvc := service.NewPatientService(patientRepo, auditSvc, log)
	authSvc := service.NewAuthService(userRepo, jwtManager, log)

	router := v1.NewRouter(v1.RouterDeps{
		JWTManager:  jwtManager,
		Collector:   collector,
		Auth:        v1.NewAuthHandler(authSvc),
		Doctor:      v1.NewDoctorHandler(doctorSvc, collector),
		Patient:     v1.NewPatientHandler(patientSvc, collector),
		Appointment: v1.NewAppointmentHandler(bookingSvc, collector),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	log.Info("shutdown complete")
	return nil
}
