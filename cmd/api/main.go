package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tabibi/patient-api/internal/config"
	"github.com/tabibi/patient-api/internal/handler"
	appointmenthandler "github.com/tabibi/patient-api/internal/handler/appointment"
	authhandler "github.com/tabibi/patient-api/internal/handler/auth"
	doctorhandler "github.com/tabibi/patient-api/internal/handler/doctor"
	patienthandler "github.com/tabibi/patient-api/internal/handler/patient"
	prescriptionhandler "github.com/tabibi/patient-api/internal/handler/prescription"
	"github.com/tabibi/patient-api/internal/middleware"
	"github.com/tabibi/patient-api/internal/repository/postgres"
	"github.com/tabibi/patient-api/internal/router"
	authservice "github.com/tabibi/patient-api/internal/service/auth"
	bookingservice "github.com/tabibi/patient-api/internal/service/booking"
	doctorservice "github.com/tabibi/patient-api/internal/service/doctor"
	patientservice "github.com/tabibi/patient-api/internal/service/patient"
	prescriptionservice "github.com/tabibi/patient-api/internal/service/prescription"
	"github.com/tabibi/patient-api/pkg/auth"
	"github.com/tabibi/patient-api/pkg/logger"
	"github.com/tabibi/patient-api/pkg/metrics"
	"github.com/tabibi/patient-api/pkg/security"
)

func main() {
	log := logger.NewLogger(nil)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err, "Failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()

	profileRepo := postgres.NewProfileRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	prescriptionRepo := postgres.NewPrescriptionRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	authCodeRepo := postgres.NewAuthCodeRepository(db)

	jwtSvc := auth.NewJWTService(auth.JWTConfig{
		Secret:             cfg.JWT.Secret,
		RefreshSecret:      cfg.JWT.RefreshSecret,
		ExpiryHours:        cfg.JWT.ExpiryHours,
		RefreshExpiryHours: cfg.JWT.RefreshExpiryHours,
	})
	hasher := security.NewBcryptHasher(0)

	authSvc := authservice.NewService(
		profileRepo, doctorRepo, patientRepo, registrationRepo, authCodeRepo,
		jwtSvc, hasher, cfg.JWT.ExpiryHours,
	)
	bookingSvc := bookingservice.NewService(appointmentRepo, doctorRepo, patientRepo, profileRepo)
	doctorSvc := doctorservice.NewService(doctorRepo, registrationRepo)
	patientSvc := patientservice.NewService(patientRepo, profileRepo, prescriptionRepo, bookingSvc)
	prescriptionSvc := prescriptionservice.NewService(prescriptionRepo, patientRepo, doctorRepo)

	m := metrics.NewMetrics("patient_api", "server")

	handlers := router.Handlers{
		Health:       handler.NewHealthHandler(db),
		Auth:         authhandler.NewHandler(authSvc),
		Doctor:       doctorhandler.NewHandler(doctorSvc, bookingSvc),
		Appointment:  appointmenthandler.NewHandler(bookingSvc, m),
		Patient:      patienthandler.NewHandler(patientSvc),
		Prescription: prescriptionhandler.NewHandler(prescriptionSvc),
	}

	r := router.New(handlers, middleware.NewAuthMiddleware(authSvc), router.Config{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("Starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err, "Forced shutdown")
	}
	log.Info("Server stopped")
}
