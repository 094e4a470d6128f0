// File: sanjudas/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sanjudas/config"
	"sanjudas/handlers"
	"sanjudas/hospital"
	"sanjudas/middleware"
	"sanjudas/routes"
	"sanjudas/services/appointment"
	"sanjudas/services/tasks"
	"sanjudas/services/wizard"
	"sanjudas/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitSessionCache()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Outbound client for the hospital REST API.
	hospitalClient := hospital.NewClient(
		config.AppConfig.HospitalAPIURL,
		logger,
		hospital.WithTimeout(time.Duration(config.AppConfig.HospitalAPITimeout)*time.Second),
	)

	resolver, err := wizard.NewResolver(config.AppConfig.AvailabilityMode, hospitalClient)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid availability mode: %v", err)
	}

	// Background payment-deadline sweep.
	expiryScheduler := tasks.NewExpiryScheduler()
	defer expiryScheduler.Close()
	go tasks.InitExpiryWorker(hospitalClient, func() string {
		return config.AppConfig.HospitalServiceToken
	})

	// services.
	wizardService := &wizard.DefaultWizardService{
		Catalog:      hospitalClient,
		Appointments: hospitalClient,
		Resolver:     resolver,
		Cache:        utils.GetSessionCacheClient(),
		PaymentSweep: expiryScheduler,
	}
	appointmentService := appointment.NewAppointmentService(hospitalClient, hospitalClient)

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Wizard:       handlers.NewWizardHandler(wizardService),
		Appointments: handlers.NewAppointmentHandler(appointmentService),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
