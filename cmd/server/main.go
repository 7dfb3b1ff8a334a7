package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"crowdwatch/internal/api"
	"crowdwatch/internal/api/handlers"
	"crowdwatch/internal/config"
	"crowdwatch/internal/repository/catalog"
	"crowdwatch/internal/repository/memory"
	"crowdwatch/internal/services"
)

func main() {
	// Load configuration
	cfg := config.NewDefaultConfig()

	// Initialize repositories
	catalogRepo := catalog.Load(cfg.Catalog.DBPath)
	snapshotRepo := memory.NewSnapshotRepository()
	subscriptionRepo := memory.NewSubscriptionRepository()
	notificationQueue := memory.NewNotificationQueue()

	// Initialize services
	crowdService := services.NewCrowdService(snapshotRepo, catalogRepo, cfg.Crowd)
	alternativeService := services.NewAlternativeService(crowdService, catalogRepo)
	routeService := services.NewRouteService(crowdService, alternativeService, cfg.Crowd.SearchRadiusMeters)
	notificationService := services.NewNotificationService(notificationQueue, cfg.Notification)
	sweepService := services.NewSweepService(
		crowdService,
		alternativeService,
		notificationService,
		subscriptionRepo,
		cfg.Sweep,
		cfg.Crowd.SearchRadiusMeters,
	)

	// Initialize handlers
	crowdHandler := handlers.NewCrowdHandler(crowdService, alternativeService, routeService, subscriptionRepo, cfg.Crowd.SearchRadiusMeters)
	routeHandler := handlers.NewRouteHandler(routeService)
	pushHandler := handlers.NewPushHandler(notificationService, cfg.Notification)
	statsHandler := handlers.NewStatsHandler(notificationService, sweepService, subscriptionRepo)

	// Setup router
	router := api.NewRouter(crowdHandler, routeHandler, pushHandler, statsHandler)
	engine := gin.Default()
	router.Setup(engine)

	// Start background sweeps
	sweepService.Start()

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Starting crowdwatch server on %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	sweepService.Stop()
	notificationService.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}
