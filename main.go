package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"spotmatch_server/controllers"
	"spotmatch_server/middleware"
	"spotmatch_server/routes"
	"spotmatch_server/services"
	"spotmatch_server/socket"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	_ = godotenv.Load(".env")

	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Socket.IO server for occupancy updates and match notifications
	socketServer := socket.NewSocketServer()
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Printf("❌ Socket server error: %v", err)
		}
	}()
	defer socketServer.Close()

	// Initialize Services
	userProfileService := &services.UserProfileService{Dynamo: dynamoService}
	venueService := &services.VenueService{Dynamo: dynamoService, Events: socketServer}
	notificationService := &services.NotificationService{Profiles: userProfileService, Events: socketServer}
	presenceService := &services.PresenceService{
		Dynamo:                   dynamoService,
		Venues:                   venueService,
		Profiles:                 userProfileService,
		TTL:                      envMinutes("PRESENCE_TTL_MINUTES", 30),
		MaxCheckInDistanceMeters: envFloat("CHECKIN_MAX_DISTANCE_METERS", services.DefaultMaxCheckInDistanceMeters),
	}
	discoveryService := &services.DiscoveryService{
		Dynamo:   dynamoService,
		Profiles: userProfileService,
		TTL:      presenceService.TTL,
	}
	interactionService := &services.InteractionService{
		Dynamo:   dynamoService,
		Notifier: notificationService,
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()
	r.HandleFunc("/", controllers.WelcomeHandler).Methods("GET")
	r.HandleFunc("/health", controllers.HealthCheckHandler).Methods("GET")
	r.Handle("/socket.io/", socketServer)

	// All API routes sit behind the identity check
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.AuthMiddleware(jwtSecret))
	routes.RegisterPresenceRoutes(api, presenceService, userProfileService)
	routes.RegisterDiscoveryRoutes(api, discoveryService)
	routes.RegisterInteractionRoutes(api, interactionService)
	routes.RegisterVenueRoutes(api, venueService)
	routes.RegisterUserProfileRoutes(api, userProfileService)

	// Periodic sweep of stale check-ins
	go runExpirySweeper(presenceService, envMinutes("EXPIRY_INTERVAL_MINUTES", 5))

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}

func runExpirySweeper(presenceService *services.PresenceService, interval time.Duration) {
	log.Printf("🧹 Expiry sweeper running every %s", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), controllers.RequestTimeout)
		result, err := presenceService.ExpireStale(ctx, time.Now().UTC())
		cancel()
		if err != nil {
			log.Printf("❌ Expiry sweep failed: %v", err)
			continue
		}
		if result.ExpiredCount > 0 {
			log.Printf("🧹 Sweep expired %d check-ins, touched %d venues", result.ExpiredCount, result.VenuesTouched)
		}
	}
}

func envMinutes(key string, defaultMinutes int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Minute
		}
		log.Printf("⚠️ Ignoring invalid %s=%q", key, v)
	}
	return time.Duration(defaultMinutes) * time.Minute
}

func envFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
		log.Printf("⚠️ Ignoring invalid %s=%q", key, v)
	}
	return defaultValue
}
