package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"microStepsAPI/handlers"
	"microStepsAPI/internal/habitstore"
	"microStepsAPI/internal/insight"
	"microStepsAPI/internal/notification"
	"microStepsAPI/internal/persist"
	"microStepsAPI/middleware"
	"microStepsAPI/services"
)

var (
	backend         persist.Backend
	habitStore      *habitstore.Store
	habitService    *services.HabitService
	insightService  *services.InsightService
	reminderService *services.ReminderService
	fcmService      *notification.FCMService
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Durable storage: Postgres when DATABASE_URL is set, an embedded SQLite
	// file otherwise. If neither can be opened the app keeps running with
	// in-memory state only.
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		pg, err := persist.NewPostgresBackend(ctx, dbURL)
		if err != nil {
			log.Printf("Warning: Could not open Postgres backend, state will not survive restarts: %v", err)
			backend = persist.NewMemoryBackend()
		} else {
			log.Println("Successfully connected to Postgres store")
			backend = pg
		}
	} else {
		sqlitePath := os.Getenv("SQLITE_PATH")
		if sqlitePath == "" {
			sqlitePath = "./microsteps.db"
		}
		sq, err := persist.NewSQLiteBackend(sqlitePath)
		if err != nil {
			log.Printf("Warning: Could not open SQLite backend, state will not survive restarts: %v", err)
			backend = persist.NewMemoryBackend()
		} else {
			log.Printf("Opened SQLite store at %s", sqlitePath)
			backend = sq
		}
	}

	habitStore = habitstore.New(backend, habitstore.DefaultSeedHabits())
	habitStore.EnsureInitialized(ctx)

	habitService = services.NewHabitService(habitStore)

	var generator insight.Generator
	geminiKey := os.Getenv("GEMINI_API_KEY")
	if geminiKey != "" {
		g, err := insight.NewGeminiGenerator(ctx, geminiKey, os.Getenv("GEMINI_MODEL"))
		if err != nil {
			log.Printf("Warning: Could not initialize Gemini: %v", err)
		} else {
			generator = g
			log.Println("Gemini insight generator initialized successfully")
		}
	} else {
		log.Println("GEMINI_API_KEY not set, AI insights disabled")
	}
	insightService = services.NewInsightService(habitStore, generator)

	reminderService = services.NewReminderService(habitStore)
	fcm, err := notification.NewFCMService("./serviceAccountKey.json")
	if err != nil {
		log.Printf("Warning: Could not initialize FCM: %v", err)
	} else {
		reminderService.SetPushProvider(fcm)
		fcmService = fcm
		log.Println("FCM Push Provider initialized successfully")
	}

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		log.Println("Closing persistence backend...")
		backend.Close()
	}()

	// Initialize handlers
	habitHandler := handlers.NewHabitHandler(habitService)
	exportHandler := handlers.NewExportHandler(habitService)
	insightsHandler := handlers.NewInsightsHandler(insightService)
	notificationHandler := handlers.NewNotificationHandler(reminderService)

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := backend.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "persistence backend unavailable"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "micro-steps-api"}`))
	}).Methods("GET")

	// -------------------------------------------------------------------------
	// API V1 SUBROUTER
	// -------------------------------------------------------------------------
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/habits", habitHandler.GetHabits).Methods("GET")
	api.HandleFunc("/habits", habitHandler.CreateHabit).Methods("POST")
	api.HandleFunc("/habits/{habitID}", habitHandler.UpdateHabit).Methods("PUT")
	api.HandleFunc("/habits/{habitID}", habitHandler.DeleteHabit).Methods("DELETE")
	api.HandleFunc("/habits/{habitID}/toggle", habitHandler.ToggleCompletion).Methods("POST")
	api.HandleFunc("/habits/{habitID}/completions", habitHandler.GetCompletions).Methods("GET")

	api.HandleFunc("/export", exportHandler.ExportData).Methods("GET")
	api.HandleFunc("/insights", insightsHandler.GetAIInsights).Methods("POST")

	api.HandleFunc("/notifications/register-device", notificationHandler.RegisterDevice).Methods("POST")

	// CORS configuration
	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins([]string{"*"}),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length", "Content-Disposition"}),
		gorilllaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	reminderCtx, stopReminders := context.WithCancel(context.Background())
	go reminderService.Start(reminderCtx)

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	stopReminders()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}
