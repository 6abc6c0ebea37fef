package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mir-sim/backend/internal/auth"
	"github.com/mir-sim/backend/internal/config"
	"github.com/mir-sim/backend/internal/content"
	"github.com/mir-sim/backend/internal/database"
	"github.com/mir-sim/backend/internal/dissection"
	"github.com/mir-sim/backend/internal/middleware"
	"github.com/mir-sim/backend/internal/quiz"
	"github.com/mir-sim/backend/internal/review"
	"github.com/mir-sim/backend/internal/storage"
	"github.com/rs/cors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	auth.SetSecret(cfg.Auth.JWTSecret)

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Session/review persistence backend
	var kv storage.KeyValue
	switch cfg.Storage.Backend {
	case "redis":
		redis, err := storage.NewRedis(context.Background(), cfg.Storage.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		kv = redis
	case "postgres":
		kv = storage.NewPostgres(db)
	default:
		kv = storage.NewMemory()
	}
	log.Printf("Using %s storage backend", cfg.Storage.Backend)

	loader := content.NewLoader(cfg.Data.Dir, cfg.Data.Validate)

	// Initialize handlers
	authHandler := auth.NewHandler(db)
	quizHandler := quiz.NewHandler(quiz.NewService(kv), loader)
	dissectionHandler := dissection.NewHandler(loader)
	reviewHandler := review.NewHandler(review.NewStore(kv), loader)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/exams", quizHandler.GetManifest).Methods("GET")
	api.HandleFunc("/exams/{year}", quizHandler.GetExam).Methods("GET")
	api.HandleFunc("/dissections/{year}", dissectionHandler.GetDissection).Methods("GET")
	api.HandleFunc("/dissections/{year}/stats", dissectionHandler.GetStats).Methods("GET")
	api.HandleFunc("/dissections/{year}/crosstab", dissectionHandler.GetCrossTab).Methods("GET")
	api.HandleFunc("/dissections/{year}/snomed", dissectionHandler.GetSnomed).Methods("GET")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")
	protected.HandleFunc("/exams/{year}/session", quizHandler.GetSession).Methods("GET")
	protected.HandleFunc("/exams/{year}/session/answers", quizHandler.SelectAnswer).Methods("POST")
	protected.HandleFunc("/exams/{year}/session/navigate", quizHandler.Navigate).Methods("POST")
	protected.HandleFunc("/exams/{year}/session/submit", quizHandler.Submit).Methods("POST")
	protected.HandleFunc("/exams/{year}/session/reset", quizHandler.Reset).Methods("POST")
	protected.HandleFunc("/results", quizHandler.GetResults).Methods("GET")
	protected.HandleFunc("/review/state", reviewHandler.GetState).Methods("GET")
	protected.HandleFunc("/review/stats", reviewHandler.GetStats).Methods("GET")
	protected.HandleFunc("/review/questions", reviewHandler.GetQuestions).Methods("GET")
	protected.HandleFunc("/review/similar/{key}", reviewHandler.GetSimilar).Methods("GET")
	protected.HandleFunc("/review/export", reviewHandler.Export).Methods("GET")
	protected.HandleFunc("/review/export.xlsx", reviewHandler.ExportXLSX).Methods("GET")
	protected.HandleFunc("/review/import", reviewHandler.Import).Methods("POST")
	protected.HandleFunc("/review/{year}/{number}", reviewHandler.SetReview).Methods("PUT")
	protected.HandleFunc("/review/{year}/{number}", reviewHandler.ClearReview).Methods("DELETE")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	log.Printf("Server starting on :%s", cfg.Server.Port)
	if err := http.ListenAndServe(":"+cfg.Server.Port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
