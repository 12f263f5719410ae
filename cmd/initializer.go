package main

import (
	"database/sql"
	"log"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"jobradarBack/internal/config"
	"jobradarBack/internal/handlers"
	"jobradarBack/internal/repositories"
	"jobradarBack/internal/services"
	"jobradarBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	db       *sql.DB
	rdb      *redis.Client

	tokenManager *utils.Manager

	userRepo *repositories.UserRepository

	userHandler        *handlers.UserHandler
	jobHandler         *handlers.JobHandler
	jobFavoriteHandler *handlers.JobFavoriteHandler
	applicationHandler *handlers.ApplicationHandler
	rerankHandler      *handlers.RerankHandler
	aiSearchHandler    *handlers.AISearchHandler
}

func initializeApp(cfg config.Config, db *sql.DB, rdb *redis.Client, errorLog, infoLog *log.Logger) *application {
	tokenManager, err := utils.NewManager(cfg.JWT.SigningKey)
	if err != nil {
		errorLog.Fatalf("token manager: %v", err)
	}

	// Repositories
	userRepo := repositories.UserRepository{DB: db}
	jobRepo := repositories.JobRepository{DB: db}
	postingRepo := repositories.JobPostingRepository{DB: db}
	favoriteRepo := repositories.JobFavoriteRepository{DB: db}
	applicationRepo := repositories.ApplicationRepository{DB: db}
	quotaRepo := repositories.QuotaRepository{RDB: rdb}

	// Services
	openAIClient := services.NewOpenAIClient(nil, cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	userService := &services.UserService{UserRepo: &userRepo, TokenManager: tokenManager}
	jobService := &services.JobService{JobRepo: &jobRepo, PostingRepo: &postingRepo, ErrorLog: errorLog}
	favoriteService := &services.JobFavoriteService{FavoriteRepo: &favoriteRepo, JobRepo: &jobRepo}
	applicationService := &services.ApplicationService{ApplicationRepo: &applicationRepo, JobRepo: &jobRepo}
	rerankService := &services.RerankService{OpenAI: openAIClient, QuotaRepo: &quotaRepo, ErrorLog: errorLog}
	extractorService := &services.FilterExtractorService{OpenAI: openAIClient, QuotaRepo: &quotaRepo, ErrorLog: errorLog}

	// Handlers
	userHandler := &handlers.UserHandler{Service: userService}
	jobHandler := &handlers.JobHandler{Service: jobService}
	jobFavoriteHandler := &handlers.JobFavoriteHandler{Service: favoriteService}
	applicationHandler := &handlers.ApplicationHandler{Service: applicationService}
	rerankHandler := &handlers.RerankHandler{Service: rerankService}
	aiSearchHandler := &handlers.AISearchHandler{Extractor: extractorService, Jobs: jobService}

	return &application{
		errorLog:           errorLog,
		infoLog:            infoLog,
		db:                 db,
		rdb:                rdb,
		tokenManager:       tokenManager,
		userRepo:           &userRepo,
		userHandler:        userHandler,
		jobHandler:         jobHandler,
		jobFavoriteHandler: jobFavoriteHandler,
		applicationHandler: applicationHandler,
		rerankHandler:      rerankHandler,
		aiSearchHandler:    aiSearchHandler,
	}
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Printf("Failed to open DB: %v", err)
		return nil, err
	}
	if err = db.Ping(); err != nil {
		log.Printf("Failed to ping DB: %v", err)
		return nil, err
	}
	db.SetMaxIdleConns(35)
	log.Println("Successfully connected to database")
	return db, nil
}

func addSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
		w.Header().Set("Cross-Origin-Embedder-Policy", "require-corp")
		w.Header().Set("Cross-Origin-Resource-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}
