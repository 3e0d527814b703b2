package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/config"
	"inkwell/internal/handler"
	"inkwell/internal/llm"
	"inkwell/internal/middleware"
	"inkwell/internal/repository/postgres"
	"inkwell/internal/service"
	"inkwell/internal/service/grammar"
	"inkwell/internal/storage"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// JWT verifier for identity-provider authentication
	jwtVerifier, err := auth.NewJWTVerifier(cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected", "max_conns", 25, "min_conns", 5)

	// Repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	docRepo := postgres.NewDocumentRepository(repoConfig)
	userRepo := postgres.NewUserRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Grammar result cache (Redis)
	grammarCache, err := grammar.NewRedisCache(cfg.RedisURL, cfg.GrammarCacheTTL)
	if err != nil {
		log.Fatalf("Failed to connect grammar cache: %v", err)
	}
	defer grammarCache.Close()

	// Object storage for file attachments
	uploader, err := storage.NewMinioUploader(storage.Options{
		Endpoint:  cfg.StorageEndpoint,
		AccessKey: cfg.StorageAccessKey,
		SecretKey: cfg.StorageSecretKey,
		Bucket:    cfg.StorageBucket,
		UseSSL:    cfg.StorageUseSSL,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to create storage client: %v", err)
	}

	// AI completion client
	completionClient := llm.NewClient(cfg.OpenRouterBaseURL, cfg.OpenRouterAPIKey, logger)

	// Services
	analyzer := service.NewContentAnalyzer()
	resolver := service.NewUserResolver(userRepo, logger)
	docService := service.NewDocumentService(docRepo, analyzer, uploader, logger)
	treeService := service.NewTreeService(docRepo, txManager, logger)
	grammarService := grammar.NewService(completionClient, grammarCache, cfg.GrammarModel, logger)

	// Handlers
	docHandler := handler.NewDocumentHandler(docService, resolver, logger)
	treeHandler := handler.NewTreeHandler(treeService, resolver, logger)
	grammarHandler := handler.NewGrammarHandler(grammarService, logger)
	authHandler := handler.NewAuthHandler(resolver, logger)

	logger.Info("services initialized")

	// HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", docHandler.HealthCheck)

	// Document routes. The literal /tree pattern is more specific than {id},
	// so the mux routes it correctly regardless of registration order.
	mux.HandleFunc("POST /api/documents", docHandler.CreateDocument)
	mux.HandleFunc("GET /api/documents", docHandler.ListDocuments)
	mux.HandleFunc("GET /api/documents/tree", treeHandler.GetTree)
	mux.HandleFunc("GET /api/documents/{id}", docHandler.GetDocument)
	mux.HandleFunc("PUT /api/documents/{id}", docHandler.UpdateDocument)
	mux.HandleFunc("DELETE /api/documents/{id}", docHandler.DeleteDocument)

	// Hierarchy routes
	mux.HandleFunc("POST /api/documents/{id}/parent", treeHandler.SetParent)
	mux.HandleFunc("DELETE /api/documents/{id}/parent", treeHandler.RemoveParent)
	mux.HandleFunc("GET /api/documents/{id}/children", treeHandler.GetChildren)

	// Grammar routes
	mux.HandleFunc("POST /api/grammar/check", grammarHandler.CheckGrammar)

	// Auth routes
	mux.HandleFunc("POST /auth/sync", authHandler.SyncUser)
	mux.HandleFunc("GET /auth/me", authHandler.GetCurrentUser)

	// Build middleware chain - applied in reverse order (they wrap each other)
	// Order: CORS → Recovery → RateLimit → Auth → Routes
	var chain http.Handler = mux

	chain = middleware.Auth(jwtVerifier, middleware.AuthOptions{
		AllowDemo: cfg.Environment != "prod",
		DemoEmail: cfg.DemoEmail,
		DemoName:  cfg.DemoName,
	})(chain)
	chain = middleware.GrammarRateLimit(cfg.GrammarRateLimit)(chain)
	chain = middleware.Recovery(logger)(chain)

	// CORS - must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	chain = corsHandler.Handler(chain)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      chain,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
