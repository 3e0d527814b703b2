package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"inkwell/internal/config"
	"inkwell/internal/domain/models"
	"inkwell/internal/repository/postgres"
	"inkwell/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed demo documents")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("Cannot run --drop-tables in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if *schemaOnly {
		log.Printf("Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else {
		log.Printf("Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Tables dropped")
	}

	log.Println("Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")

	if *schemaOnly {
		log.Println("Schema setup complete (schema-only mode)")
		return
	}

	// Create the demo user and a small starter document set through the
	// service layer so metrics and hierarchy fields are computed normally.
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	docRepo := postgres.NewDocumentRepository(repoConfig)
	userRepo := postgres.NewUserRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	resolver := service.NewUserResolver(userRepo, logger)
	docService := service.NewDocumentService(docRepo, service.NewContentAnalyzer(), nil, logger)
	treeService := service.NewTreeService(docRepo, txManager, logger)

	demoUser, err := resolver.Resolve(ctx, service.Identity{
		Email: cfg.DemoEmail,
		Name:  cfg.DemoName,
	})
	if err != nil {
		log.Fatalf("Failed to provision demo user: %v", err)
	}
	log.Printf("Demo user ready: %s (%s)", demoUser.Email, demoUser.ID)

	seedDocuments(ctx, docService, treeService, demoUser)

	log.Println("Seeding complete")
}

type seedDoc struct {
	title    string
	content  string
	children []seedDoc
}

func getSeedDocuments() []seedDoc {
	return []seedDoc{
		{
			title:   "Welcome to Inkwell",
			content: "Inkwell keeps your drafts organized. Create documents, nest them into sections, and check your grammar as you write.",
			children: []seedDoc{
				{
					title:   "Getting Started",
					content: "Start with a title and a few sentences. Word and character counts update automatically on every save.",
				},
				{
					title:   "Organizing Your Work",
					content: "Drag a document under another to build chapters and sections. The tree view shows everything level by level.",
				},
			},
		},
		{
			title:   "My First Draft",
			content: "This is a sample draft. Replace it with your own writing.",
		},
	}
}

func seedDocuments(ctx context.Context, docService *service.DocumentService, treeService *service.TreeService, owner *models.User) {
	var create func(docs []seedDoc, parentID string)
	create = func(docs []seedDoc, parentID string) {
		for _, sd := range docs {
			doc, err := docService.Create(ctx, owner.ID, &service.CreateDocumentRequest{
				Title:   sd.title,
				Content: sd.content,
			})
			if err != nil {
				log.Printf("Failed to create document %q: %v", sd.title, err)
				continue
			}
			if parentID != "" {
				if _, err := treeService.SetParent(ctx, doc.ID, parentID, owner.ID); err != nil {
					log.Printf("Failed to link %q under parent: %v", sd.title, err)
				}
			}
			log.Printf("Created document: %s (ID: %s, Words: %d)", sd.title, doc.ID, doc.WordCount)
			create(sd.children, doc.ID)
		}
	}
	create(getSeedDocuments(), "")
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	createUsers := `
		CREATE TABLE IF NOT EXISTS ` + tables.Users + ` (
			id UUID PRIMARY KEY,
			subject_id TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT 'free',
			email_verified BOOLEAN NOT NULL DEFAULT FALSE,
			last_login_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createUsers); err != nil {
		return err
	}

	// parent_id is a weak reference on purpose: deleting a parent soft-deletes
	// only that row and children keep their pointer.
	createDocuments := `
		CREATE TABLE IF NOT EXISTS ` + tables.Documents + ` (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES ` + tables.Users + `(id),
			title TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'draft',
			word_count INTEGER NOT NULL DEFAULT 0,
			character_count INTEGER NOT NULL DEFAULT 0,
			parent_id UUID,
			depth INTEGER NOT NULL DEFAULT 0,
			tree_order INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)
	`
	if _, err := pool.Exec(ctx, createDocuments); err != nil {
		return err
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `documents_user_id ON ` + tables.Documents + `(user_id) WHERE deleted_at IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `documents_parent ON ` + tables.Documents + `(parent_id) WHERE deleted_at IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `documents_tree ON ` + tables.Documents + `(user_id, depth, tree_order) WHERE deleted_at IS NULL`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables in reverse order (to respect foreign keys)
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.Documents,
		tables.Users,
	}

	for _, table := range tableNames {
		dropSQL := "DROP TABLE IF EXISTS " + table + " CASCADE"
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
		log.Printf("  dropped %s", table)
	}

	return nil
}
