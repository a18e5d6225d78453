package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-o-matic/internal/corrections"
	"resume-o-matic/internal/extract"
	"resume-o-matic/internal/facts"
	"resume-o-matic/internal/jobpost"
	"resume-o-matic/internal/llm"
	_ "resume-o-matic/internal/llm/local"  // registers the lmstudio backend
	_ "resume-o-matic/internal/llm/openai" // registers the openai backend
	"resume-o-matic/internal/render"
	"resume-o-matic/internal/shared/config"
	"resume-o-matic/internal/shared/server"
	"resume-o-matic/internal/shared/storage/db"
	"resume-o-matic/internal/shared/storage/object"
	localstore "resume-o-matic/internal/shared/storage/object/local"
	s3store "resume-o-matic/internal/shared/storage/object/s3"
	"resume-o-matic/internal/shared/telemetry"
	"resume-o-matic/internal/submissions"
	"resume-o-matic/internal/workflow"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config  config.Config
	Router  *gin.Engine
	DB      *sql.DB
	Dialect db.Dialect
	Store   object.ObjectStore

	CorrectionsRepo corrections.Repo
	FactsRepo       facts.Repo
	SubmissionsRepo submissions.Repo

	CorrectionsService *corrections.Service
	FactsService       *facts.Service
	SubmissionsService *submissions.Service
	Workflow           *workflow.Service
	Generator          llm.Generator
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, dialect, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		closeDB(sqlDB)
		return nil, err
	}

	app := &App{
		Config:    cfg,
		DB:        sqlDB,
		Dialect:   dialect,
		Store:     store,
		Generator: buildGenerator(cfg),
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:             app.Config,
		DB:                 app.DB,
		CorrectionsHandler: corrections.NewHandler(app.CorrectionsService),
		FactsHandler:       facts.NewHandler(app.FactsService),
		SubmissionsHandler: submissions.NewHandler(app.SubmissionsService),
		WorkflowHandler:    workflow.NewHandler(app.Workflow),
	})

	return app, nil
}

// Close releases the database pool.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, db.Dialect, error) {
	if cfg.DBDriver == "memory" {
		telemetry.Info("bootstrap: DB_DRIVER=memory; using in-memory repositories", nil)
		return nil, "", nil
	}
	dialect, err := db.ParseDialect(cfg.DBDriver)
	if err != nil {
		return nil, "", err
	}

	dsn := cfg.DatabaseURL
	if dialect == db.DialectSQLite {
		if dir := filepath.Dir(cfg.SQLitePath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, "", fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		dsn = db.SQLiteDSN(cfg.SQLitePath)
	}

	sqlDB, err := db.Connect(ctx, dialect, dsn, db.OptionsFromEnv(db.DefaultOptions(dialect)))
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap: database connect failed; using in-memory repositories", map[string]any{"error": err.Error()})
			return nil, "", nil
		}
		return nil, "", err
	}

	if cfg.AutoMigrate {
		if err := db.RunMigrations(ctx, sqlDB, dialect); err != nil {
			closeDB(sqlDB)
			return nil, "", fmt.Errorf("run migrations: %w", err)
		}
	}
	return sqlDB, dialect, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// buildGenerator never fails: a misconfigured backend surfaces on the first
// generation request so the review routes keep working.
func buildGenerator(cfg config.Config) llm.Generator {
	gen, err := llm.New(LLMConfig(cfg))
	if err != nil {
		telemetry.Warn("bootstrap: llm backend unavailable", map[string]any{
			"backend": cfg.LLMBackend,
			"error":   err.Error(),
		})
		return llm.Unavailable(err)
	}
	return gen
}

// LLMConfig maps application config onto the backend config.
func LLMConfig(cfg config.Config) llm.Config {
	return llm.Config{
		Backend:           cfg.LLMBackend,
		OpenAIAPIKey:      cfg.OpenAIAPIKey,
		OpenAIBaseURL:     cfg.OpenAIBaseURL,
		OpenAITimeoutSecs: cfg.OpenAITimeoutSecs,
		LMStudioURL:       cfg.LMStudioURL,
	}
}

func buildServices(app *App) {
	if app.DB != nil {
		app.CorrectionsRepo = &corrections.SQLRepo{DB: app.DB, Dialect: app.Dialect}
		app.FactsRepo = &facts.SQLRepo{DB: app.DB, Dialect: app.Dialect}
		app.SubmissionsRepo = &submissions.SQLRepo{DB: app.DB, Dialect: app.Dialect}
	} else {
		app.CorrectionsRepo = corrections.NewMemoryRepo()
		app.FactsRepo = facts.NewMemoryRepo()
		app.SubmissionsRepo = submissions.NewMemoryRepo()
	}

	app.CorrectionsService = corrections.NewService(app.CorrectionsRepo)
	app.FactsService = facts.NewService(app.FactsRepo)
	app.SubmissionsService = &submissions.Service{Repo: app.SubmissionsRepo}
	app.Workflow = &workflow.Service{
		Submissions: app.SubmissionsRepo,
		Corrections: app.CorrectionsService,
		Facts:       app.FactsService,
		Generator:   app.Generator,
		Documents:   &extract.Loader{Store: app.Store, ResumeDir: app.Config.ResumeDir},
		JobPosts:    jobpost.NewFetcher(),
		Renderer:    render.New(),
		Options: workflow.Options{
			Model:           app.Config.LLMModel,
			Temperature:     app.Config.LLMTemperature,
			ResumeMaxTokens: app.Config.ResumeMaxTokens,
			CoverMaxTokens:  app.Config.CoverMaxTokens,
		},
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func closeDB(sqlDB *sql.DB) {
	if sqlDB != nil {
		_ = sqlDB.Close()
	}
}
