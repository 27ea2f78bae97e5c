package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/mbrandall/survivor-pool/internal/config"
	"github.com/mbrandall/survivor-pool/internal/infrastructure/auth"
	"github.com/mbrandall/survivor-pool/internal/infrastructure/configstore"
	"github.com/mbrandall/survivor-pool/internal/infrastructure/repository/postgres"
	"github.com/mbrandall/survivor-pool/internal/interfaces/httpapi"
	"github.com/mbrandall/survivor-pool/internal/platform/cache"
	idgen "github.com/mbrandall/survivor-pool/internal/platform/id"
	"github.com/mbrandall/survivor-pool/internal/platform/logging"
	"github.com/mbrandall/survivor-pool/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

// App owns the wired HTTP server and the resources it must release.
type App struct {
	Server *http.Server
	DB     *sqlx.DB
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	fileStore := configstore.NewFileStore(cfg.DataDir)
	entryRepo := postgres.NewEntryRepository(db)
	scoreRepo := postgres.NewScoreRepository(db)
	gen := idgen.NewRandomGenerator()

	var catalogCache *cache.Store
	if cfg.CacheEnabled {
		catalogCache = cache.NewStore(cfg.CacheTTL)
	}

	catalogSvc := usecase.NewCatalogService(fileStore, fileStore, catalogCache, logger)
	entrySvc := usecase.NewEntryService(entryRepo, fileStore, catalogSvc, gen, cfg.MaxEntriesPerEmail, logger)
	leaderboardSvc := usecase.NewLeaderboardService(entryRepo, scoreRepo, logger)
	adminSvc := usecase.NewAdminService(fileStore, catalogSvc, entryRepo, scoreRepo, gen, cfg.ImportWorkers, logger)

	handler := httpapi.NewHandler(entrySvc, catalogSvc, leaderboardSvc, adminSvc, logger)
	router := httpapi.NewRouter(handler, auth.NewStaticVerifier(cfg.AdminToken), logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{Server: server, DB: db}, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", cfg.DBURL,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
