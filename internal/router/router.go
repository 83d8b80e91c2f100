package router

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"

	mem "birds-api/internal/adapters/storage/memory"
	pg "birds-api/internal/adapters/storage/postgres"
	lite "birds-api/internal/adapters/storage/sqlite"
	"birds-api/internal/config"
	_ "birds-api/internal/docs"
	"birds-api/internal/domain/birds"
	"birds-api/internal/middleware"
	"birds-api/internal/platform/logger"
	"birds-api/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Config config.Config

	// Opcional: si viene, usa Postgres sin mirar Config.DBDSN.
	DB *sql.DB

	// Repo opcional (tests); gana sobre DB y Config.
	Repo birds.Repository

	// Seeds a cargar al arrancar. nil => Config.SeedFile o DefaultSeed.
	Seeds []birds.SeedBird

	Logger  logger.Logger
	Metrics *metrics.Metrics
}

// NewRouter arma el store, corre el seed una vez y registra las rutas.
// El closer devuelto libera el store que abrió el router (Postgres por DSN o
// SQLite); un *sql.DB pasado en Options lo sigue cerrando quien lo abrió.
func NewRouter(ctx context.Context, opts Options) (http.Handler, func() error, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}
	cfg := opts.Config
	if cfg.Render == "" {
		cfg.Render = config.RenderJSON
	}

	repo, closeStore, err := selectRepo(ctx, opts, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	fail := func(err error) (http.Handler, func() error, error) {
		_ = closeStore()
		return nil, nil, err
	}

	seeds := opts.Seeds
	if seeds == nil {
		seeds = birds.DefaultSeed()
		if strings.TrimSpace(cfg.SeedFile) != "" {
			seeds, err = birds.LoadSeedFile(cfg.SeedFile)
			if err != nil {
				return fail(err)
			}
		}
	}

	birdsSvc := birds.NewService(repo)
	n, err := birdsSvc.Seed(ctx, seeds)
	if err != nil {
		return fail(err)
	}
	log.Info("birds seeded", map[string]any{"inserted": n})

	r := chi.NewRouter()
	useMiddleware(r, log, m)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var ser birds.Serializer = birds.JSONSerializer{}
	if cfg.Render == config.RenderPlain {
		ser = birds.PlainSerializer{}
	}

	birds.RegisterRoutes(r, birdsSvc, birds.HandlerOptions{
		Envelope:   cfg.Envelope,
		Serializer: ser,
		Logger:     log,
		Observe:    m.ObserveBirdsServed,
	})

	return r, closeStore, nil
}

// useMiddleware: métricas y access log van por fuera de Recover, así un
// request que entra en panic igual se cuenta y se loguea con su 500.
func useMiddleware(r chi.Router, log logger.Logger, m *metrics.Metrics) {
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(m.Middleware)
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.Recover(log))
}

func noopClose() error { return nil }

func selectRepo(ctx context.Context, opts Options, cfg config.Config, log logger.Logger) (birds.Repository, func() error, error) {
	if opts.Repo != nil {
		return opts.Repo, noopClose, nil
	}

	db := opts.DB
	closeDB := noopClose
	if db == nil && strings.TrimSpace(cfg.DBDSN) != "" {
		opened, err := pg.Open(ctx, cfg.DBDSN, pg.PoolOptions{
			MaxOpenConns: cfg.DBMaxOpenConns,
			MaxIdleConns: cfg.DBMaxIdleConns,
		})
		if err != nil {
			return nil, nil, err
		}
		db = opened
		closeDB = opened.Close
	}
	if db != nil {
		if err := pg.EnsureSchema(ctx, db); err != nil {
			_ = closeDB()
			return nil, nil, fmt.Errorf("postgres schema: %w", err)
		}
		log.Info("using postgres store", nil)
		return pg.NewBirdsRepo(db), closeDB, nil
	}

	if path := strings.TrimSpace(cfg.SQLitePath); path != "" {
		gdb, err := lite.Open(path)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using sqlite store", map[string]any{"path": path})
		return lite.NewBirdsRepo(gdb), func() error { return lite.Close(gdb) }, nil
	}

	log.Info("using in-memory store", nil)
	return mem.NewBirdRepo(), noopClose, nil
}
