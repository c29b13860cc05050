package main

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/donseba/go-htmx"
	"github.com/joho/godotenv"
	"github.com/myrjola/finbias/internal/catalog"
	"github.com/myrjola/finbias/internal/envstruct"
	"github.com/myrjola/finbias/internal/errors"
	"github.com/myrjola/finbias/internal/logging"
	"github.com/myrjola/finbias/internal/metrics"
	"github.com/myrjola/finbias/internal/pprofserver"
	"github.com/myrjola/finbias/internal/questions"
	"github.com/myrjola/finbias/internal/repositories"
	"github.com/myrjola/finbias/internal/scoring"
	"github.com/myrjola/finbias/internal/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	htmx           *htmx.HTMX
	catalog        *catalog.Catalog
	bank           *questions.Bank
	engine         *scoring.Engine
	assessments    *repositories.AssessmentRepository
	feedback       *repositories.FeedbackRepository
	contacts       *repositories.ContactRepository
	observer       metrics.Observer
	registry       *prometheus.Registry
	templates      map[string]*template.Template
	secureCookies  bool
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"FINBIAS_ADDR" envDefault:"localhost:4000"`
	// SqliteURL is the URL to the SQLite database. Use ":memory:" for an ephemeral database.
	SqliteURL string `env:"FINBIAS_SQLITE_URL" envDefault:"./finbias.sqlite"`
	// PprofAddr is the loopback address of the pprof server. Empty disables it.
	PprofAddr string `env:"FINBIAS_PPROF_ADDR" envDefault:"localhost:6060"`
	// SessionLifetime is how long answers in progress are kept.
	SessionLifetime time.Duration `env:"FINBIAS_SESSION_LIFETIME" envDefault:"12h"`
	// DerivedMaxima normalizes scores by the maximum the question bank allows instead of the catalog constants.
	DerivedMaxima bool `env:"FINBIAS_DERIVED_MAXIMA" envDefault:"false"`
	// SecureCookies marks the session and CSRF cookies Secure. Disable it only for plain HTTP development.
	SecureCookies bool `env:"FINBIAS_SECURE_COOKIES" envDefault:"true"`
	// OptimizeInterval is how often the database query planner statistics are refreshed.
	OptimizeInterval time.Duration `env:"FINBIAS_OPTIMIZE_INTERVAL" envDefault:"1h"`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cfg config
		err error
		db  *sqlite.Database
	)
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	if db, err = sqlite.NewDatabase(ctx, cfg.SqliteURL, logger); err != nil {
		return errors.Wrap(err, "new database")
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "failed to close database", errors.SlogError(closeErr))
		}
	}()

	cat := catalog.Default()
	bank := questions.Default()
	var opts []scoring.Option
	if cfg.DerivedMaxima {
		opts = append(opts, scoring.WithDerivedMaxima())
	}
	for _, mismatch := range scoring.Validate(cat, bank) {
		logger.LogAttrs(ctx, slog.LevelWarn, "bias maximum is below the achievable total",
			slog.String("category", mismatch.CategoryID),
			slog.Int("configured", mismatch.Configured),
			slog.Int("achievable", mismatch.Achievable),
			slog.Bool("derived_maxima", cfg.DerivedMaxima))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	var observer *metrics.PrometheusObserver
	if observer, err = metrics.NewPrometheusObserver("finbias", registry); err != nil {
		return errors.Wrap(err, "new prometheus observer")
	}

	var templates map[string]*template.Template
	if templates, err = parsePageTemplates(); err != nil {
		return errors.Wrap(err, "parse page templates")
	}

	store := sqlite3store.NewWithCleanupInterval(db.ReadWrite, 30*time.Minute) //nolint:mnd // 30 minutes
	defer store.StopCleanup()
	sessionManager := scs.New()
	sessionManager.Store = store
	sessionManager.Lifetime = cfg.SessionLifetime
	sessionManager.Cookie.Name = "finbias_session"
	sessionManager.Cookie.Secure = cfg.SecureCookies
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode

	app := application{
		logger:         logger,
		sessionManager: sessionManager,
		htmx:           htmx.New(),
		catalog:        cat,
		bank:           bank,
		engine:         scoring.New(cat, bank, opts...),
		assessments:    repositories.NewAssessmentRepository(db, logger),
		feedback:       repositories.NewFeedbackRepository(db, logger),
		contacts:       repositories.NewContactRepository(db, logger),
		observer:       observer,
		registry:       registry,
		templates:      templates,
		secureCookies:  cfg.SecureCookies,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.configureAndStartServer(ctx, cfg.Addr)
	})
	if cfg.PprofAddr != "" {
		g.Go(func() error {
			return pprofserver.Serve(ctx, cfg.PprofAddr, logger)
		})
	}
	g.Go(func() error {
		return db.RunOptimizer(ctx, cfg.OptimizeInterval)
	})

	if err = g.Wait(); err != nil {
		return errors.Wrap(err, "run services")
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelDebug,
	})))

	// A missing .env file is fine, the environment can be configured without it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.LogAttrs(ctx, slog.LevelError, "failed to load .env", errors.SlogError(err))
		os.Exit(1)
	}

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
