package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/myrjola/finbias/internal/errors"
	"github.com/myrjola/finbias/internal/repositories"
	"github.com/myrjola/finbias/internal/sqlite"
	"github.com/myrjola/finbias/internal/testhelpers"
)

// migratetest migrates a copy of a production database to the current schema and checks that stored assessments
// are still readable.
func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	var (
		err       error
		start     = time.Now()
		ctx       context.Context
		sqliteURL string
		ok        bool
		cancel    context.CancelFunc
	)
	ctx = context.Background()
	ctx, cancel = context.WithTimeout(ctx, 5*time.Second) //nolint:mnd // 5 seconds

	if sqliteURL, ok = os.LookupEnv("FINBIAS_SQLITE_URL"); !ok {
		logger.LogAttrs(ctx, slog.LevelError, "FINBIAS_SQLITE_URL not set")
		os.Exit(1)
	}

	var db *sqlite.Database
	if db, err = sqlite.NewDatabase(ctx, sqliteURL, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating database",
			slog.String("url", sqliteURL), errors.SlogError(err))
		os.Exit(1)
	}

	// Count the assessments per personality as a simple smoke test.
	var counts map[string]int
	if counts, err = repositories.NewAssessmentRepository(db, logger).CountByPrimaryType(ctx); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error counting assessments", errors.SlogError(err))
		os.Exit(1)
	}
	total := 0
	for primaryType, count := range counts {
		total += count
		logger.LogAttrs(ctx, slog.LevelInfo, "assessment count",
			slog.String("primary_type", primaryType), slog.Int("count", count))
	}
	if total == 0 {
		logger.LogAttrs(ctx, slog.LevelError, "no assessments found, something is likely wrong")
		os.Exit(1)
	}

	if err = db.Close(); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error closing database", errors.SlogError(err))
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "Migration test successful 🙌", slog.Duration("duration", time.Since(start)))
	cancel()
	os.Exit(0)
}
