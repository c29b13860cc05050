// Package repositories persists completed assessments, results feedback and contact messages.
package repositories

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/myrjola/finbias/internal/errors"
	"github.com/myrjola/finbias/internal/sqlite"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.NewSentinel("not found")

// timeLayout keeps timestamps sortable as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// pools wraps the database pools with sqlx for struct scanning.
type pools struct {
	readWrite *sqlx.DB
	readOnly  *sqlx.DB
}

func newPools(db *sqlite.Database) pools {
	return pools{
		readWrite: sqlx.NewDb(db.ReadWrite, sqlite.DriverName),
		readOnly:  sqlx.NewDb(db.ReadOnly, sqlite.DriverName),
	}
}

// Ping checks that both pools can reach the database.
func (p pools) Ping(ctx context.Context) error {
	if err := p.readOnly.PingContext(ctx); err != nil {
		return errors.Wrap(err, "ping read-only pool")
	}
	if err := p.readWrite.PingContext(ctx); err != nil {
		return errors.Wrap(err, "ping read-write pool")
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "parse timestamp")
	}
	return t, nil
}
