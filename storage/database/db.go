package database

import (
	"context"
	"database/sql"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/trezcool/goose"
	_ "modernc.org/sqlite"

	"github.com/classquest/classquest/core"
	"github.com/classquest/classquest/fs"
)

// Engines
const (
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite"
)

var errUnknownEngine = errors.New("unknown database engine")

func init() {
	// modernc.org/sqlite registers itself as "sqlite", which sqlx does not know about
	sqlx.BindDriver(EngineSQLite, sqlx.QUESTION)
}

func postgresURL(conf *core.Config) string {
	sslMode := "require"
	if conf.Database.DisableTLS {
		sslMode = "disable"
	}
	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")

	u := url.URL{
		Scheme:   EnginePostgres,
		User:     url.UserPassword(conf.Database.User, conf.Database.Password),
		Host:     conf.Database.Address(),
		Path:     conf.Database.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// Open opens the database of conf. For SQLite, Database.Name is the file path (or ":memory:").
func Open(conf *core.Config) (*sqlx.DB, error) {
	switch conf.Database.Engine {
	case EnginePostgres:
		return sqlx.Open(EnginePostgres, postgresURL(conf))
	case EngineSQLite:
		db, err := sqlx.Open(EngineSQLite, conf.Database.Name)
		if err != nil {
			return nil, err
		}
		// SQLite allows a single writer; an in-memory database only lives as long as its connection
		db.SetMaxOpenConns(1)
		return db, nil
	default:
		return nil, errors.Wrap(errUnknownEngine, conf.Database.Engine)
	}
}

// Ping waits for the database to be ready. Waits 100ms longer between each attempt.
func Ping(ctx context.Context, db *sqlx.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "DB ping cancelled")
		case <-time.After(time.Duration(attempts) * 100 * time.Millisecond):
		}
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

// Migration commands
const (
	MigrateUp      = "up"
	MigrateUpByOne = "up-by-one"
	MigrateUpTo    = "up-to"
	MigrateDown    = "down"
	MigrateDownTo  = "down-to"
	MigrateRedo    = "redo"
)

var errMissingVersion = errors.New("missing migration version")

func gooseDialect(engine string) (string, error) {
	switch engine {
	case EnginePostgres:
		return "postgres", nil
	case EngineSQLite:
		return "sqlite3", nil
	default:
		return "", errors.Wrap(errUnknownEngine, engine)
	}
}

// RunMigration runs a goose migration command against db with the migrations of engine.
// up-to and down-to need a version.
func RunMigration(db *sql.DB, engine, command string, version ...int64) error {
	dialect, err := gooseDialect(engine)
	if err != nil {
		return err
	}
	if err = goose.SetDialect(dialect); err != nil {
		return errors.Wrap(err, "setting goose dialect")
	}
	dir := appfs.MigrationsDir(engine)

	switch command {
	case MigrateUp:
		err = goose.Up(db, appfs.FS, dir)
	case MigrateUpByOne:
		err = goose.UpByOne(db, appfs.FS, dir)
	case MigrateDown:
		err = goose.Down(db, appfs.FS, dir)
	case MigrateRedo:
		err = goose.Redo(db, appfs.FS, dir)
	case MigrateUpTo, MigrateDownTo:
		if len(version) == 0 {
			return errMissingVersion
		}
		if command == MigrateUpTo {
			err = goose.UpTo(db, appfs.FS, dir, version[0])
		} else {
			err = goose.DownTo(db, appfs.FS, dir, version[0])
		}
	default:
		return errors.Errorf("%q: no such migration command", command)
	}
	return errors.Wrap(err, "migrating database")
}

// Migrate applies all pending migrations.
func Migrate(db *sqlx.DB, engine string) error {
	return RunMigration(db.DB, engine, MigrateUp)
}
