package database

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	gosqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"todo/internal/config"
	"todo/internal/model"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// UnicodeLower is the sqlite function folding text the way strings.ToLower
// does. The builtin LOWER only folds ASCII.
const UnicodeLower = "unicode_lower"

var registerFuncs = sync.OnceValue(func() error {
	return gosqlite.RegisterDeterministicScalarFunction(UnicodeLower, 1,
		func(_ *gosqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			switch v := args[0].(type) {
			case nil:
				return nil, nil
			case string:
				return strings.ToLower(v), nil
			case []byte:
				return strings.ToLower(string(v)), nil
			default:
				return v, nil
			}
		})
})

// Open connects to the database selected by cfg.DBDriver and applies the schema.
func Open(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case DriverPostgres:
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
		)
		db, err := OpenPostgres(dsn, logger.Warn)
		if err != nil {
			return nil, err
		}
		if err := MigratePostgres(db); err != nil {
			return nil, errors.Wrap(err, "failed to apply migrations")
		}
		return db, nil
	case DriverSQLite:
		db, err := OpenSQLite(cfg.SQLitePath, logger.Warn)
		if err != nil {
			return nil, err
		}
		if err := AutoMigrate(db); err != nil {
			return nil, errors.Wrap(err, "failed to migrate sqlite schema")
		}
		return db, nil
	}
	return nil, errors.Newf("unsupported DB_DRIVER %q", cfg.DBDriver)
}

func OpenPostgres(dsn string, level logger.LogLevel) (*gorm.DB, error) {
	return open(postgres.Open(dsn), level)
}

// OpenSQLite opens a file backed sqlite database with foreign keys enforced.
// A single connection serializes writers.
func OpenSQLite(path string, level logger.LogLevel) (*gorm.DB, error) {
	if err := registerFuncs(); err != nil {
		return nil, errors.Wrap(err, "failed to register sqlite functions")
	}
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := open(sqlite.Open(dsn), level)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func open(dialector gorm.Dialector, level logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to DB")
	}
	if err := db.SetupJoinTable(&model.TodoItem{}, "Tags", &model.TodoItemTag{}); err != nil {
		return nil, errors.Wrap(err, "failed to register item tag join table")
	}
	return db, nil
}

// AutoMigrate creates the schema from the models. Postgres uses MigratePostgres instead.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.TodoList{},
		&model.TodoItem{},
		&model.Tag{},
		&model.TodoItemTag{},
		&model.User{},
	)
}
