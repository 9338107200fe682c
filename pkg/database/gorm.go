package database

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

const sqlitePrefix = "sqlite:"

func DialectOf(db *gorm.DB) Dialect {
	return Dialect(db.Dialector.Name())
}

func getLogger(level logger.LogLevel) logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  true,
		},
	)
}

// now is truncated to microseconds, the precision Postgres stores, so values
// read back compare equal to the ones written.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func configureConnectionPool(db *gorm.DB, dialect Dialect) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	if dialect == DialectSQLite {
		// a single writer; also keeps shared in-memory databases alive
		sqlDB.SetMaxOpenConns(1)
		return nil
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return nil
}

// Open accepts either a Postgres DSN or a "sqlite:<dsn>" URL.
func Open(url string, level logger.LogLevel) (*gorm.DB, error) {
	var (
		dialector gorm.Dialector
		dialect   Dialect
	)

	switch {
	case strings.HasPrefix(url, sqlitePrefix):
		dsn := strings.TrimPrefix(url, sqlitePrefix)
		if dsn == "" {
			dsn = "./workspace.db"
		}
		dialector, dialect = sqlite.Open(dsn), DialectSQLite
	case url == "":
		return nil, fmt.Errorf("empty database connection string")
	default:
		dialector, dialect = postgres.Open(url), DialectPostgres
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  getLogger(level),
		NowFunc: now,
	})
	if err != nil {
		return nil, err
	}

	if err := configureConnectionPool(db, dialect); err != nil {
		return nil, err
	}

	return db, nil
}

func NewGormDBFromDSN(dsn string) (*gorm.DB, error) {
	return Open(dsn, logger.Warn)
}
