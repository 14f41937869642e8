package infra

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/amirasaad/corebank/infra/migrations"
	"github.com/amirasaad/corebank/infra/repository"
	"github.com/amirasaad/corebank/pkg/config"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDBConnection opens the database named by cnf.URL and brings its schema up
// to date when cnf.Migrate is set. Postgres uses the versioned migrations;
// sqlite is migrated from the gorm models.
func NewDBConnection(cnf *config.DB, appEnv string, log *slog.Logger) (*gorm.DB, error) {
	if log == nil {
		log = slog.Default()
	}
	logMode := logger.Silent
	if appEnv == "development" {
		logMode = logger.Info
	}
	gormCfg := &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	}

	var (
		connection *gorm.DB
		err        error
	)
	if cnf.IsSQLite() {
		connection, err = gorm.Open(sqlite.Open(sqliteDSN(cnf.URL)), gormCfg)
	} else {
		connection, err = gorm.Open(postgres.Open(cnf.URL), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	if cnf.IsSQLite() {
		// sqlite allows one writer; a single connection also keeps an
		// in-memory database alive for the life of the pool.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cnf.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cnf.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cnf.ConnMaxLifetime)
	}

	if !cnf.Migrate {
		return connection, nil
	}
	if cnf.IsSQLite() {
		err = repository.AutoMigrate(connection)
	} else {
		err = migrations.Up(sqlDB)
	}
	if err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	log.Info("Database ready", "sqlite", cnf.IsSQLite())
	return connection, nil
}

func sqliteDSN(url string) string {
	path := strings.TrimPrefix(url, "sqlite://")
	if path == "" {
		return fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	}
	return path
}
