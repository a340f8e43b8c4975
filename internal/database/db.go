// Package database provides database connection management and schema
// bootstrap for the vocabulary catalog and the mastery store.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/gloser-app/gloser/internal/config"
)

const (
	DriverSQLite = "sqlite3"
	DriverMySQL  = "mysql"
)

// Open opens a connection for the configured driver. SQLite is the default
// single-user local store; MySQL serves shared deployments.
func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	switch cfg.Driver {
	case DriverSQLite, "":
		return openSQLite(cfg)
	case DriverMySQL:
		return openMySQL(cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func openSQLite(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	path := cfg.Path
	if path == "" {
		path = "gloser.db"
	}

	db, err := sqlx.Open(DriverSQLite, path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open(sqlite3) > %w", err)
	}
	// SQLite serializes writes; a single connection avoids busy errors from
	// the background mastery writer.
	db.SetMaxOpenConns(1)
	return db, nil
}

func openMySQL(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	mysqlCfg := mysql.NewConfig()
	mysqlCfg.User = cfg.Username
	mysqlCfg.Passwd = cfg.Password
	mysqlCfg.Net = "tcp"
	mysqlCfg.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	mysqlCfg.DBName = cfg.Database
	mysqlCfg.ParseTime = true
	mysqlCfg.MultiStatements = true

	db, err := sqlx.Open(DriverMySQL, mysqlCfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open(mysql) > %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}
	return db, nil
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS vocabulary (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		language TEXT NOT NULL,
		word TEXT NOT NULL,
		meaning TEXT NOT NULL,
		word_type TEXT NOT NULL,
		level INTEGER NOT NULL,
		attributes TEXT,
		accepted_answers TEXT,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		UNIQUE (language, word, meaning)
	)`,
	`CREATE TABLE IF NOT EXISTS mastery (
		user_id TEXT NOT NULL,
		vocabulary_id INTEGER NOT NULL REFERENCES vocabulary (id),
		srs_stage INTEGER NOT NULL,
		next_review_at TIMESTAMP,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		PRIMARY KEY (user_id, vocabulary_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_mastery_next_review
		ON mastery (user_id, next_review_at)`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS vocabulary (
		id BIGINT NOT NULL AUTO_INCREMENT,
		language VARCHAR(16) NOT NULL,
		word VARCHAR(255) NOT NULL,
		meaning VARCHAR(512) NOT NULL,
		word_type VARCHAR(32) NOT NULL,
		level INT NOT NULL,
		attributes JSON,
		accepted_answers JSON,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_vocabulary (language, word, meaning)
	)`,
	`CREATE TABLE IF NOT EXISTS mastery (
		user_id VARCHAR(64) NOT NULL,
		vocabulary_id BIGINT NOT NULL,
		srs_stage INT NOT NULL,
		next_review_at DATETIME,
		notes TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (user_id, vocabulary_id),
		KEY idx_mastery_next_review (user_id, next_review_at)
	)`,
}

// EnsureSchema creates the tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB, driver string) error {
	statements := sqliteSchema
	if driver == DriverMySQL {
		statements = mysqlSchema
	}
	for _, statement := range statements {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("db.ExecContext(schema) > %w", err)
		}
	}
	return nil
}
