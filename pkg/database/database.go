package database

import (
	"context"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/onurcolak/emergency-alert-service/environments"
	"github.com/onurcolak/emergency-alert-service/pkg/logger"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// NewDB opens the contact database selected by cfg.Driver.
func NewDB(cfg environments.DatabaseConfig) (*sqlx.DB, error) {
	switch cfg.Driver {
	case DriverMySQL, "":
		return NewMySQLDB(cfg)
	case DriverSQLite:
		return NewSQLiteDB(cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func NewMySQLDB(cfg environments.DatabaseConfig) (*sqlx.DB, error) {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&collation=utf8mb4_unicode_ci",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName,
		)
	}

	db, err := sqlx.Connect(DriverMySQL, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	logger.Infof("Connected to MySQL database")
	return db, nil
}

func NewSQLiteDB(cfg environments.DatabaseConfig) (*sqlx.DB, error) {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = "file:" + cfg.Path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sqlx.Connect(DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// single writer
	db.SetMaxOpenConns(1)

	logger.Infof("Opened SQLite database")
	return db, nil
}

var schemas = map[string][]string{
	DriverMySQL: {`
	CREATE TABLE IF NOT EXISTS contacts (
		id CHAR(36) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		phone_number VARCHAR(32) NOT NULL,
		user_id VARCHAR(128) NOT NULL,
		created_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
		INDEX idx_contacts_user_id (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
	`},
	DriverSQLite: {`
	CREATE TABLE IF NOT EXISTS contacts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		phone_number TEXT NOT NULL,
		user_id TEXT NOT NULL,
		created_at DATETIME NOT NULL
	)`,
		`CREATE INDEX IF NOT EXISTS idx_contacts_user_id ON contacts (user_id)`,
	},
}

func RunMigrations(db *sqlx.DB) error {
	statements, ok := schemas[db.DriverName()]
	if !ok {
		return fmt.Errorf("no migrations for driver %q", db.DriverName())
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	logger.Infof("Database migrations completed")

	return nil
}

// SeedTestData inserts a few demo contacts for userID when the table is empty.
func SeedTestData(ctx context.Context, db *sqlx.DB, userID string) (int, error) {
	var count int

	if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM contacts"); err != nil {
		return 0, err
	}

	if count > 0 {
		logger.Infof("Database already has %d contacts, skipping seed", count)
		return 0, nil
	}

	testContacts := []struct {
		name        string
		phoneNumber string
	}{
		{"Alice", "+15551234567"},
		{"Bob", "+15557654321"},
		{"Carol", "+15550001111"},
	}

	now := time.Now().UTC()
	for i, c := range testContacts {
		_, err := db.ExecContext(ctx,
			"INSERT INTO contacts (id, name, phone_number, user_id, created_at) VALUES (?, ?, ?, ?, ?)",
			uuid.NewString(), c.name, c.phoneNumber, userID, now.Add(time.Duration(i)*time.Millisecond),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to seed test data: %w", err)
		}
	}

	logger.Infof("Seeded %d test contacts for user %s", len(testContacts), userID)
	return len(testContacts), nil
}
