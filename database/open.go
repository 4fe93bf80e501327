package database

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rpupo63/album-review-backend/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// Open connects to the database selected by DB_TYPE and registers the read
// replica named by DB_REPLICA_DSN, if any.
//
//	postgres  DATABASE_URL
//	supa      SUPABASE_DB_HOST, _USER, _PASSWORD, _NAME, _PORT
//	sqlite    SQLITE_PATH (default reviews.db)
func Open(cfg map[string]string) (*gorm.DB, error) {
	dbType := strings.ToLower(config.GetString(cfg, "DB_TYPE", "sqlite"))

	dsn, err := primaryDSN(dbType, cfg)
	if err != nil {
		return nil, err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(dialector(dbType, dsn), &gorm.Config{
		PrepareStmt:    false,
		TranslateError: true,
		Logger:         newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s database: %w", dbType, err)
	}

	if replica := config.GetString(cfg, "DB_REPLICA_DSN", ""); replica != "" {
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{dialector(dbType, replica)},
			Policy:   dbresolver.RandomPolicy{},
		}))
		if err != nil {
			return nil, fmt.Errorf("register read replica: %w", err)
		}
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("test database connection: %w", err)
	}
	return db, nil
}

func primaryDSN(dbType string, cfg map[string]string) (string, error) {
	switch dbType {
	case "supa":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			config.GetString(cfg, "SUPABASE_DB_HOST", ""),
			config.GetString(cfg, "SUPABASE_DB_USER", ""),
			config.GetString(cfg, "SUPABASE_DB_PASSWORD", ""),
			config.GetString(cfg, "SUPABASE_DB_NAME", ""),
			config.GetString(cfg, "SUPABASE_DB_PORT", "5432"),
		), nil
	case "postgres":
		dsn := config.GetString(cfg, "DATABASE_URL", "")
		if dsn == "" {
			return "", fmt.Errorf("DATABASE_URL is required when DB_TYPE is postgres")
		}
		return dsn, nil
	case "sqlite":
		return SQLiteDSN(config.GetString(cfg, "SQLITE_PATH", "reviews.db")), nil
	default:
		return "", fmt.Errorf("unsupported DB_TYPE %q", dbType)
	}
}

// SQLiteDSN returns a DSN for the file at path with foreign keys enforced.
func SQLiteDSN(path string) string {
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func dialector(dbType, dsn string) gorm.Dialector {
	if dbType == "sqlite" {
		return sqlite.Open(dsn)
	}
	return postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	})
}
