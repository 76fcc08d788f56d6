package gormstore

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DialectMySQL    = "mysql"
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Open connects to a database of the given dialect. A nil logger silences gorm.
func Open(dialect, dsn string, logger gormlogger.Interface) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch dialect {
	case DialectMySQL:
		dialector = mysql.Open(dsn)
	case DialectPostgres:
		dialector = postgres.Open(dsn)
	case DialectSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported dialect '%s'", dialect)
	}

	if logger == nil {
		logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect, err)
	}

	return db, nil
}

// AutoMigrate creates or updates the teams and members tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Team{}, &Member{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	return nil
}
