package db

import (
	"fmt"

	"gorm.io/gorm"

	"rsvp/internal/config"
	"rsvp/internal/model"
)

// Models lists every persisted model in dependency order.
func Models() []any {
	return []any{
		&model.Role{},
		&model.User{},
		&model.Guest{},
	}
}

// Open connects to the driver selected in cfg.
func Open(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "mysql":
		return NewMySQL(cfg.MySQLDSN)
	case "sqlite":
		return NewSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Reset drops all tables, join table included.
func Reset(db *gorm.DB) error {
	tables := append([]any{"guest_roles"}, reverse(Models())...)
	for _, table := range tables {
		if err := db.Migrator().DropTable(table); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return nil
}

func reverse(in []any) []any {
	out := make([]any, 0, len(in))
	for i := len(in) - 1; i >= 0; i-- {
		out = append(out, in[i])
	}
	return out
}
