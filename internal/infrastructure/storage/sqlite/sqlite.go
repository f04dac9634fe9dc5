package sqlite

import (
	"database/sql"
	"fmt"

	// Регистрация драйвера sqlite3 для database/sql
	_ "github.com/mattn/go-sqlite3"

	"formular230/internal/infrastructure/migration"
)

// Open открывает файл сессий и применяет миграции
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// sqlite не любит конкурентную запись
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	mg := migration.NewMigration(migration.SQLite3, path, migration.DefaultEngine)
	if err := mg.Up(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return db, nil
}
