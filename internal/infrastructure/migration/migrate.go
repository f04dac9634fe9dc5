package migration

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// Драйверы БД для миграций: sqlite3 и postgres через pgx
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql
var migrations embed.FS

type Dialect string

const (
	SQLite3  Dialect = "sqlite3"
	Postgres Dialect = "postgres"
)

// Migrator — интерфейс для самой библиотеки migrate.Migrate
type Migrator interface {
	Up() error
	Close() (error, error)
}

// MigrationEngine — фабрика для создания мигратора (чтобы не лезть в ФС и БД в тестах)
type MigrationEngine func(src source.Driver, databaseURL string) (Migrator, error)

type Migration struct {
	dialect     Dialect
	databaseURL string
	engine      MigrationEngine
}

func NewMigration(dialect Dialect, databaseURL string, engine MigrationEngine) *Migration {
	return &Migration{
		dialect:     dialect,
		databaseURL: databaseURL,
		engine:      engine,
	}
}

// DefaultEngine — реальная реализация для продакшена
func DefaultEngine(src source.Driver, databaseURL string) (Migrator, error) {
	return migrate.NewWithSourceInstance("iofs", src, databaseURL)
}

// Up применяет встроенные миграции выбранного диалекта
func (mg *Migration) Up() (err error) {
	sub, err := fs.Sub(migrations, "sql/"+string(mg.dialect))
	if err != nil {
		return fmt.Errorf("migrations for %s: %w", mg.dialect, err)
	}
	src, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("migrations for %s: %w", mg.dialect, err)
	}

	m, err := mg.engine(src, mg.url())
	if err != nil {
		return err
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration source error: %v", err, serr)
			} else {
				err = serr
			}
		}
		if dberr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration database error: %v", err, dberr)
			} else {
				err = dberr
			}
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w; migration up error", err)
	}
	return nil
}

// url приводит DSN к схеме, которую понимает драйвер migrate
func (mg *Migration) url() string {
	switch mg.dialect {
	case SQLite3:
		if strings.HasPrefix(mg.databaseURL, "sqlite3://") {
			return mg.databaseURL
		}
		return "sqlite3://" + mg.databaseURL
	case Postgres:
		for _, prefix := range []string{"postgres://", "postgresql://"} {
			if strings.HasPrefix(mg.databaseURL, prefix) {
				return "pgx5://" + strings.TrimPrefix(mg.databaseURL, prefix)
			}
		}
	}
	return mg.databaseURL
}
