package storage

import (
	"errors"

	"github.com/2tzz/Wheather-App-Fidenz/internal/domain/auth/model"
	"github.com/2tzz/Wheather-App-Fidenz/internal/domain/city"
	customErrors "github.com/2tzz/Wheather-App-Fidenz/internal/domain/errors"
	"github.com/2tzz/Wheather-App-Fidenz/internal/infra/config"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open подключает выбранный драйвер и создаёт схему на старте.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DatabaseURL)
	default:
		dialector = sqlite.Open(cfg.DatabasePath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, customErrors.WrapInternal(err, "open database")
	}

	if err := db.AutoMigrate(&model.User{}, &city.FollowedCity{}); err != nil {
		return nil, customErrors.WrapInternal(err, "auto migrate")
	}

	return db, nil
}

// isDuplicateKey распознаёт нарушение уникальности у обоих драйверов.
func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) &&
		(sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
		return true
	}

	return false
}
