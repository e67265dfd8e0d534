package city

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// FollowedCity — город, закреплённый пользователем на дашборде.
// Пара (UserID, CityID) уникальна: один и тот же город нельзя добавить дважды.
type FollowedCity struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_city;not null"`
	CityID    int64     `gorm:"uniqueIndex:idx_user_city;not null"`
	Name      string    `gorm:"size:128;not null"`
	Country   string    `gorm:"size:2"`
	CreatedAt time.Time
}

type Repo interface {
	Add(ctx context.Context, c FollowedCity) (FollowedCity, error)

	Remove(ctx context.Context, userID uuid.UUID, cityID int64) error

	ListByUser(ctx context.Context, userID uuid.UUID) ([]FollowedCity, error)
}
