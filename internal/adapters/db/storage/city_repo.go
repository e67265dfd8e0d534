package storage

import (
	"context"

	"github.com/2tzz/Wheather-App-Fidenz/internal/domain/city"
	customErrors "github.com/2tzz/Wheather-App-Fidenz/internal/domain/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CityRepo struct {
	db *gorm.DB
}

func NewCityRepo(db *gorm.DB) *CityRepo {
	return &CityRepo{db: db}
}

func (r *CityRepo) Add(ctx context.Context, c city.FollowedCity) (city.FollowedCity, error) {
	res := r.db.WithContext(ctx).Create(&c)
	if err := res.Error; err != nil {
		if isDuplicateKey(err) {
			return city.FollowedCity{}, customErrors.ErrAlreadyExists
		}
		return city.FollowedCity{}, customErrors.WrapInternal(err, "AddCity")
	}
	return c, nil
}

func (r *CityRepo) Remove(ctx context.Context, userID uuid.UUID, cityID int64) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND city_id = ?", userID, cityID).
		Delete(&city.FollowedCity{})
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "RemoveCity")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}

// ListByUser отдаёт города в порядке добавления.
func (r *CityRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]city.FollowedCity, error) {
	var out []city.FollowedCity
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&out)
	if err := res.Error; err != nil {
		return nil, customErrors.WrapInternal(err, "ListCities")
	}
	return out, nil
}
