package user

import (
	"Recipe-Sharing/entities"
	"context"

	"gorm.io/gorm"
)

type (
	UserRepository interface {
		RegisterUser(ctx context.Context, user entities.User) (entities.User, error)
		GetUserByEmail(ctx context.Context, email string) (entities.User, error)
		GetUserByID(ctx context.Context, id string) (entities.User, error)
		CheckUserByEmail(ctx context.Context, email string) (bool, error)
		UpdateUser(ctx context.Context, user entities.User) (entities.User, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) RegisterUser(ctx context.Context, user entities.User) (entities.User, error) {
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		return entities.User{}, err
	}
	return user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return entities.User{}, err
	}
	return user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return entities.User{}, err
	}
	return user, nil
}

func (r *userRepository) CheckUserByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user entities.User) (entities.User, error) {
	if err := r.db.WithContext(ctx).Save(&user).Error; err != nil {
		return entities.User{}, err
	}
	return user, nil
}
