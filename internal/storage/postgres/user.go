package postgres

import (
	"context"
	"fmt"

	"github.com/VitaminP8/blogspace/internal/auth"
	"github.com/VitaminP8/blogspace/models"
)

type UserPostgresStorage struct{}

func NewUserPostgresStorage() *UserPostgresStorage {
	return &UserPostgresStorage{}
}

func (s *UserPostgresStorage) RegisterUser(ctx context.Context, username, email, password, bio string) (*models.User, error) {
	var existUser models.User
	err := DB.Where("username = ?", username).First(&existUser).Error
	if err == nil {
		return nil, fmt.Errorf("user with username %s already exists", username)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: auth.HashPassword(password),
		Bio:      bio,
	}

	err = DB.Create(user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *UserPostgresStorage) AuthenticateUser(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := DB.Where("username = ? AND password = ?", username, auth.HashPassword(password)).First(&user).Error
	if err != nil {
		return nil, fmt.Errorf("invalid username or password")
	}

	return &user, nil
}

func (s *UserPostgresStorage) GetUserById(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := DB.First(&user, id).Error
	if err != nil {
		return nil, fmt.Errorf("could not get user by id: %w", err)
	}

	return &user, nil
}

func (s *UserPostgresStorage) UpdateProfile(ctx context.Context, id uint, email, bio string) error {
	err := DB.Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"email": email, "bio": bio}).Error
	if err != nil {
		return fmt.Errorf("could not update profile: %w", err)
	}

	return nil
}

// ChangePassword is a single conditional update: the old password hash is
// part of the WHERE clause, so a concurrent change cannot be lost.
func (s *UserPostgresStorage) ChangePassword(ctx context.Context, id uint, oldPassword, newPassword string) error {
	res := DB.Model(&models.User{}).
		Where("id = ? AND password = ?", id, auth.HashPassword(oldPassword)).
		Update("password", auth.HashPassword(newPassword))
	if res.Error != nil {
		return fmt.Errorf("could not change password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("current password is incorrect")
	}

	return nil
}

func (s *UserPostgresStorage) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := DB.Model(&models.User{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("could not count users: %w", err)
	}

	return count, nil
}
