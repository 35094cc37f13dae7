package user

import (
	"context"

	"github.com/VitaminP8/blogspace/models"
)

type UserStorage interface {
	RegisterUser(ctx context.Context, username, email, password, bio string) (*models.User, error)
	AuthenticateUser(ctx context.Context, username, password string) (*models.User, error)
	GetUserById(ctx context.Context, id uint) (*models.User, error)
	UpdateProfile(ctx context.Context, id uint, email, bio string) error
	ChangePassword(ctx context.Context, id uint, oldPassword, newPassword string) error
	CountUsers(ctx context.Context) (int, error)
}
