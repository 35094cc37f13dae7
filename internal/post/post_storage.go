package post

import (
	"context"

	"github.com/VitaminP8/blogspace/models"
)

// PostStorage is the data-access contract for posts. Create, update and
// delete take the acting user from the context and enforce ownership.
type PostStorage interface {
	CreatePost(ctx context.Context, title, content, category string) (*models.Post, error)
	GetPostById(ctx context.Context, id uint) (*models.Post, error)
	GetAllPosts(ctx context.Context) ([]*models.Post, error)
	GetUserPosts(ctx context.Context, userID uint) ([]*models.Post, error)
	UpdatePost(ctx context.Context, id uint, title, content, category string) error
	DeletePostById(ctx context.Context, id uint) error
	IncrementViewCount(ctx context.Context, id uint) error
	CountPosts(ctx context.Context) (int, error)
}
