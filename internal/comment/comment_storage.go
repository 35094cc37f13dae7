package comment

import (
	"context"

	"github.com/VitaminP8/blogspace/models"
)

type CommentStorage interface {
	CreateComment(ctx context.Context, postID uint, parentID *uint, content string) (*models.Comment, error)
	GetComments(ctx context.Context, postID uint) ([]*models.Comment, error)
	// CountRootComments counts only comments without a parent: replies are
	// deliberately excluded from the displayed count.
	CountRootComments(ctx context.Context, postID uint) (int, error)
}
