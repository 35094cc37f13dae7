package postgres

import (
	"context"
	"fmt"

	"github.com/VitaminP8/blogspace/internal/auth"
	"github.com/VitaminP8/blogspace/models"
)

type LikePostgresStorage struct{}

func NewLikePostgresStorage() *LikePostgresStorage {
	return &LikePostgresStorage{}
}

// AddLike inserts unconditionally: there is no uniqueness constraint on
// (post_id, user_id), so repeated likes stack up.
func (s *LikePostgresStorage) AddLike(ctx context.Context, postID uint) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	var post models.Post
	err = DB.First(&post, postID).Error
	if err != nil {
		return fmt.Errorf("post not found: %w", err)
	}

	err = DB.Create(&models.Like{PostID: postID, UserID: userID}).Error
	if err != nil {
		return fmt.Errorf("could not add like: %w", err)
	}

	return nil
}

func (s *LikePostgresStorage) RemoveLike(ctx context.Context, postID uint) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	err = DB.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{}).Error
	if err != nil {
		return fmt.Errorf("could not remove like: %w", err)
	}

	return nil
}

func (s *LikePostgresStorage) GetLikeCount(ctx context.Context, postID uint) (int, error) {
	var count int
	err := DB.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("could not count likes: %w", err)
	}

	return count, nil
}

func (s *LikePostgresStorage) HasUserLiked(ctx context.Context, postID, userID uint) (bool, error) {
	var count int
	err := DB.Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("could not check like: %w", err)
	}

	return count > 0, nil
}
