package postgres

import (
	"context"
	"fmt"

	"github.com/VitaminP8/blogspace/internal/auth"
	"github.com/VitaminP8/blogspace/models"
)

type CommentPostgresStorage struct{}

func NewCommentPostgresStorage() *CommentPostgresStorage {
	return &CommentPostgresStorage{}
}

func (s *CommentPostgresStorage) CreateComment(ctx context.Context, postID uint, parentID *uint, content string) (*models.Comment, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	var post models.Post
	err = DB.First(&post, postID).Error
	if err != nil {
		return nil, fmt.Errorf("post not found: %w", err)
	}

	if parentID != nil {
		var parent models.Comment
		err = DB.First(&parent, *parentID).Error
		if err != nil {
			return nil, fmt.Errorf("parent comment not found: %w", err)
		}
		if parent.PostID != postID {
			return nil, fmt.Errorf("parent comment belongs to a different post")
		}
	}

	comment := &models.Comment{
		PostID:   postID,
		UserID:   userID,
		Content:  content,
		ParentID: parentID,
	}

	err = DB.Create(comment).Error
	if err != nil {
		return nil, fmt.Errorf("could not create comment: %w", err)
	}

	return comment, nil
}

func (s *CommentPostgresStorage) GetComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	var comments []models.Comment
	err := DB.Where("post_id = ?", postID).Order("created_at asc").Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("could not get comments: %w", err)
	}

	results := make([]*models.Comment, 0, len(comments))
	ids := make([]uint, 0, len(comments))
	for i := range comments {
		results = append(results, &comments[i])
		ids = append(ids, comments[i].UserID)
	}

	names, err := usernamesByID(ids)
	if err != nil {
		return nil, err
	}
	for _, c := range results {
		c.Author = names[c.UserID]
	}

	return results, nil
}

func (s *CommentPostgresStorage) CountRootComments(ctx context.Context, postID uint) (int, error) {
	var count int
	err := DB.Model(&models.Comment{}).
		Where("post_id = ? AND parent_id IS NULL", postID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("could not count comments: %w", err)
	}

	return count, nil
}
