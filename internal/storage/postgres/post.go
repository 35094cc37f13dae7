package postgres

import (
	"context"
	"fmt"

	"github.com/jinzhu/gorm"

	"github.com/VitaminP8/blogspace/internal/auth"
	"github.com/VitaminP8/blogspace/models"
)

type PostPostgresStorage struct{}

func NewPostPostgresStorage() *PostPostgresStorage {
	return &PostPostgresStorage{}
}

func (s *PostPostgresStorage) CreatePost(ctx context.Context, title, content, category string) (*models.Post, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get user id from context: %w", err)
	}

	if !models.IsValidCategory(category) {
		return nil, fmt.Errorf("unknown category: %s", category)
	}

	post := &models.Post{
		Title:    title,
		Content:  content,
		Category: category,
		Views:    0,
		UserID:   userID,
	}

	err = DB.Create(post).Error
	if err != nil {
		return nil, fmt.Errorf("could not create post: %w", err)
	}

	return post, nil
}

func (s *PostPostgresStorage) GetPostById(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := DB.First(&post, id).Error
	if err != nil {
		return nil, fmt.Errorf("could not get post by id: %w", err)
	}

	if err := fillPostAuthors([]*models.Post{&post}); err != nil {
		return nil, err
	}

	return &post, nil
}

func (s *PostPostgresStorage) GetAllPosts(ctx context.Context) ([]*models.Post, error) {
	var posts []models.Post
	err := DB.Order("created_at desc").Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("could not get posts: %w", err)
	}

	results := make([]*models.Post, 0, len(posts))
	for i := range posts {
		results = append(results, &posts[i])
	}

	if err := fillPostAuthors(results); err != nil {
		return nil, err
	}

	return results, nil
}

func (s *PostPostgresStorage) GetUserPosts(ctx context.Context, userID uint) ([]*models.Post, error) {
	var posts []models.Post
	err := DB.Where("user_id = ?", userID).Order("created_at desc").Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("could not get user posts: %w", err)
	}

	results := make([]*models.Post, 0, len(posts))
	for i := range posts {
		results = append(results, &posts[i])
	}

	if err := fillPostAuthors(results); err != nil {
		return nil, err
	}

	return results, nil
}

func (s *PostPostgresStorage) UpdatePost(ctx context.Context, id uint, title, content, category string) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	if !models.IsValidCategory(category) {
		return fmt.Errorf("unknown category: %s", category)
	}

	var post models.Post
	err = DB.First(&post, id).Error
	if err != nil {
		return fmt.Errorf("post not found: %w", err)
	}

	if post.UserID != userID {
		return fmt.Errorf("forbidden: you are not the author of this post")
	}

	err = DB.Model(&models.Post{}).Where("id = ?", id).
		Updates(map[string]interface{}{"title": title, "content": content, "category": category}).Error
	if err != nil {
		return fmt.Errorf("could not update post: %w", err)
	}

	return nil
}

// DeletePostById removes the post together with its comments and likes in
// one transaction.
func (s *PostPostgresStorage) DeletePostById(ctx context.Context, id uint) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	var post models.Post
	err = DB.First(&post, id).Error
	if err != nil {
		return fmt.Errorf("post not found: %w", err)
	}

	if post.UserID != userID {
		return fmt.Errorf("forbidden: you are not the author of this post")
	}

	tx := DB.Begin()
	if tx.Error != nil {
		return fmt.Errorf("could not start transaction: %w", tx.Error)
	}

	if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("could not delete comments: %w", err)
	}
	if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("could not delete likes: %w", err)
	}
	if err := tx.Delete(&models.Post{}, id).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("could not delete post: %w", err)
	}

	return tx.Commit().Error
}

// IncrementViewCount is an atomic column update: concurrent viewers are all
// counted.
func (s *PostPostgresStorage) IncrementViewCount(ctx context.Context, id uint) error {
	res := DB.Model(&models.Post{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return fmt.Errorf("could not increment view count: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("post not found")
	}

	return nil
}

func (s *PostPostgresStorage) CountPosts(ctx context.Context) (int, error) {
	var count int
	err := DB.Model(&models.Post{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("could not count posts: %w", err)
	}

	return count, nil
}

func fillPostAuthors(posts []*models.Post) error {
	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.UserID)
	}

	names, err := usernamesByID(ids)
	if err != nil {
		return err
	}

	for _, p := range posts {
		p.Author = names[p.UserID]
	}
	return nil
}
