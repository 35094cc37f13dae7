package supabase

import (
	"context"
	"fmt"

	"github.com/VitaminP8/blogspace/internal/auth"
	"github.com/VitaminP8/blogspace/models"
)

const postColumns = "id, user_id, title, content, category, views, created_at, updated_at, users(username)"

type PostSupabaseStorage struct {
	client *Client
}

func NewPostSupabaseStorage(client *Client) *PostSupabaseStorage {
	return &PostSupabaseStorage{client: client}
}

func (s *PostSupabaseStorage) CreatePost(ctx context.Context, title, content, category string) (*models.Post, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get user id from context: %w", err)
	}

	if !models.IsValidCategory(category) {
		return nil, fmt.Errorf("unknown category: %s", category)
	}

	now := nowTimestamp()
	resp, err := s.client.From("posts").ExecuteInsert(ctx, map[string]any{
		"user_id":    userID,
		"title":      title,
		"content":    content,
		"category":   category,
		"views":      0,
		"created_at": now,
		"updated_at": now,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create post: %w", err)
	}
	if err := resp.Error(); err != nil {
		return nil, fmt.Errorf("could not create post: %w", err)
	}

	var rows []postRow
	if err := resp.JSON(&rows); err != nil {
		return nil, fmt.Errorf("could not decode post: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("could not create post: empty representation")
	}

	return rows[0].toModel(), nil
}

func (s *PostSupabaseStorage) GetPostById(ctx context.Context, id uint) (*models.Post, error) {
	resp, err := s.client.From("posts").
		Select(postColumns).
		Eq("id", id).
		Execute(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get post by id: %w", err)
	}
	if err := resp.Error(); err != nil {
		return nil, fmt.Errorf("could not get post by id: %w", err)
	}

	var rows []postRow
	if err := resp.JSON(&rows); err != nil {
		return nil, fmt.Errorf("could not decode post: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("post not found")
	}

	return rows[0].toModel(), nil
}

func (s *PostSupabaseStorage) GetAllPosts(ctx context.Context) ([]*models.Post, error) {
	resp, err := s.client.From("posts").
		Select(postColumns).
		Order("created_at", false).
		Execute(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get posts: %w", err)
	}
	if err := resp.Error(); err != nil {
		return nil, fmt.Errorf("could not get posts: %w", err)
	}

	var rows []postRow
	if err := resp.JSON(&rows); err != nil {
		return nil, fmt.Errorf("could not decode posts: %w", err)
	}

	results := make([]*models.Post, 0, len(rows))
	for _, r := range rows {
		results = append(results, r.toModel())
	}

	return results, nil
}

func (s *PostSupabaseStorage) GetUserPosts(ctx context.Context, userID uint) ([]*models.Post, error) {
	resp, err := s.client.From("posts").
		Select(postColumns).
		Eq("user_id", userID).
		Order("created_at", false).
		Execute(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get user posts: %w", err)
	}
	if err := resp.Error(); err != nil {
		return nil, fmt.Errorf("could not get user posts: %w", err)
	}

	var rows []postRow
	if err := resp.JSON(&rows); err != nil {
		return nil, fmt.Errorf("could not decode posts: %w", err)
	}

	results := make([]*models.Post, 0, len(rows))
	for _, r := range rows {
		results = append(results, r.toModel())
	}

	return results, nil
}

func (s *PostSupabaseStorage) UpdatePost(ctx context.Context, id uint, title, content, category string) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	if !models.IsValidCategory(category) {
		return fmt.Errorf("unknown category: %s", category)
	}

	post, err := s.GetPostById(ctx, id)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return fmt.Errorf("forbidden: you are not the author of this post")
	}

	resp, err := s.client.From("posts").
		Eq("id", id).
		ExecuteUpdate(ctx, map[string]any{
			"title":      title,
			"content":    content,
			"category":   category,
			"updated_at": nowTimestamp(),
		})
	if err != nil {
		return fmt.Errorf("could not update post: %w", err)
	}
	if err := resp.Error(); err != nil {
		return fmt.Errorf("could not update post: %w", err)
	}

	return nil
}

// DeletePostById issues three sequential deletes (comments, likes, post);
// PostgREST offers no cross-table transaction, so a failure mid-way can
// leave orphaned rows.
func (s *PostSupabaseStorage) DeletePostById(ctx context.Context, id uint) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	post, err := s.GetPostById(ctx, id)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return fmt.Errorf("forbidden: you are not the author of this post")
	}

	if resp, err := s.client.From("comments").Eq("post_id", id).ExecuteDelete(ctx); err != nil {
		return fmt.Errorf("could not delete comments: %w", err)
	} else if err := resp.Error(); err != nil {
		return fmt.Errorf("could not delete comments: %w", err)
	}

	if resp, err := s.client.From("likes").Eq("post_id", id).ExecuteDelete(ctx); err != nil {
		return fmt.Errorf("could not delete likes: %w", err)
	} else if err := resp.Error(); err != nil {
		return fmt.Errorf("could not delete likes: %w", err)
	}

	if resp, err := s.client.From("posts").Eq("id", id).ExecuteDelete(ctx); err != nil {
		return fmt.Errorf("could not delete post: %w", err)
	} else if err := resp.Error(); err != nil {
		return fmt.Errorf("could not delete post: %w", err)
	}

	return nil
}

// IncrementViewCount reads the current count and writes count+1. PostgREST
// has no increment expression without a server-side RPC, so this stays two
// round trips; concurrent viewers can undercount.
func (s *PostSupabaseStorage) IncrementViewCount(ctx context.Context, id uint) error {
	resp, err := s.client.From("posts").Select("views").Eq("id", id).Execute(ctx)
	if err != nil {
		return fmt.Errorf("could not read view count: %w", err)
	}
	if err := resp.Error(); err != nil {
		return fmt.Errorf("could not read view count: %w", err)
	}

	var rows []postRow
	if err := resp.JSON(&rows); err != nil {
		return fmt.Errorf("could not decode view count: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("post not found")
	}

	upd, err := s.client.From("posts").
		Eq("id", id).
		ExecuteUpdate(ctx, map[string]any{"views": rows[0].Views + 1})
	if err != nil {
		return fmt.Errorf("could not increment view count: %w", err)
	}
	if err := upd.Error(); err != nil {
		return fmt.Errorf("could not increment view count: %w", err)
	}

	return nil
}

func (s *PostSupabaseStorage) CountPosts(ctx context.Context) (int, error) {
	resp, err := s.client.From("posts").Select("id").Limit(1).CountExact().Execute(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not count posts: %w", err)
	}
	if err := resp.Error(); err != nil {
		return 0, fmt.Errorf("could not count posts: %w", err)
	}

	return resp.Count()
}
