package supabase

import (
	"context"
	"fmt"

	"github.com/VitaminP8/blogspace/internal/auth"
)

type LikeSupabaseStorage struct {
	client *Client
}

func NewLikeSupabaseStorage(client *Client) *LikeSupabaseStorage {
	return &LikeSupabaseStorage{client: client}
}

// AddLike inserts unconditionally; the likes table carries no uniqueness
// constraint on (post_id, user_id).
func (s *LikeSupabaseStorage) AddLike(ctx context.Context, postID uint) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	resp, err := s.client.From("likes").ExecuteInsert(ctx, map[string]any{
		"post_id":    postID,
		"user_id":    userID,
		"created_at": nowTimestamp(),
	})
	if err != nil {
		return fmt.Errorf("could not add like: %w", err)
	}
	if err := resp.Error(); err != nil {
		return fmt.Errorf("could not add like: %w", err)
	}

	return nil
}

func (s *LikeSupabaseStorage) RemoveLike(ctx context.Context, postID uint) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	resp, err := s.client.From("likes").
		Eq("post_id", postID).
		Eq("user_id", userID).
		ExecuteDelete(ctx)
	if err != nil {
		return fmt.Errorf("could not remove like: %w", err)
	}
	if err := resp.Error(); err != nil {
		return fmt.Errorf("could not remove like: %w", err)
	}

	return nil
}

func (s *LikeSupabaseStorage) GetLikeCount(ctx context.Context, postID uint) (int, error) {
	resp, err := s.client.From("likes").
		Select("id").
		Eq("post_id", postID).
		Limit(1).
		CountExact().
		Execute(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not count likes: %w", err)
	}
	if err := resp.Error(); err != nil {
		return 0, fmt.Errorf("could not count likes: %w", err)
	}

	return resp.Count()
}

func (s *LikeSupabaseStorage) HasUserLiked(ctx context.Context, postID, userID uint) (bool, error) {
	resp, err := s.client.From("likes").
		Select("id").
		Eq("post_id", postID).
		Eq("user_id", userID).
		Limit(1).
		CountExact().
		Execute(ctx)
	if err != nil {
		return false, fmt.Errorf("could not check like: %w", err)
	}
	if err := resp.Error(); err != nil {
		return false, fmt.Errorf("could not check like: %w", err)
	}

	count, err := resp.Count()
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
