package supabase

import (
	"context"
	"fmt"

	"github.com/VitaminP8/blogspace/internal/auth"
	"github.com/VitaminP8/blogspace/models"
)

type CommentSupabaseStorage struct {
	client *Client
}

func NewCommentSupabaseStorage(client *Client) *CommentSupabaseStorage {
	return &CommentSupabaseStorage{client: client}
}

func (s *CommentSupabaseStorage) CreateComment(ctx context.Context, postID uint, parentID *uint, content string) (*models.Comment, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}

	payload := map[string]any{
		"post_id":    postID,
		"user_id":    userID,
		"content":    content,
		"parent_id":  nil,
		"created_at": nowTimestamp(),
	}
	if parentID != nil {
		payload["parent_id"] = *parentID
	}

	resp, err := s.client.From("comments").ExecuteInsert(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("could not create comment: %w", err)
	}
	if err := resp.Error(); err != nil {
		return nil, fmt.Errorf("could not create comment: %w", err)
	}

	var rows []commentRow
	if err := resp.JSON(&rows); err != nil {
		return nil, fmt.Errorf("could not decode comment: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("could not create comment: empty representation")
	}

	return rows[0].toModel(), nil
}

func (s *CommentSupabaseStorage) GetComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	resp, err := s.client.From("comments").
		Select("id, post_id, user_id, content, created_at, parent_id, users(username)").
		Eq("post_id", postID).
		Order("created_at", true).
		Execute(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get comments: %w", err)
	}
	if err := resp.Error(); err != nil {
		return nil, fmt.Errorf("could not get comments: %w", err)
	}

	var rows []commentRow
	if err := resp.JSON(&rows); err != nil {
		return nil, fmt.Errorf("could not decode comments: %w", err)
	}

	results := make([]*models.Comment, 0, len(rows))
	for _, r := range rows {
		results = append(results, r.toModel())
	}

	return results, nil
}

func (s *CommentSupabaseStorage) CountRootComments(ctx context.Context, postID uint) (int, error) {
	resp, err := s.client.From("comments").
		Select("id").
		Eq("post_id", postID).
		IsNull("parent_id").
		Limit(1).
		CountExact().
		Execute(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not count comments: %w", err)
	}
	if err := resp.Error(); err != nil {
		return 0, fmt.Errorf("could not count comments: %w", err)
	}

	return resp.Count()
}
