package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/VitaminP8/blogspace/internal/auth"
	"github.com/VitaminP8/blogspace/internal/post"
	"github.com/VitaminP8/blogspace/models"
)

type CommentMemoryStorage struct {
	mu          sync.Mutex
	comments    map[uint]*models.Comment
	nextID      uint
	postStorage post.PostStorage
}

func NewCommentMemoryStorage(postStore post.PostStorage) *CommentMemoryStorage {
	s := &CommentMemoryStorage{
		comments:    make(map[uint]*models.Comment),
		nextID:      1,
		postStorage: postStore,
	}
	if ps, ok := postStore.(*PostMemoryStorage); ok {
		ps.addCascade(s)
	}
	return s
}

func (s *CommentMemoryStorage) CreateComment(ctx context.Context, postID uint, parentID *uint, content string) (*models.Comment, error) {
	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return nil, errors.New("unauthorized: no identity in context")
	}

	_, err := s.postStorage.GetPostById(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("post with ID %d not found", postID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if parentID != nil {
		parent, exists := s.comments[*parentID]
		if !exists {
			return nil, fmt.Errorf("parent comment with ID %d not found", *parentID)
		}
		if parent.PostID != postID {
			return nil, errors.New("parent comment belongs to a different post")
		}
	}

	comment := &models.Comment{
		PostID:   postID,
		UserID:   identity.ID,
		Content:  content,
		ParentID: parentID,
		Author:   identity.Username,
	}
	comment.ID = s.nextID
	comment.CreatedAt = time.Now()
	s.nextID++

	s.comments[comment.ID] = comment

	result := *comment
	return &result, nil
}

func (s *CommentMemoryStorage) GetComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var comments []*models.Comment
	for _, c := range s.comments {
		if c.PostID == postID {
			result := *c
			comments = append(comments, &result)
		}
	}

	// Creation order, ID as the tiebreak for equal timestamps.
	sort.Slice(comments, func(i, j int) bool {
		if comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].ID < comments[j].ID
		}
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})

	return comments, nil
}

func (s *CommentMemoryStorage) CountRootComments(ctx context.Context, postID uint) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, c := range s.comments {
		if c.PostID == postID && c.ParentID == nil {
			count++
		}
	}

	return count, nil
}

func (s *CommentMemoryStorage) removeForPost(postID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, c := range s.comments {
		if c.PostID == postID {
			delete(s.comments, id)
		}
	}
}
