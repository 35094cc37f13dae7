package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/VitaminP8/blogspace/internal/auth"
	"github.com/VitaminP8/blogspace/internal/post"
	"github.com/VitaminP8/blogspace/models"
)

type LikeMemoryStorage struct {
	mu          sync.Mutex
	likes       map[uint]*models.Like
	nextID      uint
	postStorage post.PostStorage
}

func NewLikeMemoryStorage(postStore post.PostStorage) *LikeMemoryStorage {
	s := &LikeMemoryStorage{
		likes:       make(map[uint]*models.Like),
		nextID:      1,
		postStorage: postStore,
	}
	if ps, ok := postStore.(*PostMemoryStorage); ok {
		ps.addCascade(s)
	}
	return s
}

func (s *LikeMemoryStorage) AddLike(ctx context.Context, postID uint) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	_, err = s.postStorage.GetPostById(ctx, postID)
	if err != nil {
		return fmt.Errorf("post with ID %d not found", postID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// No (post, user) uniqueness: a repeated like adds another row.
	like := &models.Like{PostID: postID, UserID: userID}
	like.ID = s.nextID
	like.CreatedAt = time.Now()
	s.nextID++

	s.likes[like.ID] = like
	return nil
}

func (s *LikeMemoryStorage) RemoveLike(ctx context.Context, postID uint) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return errors.New("unauthorized: no identity in context")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, l := range s.likes {
		if l.PostID == postID && l.UserID == userID {
			delete(s.likes, id)
		}
	}

	return nil
}

func (s *LikeMemoryStorage) GetLikeCount(ctx context.Context, postID uint) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, l := range s.likes {
		if l.PostID == postID {
			count++
		}
	}

	return count, nil
}

func (s *LikeMemoryStorage) HasUserLiked(ctx context.Context, postID, userID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.likes {
		if l.PostID == postID && l.UserID == userID {
			return true, nil
		}
	}

	return false, nil
}

func (s *LikeMemoryStorage) removeForPost(postID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, l := range s.likes {
		if l.PostID == postID {
			delete(s.likes, id)
		}
	}
}
