package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/VitaminP8/blogspace/internal/auth"
	"github.com/VitaminP8/blogspace/models"
)

// postCascade is implemented by sibling storages that hold rows keyed by
// post; deleting a post drops those rows too.
type postCascade interface {
	removeForPost(postID uint)
}

type PostMemoryStorage struct {
	mu       sync.Mutex
	posts    map[uint]*models.Post
	nextID   uint
	cascades []postCascade
}

func NewPostMemoryStorage() *PostMemoryStorage {
	return &PostMemoryStorage{
		posts:  make(map[uint]*models.Post),
		nextID: 1,
	}
}

func (s *PostMemoryStorage) addCascade(c postCascade) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cascades = append(s.cascades, c)
}

func (s *PostMemoryStorage) CreatePost(ctx context.Context, title, content, category string) (*models.Post, error) {
	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return nil, errors.New("unauthorized: no identity in context")
	}

	if !models.IsValidCategory(category) {
		return nil, fmt.Errorf("unknown category: %s", category)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post := &models.Post{
		Title:    title,
		Content:  content,
		Category: category,
		Views:    0,
		UserID:   identity.ID,
		Author:   identity.Username,
	}
	post.ID = s.nextID
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	s.nextID++

	s.posts[post.ID] = post

	result := *post
	return &result, nil
}

func (s *PostMemoryStorage) GetPostById(ctx context.Context, id uint) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[id]
	if !exists {
		return nil, errors.New("post not found")
	}

	result := *post
	return &result, nil
}

func (s *PostMemoryStorage) GetAllPosts(ctx context.Context) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var posts []*models.Post
	for _, post := range s.posts {
		result := *post
		posts = append(posts, &result)
	}

	sortPostsNewestFirst(posts)
	return posts, nil
}

func (s *PostMemoryStorage) GetUserPosts(ctx context.Context, userID uint) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var posts []*models.Post
	for _, post := range s.posts {
		if post.UserID == userID {
			result := *post
			posts = append(posts, &result)
		}
	}

	sortPostsNewestFirst(posts)
	return posts, nil
}

func (s *PostMemoryStorage) UpdatePost(ctx context.Context, id uint, title, content, category string) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	if !models.IsValidCategory(category) {
		return fmt.Errorf("unknown category: %s", category)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[id]
	if !exists {
		return errors.New("post not found")
	}

	if post.UserID != userID {
		return errors.New("forbidden: not author")
	}

	post.Title = title
	post.Content = content
	post.Category = category
	post.UpdatedAt = time.Now()
	return nil
}

func (s *PostMemoryStorage) DeletePostById(ctx context.Context, id uint) error {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("unauthorized: %w", err)
	}

	s.mu.Lock()

	post, exists := s.posts[id]
	if !exists {
		s.mu.Unlock()
		return errors.New("post not found")
	}

	if post.UserID != userID {
		s.mu.Unlock()
		return errors.New("forbidden: not author")
	}

	delete(s.posts, id)
	cascades := s.cascades

	// Cascades grab their own locks; ours must be released first.
	s.mu.Unlock()

	for _, c := range cascades {
		c.removeForPost(id)
	}
	return nil
}

func (s *PostMemoryStorage) IncrementViewCount(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[id]
	if !exists {
		return errors.New("post not found")
	}

	post.Views++
	return nil
}

func (s *PostMemoryStorage) CountPosts(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.posts), nil
}

func sortPostsNewestFirst(posts []*models.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}
