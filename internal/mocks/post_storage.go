package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/VitaminP8/blogspace/internal/auth"
	"github.com/VitaminP8/blogspace/models"
)

type MockPostStorage struct {
	mu     sync.Mutex
	posts  map[uint]*models.Post
	nextID uint
}

func NewMockPostStorage() *MockPostStorage {
	return &MockPostStorage{
		posts:  make(map[uint]*models.Post),
		nextID: 1,
	}
}

func (m *MockPostStorage) CreatePost(ctx context.Context, title, content, category string) (*models.Post, error) {
	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("unauthorized")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	post := &models.Post{
		Title:    title,
		Content:  content,
		Category: category,
		UserID:   identity.ID,
		Author:   identity.Username,
	}
	post.ID = m.nextID
	post.CreatedAt = time.Now()
	m.nextID++

	m.posts[post.ID] = post
	return post, nil
}

func (m *MockPostStorage) GetPostById(ctx context.Context, id uint) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	post, ok := m.posts[id]
	if !ok {
		return nil, fmt.Errorf("post not found")
	}
	return post, nil
}

func (m *MockPostStorage) GetAllPosts(ctx context.Context) ([]*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	posts := make([]*models.Post, 0, len(m.posts))
	for _, p := range m.posts {
		posts = append(posts, p)
	}
	return posts, nil
}

func (m *MockPostStorage) GetUserPosts(ctx context.Context, userID uint) ([]*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var posts []*models.Post
	for _, p := range m.posts {
		if p.UserID == userID {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (m *MockPostStorage) UpdatePost(ctx context.Context, id uint, title, content, category string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	post, ok := m.posts[id]
	if !ok {
		return fmt.Errorf("post not found")
	}
	post.Title = title
	post.Content = content
	post.Category = category
	return nil
}

func (m *MockPostStorage) DeletePostById(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[id]; !ok {
		return fmt.Errorf("post not found")
	}
	delete(m.posts, id)
	return nil
}

func (m *MockPostStorage) IncrementViewCount(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	post, ok := m.posts[id]
	if !ok {
		return fmt.Errorf("post not found")
	}
	post.Views++
	return nil
}

func (m *MockPostStorage) CountPosts(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.posts), nil
}
