package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/VitaminP8/blogspace/internal/auth"
	"github.com/VitaminP8/blogspace/models"
)

type UserMemoryStorage struct {
	mu         sync.Mutex
	users      map[uint]*models.User
	byUsername map[string]uint
	nextID     uint
}

func NewUserMemoryStorage() *UserMemoryStorage {
	return &UserMemoryStorage{
		users:      make(map[uint]*models.User),
		byUsername: make(map[string]uint),
		nextID:     1,
	}
}

func (s *UserMemoryStorage) RegisterUser(ctx context.Context, username, email, password, bio string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.byUsername[username]
	if exists {
		return nil, fmt.Errorf("user with username %s already exists", username)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: auth.HashPassword(password),
		Bio:      bio,
	}
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	s.nextID++

	s.users[user.ID] = user
	s.byUsername[username] = user.ID

	result := *user
	return &result, nil
}

func (s *UserMemoryStorage) AuthenticateUser(ctx context.Context, username, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, exists := s.byUsername[username]
	if !exists {
		return nil, fmt.Errorf("invalid username or password")
	}

	user := s.users[id]
	if user.Password != auth.HashPassword(password) {
		return nil, fmt.Errorf("invalid username or password")
	}

	result := *user
	return &result, nil
}

func (s *UserMemoryStorage) GetUserById(ctx context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[id]
	if !exists {
		return nil, fmt.Errorf("user not found")
	}

	result := *user
	return &result, nil
}

func (s *UserMemoryStorage) UpdateProfile(ctx context.Context, id uint, email, bio string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[id]
	if !exists {
		return fmt.Errorf("user not found")
	}

	user.Email = email
	user.Bio = bio
	return nil
}

func (s *UserMemoryStorage) ChangePassword(ctx context.Context, id uint, oldPassword, newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[id]
	if !exists {
		return fmt.Errorf("user not found")
	}

	if user.Password != auth.HashPassword(oldPassword) {
		return fmt.Errorf("current password is incorrect")
	}

	user.Password = auth.HashPassword(newPassword)
	return nil
}

func (s *UserMemoryStorage) CountUsers(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.users), nil
}
