package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/VitaminP8/blogspace/internal/auth"
	"github.com/VitaminP8/blogspace/models"
)

type MockUserStorage struct {
	mu     sync.Mutex
	users  map[uint]*models.User
	nextID uint
}

func NewMockUserStorage() *MockUserStorage {
	return &MockUserStorage{
		users:  make(map[uint]*models.User),
		nextID: 1,
	}
}

func (m *MockUserStorage) RegisterUser(ctx context.Context, username, email, password, bio string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			return nil, fmt.Errorf("user with username %s already exists", username)
		}
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: auth.HashPassword(password),
		Bio:      bio,
	}
	user.ID = m.nextID
	m.nextID++

	m.users[user.ID] = user
	return user, nil
}

func (m *MockUserStorage) AuthenticateUser(ctx context.Context, username, password string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username && u.Password == auth.HashPassword(password) {
			return u, nil
		}
	}
	return nil, fmt.Errorf("invalid username or password")
}

func (m *MockUserStorage) GetUserById(ctx context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	return user, nil
}

func (m *MockUserStorage) UpdateProfile(ctx context.Context, id uint, email, bio string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return fmt.Errorf("user not found")
	}
	user.Email = email
	user.Bio = bio
	return nil
}

func (m *MockUserStorage) ChangePassword(ctx context.Context, id uint, oldPassword, newPassword string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return fmt.Errorf("user not found")
	}
	if user.Password != auth.HashPassword(oldPassword) {
		return fmt.Errorf("current password is incorrect")
	}
	user.Password = auth.HashPassword(newPassword)
	return nil
}

func (m *MockUserStorage) CountUsers(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.users), nil
}
