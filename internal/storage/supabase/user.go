package supabase

import (
	"context"
	"fmt"

	"github.com/VitaminP8/blogspace/internal/auth"
	"github.com/VitaminP8/blogspace/models"
)

type UserSupabaseStorage struct {
	client *Client
}

func NewUserSupabaseStorage(client *Client) *UserSupabaseStorage {
	return &UserSupabaseStorage{client: client}
}

func (s *UserSupabaseStorage) RegisterUser(ctx context.Context, username, email, password, bio string) (*models.User, error) {
	resp, err := s.client.From("users").ExecuteInsert(ctx, map[string]any{
		"username":   username,
		"email":      email,
		"password":   auth.HashPassword(password),
		"bio":        bio,
		"created_at": nowTimestamp(),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create user: %w", err)
	}
	if err := resp.Error(); err != nil {
		// Uniqueness violations surface here indistinguishably from any
		// other store error.
		return nil, fmt.Errorf("could not create user: %w", err)
	}

	var rows []userRow
	if err := resp.JSON(&rows); err != nil {
		return nil, fmt.Errorf("could not decode user: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("could not create user: empty representation")
	}

	return rows[0].toModel(), nil
}

func (s *UserSupabaseStorage) AuthenticateUser(ctx context.Context, username, password string) (*models.User, error) {
	resp, err := s.client.From("users").
		Select("id, username, email").
		Eq("username", username).
		Eq("password", auth.HashPassword(password)).
		Execute(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not authenticate user: %w", err)
	}
	if err := resp.Error(); err != nil {
		return nil, fmt.Errorf("could not authenticate user: %w", err)
	}

	var rows []userRow
	if err := resp.JSON(&rows); err != nil {
		return nil, fmt.Errorf("could not decode user: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("invalid username or password")
	}

	return rows[0].toModel(), nil
}

func (s *UserSupabaseStorage) GetUserById(ctx context.Context, id uint) (*models.User, error) {
	resp, err := s.client.From("users").
		Select("id, username, email, bio, created_at").
		Eq("id", id).
		Execute(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get user by id: %w", err)
	}
	if err := resp.Error(); err != nil {
		return nil, fmt.Errorf("could not get user by id: %w", err)
	}

	var rows []userRow
	if err := resp.JSON(&rows); err != nil {
		return nil, fmt.Errorf("could not decode user: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("user not found")
	}

	return rows[0].toModel(), nil
}

func (s *UserSupabaseStorage) UpdateProfile(ctx context.Context, id uint, email, bio string) error {
	resp, err := s.client.From("users").
		Eq("id", id).
		ExecuteUpdate(ctx, map[string]any{"email": email, "bio": bio})
	if err != nil {
		return fmt.Errorf("could not update profile: %w", err)
	}
	if err := resp.Error(); err != nil {
		return fmt.Errorf("could not update profile: %w", err)
	}

	return nil
}

// ChangePassword is a conditional update: the old password hash rides in the
// filter, so the write only lands if the stored hash still matches.
func (s *UserSupabaseStorage) ChangePassword(ctx context.Context, id uint, oldPassword, newPassword string) error {
	resp, err := s.client.From("users").
		Eq("id", id).
		Eq("password", auth.HashPassword(oldPassword)).
		ExecuteUpdate(ctx, map[string]any{"password": auth.HashPassword(newPassword)})
	if err != nil {
		return fmt.Errorf("could not change password: %w", err)
	}
	if err := resp.Error(); err != nil {
		return fmt.Errorf("could not change password: %w", err)
	}

	var rows []userRow
	if err := resp.JSON(&rows); err != nil {
		return fmt.Errorf("could not decode result: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("current password is incorrect")
	}

	return nil
}

func (s *UserSupabaseStorage) CountUsers(ctx context.Context) (int, error) {
	resp, err := s.client.From("users").Select("id").Limit(1).CountExact().Execute(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not count users: %w", err)
	}
	if err := resp.Error(); err != nil {
		return 0, fmt.Errorf("could not count users: %w", err)
	}

	return resp.Count()
}
