// Package seed fills an empty store with demo accounts and posts so a fresh
// deployment has something to browse.
package seed

import (
	"context"
	"fmt"

	"github.com/VitaminP8/blogspace/internal/auth"
	"github.com/VitaminP8/blogspace/internal/post"
	"github.com/VitaminP8/blogspace/internal/user"
)

// DemoPassword works for every seeded account.
const DemoPassword = "password123"

type sampleUser struct {
	username string
	email    string
	bio      string
}

type samplePost struct {
	author   int // index into sampleUsers
	title    string
	content  string
	category string
}

var sampleUsers = []sampleUser{
	{"john_doe", "john@example.com", "Tech enthusiast and blogger"},
	{"jane_smith", "jane@example.com", "Travel writer and photographer"},
	{"alex_coding", "alex@example.com", "Software engineer and open source contributor"},
}

var samplePosts = []samplePost{
	{0, "Getting Started with Go Web Apps", "Go's standard library plus a small router gets you a production web app surprisingly fast. In this post, I'll explore the basics and best practices.", "Technology"},
	{1, "Top 10 Travel Destinations in 2025", "Planning your next adventure? Check out these incredible destinations that are perfect for 2025.", "Travel"},
	{0, "Python Tips and Tricks", "Discover some lesser-known Python features that can make your code more efficient and elegant.", "Technology"},
	{2, "Open Source Contribution Guide", "Contributing to open source projects can be intimidating at first. Here's a beginner-friendly guide to get started.", "Technology"},
	{1, "The Ultimate Food Guide to Tokyo", "Tokyo is a foodie's paradise. Let me take you through the best restaurants and street food spots I discovered.", "Food"},
}

// SampleData inserts the demo users and posts. A store that already has
// users is left untouched, so the call is safe on every startup.
func SampleData(ctx context.Context, users user.UserStorage, posts post.PostStorage) error {
	count, err := users.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("could not check for existing users: %w", err)
	}
	if count > 0 {
		return nil
	}

	identities := make([]*auth.Identity, 0, len(sampleUsers))
	for _, su := range sampleUsers {
		u, err := users.RegisterUser(ctx, su.username, su.email, DemoPassword, su.bio)
		if err != nil {
			return fmt.Errorf("could not seed user %s: %w", su.username, err)
		}
		identities = append(identities, &auth.Identity{
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
		})
	}

	for _, sp := range samplePosts {
		authorCtx := auth.WithIdentity(ctx, identities[sp.author])
		if _, err := posts.CreatePost(authorCtx, sp.title, sp.content, sp.category); err != nil {
			return fmt.Errorf("could not seed post %q: %w", sp.title, err)
		}
	}

	return nil
}
