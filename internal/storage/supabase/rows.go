package supabase

import (
	"time"

	"github.com/VitaminP8/blogspace/models"
)

// Row types mirror the persisted schema; timestamps come back as strings in
// varying ISO-8601 flavors depending on column type.

type userRow struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	Bio       string `json:"bio"`
	CreatedAt string `json:"created_at"`
}

type embeddedUser struct {
	Username string `json:"username"`
}

type postRow struct {
	ID        uint         `json:"id"`
	UserID    uint         `json:"user_id"`
	Title     string       `json:"title"`
	Content   string       `json:"content"`
	Category  string       `json:"category"`
	Views     int          `json:"views"`
	CreatedAt string       `json:"created_at"`
	UpdatedAt string       `json:"updated_at"`
	Users     embeddedUser `json:"users"`
}

type commentRow struct {
	ID        uint         `json:"id"`
	PostID    uint         `json:"post_id"`
	UserID    uint         `json:"user_id"`
	Content   string       `json:"content"`
	ParentID  *uint        `json:"parent_id"`
	CreatedAt string       `json:"created_at"`
	Users     embeddedUser `json:"users"`
}

func (r userRow) toModel() *models.User {
	user := &models.User{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
		Bio:      r.Bio,
	}
	user.ID = r.ID
	user.CreatedAt = parseTime(r.CreatedAt)
	return user
}

func (r postRow) toModel() *models.Post {
	post := &models.Post{
		Title:    r.Title,
		Content:  r.Content,
		Category: r.Category,
		Views:    r.Views,
		UserID:   r.UserID,
		Author:   r.Users.Username,
	}
	post.ID = r.ID
	post.CreatedAt = parseTime(r.CreatedAt)
	post.UpdatedAt = parseTime(r.UpdatedAt)
	return post
}

func (r commentRow) toModel() *models.Comment {
	comment := &models.Comment{
		Content:  r.Content,
		PostID:   r.PostID,
		UserID:   r.UserID,
		ParentID: r.ParentID,
		Author:   r.Users.Username,
	}
	comment.ID = r.ID
	comment.CreatedAt = parseTime(r.CreatedAt)
	return comment
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

func parseTime(value string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

func nowTimestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
