package models

import "github.com/jinzhu/gorm"

type User struct {
	gorm.Model
	Username string `gorm:"unique"`
	Email    string
	Password string // SHA-256 hex digest, never plaintext
	Bio      string
	Posts    []Post    `gorm:"foreignkey:UserID"`
	Comments []Comment `gorm:"foreignkey:UserID"`
	Likes    []Like    `gorm:"foreignkey:UserID"`
}

type Post struct {
	gorm.Model
	Title    string
	Content  string
	Category string
	Views    int
	UserID   uint
	Comments []Comment `gorm:"foreignkey:PostID"`
	Likes    []Like    `gorm:"foreignkey:PostID"`

	// Author is the owning user's username, filled in by the storage layer.
	Author string `gorm:"-"`
}

type Comment struct {
	gorm.Model
	Content  string
	PostID   uint
	UserID   uint
	ParentID *uint

	Author string `gorm:"-"`
}

// Like has no uniqueness constraint on (PostID, UserID): repeated likes from
// the same user create duplicate rows and inflate the count.
type Like struct {
	gorm.Model
	PostID uint
	UserID uint
}

// Categories is the fixed set a post's category must belong to.
var Categories = []string{
	"Technology",
	"Lifestyle",
	"Travel",
	"Food",
	"Health",
	"Entertainment",
	"Education",
	"Business",
	"Science",
	"Other",
}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
