package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitaminP8/blogspace/models"
)

func TestPostPostgresStorage_CreatePost(t *testing.T) {
	storage := NewPostPostgresStorage()

	t.Run("Success post creation", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t, "alice")
		ctx := identityContext(userID, "alice")

		post, err := storage.CreatePost(ctx, "First Post", "Some long enough content", "Travel")
		assert.NoError(t, err)
		require.NotNil(t, post)
		assert.Equal(t, "First Post", post.Title)
		assert.Equal(t, "Travel", post.Category)
		assert.Equal(t, 0, post.Views)
		assert.Equal(t, userID, post.UserID)

		var dbPost models.Post
		err = DB.First(&dbPost, post.ID).Error
		assert.NoError(t, err)
		assert.Equal(t, "First Post", dbPost.Title)
	})

	t.Run("Error: no authorization", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		post, err := storage.CreatePost(context.Background(), "Title", "Content", "Travel")
		assert.Error(t, err)
		assert.Nil(t, post)
	})

	t.Run("Error: unknown category", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t, "alice")
		ctx := identityContext(userID, "alice")

		post, err := storage.CreatePost(ctx, "Title", "Content", "Underwater Basket Weaving")
		assert.Error(t, err)
		assert.Nil(t, post)
		assert.Contains(t, err.Error(), "unknown category")
	})
}

func TestPostPostgresStorage_GetPostById(t *testing.T) {
	storage := NewPostPostgresStorage()

	t.Run("Getting existing post with author name", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t, "alice")
		postID := createTestPost(t, userID, "Hello", "World content")

		post, err := storage.GetPostById(context.Background(), postID)
		assert.NoError(t, err)
		require.NotNil(t, post)
		assert.Equal(t, "Hello", post.Title)
		assert.Equal(t, "alice", post.Author)
	})

	t.Run("Trying to get missing post", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		post, err := storage.GetPostById(context.Background(), 999)
		assert.Error(t, err)
		assert.Nil(t, post)
		assert.Contains(t, err.Error(), "could not get post by id")
	})
}

func TestPostPostgresStorage_GetAllPosts(t *testing.T) {
	storage := NewPostPostgresStorage()

	t.Run("Posts come back newest first", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t, "alice")
		createTestPost(t, userID, "first", "content one")
		createTestPost(t, userID, "second", "content two")

		posts, err := storage.GetAllPosts(context.Background())
		assert.NoError(t, err)
		require.Len(t, posts, 2)
		for _, p := range posts {
			assert.Equal(t, "alice", p.Author)
		}
	})
}

func TestPostPostgresStorage_GetUserPosts(t *testing.T) {
	storage := NewPostPostgresStorage()

	t.Run("Only the author's posts", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		aliceID := createTestUser(t, "alice")
		bobID := createTestUser(t, "bob")
		createTestPost(t, aliceID, "alice post", "content")
		createTestPost(t, bobID, "bob post", "content")

		posts, err := storage.GetUserPosts(context.Background(), aliceID)
		assert.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "alice post", posts[0].Title)
	})
}

func TestPostPostgresStorage_UpdatePost(t *testing.T) {
	storage := NewPostPostgresStorage()

	t.Run("Author can update", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t, "alice")
		postID := createTestPost(t, userID, "old title", "old content")

		err := storage.UpdatePost(identityContext(userID, "alice"), postID, "new title", "new content", "Food")
		assert.NoError(t, err)

		var dbPost models.Post
		require.NoError(t, DB.First(&dbPost, postID).Error)
		assert.Equal(t, "new title", dbPost.Title)
		assert.Equal(t, "Food", dbPost.Category)
	})

	t.Run("Error: not the author", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		aliceID := createTestUser(t, "alice")
		bobID := createTestUser(t, "bob")
		postID := createTestPost(t, aliceID, "title", "content")

		err := storage.UpdatePost(identityContext(bobID, "bob"), postID, "hacked", "content", "Food")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "forbidden")
	})
}

func TestPostPostgresStorage_DeletePostById(t *testing.T) {
	storage := NewPostPostgresStorage()

	t.Run("Delete removes comments and likes too", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t, "alice")
		postID := createTestPost(t, userID, "title", "content")

		require.NoError(t, DB.Create(&models.Comment{PostID: postID, UserID: userID, Content: "hi"}).Error)
		require.NoError(t, DB.Create(&models.Like{PostID: postID, UserID: userID}).Error)

		err := storage.DeletePostById(identityContext(userID, "alice"), postID)
		assert.NoError(t, err)

		var postCount, commentCount, likeCount int
		DB.Model(&models.Post{}).Where("id = ?", postID).Count(&postCount)
		DB.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&commentCount)
		DB.Model(&models.Like{}).Where("post_id = ?", postID).Count(&likeCount)
		assert.Equal(t, 0, postCount)
		assert.Equal(t, 0, commentCount)
		assert.Equal(t, 0, likeCount)
	})

	t.Run("Error: not the author", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		aliceID := createTestUser(t, "alice")
		bobID := createTestUser(t, "bob")
		postID := createTestPost(t, aliceID, "title", "content")

		err := storage.DeletePostById(identityContext(bobID, "bob"), postID)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "forbidden")
	})
}

func TestPostPostgresStorage_IncrementViewCount(t *testing.T) {
	storage := NewPostPostgresStorage()

	t.Run("Each view adds one", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t, "alice")
		postID := createTestPost(t, userID, "title", "content")

		for i := 0; i < 3; i++ {
			require.NoError(t, storage.IncrementViewCount(context.Background(), postID))
		}

		var dbPost models.Post
		require.NoError(t, DB.First(&dbPost, postID).Error)
		assert.Equal(t, 3, dbPost.Views)
	})

	t.Run("Error: missing post", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		err := storage.IncrementViewCount(context.Background(), 999)
		assert.Error(t, err)
	})
}

func TestPostPostgresStorage_CountPosts(t *testing.T) {
	storage := NewPostPostgresStorage()

	t.Run("Counts all posts", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t, "alice")
		createTestPost(t, userID, "one", "content")
		createTestPost(t, userID, "two", "content")

		count, err := storage.CountPosts(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}
