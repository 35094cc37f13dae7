package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitaminP8/blogspace/internal/auth"
)

func testIdentity(userID uint, username string) context.Context {
	return auth.WithIdentity(context.Background(), &auth.Identity{
		ID:       userID,
		Username: username,
		Email:    username + "@example.com",
	})
}

func TestPostMemoryStorage_CreatePost(t *testing.T) {
	storage := NewPostMemoryStorage()

	t.Run("Success creation captures author", func(t *testing.T) {
		post, err := storage.CreatePost(testIdentity(1, "alice"), "My Trip", "We went places", "Travel")
		assert.NoError(t, err)
		require.NotNil(t, post)
		assert.Equal(t, uint(1), post.ID)
		assert.Equal(t, "alice", post.Author)
		assert.Equal(t, uint(1), post.UserID)
		assert.Equal(t, 0, post.Views)
	})

	t.Run("Error: no identity", func(t *testing.T) {
		post, err := storage.CreatePost(context.Background(), "Title", "Content", "Travel")
		assert.Error(t, err)
		assert.Nil(t, post)
	})

	t.Run("Error: unknown category", func(t *testing.T) {
		post, err := storage.CreatePost(testIdentity(1, "alice"), "Title", "Content", "Nonsense")
		assert.Error(t, err)
		assert.Nil(t, post)
	})
}

func TestPostMemoryStorage_GetAllPosts(t *testing.T) {
	storage := NewPostMemoryStorage()
	ctx := testIdentity(1, "alice")

	_, err := storage.CreatePost(ctx, "first", "content", "Food")
	require.NoError(t, err)
	_, err = storage.CreatePost(ctx, "second", "content", "Food")
	require.NoError(t, err)

	posts, err := storage.GetAllPosts(context.Background())
	assert.NoError(t, err)
	require.Len(t, posts, 2)
	// Newest first; for equal timestamps the higher ID wins.
	assert.Equal(t, "second", posts[0].Title)
	assert.Equal(t, "first", posts[1].Title)
}

func TestPostMemoryStorage_GetUserPosts(t *testing.T) {
	storage := NewPostMemoryStorage()

	_, err := storage.CreatePost(testIdentity(1, "alice"), "alice post", "content", "Food")
	require.NoError(t, err)
	_, err = storage.CreatePost(testIdentity(2, "bob"), "bob post", "content", "Food")
	require.NoError(t, err)

	posts, err := storage.GetUserPosts(context.Background(), 1)
	assert.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "alice post", posts[0].Title)
}

func TestPostMemoryStorage_UpdatePost(t *testing.T) {
	storage := NewPostMemoryStorage()

	post, err := storage.CreatePost(testIdentity(1, "alice"), "old", "old content", "Food")
	require.NoError(t, err)

	t.Run("Author can update", func(t *testing.T) {
		err := storage.UpdatePost(testIdentity(1, "alice"), post.ID, "new", "new content", "Health")
		assert.NoError(t, err)

		updated, err := storage.GetPostById(context.Background(), post.ID)
		assert.NoError(t, err)
		assert.Equal(t, "new", updated.Title)
		assert.Equal(t, "Health", updated.Category)
	})

	t.Run("Error: not the author", func(t *testing.T) {
		err := storage.UpdatePost(testIdentity(2, "bob"), post.ID, "hacked", "content", "Food")
		assert.Error(t, err)
	})
}

func TestPostMemoryStorage_DeletePostById(t *testing.T) {
	postStore := NewPostMemoryStorage()
	commentStore := NewCommentMemoryStorage(postStore)
	likeStore := NewLikeMemoryStorage(postStore)

	ctx := testIdentity(1, "alice")
	post, err := postStore.CreatePost(ctx, "doomed", "content", "Food")
	require.NoError(t, err)

	_, err = commentStore.CreateComment(ctx, post.ID, nil, "a comment")
	require.NoError(t, err)
	require.NoError(t, likeStore.AddLike(ctx, post.ID))

	t.Run("Error: not the author", func(t *testing.T) {
		err := postStore.DeletePostById(testIdentity(2, "bob"), post.ID)
		assert.Error(t, err)
	})

	t.Run("Delete cascades to comments and likes", func(t *testing.T) {
		err := postStore.DeletePostById(ctx, post.ID)
		assert.NoError(t, err)

		_, err = postStore.GetPostById(context.Background(), post.ID)
		assert.Error(t, err)

		comments, err := commentStore.GetComments(context.Background(), post.ID)
		assert.NoError(t, err)
		assert.Empty(t, comments)

		count, err := likeStore.GetLikeCount(context.Background(), post.ID)
		assert.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}

func TestPostMemoryStorage_IncrementViewCount(t *testing.T) {
	storage := NewPostMemoryStorage()

	post, err := storage.CreatePost(testIdentity(1, "alice"), "title", "content", "Food")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, storage.IncrementViewCount(context.Background(), post.ID))
	}

	viewed, err := storage.GetPostById(context.Background(), post.ID)
	assert.NoError(t, err)
	assert.Equal(t, 3, viewed.Views)

	err = storage.IncrementViewCount(context.Background(), 999)
	assert.Error(t, err)
}

func TestPostMemoryStorage_CountPosts(t *testing.T) {
	storage := NewPostMemoryStorage()
	ctx := testIdentity(1, "alice")

	count, err := storage.CountPosts(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = storage.CreatePost(ctx, "one", "content", "Food")
	require.NoError(t, err)
	_, err = storage.CreatePost(ctx, "two", "content", "Food")
	require.NoError(t, err)

	count, err = storage.CountPosts(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
}
