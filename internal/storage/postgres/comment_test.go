package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VitaminP8/blogspace/models"
)

func TestCommentPostgresStorage_CreateComment(t *testing.T) {
	storage := NewCommentPostgresStorage()

	t.Run("Success root comment", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t, "alice")
		postID := createTestPost(t, userID, "title", "content")

		comment, err := storage.CreateComment(identityContext(userID, "alice"), postID, nil, "nice post")
		assert.NoError(t, err)
		require.NotNil(t, comment)
		assert.Equal(t, postID, comment.PostID)
		assert.Nil(t, comment.ParentID)
	})

	t.Run("Success reply", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t, "alice")
		postID := createTestPost(t, userID, "title", "content")
		ctx := identityContext(userID, "alice")

		root, err := storage.CreateComment(ctx, postID, nil, "root")
		require.NoError(t, err)

		reply, err := storage.CreateComment(ctx, postID, &root.ID, "reply")
		assert.NoError(t, err)
		require.NotNil(t, reply)
		require.NotNil(t, reply.ParentID)
		assert.Equal(t, root.ID, *reply.ParentID)
	})

	t.Run("Error: parent from another post", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t, "alice")
		postA := createTestPost(t, userID, "a", "content")
		postB := createTestPost(t, userID, "b", "content")
		ctx := identityContext(userID, "alice")

		root, err := storage.CreateComment(ctx, postA, nil, "root on a")
		require.NoError(t, err)

		reply, err := storage.CreateComment(ctx, postB, &root.ID, "cross-post reply")
		assert.Error(t, err)
		assert.Nil(t, reply)
		assert.Contains(t, err.Error(), "different post")
	})

	t.Run("Error: missing post", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t, "alice")

		comment, err := storage.CreateComment(identityContext(userID, "alice"), 999, nil, "hello?")
		assert.Error(t, err)
		assert.Nil(t, comment)
	})

	t.Run("Error: no authorization", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t, "alice")
		postID := createTestPost(t, userID, "title", "content")

		comment, err := storage.CreateComment(context.Background(), postID, nil, "anon")
		assert.Error(t, err)
		assert.Nil(t, comment)
	})
}

func TestCommentPostgresStorage_GetComments(t *testing.T) {
	storage := NewCommentPostgresStorage()

	t.Run("Oldest first with author names", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		aliceID := createTestUser(t, "alice")
		bobID := createTestUser(t, "bob")
		postID := createTestPost(t, aliceID, "title", "content")

		_, err := storage.CreateComment(identityContext(aliceID, "alice"), postID, nil, "first")
		require.NoError(t, err)
		_, err = storage.CreateComment(identityContext(bobID, "bob"), postID, nil, "second")
		require.NoError(t, err)

		comments, err := storage.GetComments(context.Background(), postID)
		assert.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, "first", comments[0].Content)
		assert.Equal(t, "alice", comments[0].Author)
		assert.Equal(t, "bob", comments[1].Author)
	})
}

func TestCommentPostgresStorage_CountRootComments(t *testing.T) {
	storage := NewCommentPostgresStorage()

	t.Run("Replies are not counted", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		userID := createTestUser(t, "alice")
		postID := createTestPost(t, userID, "title", "content")
		ctx := identityContext(userID, "alice")

		root, err := storage.CreateComment(ctx, postID, nil, "root")
		require.NoError(t, err)
		_, err = storage.CreateComment(ctx, postID, &root.ID, "reply")
		require.NoError(t, err)

		count, err := storage.CountRootComments(context.Background(), postID)
		assert.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("Zero for missing post", func(t *testing.T) {
		oldDB := setupTestDB(t)
		defer teardownTestDB(oldDB)

		count, err := storage.CountRootComments(context.Background(), 999)
		assert.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}

func TestCommentPostgresStorage_DeepReplyIsStored(t *testing.T) {
	storage := NewCommentPostgresStorage()

	// Nothing stops a reply to a reply at the storage level.
	oldDB := setupTestDB(t)
	defer teardownTestDB(oldDB)

	userID := createTestUser(t, "alice")
	postID := createTestPost(t, userID, "title", "content")
	ctx := identityContext(userID, "alice")

	root, err := storage.CreateComment(ctx, postID, nil, "root")
	require.NoError(t, err)
	reply, err := storage.CreateComment(ctx, postID, &root.ID, "reply")
	require.NoError(t, err)
	deep, err := storage.CreateComment(ctx, postID, &reply.ID, "deep reply")
	assert.NoError(t, err)
	require.NotNil(t, deep)

	var count int
	DB.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count)
	assert.Equal(t, 3, count)
}
