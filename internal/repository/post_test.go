package repository

import (
	"fmt"
	"testing"
	"time"

	"connectin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_ToggleLike(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "Ada", "ada@example.com")
	post := createTestPost(t, db, user.ID, "hello")

	liked, err := repo.ToggleLike(testCtx(), user.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = repo.ToggleLike(testCtx(), user.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	liked, err = repo.ToggleLike(testCtx(), user.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	var count int64
	require.NoError(t, db.Model(&models.Like{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestPostRepository_FeedAnnotations(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ada := createTestUser(t, db, "Ada", "ada@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	post := createTestPost(t, db, ada.ID, "popular post")
	quiet := createTestPost(t, db, bob.ID, "quiet post")

	_, err := repo.ToggleLike(testCtx(), ada.ID, post.ID)
	require.NoError(t, err)
	_, err = repo.ToggleLike(testCtx(), bob.ID, post.ID)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Comment{UserID: bob.ID, PostID: post.ID, Content: "agreed"}).Error)

	feed, err := repo.ListFeed(testCtx(), 50, bob.ID)
	require.NoError(t, err)
	require.Len(t, feed, 2)

	byID := map[uint]*models.Post{}
	for _, p := range feed {
		byID[p.ID] = p
		require.NotEmpty(t, p.User.Name)
	}

	assert.Equal(t, 2, byID[post.ID].LikeCount)
	assert.Equal(t, 1, byID[post.ID].CommentCount)
	assert.True(t, byID[post.ID].Liked)

	assert.Equal(t, 0, byID[quiet.ID].LikeCount)
	assert.Equal(t, 0, byID[quiet.ID].CommentCount)
	assert.False(t, byID[quiet.ID].Liked)
}

func TestPostRepository_FeedAnonymousViewer(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ada := createTestUser(t, db, "Ada", "ada@example.com")
	post := createTestPost(t, db, ada.ID, "hello")

	_, err := repo.ToggleLike(testCtx(), ada.ID, post.ID)
	require.NoError(t, err)

	feed, err := repo.ListFeed(testCtx(), 50, 0)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, 1, feed[0].LikeCount)
	assert.False(t, feed[0].Liked)
}

func TestPostRepository_FeedOrderAndLimit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ada := createTestUser(t, db, "Ada", "ada@example.com")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		post := &models.Post{UserID: ada.ID, Content: fmt.Sprintf("post %d", i), CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, db.Create(post).Error)
	}

	feed, err := repo.ListFeed(testCtx(), 3, 0)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.Equal(t, "post 4", feed[0].Content)
	assert.Equal(t, "post 3", feed[1].Content)
	assert.Equal(t, "post 2", feed[2].Content)
}

func TestPostRepository_ListByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ada := createTestUser(t, db, "Ada", "ada@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	createTestPost(t, db, ada.ID, "ada 1")
	createTestPost(t, db, ada.ID, "ada 2")
	createTestPost(t, db, bob.ID, "bob 1")

	posts, err := repo.ListByUser(testCtx(), ada.ID, 20, 0)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
	for _, p := range posts {
		assert.Equal(t, ada.ID, p.UserID)
	}
}

func TestPostRepository_Search(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ada := createTestUser(t, db, "Ada", "ada@example.com")

	createTestPost(t, db, ada.ID, "Shipping the Analytical Engine")
	createTestPost(t, db, ada.ID, "Lunch thoughts")

	posts, err := repo.Search(testCtx(), "ANALYTICAL", 20, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Contains(t, posts[0].Content, "Analytical")
}

func TestPostRepository_GetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	_, err := repo.GetByID(testCtx(), 42)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}
