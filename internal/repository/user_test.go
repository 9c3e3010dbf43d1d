package repository

import (
	"testing"

	"connectin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user := &models.User{Name: "Ada Lovelace", Email: "ada@example.com", Password: "hashed"}
	require.NoError(t, repo.Create(testCtx(), user))
	assert.NotZero(t, user.ID)

	got, err := repo.GetByID(testCtx(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.Name)

	byEmail, err := repo.GetByEmail(testCtx(), "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestUserRepository_GetByEmailMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	got, err := repo.GetByEmail(testCtx(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepository_GetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetByID(testCtx(), 999)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	require.NoError(t, repo.Create(testCtx(), &models.User{Name: "Ada", Email: "ada@example.com", Password: "x"}))
	err := repo.Create(testCtx(), &models.User{Name: "Imposter", Email: "ada@example.com", Password: "y"})
	assert.True(t, models.IsCode(err, models.CodeDuplicateEmail))
}

func TestUserRepository_UpdateProfileOverwritesWithEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	user := createTestUser(t, db, "Ada", "ada@example.com")

	require.NoError(t, repo.UpdateProfile(testCtx(), user.ID, map[string]interface{}{
		"headline": "Engineer",
		"bio":      "Building things",
	}))
	got, err := repo.GetByID(testCtx(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Engineer", got.Headline)

	// Submitting blank fields clears them.
	require.NoError(t, repo.UpdateProfile(testCtx(), user.ID, map[string]interface{}{
		"headline": "",
		"bio":      "",
	}))
	got, err = repo.GetByID(testCtx(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Headline)
	assert.Empty(t, got.Bio)
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)
	follows := NewFollowRepository(db)
	posts := NewPostRepository(db)

	ada := createTestUser(t, db, "Ada", "ada@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	adaPost := createTestPost(t, db, ada.ID, "Ada's post")
	bobPost := createTestPost(t, db, bob.ID, "Bob's post")

	// Bob engages with Ada's content, Ada engages with Bob's.
	_, err := posts.ToggleLike(testCtx(), bob.ID, adaPost.ID)
	require.NoError(t, err)
	_, err = posts.ToggleLike(testCtx(), ada.ID, bobPost.ID)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Comment{UserID: ada.ID, PostID: bobPost.ID, Content: "nice"}).Error)
	require.NoError(t, db.Create(&models.Comment{UserID: bob.ID, PostID: adaPost.ID, Content: "thanks"}).Error)
	_, err = follows.Toggle(testCtx(), bob.ID, ada.ID)
	require.NoError(t, err)

	require.NoError(t, users.Delete(testCtx(), ada.ID))

	_, err = users.GetByID(testCtx(), ada.ID)
	assert.True(t, models.IsCode(err, models.CodeNotFound))

	var postCount, likeCount, commentCount, followCount int64
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	require.NoError(t, db.Model(&models.Like{}).Count(&likeCount).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&commentCount).Error)
	require.NoError(t, db.Model(&models.Follow{}).Count(&followCount).Error)

	// Only Bob's post survives, with no dangling engagement anywhere.
	assert.EqualValues(t, 1, postCount)
	assert.EqualValues(t, 0, likeCount)
	assert.EqualValues(t, 0, commentCount)
	assert.EqualValues(t, 0, followCount)
}

func TestUserRepository_Search(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	ada := createTestUser(t, db, "Ada Lovelace", "ada@example.com")
	require.NoError(t, repo.UpdateProfile(testCtx(), ada.ID, map[string]interface{}{"headline": "Analytical Engines"}))
	createTestUser(t, db, "Bob Smith", "bob@example.com")

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"match by name case-insensitive", "LOVELACE", 1},
		{"match by headline", "engines", 1},
		{"no match", "quantum", 0},
		{"substring matches both", "o", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Search(testCtx(), tt.query, 10)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestUserRepository_SearchLimit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	for i := 0; i < 15; i++ {
		createTestUser(t, db, "Common Name", testEmail(i))
	}

	got, err := repo.Search(testCtx(), "common", 10)
	require.NoError(t, err)
	assert.Len(t, got, 10)
}

func testEmail(i int) string {
	return string(rune('a'+i)) + "@example.com"
}
