package service

import (
	"testing"

	"connectin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_AddComment(t *testing.T) {
	env := newTestEnv(t)
	ada := env.register(t, "Ada", "ada@example.com")
	post := env.post(t, ada.ID, "hello")

	comment, err := env.commentSvc.AddComment(testCtx(), AddCommentInput{
		UserID:  ada.ID,
		PostID:  post.ID,
		Content: "  great point  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "great point", comment.Content)
	assert.NotZero(t, comment.ID)
}

func TestCommentService_AddCommentRejectsBlank(t *testing.T) {
	env := newTestEnv(t)
	ada := env.register(t, "Ada", "ada@example.com")
	post := env.post(t, ada.ID, "hello")

	_, err := env.commentSvc.AddComment(testCtx(), AddCommentInput{UserID: ada.ID, PostID: post.ID, Content: "   "})
	assert.True(t, models.IsCode(err, models.CodeValidation))
}

func TestCommentService_AddCommentMissingPost(t *testing.T) {
	env := newTestEnv(t)
	ada := env.register(t, "Ada", "ada@example.com")

	_, err := env.commentSvc.AddComment(testCtx(), AddCommentInput{UserID: ada.ID, PostID: 999, Content: "hi"})
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}
