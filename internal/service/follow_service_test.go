package service

import (
	"testing"

	"connectin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowService_ToggleFollow(t *testing.T) {
	env := newTestEnv(t)
	ada := env.register(t, "Ada", "ada@example.com")
	bob := env.register(t, "Bob", "bob@example.com")

	following, err := env.followSvc.ToggleFollow(testCtx(), ada.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	following, err = env.followSvc.ToggleFollow(testCtx(), ada.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowService_SelfFollowRejected(t *testing.T) {
	env := newTestEnv(t)
	ada := env.register(t, "Ada", "ada@example.com")

	_, err := env.followSvc.ToggleFollow(testCtx(), ada.ID, ada.ID)
	assert.True(t, models.IsCode(err, models.CodeSelfFollow))
}

func TestFollowService_MissingFollowee(t *testing.T) {
	env := newTestEnv(t)
	ada := env.register(t, "Ada", "ada@example.com")

	_, err := env.followSvc.ToggleFollow(testCtx(), ada.ID, 999)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}
