package database

import (
	"path/filepath"
	"testing"

	"connectin/internal/config"
	"connectin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		DBDriver: "sqlite",
		DBName:   filepath.Join(t.TempDir(), "test.db"),
	}
}

func TestConnectSQLite(t *testing.T) {
	db, err := Connect(sqliteConfig(t))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
}

func TestMigrateCreatesSchema(t *testing.T) {
	db, err := Connect(sqliteConfig(t))
	require.NoError(t, err)

	for _, model := range []interface{}{
		&models.User{}, &models.Post{}, &models.Comment{}, &models.Like{}, &models.Follow{},
	} {
		assert.True(t, db.Migrator().HasTable(model))
	}
}

func TestMigrateEnforcesLikeUniqueness(t *testing.T) {
	db, err := Connect(sqliteConfig(t))
	require.NoError(t, err)

	user := &models.User{Name: "Ada", Email: "ada@example.com", Password: "x"}
	require.NoError(t, db.Create(user).Error)
	post := &models.Post{UserID: user.ID, Content: "hello"}
	require.NoError(t, db.Create(post).Error)

	require.NoError(t, db.Create(&models.Like{UserID: user.ID, PostID: post.ID}).Error)
	err = db.Create(&models.Like{UserID: user.ID, PostID: post.ID}).Error
	assert.Error(t, err)
}
