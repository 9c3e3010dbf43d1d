package service

import (
	"context"
	"path/filepath"
	"testing"

	"connectin/internal/database"
	"connectin/internal/models"
	"connectin/internal/repository"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires real repositories over a throwaway SQLite database.
type testEnv struct {
	db         *gorm.DB
	users      repository.UserRepository
	posts      repository.PostRepository
	comments   repository.CommentRepository
	follows    repository.FollowRepository
	auth       *AuthService
	postSvc    *PostService
	commentSvc *CommentService
	userSvc    *UserService
	followSvc  *FollowService
	searchSvc  *SearchService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	users := repository.NewUserRepository(db)
	posts := repository.NewPostRepository(db)
	comments := repository.NewCommentRepository(db)
	follows := repository.NewFollowRepository(db)

	return &testEnv{
		db:         db,
		users:      users,
		posts:      posts,
		comments:   comments,
		follows:    follows,
		auth:       NewAuthService(users),
		postSvc:    NewPostService(posts),
		commentSvc: NewCommentService(comments, posts),
		userSvc:    NewUserService(users, posts, follows),
		followSvc:  NewFollowService(follows, users),
		searchSvc:  NewSearchService(users, posts, follows),
	}
}

func (e *testEnv) register(t *testing.T, name, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{Name: name, Email: email, Password: string(hash)}
	require.NoError(t, e.users.Create(context.Background(), user))
	return user
}

func (e *testEnv) post(t *testing.T, userID uint, content string) *models.Post {
	t.Helper()

	post := &models.Post{UserID: userID, Content: content}
	require.NoError(t, e.db.Create(post).Error)
	return post
}

func testCtx() context.Context {
	return context.Background()
}
