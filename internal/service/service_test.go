package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tasktracker/internal/domain"
	"tasktracker/internal/repository"
	"tasktracker/internal/repository/sqlite"
	"tasktracker/internal/security"
)

type testEnv struct {
	auth  AuthService
	tasks TaskService
	users repository.UserRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	userRepo := sqlite.NewUserRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)
	attRepo := sqlite.NewAttachmentRepository(db)
	require.NoError(t, userRepo.Init(ctx))
	require.NoError(t, taskRepo.Init(ctx))
	require.NoError(t, attRepo.Init(ctx))

	issuer := security.NewJWTIssuer("test-secret", time.Hour)

	return &testEnv{
		auth:  NewAuthService(userRepo, security.NewBcryptHasher(), issuer),
		tasks: NewTaskService(taskRepo, userRepo, attRepo),
		users: userRepo,
	}
}

func (e *testEnv) signup(t *testing.T, username, email, password string) *domain.User {
	t.Helper()

	user, err := e.auth.Signup(context.Background(), username, email, password)
	require.NoError(t, err)
	return user
}
