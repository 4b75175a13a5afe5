package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktracker/internal/domain"
	"tasktracker/internal/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, NewUserRepository(db).Init(ctx))
	require.NoError(t, NewTaskRepository(db).Init(ctx))
	require.NoError(t, NewAttachmentRepository(db).Init(ctx))
	return db
}

func createTestUser(t *testing.T, repo repository.UserRepository, username, email string) *domain.User {
	t.Helper()

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: "hash",
	}
	_, err := repo.Create(context.Background(), user)
	require.NoError(t, err)
	return user
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, repo, "u1", "u1@x.com")
	assert.NotZero(t, user.ID)

	byEmail, err := repo.GetByEmail(ctx, "u1@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "u1", byEmail.Username)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "u1@x.com", byID.Email)
}

func TestUserRepository_GetMissing(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.GetByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetByID(ctx, 12345)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)

	createTestUser(t, repo, "u1", "u1@x.com")

	_, err := repo.Create(context.Background(), &domain.User{
		Username:     "u2",
		Email:        "u1@x.com",
		PasswordHash: "hash2",
	})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)

	createTestUser(t, repo, "u1", "u1@x.com")

	_, err := repo.Create(context.Background(), &domain.User{
		Username:     "u1",
		Email:        "other@x.com",
		PasswordHash: "hash2",
	})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestTaskRepository_CreateGetList(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	tasks := NewTaskRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, users, "u1", "u1@x.com")

	task := &domain.Task{Title: "A", Description: "first", UserID: owner.ID}
	_, err := tasks.Create(ctx, task)
	require.NoError(t, err)
	require.NotZero(t, task.ID)

	got, err := tasks.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
	assert.Equal(t, "first", got.Description)
	assert.False(t, got.Completed)
	assert.Equal(t, owner.ID, got.UserID)

	list, err := tasks.ListByUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, task.ID, list[0].ID)
}

func TestTaskRepository_UpdateMissing(t *testing.T) {
	db := openTestDB(t)
	tasks := NewTaskRepository(db)

	err := tasks.Update(context.Background(), &domain.Task{ID: 999, Title: "B"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskRepository_DeleteMissing(t *testing.T) {
	db := openTestDB(t)
	tasks := NewTaskRepository(db)

	err := tasks.Delete(context.Background(), 999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskRepository_ForeignKeyEnforced(t *testing.T) {
	db := openTestDB(t)
	tasks := NewTaskRepository(db)

	// no such user; PRAGMA foreign_keys = ON must reject the insert
	_, err := tasks.Create(context.Background(), &domain.Task{Title: "orphan", UserID: 999})
	assert.Error(t, err)
}

func TestAttachmentRepository_CRUD(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	tasks := NewTaskRepository(db)
	atts := NewAttachmentRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, users, "u1", "u1@x.com")
	task := &domain.Task{Title: "A", UserID: owner.ID}
	_, err := tasks.Create(ctx, task)
	require.NoError(t, err)

	att := &domain.Attachment{
		TaskID:      task.ID,
		FileName:    "notes.txt",
		ContentType: "text/plain",
		Size:        42,
		S3Key:       "task-attachments/task-1/abc-notes.txt",
	}
	_, err = atts.Create(ctx, att)
	require.NoError(t, err)
	require.NotZero(t, att.ID)

	list, err := atts.ListByTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "notes.txt", list[0].FileName)

	require.NoError(t, atts.Delete(ctx, att.ID))

	_, err = atts.Get(ctx, att.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAttachmentRepository_CascadeOnTaskDelete(t *testing.T) {
	db := openTestDB(t)
	users := NewUserRepository(db)
	tasks := NewTaskRepository(db)
	atts := NewAttachmentRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, users, "u1", "u1@x.com")
	task := &domain.Task{Title: "A", UserID: owner.ID}
	_, err := tasks.Create(ctx, task)
	require.NoError(t, err)

	_, err = atts.Create(ctx, &domain.Attachment{TaskID: task.ID, FileName: "a.txt"})
	require.NoError(t, err)

	require.NoError(t, tasks.Delete(ctx, task.ID))

	list, err := atts.ListByTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
