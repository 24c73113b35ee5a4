package services

import (
	"context"
	"testing"

	"github.com/dkotenko/filegate/internal/models"
	"github.com/dkotenko/filegate/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type adminFixture struct {
	svc   *AdminService
	files *FileService
	users *repository.UserRepository
	db    *gorm.DB
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	fileRepo := repository.NewFileRepository(db)
	return &adminFixture{
		svc:   NewAdminService(db, users, fileRepo),
		files: NewFileService(fileRepo, newFakeObjectStore(), testConfig()),
		users: users,
		db:    db,
	}
}

func (f *adminFixture) upload(t *testing.T, owner uuid.UUID, name string, size int) *models.File {
	t.Helper()
	file, err := f.files.Upload(context.Background(), owner, name, "text/plain", make([]byte, size), "")
	require.NoError(t, err)
	return file
}

func TestAdminService_ListUsersWithUsage(t *testing.T) {
	f := newAdminFixture(t)
	alice := newStoredUser(t, f.users, "alice@example.com", "Sekret123")
	bob := newStoredUser(t, f.users, "bob@example.com", "Sekret123")

	f.upload(t, alice.ID, "a.txt", 100)
	f.upload(t, alice.ID, "b.txt", 200)

	list, err := f.svc.ListUsers(0, 20)
	require.NoError(t, err)
	require.Len(t, list, 2)

	byID := make(map[uuid.UUID]UserWithStats)
	for _, u := range list {
		byID[u.User.ID] = u
	}
	assert.Equal(t, int64(2), byID[alice.ID].Usage.FileCount)
	assert.Equal(t, int64(300), byID[alice.ID].Usage.TotalSize)
	assert.Equal(t, int64(0), byID[bob.ID].Usage.FileCount)
}

func TestAdminService_GetUserDetails(t *testing.T) {
	f := newAdminFixture(t)
	alice := newStoredUser(t, f.users, "alice@example.com", "Sekret123")
	f.upload(t, alice.ID, "a.txt", 100)

	details, err := f.svc.GetUserDetails(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.Email, details.User.Email)
	assert.Equal(t, int64(1), details.Usage.FileCount)
	assert.Len(t, details.Files, 1)

	_, err = f.svc.GetUserDetails(uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAdminService_ToggleUserStatus(t *testing.T) {
	f := newAdminFixture(t)
	alice := newStoredUser(t, f.users, "alice@example.com", "Sekret123")

	state, err := f.svc.ToggleUserStatus(alice.ID)
	require.NoError(t, err)
	assert.False(t, state)

	state, err = f.svc.ToggleUserStatus(alice.ID)
	require.NoError(t, err)
	assert.True(t, state)

	_, err = f.svc.ToggleUserStatus(uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAdminService_ChangeUserRole(t *testing.T) {
	f := newAdminFixture(t)
	alice := newStoredUser(t, f.users, "alice@example.com", "Sekret123")

	require.NoError(t, f.svc.ChangeUserRole(alice.ID, models.RoleAdmin))
	updated, err := f.users.GetByID(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, updated.Role)

	assert.ErrorIs(t, f.svc.ChangeUserRole(alice.ID, "superuser"), ErrInvalidRole)
	assert.ErrorIs(t, f.svc.ChangeUserRole(uuid.New(), models.RoleUser), ErrUserNotFound)
}

func TestAdminService_DeleteUser(t *testing.T) {
	f := newAdminFixture(t)
	alice := newStoredUser(t, f.users, "alice@example.com", "Sekret123")
	f.upload(t, alice.ID, "a.txt", 10)
	f.upload(t, alice.ID, "b.txt", 20)

	count, err := f.svc.DeleteUser(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	gone, err := f.users.GetByID(alice.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	_, err = f.svc.DeleteUser(alice.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAdminService_ListAllFiles(t *testing.T) {
	f := newAdminFixture(t)
	alice := newStoredUser(t, f.users, "alice@example.com", "Sekret123")
	bob := newStoredUser(t, f.users, "bob@example.com", "Sekret123")
	f.upload(t, alice.ID, "a.txt", 10)
	f.upload(t, bob.ID, "b.txt", 20)

	all, err := f.svc.ListAllFiles("", 0, 20)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, fw := range all {
		require.NotNil(t, fw.Owner)
		assert.Equal(t, fw.File.OwnerID, fw.Owner.ID)
	}
}

func TestAdminService_DeleteAnyFile(t *testing.T) {
	f := newAdminFixture(t)
	alice := newStoredUser(t, f.users, "alice@example.com", "Sekret123")
	file := f.upload(t, alice.ID, "a.txt", 10)

	deleted, err := f.svc.DeleteAnyFile(file.ID)
	require.NoError(t, err)
	assert.Equal(t, file.ID, deleted.ID)

	_, err = f.svc.DeleteAnyFile(file.ID)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestAdminService_DashboardStats(t *testing.T) {
	f := newAdminFixture(t)
	alice := newStoredUser(t, f.users, "alice@example.com", "Sekret123")
	bob := newStoredUser(t, f.users, "bob@example.com", "Sekret123")
	require.NoError(t, f.users.SetRole(bob.ID, models.RoleAdmin))
	require.NoError(t, f.users.SetActive(bob.ID, false))

	f.upload(t, alice.ID, "a.txt", 100)
	doomed := f.upload(t, alice.ID, "b.txt", 200)
	_, err := f.svc.DeleteAnyFile(doomed.ID)
	require.NoError(t, err)

	stats, err := f.svc.DashboardStats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.ActiveUsers)
	assert.Equal(t, int64(1), stats.AdminUsers)
	assert.Equal(t, int64(1), stats.TotalFiles)
	assert.Equal(t, int64(1), stats.DeletedFiles)
	assert.Equal(t, int64(100), stats.TotalStorage)
	require.Len(t, stats.FileTypes, 1)
	assert.Equal(t, "text/plain", stats.FileTypes[0].ContentType)
	assert.Equal(t, int64(1), stats.FileTypes[0].Count)
}

func TestAdminService_TopUsersByStorage(t *testing.T) {
	f := newAdminFixture(t)
	alice := newStoredUser(t, f.users, "alice@example.com", "Sekret123")
	bob := newStoredUser(t, f.users, "bob@example.com", "Sekret123")

	f.upload(t, alice.ID, "a.txt", 100)
	f.upload(t, bob.ID, "b.txt", 500)
	f.upload(t, bob.ID, "c.txt", 500)

	top, err := f.svc.TopUsersByStorage(10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, bob.ID, top[0].UserID)
	assert.Equal(t, int64(1000), top[0].TotalSize)
	assert.Equal(t, int64(2), top[0].FileCount)
	assert.Equal(t, alice.ID, top[1].UserID)
}
