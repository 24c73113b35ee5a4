package repository

import (
	"testing"

	"github.com/dkotenko/filegate/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.File{}))
	return db
}

func newTestUser(t *testing.T, repo *UserRepository, email string) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     "u",
		PasswordHash: "x",
		Role:         models.RoleUser,
		IsActive:     true,
	}
	require.NoError(t, repo.Create(user))
	return user
}

func newTestFile(t *testing.T, repo *FileRepository, ownerID uuid.UUID, name, folder string, size int64) *models.File {
	t.Helper()
	file := &models.File{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		OriginalName: name,
		StoredName:   ownerID.String() + "/" + uuid.New().String(),
		Size:         size,
		ContentType:  "text/plain",
		Folder:       folder,
		Digest:       "d",
		StorageLoc:   "s3://files/x",
	}
	require.NoError(t, repo.Create(file))
	return file
}
