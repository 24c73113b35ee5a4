package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/dkotenko/filegate/internal/config"
	"github.com/dkotenko/filegate/internal/models"
	"github.com/dkotenko/filegate/internal/repository"
	"github.com/dkotenko/filegate/internal/storage"
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

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:         "test-secret",
		JWTAccessExpiry:   30 * time.Minute,
		JWTRefreshExpiry:  168 * time.Hour,
		MinioBucket:       "files",
		MaxFileSize:       1024,
		AllowedExtensions: []string{"txt", "pdf", "png"},
	}
}

func newStoredUser(t *testing.T, users *repository.UserRepository, email, password string) *models.User {
	t.Helper()
	hash, err := NewCredentialService().HashPassword(password)
	require.NoError(t, err)
	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     "u",
		PasswordHash: hash,
		Role:         models.RoleUser,
		IsActive:     true,
	}
	require.NoError(t, users.Create(user))
	return user
}

// fakeObjectStore keeps objects in a map and can be told to fail any of the
// three operations.
type fakeObjectStore struct {
	objects   map[string][]byte
	putErr    error
	getErr    error
	deleteErr error
	deletes   []string
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string][]byte)}
}

func (f *fakeObjectStore) Put(_ context.Context, ownerID string, data []byte) (*storage.PutResult, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	key := fmt.Sprintf("%s/%s", ownerID, uuid.New())
	sum := sha256.Sum256(data)
	f.objects[key] = append([]byte(nil), data...)
	return &storage.PutResult{
		Key:      key,
		Digest:   hex.EncodeToString(sum[:]),
		Size:     int64(len(data)),
		Location: "s3://files/" + key,
	}, nil
}

func (f *fakeObjectStore) Get(_ context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return data, nil
}

func (f *fakeObjectStore) Delete(_ context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletes = append(f.deletes, key)
	delete(f.objects, key)
	return nil
}
