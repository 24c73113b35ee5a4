package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/dkotenko/filegate/internal/config"
	"github.com/dkotenko/filegate/internal/models"
	"github.com/dkotenko/filegate/internal/repository"
	"github.com/dkotenko/filegate/internal/storage"
	"github.com/google/uuid"
)

var (
	// ErrFileNotFound covers both a missing record and a record owned by
	// someone else: owner-scoped operations never confirm existence to
	// non-owners.
	ErrFileNotFound       = errors.New("file not found or access denied")
	ErrFileTooLarge       = errors.New("file too large")
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
)

// FileService couples object-store writes to metadata mutation. The two
// backends are not jointly transactional; each operation orders its steps so
// that a crash in between leaves at worst an orphaned object or a retryable
// delete, never a visible record pointing at missing bytes.
type FileService struct {
	files       *repository.FileRepository
	store       storage.ObjectStore
	bucket      string
	maxSize     int64
	allowedExts map[string]bool
}

func NewFileService(files *repository.FileRepository, store storage.ObjectStore, cfg *config.Config) *FileService {
	exts := make(map[string]bool, len(cfg.AllowedExtensions))
	for _, e := range cfg.AllowedExtensions {
		exts[e] = true
	}
	return &FileService{
		files:       files,
		store:       store,
		bucket:      cfg.MinioBucket,
		maxSize:     cfg.MaxFileSize,
		allowedExts: exts,
	}
}

// Upload validates size and extension before touching either backend, then
// writes the object first and the metadata second. If the metadata insert
// fails the orphaned object is accepted garbage, reconciled out of band.
func (s *FileService) Upload(ctx context.Context, ownerID uuid.UUID, filename, contentType string, data []byte, folder string) (*models.File, error) {
	if int64(len(data)) > s.maxSize {
		return nil, fmt.Errorf("%w: max size is %d bytes", ErrFileTooLarge, s.maxSize)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if !s.allowedExts[ext] {
		return nil, fmt.Errorf("%w: .%s", ErrFileTypeNotAllowed, ext)
	}

	if folder == "" {
		folder = "root"
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	put, err := s.store.Put(ctx, ownerID.String(), data)
	if err != nil {
		return nil, err
	}

	file := &models.File{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		OriginalName: filename,
		StoredName:   put.Key,
		Size:         put.Size,
		ContentType:  contentType,
		Folder:       folder,
		Digest:       put.Digest,
		StorageLoc:   put.Location,
	}

	if err := s.files.Create(file); err != nil {
		slog.Error("metadata insert failed after object write", "key", put.Key, "error", err)
		return nil, err
	}
	return file, nil
}

func (s *FileService) Download(ctx context.Context, fileID, requesterID uuid.UUID) ([]byte, string, error) {
	file, err := s.authorize(fileID, requesterID)
	if err != nil {
		return nil, "", err
	}

	data, err := s.store.Get(ctx, file.StoredName)
	if err != nil {
		return nil, "", err
	}
	return data, file.OriginalName, nil
}

// Delete removes the object first, then soft-deletes the metadata. If the
// object-store delete fails the metadata stays active, keeping the operation
// retryable; the reverse order could mark a file gone while its bytes persist.
func (s *FileService) Delete(ctx context.Context, fileID, requesterID uuid.UUID) error {
	file, err := s.authorize(fileID, requesterID)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, file.StoredName); err != nil {
		return err
	}
	return s.files.SoftDelete(file.ID)
}

func (s *FileService) Rename(fileID uuid.UUID, newName string, requesterID uuid.UUID) error {
	file, err := s.authorize(fileID, requesterID)
	if err != nil {
		return err
	}
	return s.files.UpdateName(file.ID, newName)
}

func (s *FileService) GetMetadata(fileID, requesterID uuid.UUID) (*models.File, error) {
	return s.authorize(fileID, requesterID)
}

func (s *FileService) ListForOwner(ownerID uuid.UUID, folder string, offset, limit int) ([]models.File, error) {
	if folder == "" {
		folder = "root"
	}
	return s.files.ListByOwner(ownerID, folder, offset, limit)
}

// authorize resolves the active record and enforces ownership. A missing
// record and a foreign record are indistinguishable to the caller.
func (s *FileService) authorize(fileID, requesterID uuid.UUID) (*models.File, error) {
	file, err := s.files.GetByID(fileID)
	if err != nil {
		return nil, err
	}
	if file == nil || file.OwnerID != requesterID {
		return nil, ErrFileNotFound
	}
	return file, nil
}
