package dto

import (
	"time"

	"github.com/google/uuid"
)

type FileUploadResponse struct {
	ID        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

type FileInfo struct {
	ID        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	Size      int64     `json:"size"`
	Type      string    `json:"type"`
	Folder    string    `json:"folder"`
	CreatedAt time.Time `json:"created_at"`
}

type FileMetadataResponse struct {
	ID        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	Size      int64     `json:"size"`
	Type      string    `json:"type"`
	Folder    string    `json:"folder"`
	Hash      string    `json:"hash"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RenameResponse struct {
	Filename string `json:"filename"`
}
