package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// File is the metadata record for one stored object. StoredName is the
// opaque object-store key ({owner}/{uuid}), generated at upload and never
// user-controlled. Size and Digest are computed once from the bytes actually
// written to the object store.
//
// DeletedAt carries the soft-delete state: a non-null value means Deleted{at}
// and the record is excluded from every default read path. The backing object
// is not removed by the flag alone.
type File struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	OriginalName string         `gorm:"not null;size:255" json:"filename"`
	StoredName   string         `gorm:"not null;size:255;uniqueIndex" json:"-"`
	Size         int64          `gorm:"not null" json:"size"`
	ContentType  string         `gorm:"not null;size:100" json:"type"`
	Folder       string         `gorm:"not null;size:100;default:'root'" json:"folder"`
	Digest       string         `gorm:"not null;size:64" json:"hash"`
	StorageLoc   string         `gorm:"not null;size:500" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
