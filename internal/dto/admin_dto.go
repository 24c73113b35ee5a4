package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserStats struct {
	FileCount   int64   `json:"file_count"`
	TotalSize   int64   `json:"total_size"`
	TotalSizeMB float64 `json:"total_size_mb"`
}

type AdminUserResponse struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	Username   string     `json:"username"`
	Role       string     `json:"role"`
	IsActive   bool       `json:"is_active"`
	IsVerified bool       `json:"is_verified"`
	CreatedAt  time.Time  `json:"created_at"`
	LastLogin  *time.Time `json:"last_login"`
	Stats      UserStats  `json:"stats"`
}

type AdminUserListResponse struct {
	Total int                 `json:"total"`
	Users []AdminUserResponse `json:"users"`
}

type AdminUserDetailsResponse struct {
	AdminUserResponse
	Files []FileInfo `json:"files"`
}

type ToggleStatusResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	IsActive bool      `json:"is_active"`
	Message  string    `json:"message"`
}

type RoleChangeResponse struct {
	UserID  uuid.UUID `json:"user_id"`
	Role    string    `json:"role"`
	Message string    `json:"message"`
}

type DeleteUserResponse struct {
	UserID  uuid.UUID `json:"user_id"`
	Message string    `json:"message"`
}

type FileOwner struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
}

type AdminFileResponse struct {
	ID        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	Size      int64     `json:"size"`
	SizeMB    float64   `json:"size_mb"`
	Type      string    `json:"type"`
	Owner     FileOwner `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
}

type AdminFileListResponse struct {
	Total   int                 `json:"total"`
	Filters map[string]string   `json:"filters"`
	Files   []AdminFileResponse `json:"files"`
}

type AdminDeleteFileResponse struct {
	FileID   uuid.UUID `json:"file_id"`
	Filename string    `json:"filename"`
	Owner    uuid.UUID `json:"owner"`
	Message  string    `json:"message"`
}

type DashboardUserStats struct {
	Total   int64 `json:"total"`
	Active  int64 `json:"active"`
	Blocked int64 `json:"blocked"`
	Admins  int64 `json:"admins"`
}

type DashboardFileStats struct {
	Total   int64 `json:"total"`
	Deleted int64 `json:"deleted"`
	Active  int64 `json:"active"`
}

type DashboardStorageStats struct {
	TotalBytes        int64   `json:"total_bytes"`
	TotalGB           float64 `json:"total_gb"`
	AverageFileSizeMB float64 `json:"average_file_size_mb"`
}

type FileTypeStat struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

type DashboardResponse struct {
	Users     DashboardUserStats    `json:"users"`
	Files     DashboardFileStats    `json:"files"`
	Storage   DashboardStorageStats `json:"storage"`
	FileTypes []FileTypeStat        `json:"file_types"`
}

type TopUserResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	FileCount   int64     `json:"file_count"`
	TotalSize   int64     `json:"total_size"`
	TotalSizeMB float64   `json:"total_size_mb"`
}

type TopUsersResponse struct {
	Limit    int               `json:"limit"`
	TopUsers []TopUserResponse `json:"top_users"`
}
