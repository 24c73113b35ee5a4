package services

import (
	"errors"

	"github.com/dkotenko/filegate/internal/models"
	"github.com/dkotenko/filegate/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidRole  = errors.New("invalid role: must be 'user' or 'admin'")
)

// AdminService provides cross-tenant variants of the user and file
// operations. The role gate lives in the middleware layer; everything here
// routes through the same repositories as the owner-scoped paths.
type AdminService struct {
	db    *gorm.DB
	users *repository.UserRepository
	files *repository.FileRepository
}

func NewAdminService(db *gorm.DB, users *repository.UserRepository, files *repository.FileRepository) *AdminService {
	return &AdminService{db: db, users: users, files: files}
}

// UserUsage is per-user storage accounting over active files.
type UserUsage struct {
	FileCount int64
	TotalSize int64
}

type UserWithStats struct {
	User  models.User
	Usage UserUsage
}

type UserDetails struct {
	User  models.User
	Usage UserUsage
	Files []models.File
}

type FileWithOwner struct {
	File  models.File
	Owner *models.User
}

type FileTypeCount struct {
	ContentType string
	Count       int64
}

type DashboardStats struct {
	TotalUsers   int64
	ActiveUsers  int64
	AdminUsers   int64
	TotalFiles   int64
	DeletedFiles int64
	TotalStorage int64
	FileTypes    []FileTypeCount
}

type TopUser struct {
	UserID    uuid.UUID
	Email     string
	Username  string
	FileCount int64
	TotalSize int64
}

func (s *AdminService) ListUsers(offset, limit int) ([]UserWithStats, error) {
	users, err := s.users.List(offset, limit)
	if err != nil {
		return nil, err
	}

	result := make([]UserWithStats, 0, len(users))
	for _, u := range users {
		usage, err := s.ownerUsage(u.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, UserWithStats{User: u, Usage: usage})
	}
	return result, nil
}

func (s *AdminService) GetUserDetails(userID uuid.UUID) (*UserDetails, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	usage, err := s.ownerUsage(userID)
	if err != nil {
		return nil, err
	}

	var files []models.File
	if err := s.db.Where("owner_id = ?", userID).
		Order("created_at DESC").Limit(10).Find(&files).Error; err != nil {
		return nil, err
	}

	return &UserDetails{User: *user, Usage: usage, Files: files}, nil
}

// ToggleUserStatus flips the active flag and returns the new state.
func (s *AdminService) ToggleUserStatus(userID uuid.UUID) (bool, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, ErrUserNotFound
	}

	newState := !user.IsActive
	if err := s.users.SetActive(userID, newState); err != nil {
		return false, err
	}
	return newState, nil
}

func (s *AdminService) ChangeUserRole(userID uuid.UUID, newRole string) error {
	if newRole != models.RoleUser && newRole != models.RoleAdmin {
		return ErrInvalidRole
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.users.SetRole(userID, newRole)
}

// DeleteUser hard-deletes the user and soft-deletes all owned files in one
// transaction. Object-store bytes are retained; see DESIGN.md. Returns the
// number of files soft-deleted.
func (s *AdminService) DeleteUser(userID uuid.UUID) (int64, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, ErrUserNotFound
	}
	return s.users.DeleteWithFiles(userID)
}

// ListAllFiles returns active files across all owners, newest first. Owners
// are resolved by id lookup, not through a materialized relation.
func (s *AdminService) ListAllFiles(typeFilter string, offset, limit int) ([]FileWithOwner, error) {
	files, err := s.files.ListAll(typeFilter, offset, limit)
	if err != nil {
		return nil, err
	}

	owners := make(map[uuid.UUID]*models.User)
	result := make([]FileWithOwner, 0, len(files))
	for _, f := range files {
		owner, ok := owners[f.OwnerID]
		if !ok {
			owner, err = s.users.GetByID(f.OwnerID)
			if err != nil {
				return nil, err
			}
			owners[f.OwnerID] = owner
		}
		result = append(result, FileWithOwner{File: f, Owner: owner})
	}
	return result, nil
}

// DeleteAnyFile soft-deletes any user's file, bypassing the ownership check
// but following the same soft-delete path as owner-initiated deletes.
func (s *AdminService) DeleteAnyFile(fileID uuid.UUID) (*models.File, error) {
	file, err := s.files.GetByID(fileID)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, ErrFileNotFound
	}

	if err := s.files.SoftDelete(file.ID); err != nil {
		return nil, err
	}
	return file, nil
}

func (s *AdminService) DashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := s.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.User{}).Where("is_active = ?", true).Count(&stats.ActiveUsers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&stats.AdminUsers).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.File{}).Count(&stats.TotalFiles).Error; err != nil {
		return nil, err
	}
	if err := s.db.Unscoped().Model(&models.File{}).Where("deleted_at IS NOT NULL").Count(&stats.DeletedFiles).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.File{}).
		Select("COALESCE(SUM(size), 0)").Scan(&stats.TotalStorage).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.File{}).
		Select("content_type, COUNT(*) as count").
		Group("content_type").
		Scan(&stats.FileTypes).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *AdminService) TopUsersByStorage(limit int) ([]TopUser, error) {
	var rows []TopUser
	err := s.db.Model(&models.File{}).
		Select("users.id as user_id, users.email, users.username, COUNT(files.id) as file_count, SUM(files.size) as total_size").
		Joins("JOIN users ON users.id = files.owner_id").
		Group("users.id, users.email, users.username").
		Order("total_size DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (s *AdminService) ownerUsage(ownerID uuid.UUID) (UserUsage, error) {
	var usage UserUsage
	err := s.db.Model(&models.File{}).
		Select("COUNT(*) as file_count, COALESCE(SUM(size), 0) as total_size").
		Where("owner_id = ?", ownerID).
		Scan(&usage).Error
	return usage, err
}
