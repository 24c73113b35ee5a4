package handlers

import (
	"errors"
	"fmt"
	"math"

	"github.com/dkotenko/filegate/internal/dto"
	"github.com/dkotenko/filegate/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)
	if limit > 500 {
		limit = 500
	}

	users, err := h.adminService.ListUsers(skip, limit)
	if err != nil {
		return internalError(c, "Failed to list users")
	}

	result := make([]dto.AdminUserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, adminUserResponse(u))
	}
	return c.JSON(dto.AdminUserListResponse{Total: len(result), Users: result})
}

func (h *AdminHandler) GetUserDetails(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return userNotFound(c)
	}

	details, err := h.adminService.GetUserDetails(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return userNotFound(c)
		}
		return internalError(c, "Failed to fetch user details")
	}

	files := make([]dto.FileInfo, 0, len(details.Files))
	for _, f := range details.Files {
		files = append(files, dto.FileInfo{
			ID:        f.ID,
			Filename:  f.OriginalName,
			Size:      f.Size,
			Type:      f.ContentType,
			Folder:    f.Folder,
			CreatedAt: f.CreatedAt,
		})
	}

	return c.JSON(dto.AdminUserDetailsResponse{
		AdminUserResponse: adminUserResponse(services.UserWithStats{User: details.User, Usage: details.Usage}),
		Files:             files,
	})
}

func (h *AdminHandler) ToggleUserStatus(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return userNotFound(c)
	}

	active, err := h.adminService.ToggleUserStatus(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return userNotFound(c)
		}
		return internalError(c, "Failed to toggle user status")
	}

	message := "User blocked"
	if active {
		message = "User activated"
	}
	return c.JSON(dto.ToggleStatusResponse{UserID: userID, IsActive: active, Message: message})
}

func (h *AdminHandler) ChangeUserRole(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return userNotFound(c)
	}

	newRole := c.Query("new_role")
	if err := h.adminService.ChangeUserRole(userID, newRole); err != nil {
		if errors.Is(err, services.ErrInvalidRole) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrUserNotFound) {
			return userNotFound(c)
		}
		return internalError(c, "Failed to change user role")
	}

	return c.JSON(dto.RoleChangeResponse{
		UserID:  userID,
		Role:    newRole,
		Message: "User role changed to " + newRole,
	})
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return userNotFound(c)
	}

	deleted, err := h.adminService.DeleteUser(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return userNotFound(c)
		}
		return internalError(c, "Failed to delete user")
	}

	return c.JSON(dto.DeleteUserResponse{
		UserID:  userID,
		Message: fmt.Sprintf("User deleted along with %d files", deleted),
	})
}

func (h *AdminHandler) ListFiles(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 100)
	if limit > 500 {
		limit = 500
	}
	typeFilter := c.Query("file_type")

	files, err := h.adminService.ListAllFiles(typeFilter, skip, limit)
	if err != nil {
		return internalError(c, "Failed to list files")
	}

	result := make([]dto.AdminFileResponse, 0, len(files))
	for _, f := range files {
		entry := dto.AdminFileResponse{
			ID:        f.File.ID,
			Filename:  f.File.OriginalName,
			Size:      f.File.Size,
			SizeMB:    roundMB(f.File.Size),
			Type:      f.File.ContentType,
			CreatedAt: f.File.CreatedAt,
		}
		if f.Owner != nil {
			entry.Owner = dto.FileOwner{ID: f.Owner.ID, Email: f.Owner.Email, Username: f.Owner.Username}
		}
		result = append(result, entry)
	}

	return c.JSON(dto.AdminFileListResponse{
		Total:   len(result),
		Filters: map[string]string{"file_type": typeFilter},
		Files:   result,
	})
}

func (h *AdminHandler) DeleteFile(c *fiber.Ctx) error {
	fileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fileNotFound(c)
	}

	file, err := h.adminService.DeleteAnyFile(fileID)
	if err != nil {
		if errors.Is(err, services.ErrFileNotFound) {
			return fileNotFound(c)
		}
		return internalError(c, "Failed to delete file")
	}

	return c.JSON(dto.AdminDeleteFileResponse{
		FileID:   file.ID,
		Filename: file.OriginalName,
		Owner:    file.OwnerID,
		Message:  "File deleted by admin",
	})
}

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.adminService.DashboardStats()
	if err != nil {
		return internalError(c, "Failed to compute dashboard stats")
	}

	var avgMB float64
	if stats.TotalFiles > 0 {
		avgMB = roundMB(stats.TotalStorage / stats.TotalFiles)
	}

	fileTypes := make([]dto.FileTypeStat, 0, len(stats.FileTypes))
	for _, ft := range stats.FileTypes {
		fileTypes = append(fileTypes, dto.FileTypeStat{Type: ft.ContentType, Count: ft.Count})
	}

	return c.JSON(dto.DashboardResponse{
		Users: dto.DashboardUserStats{
			Total:   stats.TotalUsers,
			Active:  stats.ActiveUsers,
			Blocked: stats.TotalUsers - stats.ActiveUsers,
			Admins:  stats.AdminUsers,
		},
		Files: dto.DashboardFileStats{
			Total:   stats.TotalFiles + stats.DeletedFiles,
			Deleted: stats.DeletedFiles,
			Active:  stats.TotalFiles,
		},
		Storage: dto.DashboardStorageStats{
			TotalBytes:        stats.TotalStorage,
			TotalGB:           math.Round(float64(stats.TotalStorage)/1024/1024/1024*100) / 100,
			AverageFileSizeMB: avgMB,
		},
		FileTypes: fileTypes,
	})
}

func (h *AdminHandler) TopUsers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit > 50 {
		limit = 50
	}

	top, err := h.adminService.TopUsersByStorage(limit)
	if err != nil {
		return internalError(c, "Failed to compute top users")
	}

	result := make([]dto.TopUserResponse, 0, len(top))
	for _, t := range top {
		result = append(result, dto.TopUserResponse{
			UserID:      t.UserID,
			Email:       t.Email,
			Username:    t.Username,
			FileCount:   t.FileCount,
			TotalSize:   t.TotalSize,
			TotalSizeMB: roundMB(t.TotalSize),
		})
	}

	return c.JSON(dto.TopUsersResponse{Limit: limit, TopUsers: result})
}

func adminUserResponse(u services.UserWithStats) dto.AdminUserResponse {
	return dto.AdminUserResponse{
		ID:         u.User.ID,
		Email:      u.User.Email,
		Username:   u.User.Username,
		Role:       u.User.Role,
		IsActive:   u.User.IsActive,
		IsVerified: u.User.IsVerified,
		CreatedAt:  u.User.CreatedAt,
		LastLogin:  u.User.LastLogin,
		Stats: dto.UserStats{
			FileCount:   u.Usage.FileCount,
			TotalSize:   u.Usage.TotalSize,
			TotalSizeMB: roundMB(u.Usage.TotalSize),
		},
	}
}

func roundMB(size int64) float64 {
	return math.Round(float64(size)/1024/1024*100) / 100
}

func userNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: true, Message: "User not found",
	})
}

func internalError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}
