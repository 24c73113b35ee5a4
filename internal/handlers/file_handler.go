package handlers

import (
	"errors"
	"fmt"
	"io"

	"github.com/dkotenko/filegate/internal/dto"
	"github.com/dkotenko/filegate/internal/middleware"
	"github.com/dkotenko/filegate/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type FileHandler struct {
	fileService *services.FileService
}

func NewFileHandler(fileService *services.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// Upload handles POST /files/upload with a multipart "file" part and an
// optional folder query parameter.
func (h *FileHandler) Upload(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return unauthorized(c)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "File is required",
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Could not open uploaded file",
		})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Could not read uploaded file",
		})
	}

	folder := c.Query("folder", "root")
	contentType := fileHeader.Header.Get("Content-Type")

	file, err := h.fileService.Upload(c.Context(), user.ID, fileHeader.Filename, contentType, data, folder)
	if err != nil {
		if errors.Is(err, services.ErrFileTooLarge) || errors.Is(err, services.ErrFileTypeNotAllowed) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return storageFailure(c, "Upload failed")
	}

	return c.JSON(dto.FileUploadResponse{
		ID:        file.ID,
		Filename:  file.OriginalName,
		Size:      file.Size,
		CreatedAt: file.CreatedAt,
	})
}

// List handles GET /files?folder&skip&limit.
func (h *FileHandler) List(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return unauthorized(c)
	}

	folder := c.Query("folder", "root")
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", 20)

	files, err := h.fileService.ListForOwner(user.ID, folder, skip, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list files",
		})
	}

	result := make([]dto.FileInfo, 0, len(files))
	for _, f := range files {
		result = append(result, dto.FileInfo{
			ID:        f.ID,
			Filename:  f.OriginalName,
			Size:      f.Size,
			Type:      f.ContentType,
			Folder:    f.Folder,
			CreatedAt: f.CreatedAt,
		})
	}
	return c.JSON(result)
}

// Download handles GET /files/:id/download and streams the payload as an
// attachment under the original display name.
func (h *FileHandler) Download(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return unauthorized(c)
	}

	fileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fileNotFound(c)
	}

	data, filename, err := h.fileService.Download(c.Context(), fileID, user.ID)
	if err != nil {
		if errors.Is(err, services.ErrFileNotFound) {
			return fileNotFound(c)
		}
		return storageFailure(c, "Download failed")
	}

	c.Set(fiber.HeaderContentType, "application/octet-stream")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return c.Send(data)
}

func (h *FileHandler) Delete(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return unauthorized(c)
	}

	fileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fileNotFound(c)
	}

	if err := h.fileService.Delete(c.Context(), fileID, user.ID); err != nil {
		if errors.Is(err, services.ErrFileNotFound) {
			return fileNotFound(c)
		}
		return storageFailure(c, "Delete failed")
	}

	return c.JSON(dto.MessageResponse{Message: "File deleted successfully"})
}

// Rename handles PATCH /files/:id?new_name=.
func (h *FileHandler) Rename(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return unauthorized(c)
	}

	fileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fileNotFound(c)
	}

	newName := c.Query("new_name")
	if newName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "new_name query parameter is required",
		})
	}

	if err := h.fileService.Rename(fileID, newName, user.ID); err != nil {
		if errors.Is(err, services.ErrFileNotFound) {
			return fileNotFound(c)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Rename failed",
		})
	}

	return c.JSON(dto.RenameResponse{Filename: newName})
}

func (h *FileHandler) Metadata(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return unauthorized(c)
	}

	fileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fileNotFound(c)
	}

	file, err := h.fileService.GetMetadata(fileID, user.ID)
	if err != nil {
		if errors.Is(err, services.ErrFileNotFound) {
			return fileNotFound(c)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch metadata",
		})
	}

	return c.JSON(dto.FileMetadataResponse{
		ID:        file.ID,
		Filename:  file.OriginalName,
		Size:      file.Size,
		Type:      file.ContentType,
		Folder:    file.Folder,
		Hash:      file.Digest,
		CreatedAt: file.CreatedAt,
		UpdatedAt: file.UpdatedAt,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

func fileNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: true, Message: "File not found",
	})
}

func storageFailure(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}
