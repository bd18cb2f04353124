package handlers

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/teamspace/backend/internal/store"
	"github.com/teamspace/backend/pkg/utils"
)

type FilesHandler struct {
	Store *store.Store
}

func NewFilesHandler(st *store.Store) *FilesHandler {
	return &FilesHandler{Store: st}
}

// List serves the cached snapshot, newest first. The cache is the read path;
// the database is only hit by mutations and reloads.
func (h *FilesHandler) List(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, h.Store.Files())
}

func (h *FilesHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "file is required")
	}

	displayName := strings.TrimSpace(c.FormValue("displayName"))
	if displayName == "" {
		displayName = fileHeader.Filename
	}

	folderID, subfolderID, err := placementFromForm(c)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	}

	stream, err := fileHeader.Open()
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed opening uploaded file")
	}
	defer stream.Close()

	filename := filepath.Base(strings.TrimSpace(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(filename))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	created, err := h.Store.UploadFile(c.Context(), store.UploadParams{
		Content:     stream,
		Size:        fileHeader.Size,
		Filename:    filename,
		MimeType:    contentType,
		DisplayName: displayName,
		FolderID:    folderID,
		SubfolderID: subfolderID,
	})
	if err != nil {
		return storeError(c, err, "failed uploading file")
	}

	return utils.Success(c, fiber.StatusCreated, created)
}

type driveLinkRequest struct {
	DisplayName string  `json:"displayName"`
	DriveURL    string  `json:"driveURL"`
	FolderID    *string `json:"folderID"`
	SubfolderID *string `json:"subfolderID"`
}

func (h *FilesHandler) AddDriveLink(c *fiber.Ctx) error {
	var req driveLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	subfolderID, err := optionalUUID(req.SubfolderID)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid subfolderID")
	}

	created, err := h.Store.AddDriveLink(c.Context(), store.DriveLinkParams{
		DisplayName: req.DisplayName,
		DriveURL:    req.DriveURL,
		FolderID:    normalizeFolderID(req.FolderID),
		SubfolderID: subfolderID,
	})
	if err != nil {
		return storeError(c, err, "failed adding drive link")
	}

	return utils.Success(c, fiber.StatusCreated, created)
}

type renameRequest struct {
	Name string `json:"name"`
}

func (h *FilesHandler) Update(c *fiber.Ctx) error {
	fileID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid file id")
	}

	var req renameRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	renamed, err := h.Store.RenameFile(c.Context(), fileID, req.Name)
	if err != nil {
		return storeError(c, err, "failed renaming file")
	}
	return utils.Success(c, fiber.StatusOK, renamed)
}

func (h *FilesHandler) Delete(c *fiber.Ctx) error {
	fileID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid file id")
	}

	if err := h.Store.DeleteFile(c.Context(), fileID); err != nil {
		return storeError(c, err, "failed deleting file")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "file deleted"})
}

func placementFromForm(c *fiber.Ctx) (*string, *uuid.UUID, error) {
	folderID := normalizeFolderID(strPtr(c.FormValue("folderID")))

	var subfolderID *uuid.UUID
	if raw := strings.TrimSpace(c.FormValue("subfolderID")); raw != "" {
		parsed, err := parseUUID(raw)
		if err != nil {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest, "invalid subfolderID")
		}
		subfolderID = &parsed
	}
	return folderID, subfolderID, nil
}

func normalizeFolderID(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func optionalUUID(raw *string) (*uuid.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	parsed, err := parseUUID(*raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func strPtr(s string) *string {
	return &s
}
