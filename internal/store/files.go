package store

import (
	"context"
	"io"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/teamspace/backend/internal/models"
	"github.com/teamspace/backend/internal/notify"
	"github.com/teamspace/backend/pkg/logger"
	"gorm.io/gorm"
)

type UploadParams struct {
	Content     io.Reader
	Size        int64
	Filename    string
	MimeType    string
	DisplayName string
	FolderID    *string
	SubfolderID *uuid.UUID
}

func (p UploadParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.DisplayName, validation.Required.Error("display name is required")),
		validation.Field(&p.Filename, validation.Required.Error("filename is required")),
		validation.Field(&p.FolderID, validation.By(teamIDRule)),
	)
}

type DriveLinkParams struct {
	DisplayName string
	DriveURL    string
	FolderID    *string
	SubfolderID *uuid.UUID
}

func (p DriveLinkParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.DisplayName, validation.Required.Error("display name is required")),
		validation.Field(&p.DriveURL, validation.Required.Error("drive url is required")),
		validation.Field(&p.FolderID, validation.By(teamIDRule)),
	)
}

func teamIDRule(value interface{}) error {
	id, _ := value.(*string)
	if id == nil {
		return nil
	}
	if !models.IsTeamID(*id) {
		return ErrUnknownTeam
	}
	return nil
}

// UploadFile stores the blob, inserts the row, and prepends the new record
// to the files snapshot. If the row insert fails the uploaded blob is removed
// best-effort so the bucket does not accumulate orphans from failed inserts.
func (s *Store) UploadFile(ctx context.Context, p UploadParams) (*models.File, error) {
	p.DisplayName = strings.TrimSpace(p.DisplayName)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	objectName := NewStorageKey(p.Filename)
	if err := s.storage.Upload(ctx, objectName, p.Content, p.Size, p.MimeType); err != nil {
		return nil, err
	}

	file := models.File{
		FileURL:     s.storage.PublicObjectURL(objectName),
		DisplayName: p.DisplayName,
		FileType:    DetectFileType(p.MimeType, p.Filename),
		FolderID:    p.FolderID,
		SubfolderID: p.SubfolderID,
		UploadedAt:  time.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&file).Error; err != nil {
		_ = s.storage.Delete(ctx, objectName)
		logger.Error("file_insert_failed", err, map[string]interface{}{
			"display_name": p.DisplayName,
			"object_name":  objectName,
		})
		return nil, err
	}

	s.mu.Lock()
	s.files = append([]models.File{file}, s.files...)
	s.dirty = true
	s.mu.Unlock()
	s.notifier.Publish(notify.TableFiles, notify.OpInsert)

	logger.Info("file_uploaded", map[string]interface{}{
		"file_id":      file.ID.String(),
		"display_name": file.DisplayName,
		"file_type":    string(file.FileType),
		"size":         p.Size,
		"object_name":  objectName,
	})
	return &file, nil
}

// AddDriveLink records an externally hosted Drive resource. No content-type
// introspection is possible for an opaque link, so the kind is fixed to pdf.
func (s *Store) AddDriveLink(ctx context.Context, p DriveLinkParams) (*models.File, error) {
	p.DisplayName = strings.TrimSpace(p.DisplayName)
	p.DriveURL = strings.TrimSpace(p.DriveURL)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	driveID, ok := ExtractDriveFileID(p.DriveURL)
	if !ok {
		return nil, ErrInvalidDriveURL
	}

	file := models.File{
		FileURL:          DrivePreviewURL(driveID),
		DisplayName:      p.DisplayName,
		FileType:         models.FileTypePDF,
		FolderID:         p.FolderID,
		SubfolderID:      p.SubfolderID,
		UploadedAt:       time.Now().UTC(),
		IsDriveLink:      true,
		DriveFileID:      &driveID,
		OriginalDriveURL: &p.DriveURL,
	}

	if err := s.db.WithContext(ctx).Create(&file).Error; err != nil {
		logger.Error("drive_link_insert_failed", err, map[string]interface{}{
			"display_name": p.DisplayName,
			"drive_id":     driveID,
		})
		return nil, err
	}

	s.mu.Lock()
	s.files = append([]models.File{file}, s.files...)
	s.dirty = true
	s.mu.Unlock()
	s.notifier.Publish(notify.TableFiles, notify.OpInsert)

	logger.Info("drive_link_added", map[string]interface{}{
		"file_id":  file.ID.String(),
		"drive_id": driveID,
	})
	return &file, nil
}

// RenameFile updates the display name remotely, then patches the snapshot in
// place. A blank name is rejected before any remote call.
func (s *Store) RenameFile(ctx context.Context, id uuid.UUID, displayName string) (*models.File, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, ErrBlankName
	}

	result := s.db.WithContext(ctx).Model(&models.File{}).Where("id = ?", id).Update("display_name", displayName)
	if result.Error != nil {
		logger.Error("file_rename_failed", result.Error, map[string]interface{}{"file_id": id.String()})
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrFileNotFound
	}

	var renamed models.File
	s.mu.Lock()
	for i := range s.files {
		if s.files[i].ID == id {
			s.files[i].DisplayName = displayName
			renamed = s.files[i]
			break
		}
	}
	s.dirty = true
	s.mu.Unlock()
	s.notifier.Publish(notify.TableFiles, notify.OpUpdate)

	if renamed.ID == uuid.Nil {
		// Row existed remotely but not in the snapshot; the pending reload
		// will bring it in.
		renamed.ID = id
		renamed.DisplayName = displayName
	}
	return &renamed, nil
}

// DeleteFile removes the row and drops it from the snapshot. For uploaded
// blobs the backing object is removed best-effort: a storage failure is
// logged and never blocks the row deletion.
func (s *Store) DeleteFile(ctx context.Context, id uuid.UUID) error {
	var file models.File
	if err := s.db.WithContext(ctx).First(&file, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrFileNotFound
		}
		return err
	}

	if !file.IsDriveLink && s.storage != nil {
		if key, err := objectKeyFromURL(file.FileURL); err != nil {
			logger.Warn("blob_key_unresolved", map[string]interface{}{
				"file_id":  id.String(),
				"file_url": file.FileURL,
				"error":    err.Error(),
			})
		} else if err := s.storage.Delete(ctx, key); err != nil {
			logger.Warn("blob_delete_failed", map[string]interface{}{
				"file_id":     id.String(),
				"object_name": key,
				"error":       err.Error(),
			})
		}
	}

	if err := s.db.WithContext(ctx).Delete(&models.File{}, "id = ?", id).Error; err != nil {
		logger.Error("file_delete_failed", err, map[string]interface{}{"file_id": id.String()})
		return err
	}

	s.mu.Lock()
	for i := range s.files {
		if s.files[i].ID == id {
			s.files = append(s.files[:i], s.files[i+1:]...)
			break
		}
	}
	s.dirty = true
	s.mu.Unlock()
	s.notifier.Publish(notify.TableFiles, notify.OpDelete)

	logger.Info("file_deleted", map[string]interface{}{"file_id": id.String()})
	return nil
}
