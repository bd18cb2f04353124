package store

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/teamspace/backend/internal/models"
	"github.com/teamspace/backend/internal/notify"
	"github.com/teamspace/backend/pkg/logger"
)

func (s *Store) AddSubfolder(ctx context.Context, name, parentFolderID string) (*models.Subfolder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBlankName
	}
	if !models.IsTeamID(parentFolderID) {
		return nil, ErrUnknownTeam
	}

	subfolder := models.Subfolder{
		Name:           name,
		ParentFolderID: parentFolderID,
	}
	if err := s.db.WithContext(ctx).Create(&subfolder).Error; err != nil {
		logger.Error("subfolder_insert_failed", err, map[string]interface{}{
			"name":    name,
			"team_id": parentFolderID,
		})
		return nil, err
	}

	s.mu.Lock()
	s.subfolders = append(s.subfolders, subfolder)
	s.dirty = true
	s.mu.Unlock()
	s.notifier.Publish(notify.TableSubfolders, notify.OpInsert)

	logger.Info("subfolder_created", map[string]interface{}{
		"subfolder_id": subfolder.ID.String(),
		"name":         name,
		"team_id":      parentFolderID,
	})
	return &subfolder, nil
}

func (s *Store) RenameSubfolder(ctx context.Context, id uuid.UUID, name string) (*models.Subfolder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBlankName
	}

	result := s.db.WithContext(ctx).Model(&models.Subfolder{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		logger.Error("subfolder_rename_failed", result.Error, map[string]interface{}{"subfolder_id": id.String()})
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrSubfolderNotFound
	}

	var renamed models.Subfolder
	s.mu.Lock()
	for i := range s.subfolders {
		if s.subfolders[i].ID == id {
			s.subfolders[i].Name = name
			renamed = s.subfolders[i]
			break
		}
	}
	s.dirty = true
	s.mu.Unlock()
	s.notifier.Publish(notify.TableSubfolders, notify.OpUpdate)

	if renamed.ID == uuid.Nil {
		renamed.ID = id
		renamed.Name = name
	}
	return &renamed, nil
}

func (s *Store) DeleteSubfolder(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.Subfolder{}, "id = ?", id)
	if result.Error != nil {
		logger.Error("subfolder_delete_failed", result.Error, map[string]interface{}{"subfolder_id": id.String()})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubfolderNotFound
	}

	s.mu.Lock()
	for i := range s.subfolders {
		if s.subfolders[i].ID == id {
			s.subfolders = append(s.subfolders[:i], s.subfolders[i+1:]...)
			break
		}
	}
	s.dirty = true
	s.mu.Unlock()
	s.notifier.Publish(notify.TableSubfolders, notify.OpDelete)

	logger.Info("subfolder_deleted", map[string]interface{}{"subfolder_id": id.String()})
	return nil
}
