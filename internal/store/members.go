package store

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/teamspace/backend/internal/models"
	"github.com/teamspace/backend/internal/notify"
	"github.com/teamspace/backend/pkg/logger"
)

func (s *Store) AddTeamMember(ctx context.Context, name, teamID string) (*models.TeamMember, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBlankName
	}
	if !models.IsTeamID(teamID) {
		return nil, ErrUnknownTeam
	}

	member := models.TeamMember{
		Name:   name,
		TeamID: teamID,
	}
	if err := s.db.WithContext(ctx).Create(&member).Error; err != nil {
		logger.Error("member_insert_failed", err, map[string]interface{}{
			"name":    name,
			"team_id": teamID,
		})
		return nil, err
	}

	s.mu.Lock()
	s.members = append([]models.TeamMember{member}, s.members...)
	s.dirty = true
	s.mu.Unlock()
	s.notifier.Publish(notify.TableMembers, notify.OpInsert)

	logger.Info("member_added", map[string]interface{}{
		"member_id": member.ID.String(),
		"team_id":   teamID,
	})
	return &member, nil
}

func (s *Store) RenameTeamMember(ctx context.Context, id uuid.UUID, name string) (*models.TeamMember, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBlankName
	}

	result := s.db.WithContext(ctx).Model(&models.TeamMember{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		logger.Error("member_rename_failed", result.Error, map[string]interface{}{"member_id": id.String()})
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrMemberNotFound
	}

	var renamed models.TeamMember
	s.mu.Lock()
	for i := range s.members {
		if s.members[i].ID == id {
			s.members[i].Name = name
			renamed = s.members[i]
			break
		}
	}
	s.dirty = true
	s.mu.Unlock()
	s.notifier.Publish(notify.TableMembers, notify.OpUpdate)

	if renamed.ID == uuid.Nil {
		renamed.ID = id
		renamed.Name = name
	}
	return &renamed, nil
}

func (s *Store) DeleteTeamMember(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&models.TeamMember{}, "id = ?", id)
	if result.Error != nil {
		logger.Error("member_delete_failed", result.Error, map[string]interface{}{"member_id": id.String()})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}

	s.mu.Lock()
	for i := range s.members {
		if s.members[i].ID == id {
			s.members = append(s.members[:i], s.members[i+1:]...)
			break
		}
	}
	s.dirty = true
	s.mu.Unlock()
	s.notifier.Publish(notify.TableMembers, notify.OpDelete)

	logger.Info("member_removed", map[string]interface{}{"member_id": id.String()})
	return nil
}
