// Package store is the data access layer: it owns the cached snapshots of
// files, subfolders and team members, performs every remote mutation, and
// keeps the snapshots converged by reloading (debounced) whenever a change
// notification arrives — including notifications caused by its own writes.
package store

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/teamspace/backend/internal/models"
	"github.com/teamspace/backend/internal/notify"
	"github.com/teamspace/backend/pkg/logger"
	"gorm.io/gorm"
)

// BlobStorage is the slice of the object storage client the store needs.
type BlobStorage interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, objectName string) error
	PublicObjectURL(objectName string) string
}

type Store struct {
	db       *gorm.DB
	storage  BlobStorage
	notifier notify.Notifier
	debounce time.Duration

	mu         sync.RWMutex
	files      []models.File
	subfolders []models.Subfolder
	members    []models.TeamMember
	dirty      bool
	loading    bool

	stopWatch func()
	watchDone chan struct{}
}

func New(db *gorm.DB, storage BlobStorage, notifier notify.Notifier, debounce time.Duration) *Store {
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	return &Store{
		db:       db,
		storage:  storage,
		notifier: notifier,
		debounce: debounce,
	}
}

// LoadAll fetches the three collections and atomically replaces the cached
// snapshots. On any fetch failure the prior snapshots are kept untouched —
// stale but consistent.
func (s *Store) LoadAll(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	var files []models.File
	if err := s.db.WithContext(ctx).Order("uploaded_at DESC").Find(&files).Error; err != nil {
		logger.Error("store_load_failed", err, map[string]interface{}{"table": notify.TableFiles})
		return fmt.Errorf("loading files: %w", err)
	}

	var subfolders []models.Subfolder
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&subfolders).Error; err != nil {
		logger.Error("store_load_failed", err, map[string]interface{}{"table": notify.TableSubfolders})
		return fmt.Errorf("loading subfolders: %w", err)
	}

	var members []models.TeamMember
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&members).Error; err != nil {
		logger.Error("store_load_failed", err, map[string]interface{}{"table": notify.TableMembers})
		return fmt.Errorf("loading team members: %w", err)
	}

	s.mu.Lock()
	s.files = files
	s.subfolders = subfolders
	s.members = members
	s.mu.Unlock()

	logger.Info("store_loaded", map[string]interface{}{
		"files":      len(files),
		"subfolders": len(subfolders),
		"members":    len(members),
	})
	return nil
}

// Start subscribes to the change feed and reloads after a quiet period, so a
// burst of notifications collapses into a single fetch.
func (s *Store) Start(ctx context.Context) {
	events, stop := s.notifier.Subscribe()
	s.stopWatch = stop
	s.watchDone = make(chan struct{})
	go s.watch(ctx, events)
}

func (s *Store) watch(ctx context.Context, events <-chan notify.Event) {
	defer close(s.watchDone)

	timer := time.NewTimer(s.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			logger.Info("change_event", map[string]interface{}{
				"table": ev.Table,
				"op":    string(ev.Op),
			})
			if pending && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(s.debounce)
			pending = true
		case <-timer.C:
			pending = false
			if err := s.LoadAll(ctx); err != nil {
				logger.Error("store_reload_failed", err, nil)
			}
		}
	}
}

// Close stops the change watcher. It does not close the notifier.
func (s *Store) Close() {
	if s.stopWatch != nil {
		s.stopWatch()
		<-s.watchDone
	}
}

// Save clears the unsaved-changes flag. Every mutation is already durably
// persisted when it returns; the flag only drives the Save affordance.
func (s *Store) Save() {
	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
}

func (s *Store) HasUnsavedChanges() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// Files returns a copy of the files snapshot, newest first.
func (s *Store) Files() []models.File {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.File, len(s.files))
	copy(out, s.files)
	return out
}

func (s *Store) Subfolders() []models.Subfolder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Subfolder, len(s.subfolders))
	copy(out, s.subfolders)
	return out
}

func (s *Store) Members() []models.TeamMember {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.TeamMember, len(s.members))
	copy(out, s.members)
	return out
}
