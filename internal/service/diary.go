package service

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"melio/internal/api"
	"melio/internal/logger"
	"melio/internal/model"
	"melio/internal/storage"

	"github.com/google/uuid"
)

const diarySyncFailedMsg = "Erreur lors de la sauvegarde. L'entrée est sauvegardée localement."
const diaryPullFailedMsg = "Erreur lors de la synchronisation avec le serveur."

// EntryOptions is the optional per-entry customization.
type EntryOptions struct {
	Color      string
	CoverImage string
	TagIDs     []string
}

// DiaryService holds the journal collection for the active session. Every
// mutation lands locally first and is pushed to the backend best-effort; a
// failed push leaves the entry unsynced and records a dismissable sync error.
type DiaryService struct {
	mu     sync.RWMutex
	store  storage.Store
	client *api.Client
	auth   *AuthService

	entries []model.DiaryEntry
	syncErr string

	now   func() time.Time
	newID func() string
}

func NewDiaryService(store storage.Store, client *api.Client, auth *AuthService) *DiaryService {
	return &DiaryService{
		store:  store,
		client: client,
		auth:   auth,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Activate loads the persisted collection for the session user and pulls
// the remote snapshot once. Called whenever a session becomes active.
func (s *DiaryService) Activate(ctx context.Context) {
	user := s.auth.CurrentUser()
	if user == nil {
		return
	}

	s.mu.Lock()
	s.entries = nil
	s.loadLocked(user.ID)
	s.mu.Unlock()

	s.Sync(ctx)
}

// AddEntry creates the entry optimistically and then attempts the remote
// create. On success the local copy is replaced, matched by its client id,
// with the server-confirmed entry carrying the server id and AI fields.
func (s *DiaryService) AddEntry(ctx context.Context, content string, mood model.Mood, opts EntryOptions) (model.DiaryEntry, error) {
	user := s.auth.CurrentUser()
	if user == nil {
		return model.DiaryEntry{}, ErrNoSession
	}
	if !mood.Valid() {
		mood = model.MoodNeutral
	}

	entry := model.DiaryEntry{
		ID:         s.newID(),
		UserID:     user.ID,
		Content:    content,
		Mood:       mood,
		Timestamp:  s.now(),
		Color:      opts.Color,
		CoverImage: opts.CoverImage,
		TagIDs:     opts.TagIDs,
		Private:    true,
		Synced:     false,
	}

	s.mu.Lock()
	s.loadLocked(user.ID)
	s.entries = append([]model.DiaryEntry{entry}, s.entries...)
	s.syncErr = ""
	s.persistLocked(user.ID)
	s.mu.Unlock()

	wire, err := s.client.CreateEntry(ctx, user.ID, model.CreateJournalEntry{
		Mood:        mood.Wire(),
		ContentText: content,
		Color:       opts.Color,
		CoverImage:  opts.CoverImage,
		TagIDs:      opts.TagIDs,
	})
	if err != nil {
		logger.Warn("diary.create_sync_failed", "uid", user.ID, "err", err)
		s.mu.Lock()
		s.syncErr = diarySyncFailedMsg
		s.mu.Unlock()
		return entry, nil
	}

	synced := entry
	synced.ID = wire.ID
	synced.Synced = true
	synced.AIRiskScore = wire.AIRiskScore
	synced.AIRiskLevel = wire.AIRiskLevel
	synced.AISummary = wire.AISummary
	synced.AIAdvice = wire.AIAdvice

	s.mu.Lock()
	// Swap, never append: the client id must not outlive reconciliation.
	for i := range s.entries {
		if s.entries[i].ID == entry.ID {
			s.entries[i] = synced
			break
		}
	}
	s.persistLocked(user.ID)
	s.mu.Unlock()

	logger.Info("diary.entry_added", "uid", user.ID, "entry", synced.ID)
	return synced, nil
}

// UpdateEntry edits an entry in place and re-pushes it. The entry stays
// unsynced until the backend confirms the patch.
func (s *DiaryService) UpdateEntry(ctx context.Context, id, content string, mood model.Mood, opts EntryOptions) error {
	user := s.auth.CurrentUser()
	if user == nil {
		return ErrNoSession
	}

	s.mu.Lock()
	s.loadLocked(user.ID)
	idx := -1
	for i := range s.entries {
		if s.entries[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrEntryNotFound
	}
	s.entries[idx].Content = content
	s.entries[idx].Mood = mood
	s.entries[idx].Color = opts.Color
	s.entries[idx].CoverImage = opts.CoverImage
	s.entries[idx].TagIDs = opts.TagIDs
	s.entries[idx].Synced = false
	s.persistLocked(user.ID)
	s.mu.Unlock()

	_, err := s.client.UpdateEntry(ctx, user.ID, id, model.CreateJournalEntry{
		Mood:        mood.Wire(),
		ContentText: content,
		Color:       opts.Color,
		CoverImage:  opts.CoverImage,
		TagIDs:      opts.TagIDs,
	})
	if err != nil {
		logger.Warn("diary.update_sync_failed", "uid", user.ID, "entry", id, "err", err)
		s.mu.Lock()
		s.syncErr = diarySyncFailedMsg
		s.mu.Unlock()
		return nil
	}

	s.mu.Lock()
	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries[i].Synced = true
			break
		}
	}
	s.persistLocked(user.ID)
	s.mu.Unlock()
	return nil
}

// DeleteEntry removes the entry locally. No remote call is issued: the
// backend keeps its copy for safety review (deliberate local-only delete).
func (s *DiaryService) DeleteEntry(id string) {
	user := s.auth.CurrentUser()
	if user == nil {
		return
	}

	s.mu.Lock()
	s.loadLocked(user.ID)
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	s.persistLocked(user.ID)
	s.mu.Unlock()
}

// UserEntries is a pure filter, newest first.
func (s *DiaryService) UserEntries(userID string) []model.DiaryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.DiaryEntry
	for _, e := range s.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

// Sync pulls the full remote collection and merges it with local state.
// Local unsynced entries always win over the remote snapshot so an
// in-flight write is never silently discarded.
func (s *DiaryService) Sync(ctx context.Context) {
	user := s.auth.CurrentUser()
	if user == nil {
		return
	}

	wires, err := s.client.Entries(ctx, user.ID, 0, 0)
	if err != nil {
		logger.Warn("diary.sync_failed", "uid", user.ID, "err", err)
		s.mu.Lock()
		s.syncErr = diaryPullFailedMsg
		s.mu.Unlock()
		return
	}

	merged := make([]model.DiaryEntry, 0, len(wires))
	for _, w := range wires {
		merged = append(merged, w.Local())
	}

	s.mu.Lock()
	for _, e := range s.entries {
		if !e.Synced {
			merged = append(merged, e)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})
	s.entries = merged
	s.syncErr = ""
	s.persistLocked(user.ID)
	s.mu.Unlock()

	logger.Info("diary.synced", "uid", user.ID, "entries", len(merged))
}

// SyncError is the dismissable, non-fatal sync failure state.
func (s *DiaryService) SyncError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.syncErr
}

func (s *DiaryService) DismissSyncError() {
	s.mu.Lock()
	s.syncErr = ""
	s.mu.Unlock()
}

// loadLocked fills an empty in-memory collection from the persisted blob,
// so a mutation in a fresh process never persists over entries it has not
// seen yet.
func (s *DiaryService) loadLocked(userID string) {
	if s.entries != nil {
		return
	}
	if raw, err := s.store.Get(storage.KeyDiary(userID)); err == nil {
		json.Unmarshal([]byte(raw), &s.entries)
	}
}

func (s *DiaryService) persistLocked(userID string) {
	raw, err := json.Marshal(s.entries)
	if err != nil {
		return
	}
	s.store.Set(storage.KeyDiary(userID), string(raw))
}
