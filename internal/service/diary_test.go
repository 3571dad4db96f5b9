package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"melio/internal/model"
	"melio/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiaryEnv(t *testing.T, handler http.Handler) (*testEnv, *DiaryService) {
	t.Helper()
	env := newTestEnv(t, handler)
	seedSession(t, env.store, testStudent(), freshToken(t), "refresh-1")
	env.auth.load()
	return env, NewDiaryService(env.store, env.client, env.auth)
}

func TestAddEntrySwapsInServerCopy(t *testing.T) {
	score := 12
	mux := http.NewServeMux()
	mux.HandleFunc("POST /students/stu-1/journal", func(w http.ResponseWriter, r *http.Request) {
		var req model.CreateJournalEntry
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, model.WireMoodHappy, req.Mood)
		assert.Equal(t, "belle journée", req.ContentText)
		json.NewEncoder(w).Encode(model.JournalEntryWire{
			ID:          "srv-1",
			StudentID:   "stu-1",
			Mood:        req.Mood,
			ContentText: req.ContentText,
			CreatedAt:   time.Now(),
			AIRiskScore: &score,
			AIRiskLevel: "FAIBLE",
			AISummary:   "Une journée positive.",
			AIAdvice:    "Continue comme ça !",
		})
	})

	_, diary := newDiaryEnv(t, mux)
	entry, err := diary.AddEntry(context.Background(), "belle journée", model.MoodHappy, EntryOptions{})
	require.NoError(t, err)

	assert.Equal(t, "srv-1", entry.ID, "server id replaces the client id")
	assert.True(t, entry.Synced)
	require.NotNil(t, entry.AIRiskScore)
	assert.Equal(t, 12, *entry.AIRiskScore)
	assert.Equal(t, "Une journée positive.", entry.AISummary)

	entries := diary.UserEntries("stu-1")
	require.Len(t, entries, 1, "swap, never append")
	assert.Equal(t, "srv-1", entries[0].ID)
	assert.Empty(t, diary.SyncError())
}

func TestAddEntryKeepsLocalCopyOnFailure(t *testing.T) {
	env, diary := newDiaryEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))

	entry, err := diary.AddEntry(context.Background(), "journée difficile", model.MoodSad, EntryOptions{})
	require.NoError(t, err, "a failed push is not an error for the caller")

	assert.False(t, entry.Synced)
	assert.NotEmpty(t, entry.ID, "client id assigned")
	assert.NotEmpty(t, diary.SyncError())

	// The unsynced entry is persisted for the next session.
	raw, err := env.store.Get(storage.KeyDiary("stu-1"))
	require.NoError(t, err)
	var persisted []model.DiaryEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))
	require.Len(t, persisted, 1)
	assert.False(t, persisted[0].Synced)

	diary.DismissSyncError()
	assert.Empty(t, diary.SyncError())
}

func TestSyncMergeKeepsUnsyncedAndSortsNewestFirst(t *testing.T) {
	now := time.Now()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /students/stu-1/journal", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})
	mux.HandleFunc("GET /students/stu-1/journal", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.JournalEntryWire{
			{ID: "srv-old", StudentID: "stu-1", Mood: model.WireMoodNeutral, ContentText: "ancienne", CreatedAt: now.Add(-48 * time.Hour)},
			{ID: "srv-new", StudentID: "stu-1", Mood: model.WireMoodHappy, ContentText: "récente", CreatedAt: now.Add(-1 * time.Hour)},
		})
	})

	_, diary := newDiaryEnv(t, mux)

	// Push fails, leaving one unsynced local entry.
	_, err := diary.AddEntry(context.Background(), "hors ligne", model.MoodNeutral, EntryOptions{})
	require.NoError(t, err)

	diary.Sync(context.Background())

	entries := diary.UserEntries("stu-1")
	require.Len(t, entries, 3, "unsynced local entry survives the remote snapshot")
	assert.Equal(t, "hors ligne", entries[0].Content, "newest first")
	assert.False(t, entries[0].Synced)
	assert.Equal(t, "srv-new", entries[1].ID)
	assert.Equal(t, "srv-old", entries[2].ID)
	assert.Empty(t, diary.SyncError(), "a successful pull clears the error")
}

func TestSyncFailureSetsDismissableError(t *testing.T) {
	_, diary := newDiaryEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))

	diary.Sync(context.Background())
	assert.NotEmpty(t, diary.SyncError())
}

func TestUpdateEntryMarksSyncedOnConfirm(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /students/stu-1/journal", func(w http.ResponseWriter, r *http.Request) {
		var req model.CreateJournalEntry
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(model.JournalEntryWire{ID: "srv-1", StudentID: "stu-1", Mood: req.Mood, ContentText: req.ContentText, CreatedAt: time.Now()})
	})
	mux.HandleFunc("PATCH /students/stu-1/journal/srv-1", func(w http.ResponseWriter, r *http.Request) {
		var req model.CreateJournalEntry
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "texte corrigé", req.ContentText)
		json.NewEncoder(w).Encode(model.JournalEntryWire{ID: "srv-1", StudentID: "stu-1", Mood: req.Mood, ContentText: req.ContentText, CreatedAt: time.Now()})
	})

	_, diary := newDiaryEnv(t, mux)
	_, err := diary.AddEntry(context.Background(), "texte", model.MoodNeutral, EntryOptions{})
	require.NoError(t, err)

	require.NoError(t, diary.UpdateEntry(context.Background(), "srv-1", "texte corrigé", model.MoodHappy, EntryOptions{}))

	entries := diary.UserEntries("stu-1")
	require.Len(t, entries, 1)
	assert.Equal(t, "texte corrigé", entries[0].Content)
	assert.Equal(t, model.MoodHappy, entries[0].Mood)
	assert.True(t, entries[0].Synced)
}

func TestUpdateEntryUnknownID(t *testing.T) {
	_, diary := newDiaryEnv(t, http.NewServeMux())
	err := diary.UpdateEntry(context.Background(), "nope", "x", model.MoodNeutral, EntryOptions{})
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestDeleteEntryIsLocalOnly(t *testing.T) {
	var deletes int
	mux := http.NewServeMux()
	mux.HandleFunc("POST /students/stu-1/journal", func(w http.ResponseWriter, r *http.Request) {
		var req model.CreateJournalEntry
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(model.JournalEntryWire{ID: "srv-1", StudentID: "stu-1", Mood: req.Mood, ContentText: req.ContentText, CreatedAt: time.Now()})
	})
	mux.HandleFunc("DELETE /", func(w http.ResponseWriter, r *http.Request) {
		deletes++
	})

	env, diary := newDiaryEnv(t, mux)
	_, err := diary.AddEntry(context.Background(), "à supprimer", model.MoodNeutral, EntryOptions{})
	require.NoError(t, err)

	diary.DeleteEntry("srv-1")

	assert.Empty(t, diary.UserEntries("stu-1"))
	assert.Zero(t, deletes, "no remote delete is issued")

	raw, err := env.store.Get(storage.KeyDiary("stu-1"))
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestDeleteEntryInFreshProcessKeepsOtherEntries(t *testing.T) {
	env := newTestEnv(t, http.NewServeMux())
	seedSession(t, env.store, testStudent(), freshToken(t), "refresh-1")
	env.auth.load()

	persisted := []model.DiaryEntry{
		{ID: "srv-1", UserID: "stu-1", Content: "synchronisée", Mood: model.MoodHappy, Timestamp: time.Now(), Synced: true},
		{ID: "local-1", UserID: "stu-1", Content: "hors ligne", Mood: model.MoodSad, Timestamp: time.Now(), Synced: false},
	}
	raw, err := json.Marshal(persisted)
	require.NoError(t, err)
	require.NoError(t, env.store.Set(storage.KeyDiary("stu-1"), string(raw)))

	// A brand new service has an empty in-memory collection, the way a
	// fresh CLI invocation starts.
	diary := NewDiaryService(env.store, env.client, env.auth)
	diary.DeleteEntry("srv-1")

	got, err := env.store.Get(storage.KeyDiary("stu-1"))
	require.NoError(t, err)
	var kept []model.DiaryEntry
	require.NoError(t, json.Unmarshal([]byte(got), &kept))
	require.Len(t, kept, 1, "only the targeted entry is removed")
	assert.Equal(t, "local-1", kept[0].ID, "the unsynced entry survives")
	assert.False(t, kept[0].Synced)
}

func TestAddEntryInFreshProcessKeepsPersistedEntries(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /students/stu-1/journal", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})
	env := newTestEnv(t, mux)
	seedSession(t, env.store, testStudent(), freshToken(t), "refresh-1")
	env.auth.load()

	raw, err := json.Marshal([]model.DiaryEntry{
		{ID: "local-1", UserID: "stu-1", Content: "hors ligne", Mood: model.MoodSad, Timestamp: time.Now().Add(-time.Hour), Synced: false},
	})
	require.NoError(t, err)
	require.NoError(t, env.store.Set(storage.KeyDiary("stu-1"), string(raw)))

	diary := NewDiaryService(env.store, env.client, env.auth)
	_, err = diary.AddEntry(context.Background(), "nouvelle entrée", model.MoodNeutral, EntryOptions{})
	require.NoError(t, err)

	got, err := env.store.Get(storage.KeyDiary("stu-1"))
	require.NoError(t, err)
	var kept []model.DiaryEntry
	require.NoError(t, json.Unmarshal([]byte(got), &kept))
	require.Len(t, kept, 2, "the persisted entry is loaded before the write")
	assert.Equal(t, "nouvelle entrée", kept[0].Content)
	assert.Equal(t, "local-1", kept[1].ID)
}

func TestAddEntryRequiresSession(t *testing.T) {
	env := newTestEnv(t, http.NewServeMux())
	diary := NewDiaryService(env.store, env.client, env.auth)

	_, err := diary.AddEntry(context.Background(), "x", model.MoodNeutral, EntryOptions{})
	assert.ErrorIs(t, err, ErrNoSession)
}
