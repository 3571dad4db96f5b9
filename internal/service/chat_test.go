package service

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"testing"
	"time"

	"melio/internal/model"
	"melio/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatEnv(t *testing.T, handler http.Handler) (*testEnv, *ChatService) {
	t.Helper()
	env := newTestEnv(t, handler)
	seedSession(t, env.store, testStudent(), freshToken(t), "refresh-1")
	env.auth.load()
	// No typing delay in tests.
	return env, NewChatService(env.store, env.client, env.auth, 0)
}

func chatPair(userID, botID string, at time.Time) model.ChatSendResponse {
	return model.ChatSendResponse{
		UserMessage: model.ChatMessage{ID: userID, StudentID: "stu-1", Sender: model.SenderUser, Content: "salut", CreatedAt: at},
		BotResponse: model.ChatMessage{ID: botID, StudentID: "stu-1", Sender: model.SenderBot, Content: "Bonjour !", CreatedAt: at.Add(time.Second)},
	}
}

func TestSendResolvesOptimisticMessage(t *testing.T) {
	now := time.Now()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /students/stu-1/chat", func(w http.ResponseWriter, r *http.Request) {
		var req model.ChatSendRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "salut", req.Content)
		json.NewEncoder(w).Encode(chatPair("m1", "m2", now))
	})

	_, chat := newChatEnv(t, mux)

	temp := chat.AppendOptimistic("salut")
	assert.Contains(t, temp.ID, "temp_")
	require.Len(t, chat.Messages(), 1, "optimistic message visible before the send")

	resp, err := chat.Send(context.Background(), "salut")
	require.NoError(t, err)
	chat.ResolveOptimistic(temp.ID, resp)

	msgs := chat.Messages()
	require.Len(t, msgs, 2, "temp swapped for the server pair, never alongside it")
	assert.Equal(t, "m1", msgs[0].ID)
	assert.Equal(t, "m2", msgs[1].ID)
	for _, m := range msgs {
		assert.NotContains(t, m.ID, "temp_")
	}
}

func TestFailedSendDropsOptimisticMessage(t *testing.T) {
	_, chat := newChatEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))

	temp := chat.AppendOptimistic("salut")
	_, err := chat.Send(context.Background(), "salut")
	require.Error(t, err)
	assert.Equal(t, "Erreur lors de l'envoi du message", chat.Error())

	chat.DropOptimistic(temp.ID)
	assert.Empty(t, chat.Messages())

	chat.DismissError()
	assert.Empty(t, chat.Error())
}

func TestSendValidation(t *testing.T) {
	_, chat := newChatEnv(t, http.NewServeMux())
	_, err := chat.Send(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	env := newTestEnv(t, http.NewServeMux())
	loggedOut := NewChatService(env.store, env.client, env.auth, 0)
	_, err = loggedOut.Send(context.Background(), "salut")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSendClearsTheClearedFlags(t *testing.T) {
	now := time.Now()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /students/stu-1/chat", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatPair("m1", "m2", now))
	})

	env, chat := newChatEnv(t, mux)
	env.store.Set(storage.KeyChatCleared("stu-1"), "true")
	env.store.Set(storage.KeyChatClearedAt("stu-1"), strconv.FormatInt(now.UnixMilli(), 10))

	_, err := chat.Send(context.Background(), "salut")
	require.NoError(t, err)

	_, err = env.store.Get(storage.KeyChatCleared("stu-1"))
	assert.ErrorIs(t, err, storage.ErrNotFound, "a fresh send shows history again")
}

func TestLoadMergesAdditively(t *testing.T) {
	now := time.Now()
	fetched := []model.ChatMessage{
		{ID: "m1", StudentID: "stu-1", Sender: model.SenderUser, Content: "salut", CreatedAt: now.Add(-2 * time.Minute)},
		{ID: "m2", StudentID: "stu-1", Sender: model.SenderBot, Content: "Bonjour !", CreatedAt: now.Add(-1 * time.Minute)},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /students/stu-1/chat", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(fetched)
	})

	_, chat := newChatEnv(t, mux)

	// A message already held locally but absent from the page stays.
	local := model.ChatMessage{ID: "m0", StudentID: "stu-1", Sender: model.SenderUser, Content: "plus ancien", CreatedAt: now.Add(-3 * time.Minute)}
	chat.messages = []model.ChatMessage{local}

	require.NoError(t, chat.Load(context.Background()))

	msgs := chat.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "m0", msgs[0].ID, "ascending by creation time")
	assert.Equal(t, "m1", msgs[1].ID)
	assert.Equal(t, "m2", msgs[2].ID)
	assert.Equal(t, 1, chat.Unread(), "one bot message without a read flag")
}

func TestLoadDropsMessagesOlderThanWindow(t *testing.T) {
	now := time.Now()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /students/stu-1/chat", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.ChatMessage{
			{ID: "old", Sender: model.SenderBot, CreatedAt: now.Add(-25 * time.Hour)},
			{ID: "new", Sender: model.SenderBot, CreatedAt: now.Add(-time.Hour)},
		})
	})

	_, chat := newChatEnv(t, mux)
	require.NoError(t, chat.Load(context.Background()))

	msgs := chat.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "new", msgs[0].ID)
}

func TestLoadShortCircuitsAfterRecentClear(t *testing.T) {
	var calls int
	env, chat := newChatEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode([]model.ChatMessage{{ID: "m1", Sender: model.SenderBot, CreatedAt: time.Now()}})
	}))

	env.store.Set(storage.KeyChatCleared("stu-1"), "true")
	env.store.Set(storage.KeyChatClearedAt("stu-1"), strconv.FormatInt(time.Now().UnixMilli(), 10))

	require.NoError(t, chat.Load(context.Background()))
	assert.Empty(t, chat.Messages())
	assert.Zero(t, calls, "cleared conversations are not re-fetched for 24h")
}

func TestLoadResumesAfterClearWindowExpires(t *testing.T) {
	env, chat := newChatEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.ChatMessage{{ID: "m1", Sender: model.SenderBot, CreatedAt: time.Now()}})
	}))

	stale := time.Now().Add(-25 * time.Hour)
	env.store.Set(storage.KeyChatCleared("stu-1"), "true")
	env.store.Set(storage.KeyChatClearedAt("stu-1"), strconv.FormatInt(stale.UnixMilli(), 10))

	require.NoError(t, chat.Load(context.Background()))
	assert.Len(t, chat.Messages(), 1, "expired clear flag no longer hides history")

	_, err := env.store.Get(storage.KeyChatCleared("stu-1"))
	assert.ErrorIs(t, err, storage.ErrNotFound, "expired flags are removed")
}

func TestLoadTreats404AsEmpty(t *testing.T) {
	_, chat := newChatEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	require.NoError(t, chat.Load(context.Background()))
	assert.Empty(t, chat.Messages())
	assert.Empty(t, chat.Error())
}

func TestMarkRead(t *testing.T) {
	now := time.Now()
	env, chat := newChatEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.ChatMessage{
			{ID: "m1", Sender: model.SenderUser, CreatedAt: now.Add(-2 * time.Minute)},
			{ID: "m2", Sender: model.SenderBot, CreatedAt: now.Add(-time.Minute)},
		})
	}))

	require.NoError(t, chat.Load(context.Background()))
	require.Equal(t, 1, chat.Unread())

	chat.MarkRead()
	assert.Zero(t, chat.Unread())

	v, err := env.store.Get(storage.KeyChatRead("m2"))
	require.NoError(t, err)
	assert.Equal(t, "true", v)

	// Reloading counts the persisted flag.
	require.NoError(t, chat.Load(context.Background()))
	assert.Zero(t, chat.Unread())
}

func TestClearAllRequiresRemoteConfirmation(t *testing.T) {
	now := time.Now()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /students/stu-1/chat", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.ChatMessage{{ID: "m1", Sender: model.SenderBot, CreatedAt: now}})
	})
	mux.HandleFunc("DELETE /students/stu-1/chat", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})

	env, chat := newChatEnv(t, mux)
	require.NoError(t, chat.Load(context.Background()))

	err := chat.ClearAll(context.Background())
	require.Error(t, err)
	assert.Len(t, chat.Messages(), 1, "local history untouched when the backend refuses")
	assert.NotEmpty(t, chat.Error())

	_, err = env.store.Get(storage.KeyChatCleared("stu-1"))
	assert.ErrorIs(t, err, storage.ErrNotFound, "no cleared flag on failure")
}

func TestClearAllOnSuccess(t *testing.T) {
	now := time.Now()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /students/stu-1/chat", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.ChatMessage{{ID: "m1", Sender: model.SenderBot, CreatedAt: now}})
	})
	mux.HandleFunc("DELETE /students/stu-1/chat", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	env, chat := newChatEnv(t, mux)
	require.NoError(t, chat.Load(context.Background()))
	chat.MarkRead()

	require.NoError(t, chat.ClearAll(context.Background()))
	assert.Empty(t, chat.Messages())
	assert.Zero(t, chat.Unread())

	v, err := env.store.Get(storage.KeyChatCleared("stu-1"))
	require.NoError(t, err)
	assert.Equal(t, "true", v)

	_, err = env.store.Get(storage.KeyChatRead("m1"))
	assert.ErrorIs(t, err, storage.ErrNotFound, "read flags removed with the conversation")

	// The next load sees the intentionally empty conversation.
	require.NoError(t, chat.Load(context.Background()))
	assert.Empty(t, chat.Messages())
}

func TestChatStatsPassthrough(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /students/stu-1/chat/stats", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.ChatStats{TotalMessages: 6, UserMessages: 3, BotMessages: 3})
	})

	_, chat := newChatEnv(t, mux)
	stats, err := chat.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, stats.TotalMessages)
	assert.Equal(t, 3, stats.BotMessages)
}

func TestSendHonorsContextDuringTypingDelay(t *testing.T) {
	env := newTestEnv(t, http.NewServeMux())
	seedSession(t, env.store, testStudent(), freshToken(t), "r")
	env.auth.load()
	chat := NewChatService(env.store, env.client, env.auth, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := chat.Send(ctx, "salut")
	assert.ErrorIs(t, err, context.Canceled)
}
