package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"melio/internal/api"
	"melio/internal/logger"
	"melio/internal/model"
	"melio/internal/storage"

	"github.com/google/uuid"
)

const (
	chatFetchLimit = 10
	// chatWindow bounds both the "recently cleared" short-circuit and the
	// message history shown after a fetch. It papers over the gap between
	// the backend's hard delete and its read-path eventual consistency.
	chatWindow = 24 * time.Hour
)

const chatLoadFailedMsg = "Erreur lors du chargement des messages"
const chatSendFailedMsg = "Erreur lors de l'envoi du message"
const chatClearFailedMsg = "Erreur lors de l'effacement des messages"

// ChatService holds the conversation with the bot. The collection is only
// ever merged additively; reconciliation of an optimistic send swaps the
// temporary message for the server pair, never appends alongside it.
type ChatService struct {
	mu     sync.RWMutex
	store  storage.Store
	client *api.Client
	auth   *AuthService

	messages []model.ChatMessage
	unread   int
	errMsg   string

	// typingDelay paces the bot "typing" animation before a send reaches
	// the backend. A pacing device, not latency handling.
	typingDelay time.Duration
	now         func() time.Time
}

func NewChatService(store storage.Store, client *api.Client, auth *AuthService, typingDelay time.Duration) *ChatService {
	return &ChatService{
		store:       store,
		client:      client,
		auth:        auth,
		typingDelay: typingDelay,
		now:         time.Now,
	}
}

// Send pushes one user message through the backend and returns the
// persisted user message together with the bot reply. It does not touch the
// local collection; the caller decides when to splice the pair in.
func (s *ChatService) Send(ctx context.Context, content string) (model.ChatSendResponse, error) {
	user := s.auth.CurrentUser()
	if user == nil {
		return model.ChatSendResponse{}, ErrNoSession
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return model.ChatSendResponse{}, ErrEmptyMessage
	}

	// A fresh send always shows history again.
	s.store.Delete(storage.KeyChatCleared(user.ID))
	s.store.Delete(storage.KeyChatClearedAt(user.ID))

	if s.typingDelay > 0 {
		select {
		case <-time.After(s.typingDelay):
		case <-ctx.Done():
			return model.ChatSendResponse{}, ctx.Err()
		}
	}

	resp, err := s.client.SendMessage(ctx, user.ID, content)
	if err != nil {
		logger.Warn("chat.send_failed", "uid", user.ID, "err", err)
		s.setError(chatSendFailedMsg)
		return model.ChatSendResponse{}, err
	}
	logger.Info("chat.sent", "uid", user.ID, "msg", resp.UserMessage.ID)
	return resp, nil
}

// AppendOptimistic inserts a temporary user message so the send is visible
// before the backend responds. The returned id must later be handed to
// ResolveOptimistic or DropOptimistic.
func (s *ChatService) AppendOptimistic(content string) model.ChatMessage {
	user := s.auth.CurrentUser()
	temp := model.ChatMessage{
		ID:        "temp_" + uuid.NewString(),
		Sender:    model.SenderUser,
		Content:   strings.TrimSpace(content),
		CreatedAt: s.now(),
	}
	if user != nil {
		temp.StudentID = user.ID
	}
	s.mu.Lock()
	s.messages = append(s.messages, temp)
	s.mu.Unlock()
	return temp
}

// ResolveOptimistic swaps the temporary message for the server-confirmed
// pair. After it returns, the temp id no longer exists in the collection.
func (s *ChatService) ResolveOptimistic(tempID string, resp model.ChatSendResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dropLocked(tempID)
	s.messages = append(s.messages, resp.UserMessage, resp.BotResponse)
	sort.SliceStable(s.messages, func(i, j int) bool {
		return s.messages[i].CreatedAt.Before(s.messages[j].CreatedAt)
	})
}

// DropOptimistic removes a temporary message after a failed send.
func (s *ChatService) DropOptimistic(tempID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dropLocked(tempID)
}

func (s *ChatService) dropLocked(id string) {
	kept := s.messages[:0]
	for _, m := range s.messages {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	s.messages = kept
}

// Load fetches recent history and merges it into the collection without
// ever removing messages already seen. A conversation cleared less than 24
// hours ago is treated as intentionally empty and not re-fetched.
func (s *ChatService) Load(ctx context.Context) error {
	user := s.auth.CurrentUser()
	if user == nil || s.auth.AccessToken() == "" {
		return nil
	}

	if s.clearedRecently(user.ID) {
		s.mu.Lock()
		s.messages = nil
		s.unread = 0
		s.mu.Unlock()
		return nil
	}

	fetched, err := s.client.Messages(ctx, user.ID, chatFetchLimit, 0)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			// Benign: the endpoint 404s for an unauthenticated context.
			s.mu.Lock()
			s.messages = nil
			s.unread = 0
			s.mu.Unlock()
			return nil
		}
		logger.Warn("chat.load_failed", "uid", user.ID, "err", err)
		s.setError(chatLoadFailedMsg)
		return err
	}

	cutoff := s.now().Add(-chatWindow)
	s.mu.Lock()
	defer s.mu.Unlock()

	byID := make(map[string]model.ChatMessage, len(s.messages)+len(fetched))
	for _, m := range s.messages {
		byID[m.ID] = m
	}
	for _, m := range fetched {
		if m.CreatedAt.Before(cutoff) {
			continue
		}
		if _, seen := byID[m.ID]; !seen {
			byID[m.ID] = m
		}
	}

	merged := make([]model.ChatMessage, 0, len(byID))
	for _, m := range byID {
		merged = append(merged, m)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.Before(merged[j].CreatedAt)
	})
	s.messages = merged
	s.unread = s.countUnreadLocked()
	s.errMsg = ""
	return nil
}

// MarkRead flags every loaded bot message as read and zeroes the counter.
func (s *ChatService) MarkRead() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.messages {
		if m.Sender == model.SenderBot {
			s.store.Set(storage.KeyChatRead(m.ID), "true")
		}
	}
	s.unread = 0
}

// ClearAll deletes the conversation. Local state is only cleared after the
// backend confirms the bulk delete, so a failed call cannot leave the
// client and server disagreeing.
func (s *ChatService) ClearAll(ctx context.Context) error {
	user := s.auth.CurrentUser()
	if user == nil {
		return ErrNoSession
	}

	if err := s.client.DeleteAllMessages(ctx, user.ID); err != nil {
		logger.Warn("chat.clear_failed", "uid", user.ID, "err", err)
		s.setError(chatClearFailedMsg)
		return err
	}

	s.mu.Lock()
	for _, m := range s.messages {
		s.store.Delete(storage.KeyChatRead(m.ID))
	}
	s.messages = nil
	s.unread = 0
	s.mu.Unlock()

	s.store.Set(storage.KeyChatCleared(user.ID), "true")
	s.store.Set(storage.KeyChatClearedAt(user.ID), strconv.FormatInt(s.now().UnixMilli(), 10))
	logger.Info("chat.cleared", "uid", user.ID)
	return nil
}

// Stats is a passthrough to the backend's conversation counters.
func (s *ChatService) Stats(ctx context.Context) (model.ChatStats, error) {
	user := s.auth.CurrentUser()
	if user == nil {
		return model.ChatStats{}, ErrNoSession
	}
	return s.client.ChatStats(ctx, user.ID)
}

func (s *ChatService) Messages() []model.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.ChatMessage(nil), s.messages...)
}

// Unread is the count of loaded bot messages without a read flag.
func (s *ChatService) Unread() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unread
}

func (s *ChatService) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

func (s *ChatService) DismissError() {
	s.mu.Lock()
	s.errMsg = ""
	s.mu.Unlock()
}

func (s *ChatService) setError(msg string) {
	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
}

func (s *ChatService) clearedRecently(userID string) bool {
	if v, err := s.store.Get(storage.KeyChatCleared(userID)); err != nil || v != "true" {
		return false
	}
	raw, err := s.store.Get(storage.KeyChatClearedAt(userID))
	if err != nil {
		return false
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false
	}
	if s.now().Sub(time.UnixMilli(ms)) < chatWindow {
		return true
	}
	// Expired: resume fetching normally.
	s.store.Delete(storage.KeyChatCleared(userID))
	s.store.Delete(storage.KeyChatClearedAt(userID))
	return false
}

func (s *ChatService) countUnreadLocked() int {
	n := 0
	for _, m := range s.messages {
		if m.Sender != model.SenderBot {
			continue
		}
		if _, err := s.store.Get(storage.KeyChatRead(m.ID)); err != nil {
			n++
		}
	}
	return n
}
