// Package storage is the device-local persistent store. Everything the app
// keeps across sessions (session user, tokens, diary and alert collections,
// per-message read flags) lives behind the narrow KV contract so the
// backing medium can be swapped: sqlite file on device, memory in tests.
package storage

import "errors"

// ErrNotFound is returned by Get for a key that was never set or was removed.
var ErrNotFound = errors.New("storage: key not found")

// Store is a string key-value store with namespaced keys.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// Keys are namespaced by user or message id where state is per-user.
const (
	KeyUser         = "melio_user"
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyAlerts       = "melio_alerts"
)

func KeyDiary(userID string) string          { return "melio_diary_" + userID }
func KeyChatRead(messageID string) string    { return "chat_read_" + messageID }
func KeyChatCleared(userID string) string    { return "chat_cleared_" + userID }
func KeyChatClearedAt(userID string) string  { return "chat_cleared_timestamp_" + userID }
func KeyDiaryColorPref(userID string) string { return "melio_color_" + userID }
