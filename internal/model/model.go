package model

import "time"

// User is the single-slot session identity created on login.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	SchoolCode string `json:"schoolCode"`
	SchoolID   string `json:"schoolId"`
}

const RoleStudent = "student"

// Mood is one of the five ordinal journal moods.
type Mood string

const (
	MoodVerySad   Mood = "very-sad"
	MoodSad       Mood = "sad"
	MoodNeutral   Mood = "neutral"
	MoodHappy     Mood = "happy"
	MoodVeryHappy Mood = "very-happy"
)

func (m Mood) Valid() bool {
	switch m {
	case MoodVerySad, MoodSad, MoodNeutral, MoodHappy, MoodVeryHappy:
		return true
	}
	return false
}

// DiaryEntry is the local shape of a journal entry. Synced reports whether
// the entry has been accepted by the backend; unsynced entries keep their
// client-generated id until reconciliation swaps in the server id.
type DiaryEntry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Content    string    `json:"content"`
	Mood       Mood      `json:"mood"`
	Timestamp  time.Time `json:"timestamp"`
	Color      string    `json:"color,omitempty"`
	CoverImage string    `json:"coverImage,omitempty"`
	TagIDs     []string  `json:"tagIds,omitempty"`
	Private    bool      `json:"isPrivate"`
	Synced     bool      `json:"synced"`

	// AI fields only ever come back from the backend.
	AIRiskScore *int   `json:"aiRiskScore,omitempty"`
	AIRiskLevel string `json:"aiRiskLevel,omitempty"`
	AISummary   string `json:"aiSummary,omitempty"`
	AIAdvice    string `json:"aiAdvice,omitempty"`
}

type Sender string

const (
	SenderUser Sender = "USER"
	SenderBot  Sender = "BOT"
)

type ChatMessage struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"studentId"`
	Sender     Sender    `json:"sender"`
	Content    string    `json:"content"`
	ResourceID string    `json:"resourceId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Alert is raised by the chat risk heuristic for tiers medium and above.
// Alerts are never deleted; Resolved flips one way only.
type Alert struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"studentId"`
	StudentName string    `json:"studentName"`
	Message     string    `json:"message"`
	RiskLevel   string    `json:"riskLevel"`
	Timestamp   time.Time `json:"timestamp"`
	Resolved    bool      `json:"resolved"`
	Keywords    []string  `json:"keywords"`
	Context     string    `json:"context"`
	SchoolCode  string    `json:"schoolCode"`
}

// AlertStats is the read-side aggregation for the staff dashboard.
type AlertStats struct {
	Total       int            `json:"total"`
	Resolved    int            `json:"resolved"`
	Unresolved  int            `json:"unresolved"`
	ByRiskLevel map[string]int `json:"byRiskLevel"`
}

type Urgency string

const (
	UrgencyLow      Urgency = "LOW"
	UrgencyMedium   Urgency = "MEDIUM"
	UrgencyHigh     Urgency = "HIGH"
	UrgencyCritical Urgency = "CRITICAL"
)

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return true
	}
	return false
}

type Report struct {
	ID        string    `json:"id"`
	SchoolID  string    `json:"schoolId"`
	StudentID string    `json:"studentId,omitempty"`
	Content   string    `json:"content"`
	Urgency   Urgency   `json:"urgency"`
	Anonymous bool      `json:"anonymous"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Resource is a peer-support library item: a testimony, video, book
// extract or article.
type Resource struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Duration    string  `json:"duration,omitempty"`
	Author      string  `json:"author,omitempty"`
	Rating      float64 `json:"rating"`
	Views       int     `json:"views"`
}

// ChatStats mirrors the backend chat statistics payload.
type ChatStats struct {
	TotalMessages int        `json:"totalMessages"`
	UserMessages  int        `json:"userMessages"`
	BotMessages   int        `json:"botMessages"`
	LastActivity  *time.Time `json:"lastActivity"`
}
