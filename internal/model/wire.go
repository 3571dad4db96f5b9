package model

import "time"

// Wire shapes of the Melio backend. The journal API speaks the backend's
// French mood and risk enums; conversion to the local shapes lives here so
// the stores never see wire values.

type LoginRequest struct {
	SchoolCode        string `json:"schoolCode"`
	StudentIdentifier string `json:"studentIdentifier"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Student      *struct {
		ID        string `json:"id"`
		SchoolID  string `json:"schoolId"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		ClassName string `json:"className"`
	} `json:"student"`
}

// WireMood is the backend journal mood enum.
type WireMood string

const (
	WireMoodVerySad   WireMood = "TRES_TRISTE"
	WireMoodSad       WireMood = "TRISTE"
	WireMoodNeutral   WireMood = "NEUTRE"
	WireMoodHappy     WireMood = "CONTENT"
	WireMoodVeryHappy WireMood = "TRES_HEUREUX"
)

var moodToWire = map[Mood]WireMood{
	MoodVerySad:   WireMoodVerySad,
	MoodSad:       WireMoodSad,
	MoodNeutral:   WireMoodNeutral,
	MoodHappy:     WireMoodHappy,
	MoodVeryHappy: WireMoodVeryHappy,
}

var moodFromWire = map[WireMood]Mood{
	WireMoodVerySad:   MoodVerySad,
	WireMoodSad:       MoodSad,
	WireMoodNeutral:   MoodNeutral,
	WireMoodHappy:     MoodHappy,
	WireMoodVeryHappy: MoodVeryHappy,
}

func (m Mood) Wire() WireMood {
	if w, ok := moodToWire[m]; ok {
		return w
	}
	return WireMoodNeutral
}

func (w WireMood) Local() Mood {
	if m, ok := moodFromWire[w]; ok {
		return m
	}
	return MoodNeutral
}

type JournalEntryWire struct {
	ID          string     `json:"id"`
	StudentID   string     `json:"studentId"`
	Mood        WireMood   `json:"mood"`
	ContentText string     `json:"contentText"`
	Color       string     `json:"color,omitempty"`
	CoverImage  string     `json:"coverImage,omitempty"`
	TagIDs      []string   `json:"tagIds,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	AIRiskScore *int       `json:"aiRiskScore,omitempty"`
	AIRiskLevel string     `json:"aiRiskLevel,omitempty"`
	AISummary   string     `json:"aiSummary,omitempty"`
	AIAdvice    string     `json:"aiAdvice,omitempty"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
}

// Local converts a backend journal entry to the local diary shape.
func (w JournalEntryWire) Local() DiaryEntry {
	return DiaryEntry{
		ID:          w.ID,
		UserID:      w.StudentID,
		Content:     w.ContentText,
		Mood:        w.Mood.Local(),
		Timestamp:   w.CreatedAt,
		Color:       w.Color,
		CoverImage:  w.CoverImage,
		TagIDs:      w.TagIDs,
		Private:     true,
		Synced:      true,
		AIRiskScore: w.AIRiskScore,
		AIRiskLevel: w.AIRiskLevel,
		AISummary:   w.AISummary,
		AIAdvice:    w.AIAdvice,
	}
}

type CreateJournalEntry struct {
	Mood        WireMood `json:"mood"`
	ContentText string   `json:"contentText"`
	Color       string   `json:"color,omitempty"`
	CoverImage  string   `json:"coverImage,omitempty"`
	TagIDs      []string `json:"tagIds,omitempty"`
}

type ChatSendRequest struct {
	Content string `json:"content"`
}

// ChatSendResponse is the atomic pair returned by the chat send endpoint.
type ChatSendResponse struct {
	UserMessage ChatMessage `json:"userMessage"`
	BotResponse ChatMessage `json:"botResponse"`
}

type CreateReport struct {
	SchoolID  string  `json:"schoolId"`
	StudentID string  `json:"studentId,omitempty"`
	Content   string  `json:"content"`
	Urgency   Urgency `json:"urgency"`
	Anonymous bool    `json:"anonymous"`
}
