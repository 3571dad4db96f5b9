package service

import (
	"time"

	"melio/internal/model"
	"melio/internal/storage"
)

// Achievement is a journaling badge computed locally from diary progress.
type Achievement struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	Threshold   int    `json:"threshold"`
	Unlocked    bool   `json:"unlocked"`
}

var achievementCatalog = []Achievement{
	{Code: "first_entry", Name: "Premier Pas", Description: "Tu as écrit ta première entrée !", Icon: "🌱", Category: "WRITING", Threshold: 1},
	{Code: "week_streak", Name: "Semaine Parfaite", Description: "7 jours consécutifs", Icon: "🔥", Category: "STREAK", Threshold: 7},
	{Code: "writer_30", Name: "Écrivain", Description: "30 entrées dans ton journal", Icon: "📖", Category: "WRITING", Threshold: 30},
	{Code: "regular_30", Name: "Régulier", Description: "30 jours consécutifs", Icon: "🎯", Category: "STREAK", Threshold: 30},
	{Code: "champion_100", Name: "Champion", Description: "100 entrées totales", Icon: "🌟", Category: "WRITING", Threshold: 100},
	{Code: "rainbow", Name: "Arc-en-ciel", Description: "Toutes les humeurs exprimées", Icon: "🌈", Category: "SPECIAL"},
}

// Progress summarizes journaling activity for the streak widget and badges.
type Progress struct {
	TotalEntries  int                `json:"totalEntries"`
	CurrentStreak int                `json:"currentStreak"`
	BestStreak    int                `json:"bestStreak"`
	MoodCounts    map[model.Mood]int `json:"moodCounts"`
}

// StatsService derives streaks, mood tallies and achievements from the
// diary collection, and keeps the per-user diary color preference.
type StatsService struct {
	store storage.Store
	diary *DiaryService
	now   func() time.Time
}

func NewStatsService(store storage.Store, diary *DiaryService) *StatsService {
	return &StatsService{store: store, diary: diary, now: time.Now}
}

// Progress computes streaks over calendar days: the current streak counts
// back from today (or yesterday, when today has no entry yet).
func (s *StatsService) Progress(userID string) Progress {
	entries := s.diary.UserEntries(userID)

	p := Progress{
		TotalEntries: len(entries),
		MoodCounts:   make(map[model.Mood]int),
	}

	days := make(map[string]bool, len(entries))
	for _, e := range entries {
		days[e.Timestamp.Format("2006-01-02")] = true
		p.MoodCounts[e.Mood]++
	}

	today := s.now()
	day := today
	if !days[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1)
	}
	for days[day.Format("2006-01-02")] {
		p.CurrentStreak++
		day = day.AddDate(0, 0, -1)
	}

	// Best streak scans every run, not just the one ending today.
	for d := range days {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			continue
		}
		if days[t.AddDate(0, 0, -1).Format("2006-01-02")] {
			continue // not the start of a run
		}
		run := 0
		for days[t.Format("2006-01-02")] {
			run++
			t = t.AddDate(0, 0, 1)
		}
		if run > p.BestStreak {
			p.BestStreak = run
		}
	}

	return p
}

// Achievements evaluates the catalog against current progress.
func (s *StatsService) Achievements(userID string) []Achievement {
	p := s.Progress(userID)

	out := make([]Achievement, 0, len(achievementCatalog))
	for _, a := range achievementCatalog {
		switch a.Category {
		case "WRITING":
			a.Unlocked = p.TotalEntries >= a.Threshold
		case "STREAK":
			a.Unlocked = p.BestStreak >= a.Threshold
		case "SPECIAL":
			if a.Code == "rainbow" {
				a.Unlocked = len(p.MoodCounts) == 5
			}
		}
		out = append(out, a)
	}
	return out
}

// ColorPreference is the student's preferred diary color, persisted per user.
func (s *StatsService) ColorPreference(userID string) model.DiaryColor {
	id, err := s.store.Get(storage.KeyDiaryColorPref(userID))
	if err != nil {
		return model.DiaryColors[0]
	}
	return model.ColorByID(id)
}

func (s *StatsService) SetColorPreference(userID, colorID string) {
	s.store.Set(storage.KeyDiaryColorPref(userID), model.ColorByID(colorID).ID)
}
