package service

import (
	"encoding/json"
	"sync"
	"time"

	"melio/internal/logger"
	"melio/internal/model"
	"melio/internal/risk"
	"melio/internal/storage"

	"github.com/google/uuid"
)

// AlertService is the persisted safety-alert collection reviewed by staff.
// Alerts are only ever created by the risk heuristic and resolved by staff;
// nothing deletes them.
type AlertService struct {
	mu     sync.RWMutex
	store  storage.Store
	alerts []model.Alert

	now   func() time.Time
	newID func() string
}

func NewAlertService(store storage.Store) *AlertService {
	s := &AlertService{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
	if raw, err := store.Get(storage.KeyAlerts); err == nil {
		json.Unmarshal([]byte(raw), &s.alerts)
	}
	return s
}

// AlertData is Add's input; id and timestamp are stamped here.
type AlertData struct {
	StudentID   string
	StudentName string
	Message     string
	RiskLevel   string
	Keywords    []string
	Context     string
	SchoolCode  string
}

func (s *AlertService) Add(data AlertData) model.Alert {
	alert := model.Alert{
		ID:          s.newID(),
		StudentID:   data.StudentID,
		StudentName: data.StudentName,
		Message:     data.Message,
		RiskLevel:   data.RiskLevel,
		Timestamp:   s.now(),
		Resolved:    false,
		Keywords:    data.Keywords,
		Context:     data.Context,
		SchoolCode:  data.SchoolCode,
	}

	s.mu.Lock()
	s.alerts = append([]model.Alert{alert}, s.alerts...)
	s.persistLocked()
	s.mu.Unlock()

	logger.Info("alert.raised", "alert", alert.ID, "student", alert.StudentID, "level", alert.RiskLevel)
	return alert
}

// RaiseFromMessage runs the heuristic over a chat message and, for tiers
// medium and above, records exactly one alert carrying the matched keywords
// and the message verbatim.
func (s *AlertService) RaiseFromMessage(user model.User, message, context string) (model.Alert, risk.Level, bool) {
	level, ok := risk.Classify(message)
	if !ok {
		return model.Alert{}, 0, false
	}
	if !level.AtLeast(risk.Medium) {
		return model.Alert{}, level, false
	}
	alert := s.Add(AlertData{
		StudentID:   user.ID,
		StudentName: user.Name,
		Message:     message,
		RiskLevel:   level.String(),
		Keywords:    risk.Match(message, level),
		Context:     context,
		SchoolCode:  user.SchoolCode,
	})
	return alert, level, true
}

// Resolve flips an alert to resolved. One-way and idempotent: resolving a
// resolved alert changes nothing.
func (s *AlertService) Resolve(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.alerts {
		if s.alerts[i].ID == id {
			if !s.alerts[i].Resolved {
				s.alerts[i].Resolved = true
				s.persistLocked()
				logger.Info("alert.resolved", "alert", id)
			}
			return true
		}
	}
	return false
}

// Unresolved filters open alerts, optionally by school code.
func (s *AlertService) Unresolved(schoolCode string) []model.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Alert
	for _, a := range s.alerts {
		if a.Resolved {
			continue
		}
		if schoolCode != "" && a.SchoolCode != schoolCode {
			continue
		}
		out = append(out, a)
	}
	return out
}

func (s *AlertService) All(schoolCode string) []model.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Alert
	for _, a := range s.alerts {
		if schoolCode != "" && a.SchoolCode != schoolCode {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Stats aggregates the collection for the dashboard. total always equals
// resolved + unresolved, and the per-tier tally sums to total.
func (s *AlertService) Stats(schoolCode string) model.AlertStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := model.AlertStats{ByRiskLevel: make(map[string]int)}
	for _, a := range s.alerts {
		if schoolCode != "" && a.SchoolCode != schoolCode {
			continue
		}
		stats.Total++
		if a.Resolved {
			stats.Resolved++
		}
		stats.ByRiskLevel[a.RiskLevel]++
	}
	stats.Unresolved = stats.Total - stats.Resolved
	return stats
}

func (s *AlertService) persistLocked() {
	raw, err := json.Marshal(s.alerts)
	if err != nil {
		return
	}
	s.store.Set(storage.KeyAlerts, string(raw))
}
