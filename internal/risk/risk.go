// Package risk is the client-side safety heuristic: a deterministic keyword
// scan over free text, bucketed into four ordered severity tiers.
package risk

import "strings"

// Level is a closed severity tier. Higher values are more severe.
type Level int

const (
	Low Level = iota + 1
	Medium
	High
	Critical
)

func (l Level) String() string {
	switch l {
	case Critical:
		return "critical"
	case High:
		return "high"
	case Medium:
		return "medium"
	case Low:
		return "low"
	}
	return "unknown"
}

// AtLeast reports whether l is as severe as min. Tiers medium and above
// must raise an alert (the caller's responsibility, not Classify's).
func (l Level) AtLeast(min Level) bool { return l >= min }

// byPriority is the evaluation order: most severe tier first, so a message
// holding both a critical and a low keyword classifies critical.
var byPriority = []Level{Critical, High, Medium, Low}

var keywords = map[Level][]string{
	Critical: {"suicide", "me tuer", "en finir", "mourir", "mort", "disparaître"},
	High:     {"violence", "frapper", "blesser", "haine", "déteste", "agression", "menace"},
	Medium:   {"triste", "déprimé", "seul", "isolé", "rejeté", "personne ne m'aime"},
	Low:      {"difficile", "compliqué", "problème", "ennui", "stress"},
}

// Classify maps text to its severity tier: case-insensitive substring
// containment, no tokenization, short-circuiting at the first matching tier.
// ok is false when no tier matches.
func Classify(text string) (level Level, ok bool) {
	lower := strings.ToLower(text)
	for _, l := range byPriority {
		for _, kw := range keywords[l] {
			if strings.Contains(lower, kw) {
				return l, true
			}
		}
	}
	return 0, false
}

// Match returns the keywords of the given tier present in text, for the
// alert payload.
func Match(text string, level Level) []string {
	lower := strings.ToLower(text)
	var matched []string
	for _, kw := range keywords[level] {
		if strings.Contains(lower, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}

// Keywords exposes a tier's phrase list as a copy.
func Keywords(level Level) []string {
	return append([]string(nil), keywords[level]...)
}
