package model

// Tag is a predefined journal tag, kept in sync with the backend catalog.
type Tag struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Color    string `json:"color"`
	Category string `json:"category"`
}

var TagCategories = []string{"Activité", "Social", "École", "Émotion", "Vie", "Important"}

var PredefinedTags = []Tag{
	{ID: "tag_school", Name: "École", Icon: "🏫", Color: "#3b82f6", Category: "Activité"},
	{ID: "tag_sport", Name: "Sport", Icon: "⚽", Color: "#ef4444", Category: "Activité"},
	{ID: "tag_creativity", Name: "Créativité", Icon: "🎨", Color: "#a855f7", Category: "Activité"},
	{ID: "tag_friends", Name: "Amis", Icon: "👥", Color: "#10b981", Category: "Social"},
	{ID: "tag_family", Name: "Famille", Icon: "👨‍👩‍👧", Color: "#f59e0b", Category: "Social"},
	{ID: "tag_homework", Name: "Devoirs", Icon: "📚", Color: "#6b7280", Category: "École"},
	{ID: "tag_thoughts", Name: "Pensées", Icon: "💭", Color: "#8b5cf6", Category: "Émotion"},
	{ID: "tag_emotions", Name: "Émotions", Icon: "❤️", Color: "#ec4899", Category: "Émotion"},
	{ID: "tag_difficulty", Name: "Difficulté", Icon: "😟", Color: "#dc2626", Category: "Émotion"},
	{ID: "tag_event", Name: "Événement", Icon: "🎉", Color: "#f97316", Category: "Vie"},
	{ID: "tag_success", Name: "Réussite", Icon: "🌟", Color: "#fbbf24", Category: "Vie"},
	{ID: "tag_help", Name: "Besoin d'aide", Icon: "🆘", Color: "#b91c1c", Category: "Important"},
}

func TagByID(id string) (Tag, bool) {
	for _, t := range PredefinedTags {
		if t.ID == id {
			return t, true
		}
	}
	return Tag{}, false
}

func TagsByCategory(category string) []Tag {
	var out []Tag
	for _, t := range PredefinedTags {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}
