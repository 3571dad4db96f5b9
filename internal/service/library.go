package service

import "melio/internal/model"

// LibraryService serves the curated peer-support library. The catalog ships
// with the app; there is no remote call on this path.
type LibraryService struct {
	resources []model.Resource
}

var libraryCategories = map[string]string{
	"bullying":    "Harcèlement",
	"emotions":    "Émotions",
	"friendship":  "Amitié",
	"self-esteem": "Estime de soi",
	"help":        "Aide",
}

var libraryCatalog = []model.Resource{
	{
		ID: "1", Title: "Comment j'ai surmonté le harcèlement", Type: "testimony", Category: "bullying",
		Description: "Témoignage de Sarah, 16 ans, qui partage son expérience et comment elle a retrouvé confiance en elle.",
		Duration:    "8 min", Author: "Sarah M.", Rating: 4.8, Views: 1247,
	},
	{
		ID: "2", Title: "Gérer ses émotions au quotidien", Type: "video", Category: "emotions",
		Description: "Techniques simples pour comprendre et gérer tes émotions, expliquées par une psychologue.",
		Duration:    "12 min", Author: "Dr. Claire Dubois", Rating: 4.9, Views: 2156,
	},
	{
		ID: "3", Title: "Les vrais amis", Type: "book", Category: "friendship",
		Description: "Extrait du livre \"Adolescence et amitié\" - Comment reconnaître les vraies amitiés.",
		Author:      "Marie Rousseau", Rating: 4.6, Views: 892,
	},
	{
		ID: "4", Title: "Tu es unique et précieux", Type: "video", Category: "self-esteem",
		Description: "Film court inspirant sur l'acceptation de soi et la valorisation de ses différences.",
		Duration:    "6 min", Author: "Collectif Jeunesse", Rating: 4.7, Views: 3421,
	},
	{
		ID: "5", Title: "Où trouver de l'aide ?", Type: "article", Category: "help",
		Description: "Guide complet des ressources disponibles : numéros d'urgence, associations, professionnels.",
		Author:      "Équipe Melio", Rating: 4.9, Views: 1845,
	},
	{
		ID: "6", Title: "Mon histoire de résilience", Type: "testimony", Category: "bullying",
		Description: "Témoignage de Tom qui raconte comment il a transformé sa souffrance en force.",
		Duration:    "10 min", Author: "Tom L.", Rating: 4.8, Views: 967,
	},
}

func NewLibraryService() *LibraryService {
	return &LibraryService{resources: libraryCatalog}
}

// Resources filters by category; an empty or "all" category returns
// everything.
func (s *LibraryService) Resources(category string) []model.Resource {
	if category == "" || category == "all" {
		return append([]model.Resource(nil), s.resources...)
	}
	var out []model.Resource
	for _, r := range s.resources {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}

func (s *LibraryService) Resource(id string) (model.Resource, bool) {
	for _, r := range s.resources {
		if r.ID == id {
			return r, true
		}
	}
	return model.Resource{}, false
}

// CategoryLabel translates a category id for display.
func (s *LibraryService) CategoryLabel(category string) string {
	if label, ok := libraryCategories[category]; ok {
		return label
	}
	return category
}
