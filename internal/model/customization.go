package model

// Diary customization catalog: the color palette and cover images a student
// can attach to an entry. Ids are what gets persisted and synced.

type DiaryColor struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Accent string `json:"accent"`
}

var DiaryColors = []DiaryColor{
	{ID: "pink", Name: "Rose", Accent: "#ec4899"},
	{ID: "purple", Name: "Violet", Accent: "#a855f7"},
	{ID: "blue", Name: "Bleu", Accent: "#3b82f6"},
	{ID: "green", Name: "Vert", Accent: "#10b981"},
	{ID: "yellow", Name: "Jaune", Accent: "#f59e0b"},
	{ID: "orange", Name: "Orange", Accent: "#f97316"},
	{ID: "red", Name: "Rouge doux", Accent: "#ef4444"},
	{ID: "gray", Name: "Gris", Accent: "#6b7280"},
}

// ColorByID falls back to the first palette color for unknown ids.
func ColorByID(id string) DiaryColor {
	for _, c := range DiaryColors {
		if c.ID == id {
			return c
		}
	}
	return DiaryColors[0]
}

type CoverImage struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

var CoverImages = []CoverImage{
	{ID: "none", Name: "Aucune image", URL: "", Category: "Aucune"},
	{ID: "sky-sunset", Name: "Coucher de soleil", URL: "/covers/sky-sunset.jpg", Category: "Nature"},
	{ID: "ocean-waves", Name: "Vagues océan", URL: "/covers/ocean-waves.jpg", Category: "Nature"},
	{ID: "forest-trees", Name: "Forêt", URL: "/covers/forest-trees.jpg", Category: "Nature"},
	{ID: "flowers-spring", Name: "Fleurs", URL: "/covers/flowers-spring.jpg", Category: "Nature"},
	{ID: "mountains", Name: "Montagnes", URL: "/covers/mountains.jpg", Category: "Nature"},
	{ID: "gradient-pink", Name: "Dégradé rose", URL: "/covers/gradient-pink.jpg", Category: "Abstrait"},
	{ID: "gradient-blue", Name: "Dégradé bleu", URL: "/covers/gradient-blue.jpg", Category: "Abstrait"},
	{ID: "gradient-purple", Name: "Dégradé violet", URL: "/covers/gradient-purple.jpg", Category: "Abstrait"},
	{ID: "watercolor", Name: "Aquarelle", URL: "/covers/watercolor.jpg", Category: "Abstrait"},
	{ID: "pastel-clouds", Name: "Nuages pastels", URL: "/covers/pastel-clouds.jpg", Category: "Abstrait"},
	{ID: "spring-garden", Name: "Jardin printemps", URL: "/covers/spring-garden.jpg", Category: "Saisons"},
	{ID: "summer-beach", Name: "Plage été", URL: "/covers/summer-beach.jpg", Category: "Saisons"},
	{ID: "autumn-leaves", Name: "Feuilles automne", URL: "/covers/autumn-leaves.jpg", Category: "Saisons"},
	{ID: "winter-snow", Name: "Neige hiver", URL: "/covers/winter-snow.jpg", Category: "Saisons"},
	{ID: "calm-lake", Name: "Lac calme", URL: "/covers/calm-lake.jpg", Category: "Émotions"},
	{ID: "peaceful-field", Name: "Champ paisible", URL: "/covers/peaceful-field.jpg", Category: "Émotions"},
	{ID: "hope-sunrise", Name: "Lever de soleil", URL: "/covers/hope-sunrise.jpg", Category: "Émotions"},
	{ID: "strength-tree", Name: "Arbre fort", URL: "/covers/strength-tree.jpg", Category: "Émotions"},
}

// CoverByID falls back to the "none" cover for empty or unknown ids.
func CoverByID(id string) CoverImage {
	if id == "" {
		return CoverImages[0]
	}
	for _, c := range CoverImages {
		if c.ID == id {
			return c
		}
	}
	return CoverImages[0]
}
