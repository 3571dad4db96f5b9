package risk

import "math/rand"

// Canned bot replies per tier for the offline chatbot path, used when the
// backend cannot be reached. The tone mirrors the hosted bot.
var responses = map[Level][]string{
	Critical: {
		"Je suis vraiment inquiet pour toi. Ces pensées sont très préoccupantes. Tu n'es pas seul(e), et il y a des personnes qui peuvent t'aider immédiatement. J'ai alerté un agent social de ton école qui va te contacter très bientôt.",
		"Ce que tu ressens est très difficile, et je comprends ta souffrance. Il est important que tu parles à quelqu'un tout de suite. Un professionnel de ton école va être prévenu pour t'accompagner.",
	},
	High: {
		"Je vois que tu traverses une période très difficile avec des situations de violence. C'est courageux de m'en parler. Un agent social va être informé pour t'aider à trouver des solutions.",
		"Personne ne devrait subir de violence. Tu as le droit d'être en sécurité. Je signale ta situation pour qu'un adulte de confiance puisse t'accompagner.",
	},
	Medium: {
		"Je comprends que tu te sentes triste et isolé(e). Ces sentiments sont difficiles à porter. Sache que tu comptes et que des personnes sont là pour t'écouter.",
		"Se sentir seul(e) est vraiment douloureux. Tu es courageux/se de partager ces émotions avec moi. N'hésite pas à continuer à me parler.",
	},
	Low: {
		"Je vois que tu rencontres quelques difficultés. C'est normal d'avoir des moments compliqués. Comment puis-je t'aider aujourd'hui ?",
		"Les problèmes peuvent parfois sembler insurmontables, mais tu n'es pas seul(e). Raconte-moi ce qui te préoccupe.",
	},
}

var generalResponses = []string{
	"Merci de me faire confiance. Je suis là pour t'écouter sans jugement. Comment te sens-tu en ce moment ?",
	"C'est bien de prendre le temps de parler de ce que tu ressens. Que souhaites-tu partager avec moi aujourd'hui ?",
	"Je suis content(e) que tu viennes discuter avec moi. Ton bien-être est important. Comment puis-je t'accompagner ?",
}

// Response picks a canned reply for the tier, or a general one when the
// message matched nothing.
func Response(level Level, matched bool) string {
	pool := generalResponses
	if matched {
		if r, ok := responses[level]; ok {
			pool = r
		}
	}
	return pool[rand.Intn(len(pool))]
}
