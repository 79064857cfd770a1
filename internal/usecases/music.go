package usecases

import (
	"aura_journal/internal/models"

	"github.com/google/uuid"
)

func link(s string) *string { return &s }

func track(mood models.Mood, title, artist, genre string, spotify, youtube *string) models.MusicRecommendation {
	return models.MusicRecommendation{
		// stable across restarts so clients can keep references
		ID:         uuid.NewSHA1(uuid.NameSpaceURL, []byte("aura-journal:music:"+title+":"+artist)).String(),
		Mood:       mood,
		Title:      title,
		Artist:     artist,
		Genre:      genre,
		SpotifyURL: spotify,
		YoutubeURL: youtube,
	}
}

var musicCatalog = []models.MusicRecommendation{
	track(models.MoodHappy, "Good 4 U", "Olivia Rodrigo", "Pop", link("https://open.spotify.com/track/4ZtFanR9U6ndgddUvNcjcG"), link("https://www.youtube.com/watch?v=gNi_6U5Pm_o")),
	track(models.MoodHappy, "Uptown Funk", "Mark Ronson ft. Bruno Mars", "Funk", link("https://open.spotify.com/track/32OlwWuMpZ6b0aN2RZOeMS"), link("https://www.youtube.com/watch?v=OPf0YbXqDm0")),
	track(models.MoodCalm, "Weightless", "Marconi Union", "Ambient", nil, link("https://www.youtube.com/watch?v=UfcAVejslrU")),
	track(models.MoodCalm, "River", "Joni Mitchell", "Folk", link("https://open.spotify.com/track/3mAJkMqS2z3UCOoYJm7btc"), link("https://www.youtube.com/watch?v=3NH-ctddY9o")),
	track(models.MoodSad, "Someone Like You", "Adele", "Ballad", link("https://open.spotify.com/track/1zwMYTA5nlNjZxYrvBB2pV"), link("https://www.youtube.com/watch?v=hLQl3WQQoQ0")),
	track(models.MoodSad, "The Sound of Silence", "Simon & Garfunkel", "Folk", link("https://open.spotify.com/track/5AEDGEhgESYFNdKpn2TJJx"), link("https://www.youtube.com/watch?v=4fWyzwo1xg0")),
	track(models.MoodExcited, "Can't Stop the Feeling!", "Justin Timberlake", "Pop", link("https://open.spotify.com/track/6RUKPb4LETWmmr3iAEQktW"), link("https://www.youtube.com/watch?v=ru0K8uYEZWw")),
	track(models.MoodExcited, "High Hopes", "Panic! At The Disco", "Pop Rock", link("https://open.spotify.com/track/1rqqCSm0Qe4I9rUvWncaom"), link("https://www.youtube.com/watch?v=IPXIgEAGe4U")),
	track(models.MoodAnxious, "Breathe", "Télépopmusik", "Electronic", link("https://open.spotify.com/track/4zS6iFTFmYvI6qGJc0FtUr"), link("https://www.youtube.com/watch?v=vyut3GyQtn0")),
	track(models.MoodAnxious, "Mad World", "Gary Jules", "Alternative", link("https://open.spotify.com/track/3JOVTQ5h8HGFnDdp4VT3MP"), link("https://www.youtube.com/watch?v=4N3N1MlvVc4")),
}

// MusicRecommendations returns the seeded catalog, filtered by mood when one is given.
func MusicRecommendations(mood *models.Mood) []models.MusicRecommendation {
	out := make([]models.MusicRecommendation, 0, len(musicCatalog))
	for _, rec := range musicCatalog {
		if mood != nil && rec.Mood != *mood {
			continue
		}
		out = append(out, rec.Clone())
	}
	return out
}
