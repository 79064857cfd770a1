package models

type MusicRecommendation struct {
	ID         string  `json:"id"`
	Mood       Mood    `json:"mood"`
	Title      string  `json:"title"`
	Artist     string  `json:"artist"`
	Genre      string  `json:"genre"`
	SpotifyURL *string `json:"spotifyUrl"`
	YoutubeURL *string `json:"youtubeUrl"`
}

func (m MusicRecommendation) Clone() MusicRecommendation {
	out := m
	if m.SpotifyURL != nil {
		v := *m.SpotifyURL
		out.SpotifyURL = &v
	}
	if m.YoutubeURL != nil {
		v := *m.YoutubeURL
		out.YoutubeURL = &v
	}
	return out
}
