package game

import "github.com/oriolpb/songuess/internal/db"

// Hints are the derived clues a player sees before guessing correctly.
type Hints struct {
	Year      int    `json:"year"`
	Genre     string `json:"genre"`
	Album     string `json:"album"`
	Artist    string `json:"artist"`
	TitleHint string `json:"title_hint"`
}

// SongView is the outbound projection of a song. Title and Artists are
// only present in the full view; the hint view must never carry the
// answer.
type SongView struct {
	ID       string `json:"id"`
	Audio    string `json:"audio"`
	ImageURL string `json:"image_url"`
	Hints    Hints  `json:"hints"`
	Title    string `json:"title,omitempty"`
	Artists  string `json:"artists,omitempty"`
}

// HintView projects a song for an active round: playable audio, cover art
// and derived hints, with the title reduced to its first half.
func HintView(s *db.Song) SongView {
	return SongView{
		ID:       s.ID,
		Audio:    s.Audio,
		ImageURL: s.ImageURL,
		Hints: Hints{
			Year:      s.Year,
			Genre:     s.Genre,
			Album:     s.Album,
			Artist:    s.Artists,
			TitleHint: titleHint(s.Title),
		},
	}
}

// FullView projects a song including the answer. It is reserved for the
// correct-guess case and explicit reveals.
func FullView(s *db.Song) SongView {
	view := HintView(s)
	view.Title = s.Title
	view.Artists = s.Artists
	return view
}

// titleHint returns the first half of the title's characters.
func titleHint(title string) string {
	runes := []rune(title)
	return string(runes[:len(runes)/2])
}
