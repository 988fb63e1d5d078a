package catalog

// Kind is the content kind of a Title.
type Kind string

const (
	KindMovie  Kind = "movie"
	KindSeries Kind = "series"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindMovie || k == KindSeries
}

// MaxNumber is the largest title id, season or episode number the catalog
// accepts. It matches the width of the identifier fields handed to clients.
const MaxNumber = 999

// Episode is a single playable entry nested under a series Title.
type Episode struct {
	Title string
	// Source is the episode's locator relative to the media root.
	Source string
}

// Seasons maps season number -> episode number -> Episode.
type Seasons map[uint]map[uint]Episode

// Title is a top-level catalog entry.
type Title struct {
	ID          uint
	Name        string
	Description string
	Kind        Kind
	Image       string

	// Source is only set for movies.
	Source string
	// Seasons is only set for series.
	Seasons Seasons
}

// Episode looks up the (season, episode) pair of a series.
func (t Title) Episode(season, episode uint) (Episode, bool) {
	eps, ok := t.Seasons[season]
	if !ok {
		return Episode{}, false
	}
	ep, ok := eps[episode]
	return ep, ok
}

// EpisodeCount returns the number of episodes across all seasons.
func (t Title) EpisodeCount() int {
	n := 0
	for _, eps := range t.Seasons {
		n += len(eps)
	}
	return n
}
