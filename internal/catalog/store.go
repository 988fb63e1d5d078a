package catalog

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"sync/atomic"

	"github.com/samber/lo"
)

// ErrInvalidCatalog is returned when catalog metadata fails validation.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Snapshot is an immutable, validated view of the whole catalog.
// It is safe for concurrent reads.
type Snapshot struct {
	titles map[uint]Title
	order  []uint
}

// NewSnapshot validates titles and builds a Snapshot from them.
// Titles and their season maps are copied; later changes to the input do not
// leak into the snapshot.
func NewSnapshot(titles []Title) (*Snapshot, error) {
	byID := make(map[uint]Title, len(titles))
	for _, t := range titles {
		if err := validateTitle(t); err != nil {
			return nil, err
		}
		if _, dup := byID[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate title id %d", ErrInvalidCatalog, t.ID)
		}
		byID[t.ID] = cloneTitle(t)
	}

	order := lo.Keys(byID)
	slices.Sort(order)

	return &Snapshot{titles: byID, order: order}, nil
}

// Title returns the title with the given id.
func (s *Snapshot) Title(id uint) (Title, bool) {
	t, ok := s.titles[id]
	return t, ok
}

// Titles returns every title ordered by id ascending.
func (s *Snapshot) Titles() []Title {
	return lo.Map(s.order, func(id uint, _ int) Title { return s.titles[id] })
}

// Len returns the number of titles.
func (s *Snapshot) Len() int {
	return len(s.order)
}

// EpisodeCount returns the number of episodes across all series.
func (s *Snapshot) EpisodeCount() int {
	n := 0
	for _, t := range s.titles {
		n += t.EpisodeCount()
	}
	return n
}

// Store publishes catalog snapshots. Readers always observe one complete
// snapshot; Replace swaps the whole catalog in a single step.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore returns a Store serving snap. A nil snap is treated as an empty catalog.
func NewStore(snap *Snapshot) *Store {
	s := &Store{}
	s.Replace(snap)
	return s
}

// Snapshot returns the currently published snapshot.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Replace publishes snap as the current catalog.
func (s *Store) Replace(snap *Snapshot) {
	if snap == nil {
		snap = &Snapshot{titles: map[uint]Title{}}
	}
	s.current.Store(snap)
}

func validateTitle(t Title) error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: title %d: %s", ErrInvalidCatalog, t.ID, fmt.Sprintf(format, args...))
	}

	if t.ID > MaxNumber {
		return fail("id exceeds %d", MaxNumber)
	}
	if t.Name == "" {
		return fail("name is empty")
	}
	if !t.Kind.Valid() {
		return fail("unknown kind %q", t.Kind)
	}
	if u, err := url.Parse(t.Image); err != nil || !u.IsAbs() {
		return fail("image %q is not an absolute URI", t.Image)
	}

	switch t.Kind {
	case KindMovie:
		if t.Source == "" {
			return fail("movie has no source")
		}
		if len(t.Seasons) > 0 {
			return fail("movie must not carry seasons")
		}
	case KindSeries:
		if t.EpisodeCount() == 0 {
			return fail("series has no episodes")
		}
		for season, eps := range t.Seasons {
			if season == 0 || season > MaxNumber {
				return fail("season %d out of range 1..%d", season, MaxNumber)
			}
			for episode, ep := range eps {
				if episode == 0 || episode > MaxNumber {
					return fail("season %d: episode %d out of range 1..%d", season, episode, MaxNumber)
				}
				if ep.Source == "" {
					return fail("season %d episode %d has no source", season, episode)
				}
			}
		}
	}
	return nil
}

func cloneTitle(t Title) Title {
	if t.Seasons == nil {
		return t
	}
	seasons := make(Seasons, len(t.Seasons))
	for season, eps := range t.Seasons {
		seasons[season] = make(map[uint]Episode, len(eps))
		for episode, ep := range eps {
			seasons[season][episode] = ep
		}
	}
	t.Seasons = seasons
	return t
}
