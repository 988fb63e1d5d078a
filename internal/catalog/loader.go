package catalog

import (
	"fmt"
	"path"
	"path/filepath"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/spf13/afero"
)

// MetaFile is the metadata file name expected at the media root and inside
// every title folder.
const MetaFile = "meta.json"

// titleMeta is one entry of <root>/meta.json.
type titleMeta struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Folder      string `json:"folder"`
}

// episodeMeta is one entry of <root>/<folder>/meta.json.
type episodeMeta struct {
	Title string `json:"title"`
	File  string `json:"file"`
}

// LoadSnapshot reads the catalog metadata under root and returns a validated
// snapshot. Stored sources are "<folder>/<file>" relative to root.
func LoadSnapshot(fs afero.Fs, root string) (*Snapshot, error) {
	var index map[string]titleMeta
	if err := readJSON(fs, filepath.Join(root, MetaFile), &index); err != nil {
		return nil, err
	}

	titles := make([]Title, 0, len(index))
	for key, meta := range index {
		id, err := parseNumber(key)
		if err != nil {
			return nil, fmt.Errorf("%w: title key %q: %v", ErrInvalidCatalog, key, err)
		}
		t, err := loadTitle(fs, root, id, meta)
		if err != nil {
			return nil, err
		}
		titles = append(titles, t)
	}

	return NewSnapshot(titles)
}

// Folders returns the folder of every title listed in <root>/meta.json.
// The watcher uses it to decide which directories to observe.
func Folders(fs afero.Fs, root string) ([]string, error) {
	var index map[string]titleMeta
	if err := readJSON(fs, filepath.Join(root, MetaFile), &index); err != nil {
		return nil, err
	}
	folders := make([]string, 0, len(index))
	for _, meta := range index {
		if filepath.IsLocal(meta.Folder) {
			folders = append(folders, filepath.Join(root, meta.Folder))
		}
	}
	return folders, nil
}

func loadTitle(fs afero.Fs, root string, id uint, meta titleMeta) (Title, error) {
	t := Title{
		ID:          id,
		Name:        meta.Name,
		Description: meta.Description,
		Kind:        Kind(meta.Type),
		Image:       meta.Image,
	}

	if meta.Folder == "" || !filepath.IsLocal(meta.Folder) {
		return Title{}, fmt.Errorf("%w: title %d: folder %q must be a relative path inside the media root", ErrInvalidCatalog, id, meta.Folder)
	}

	var raw map[string]map[string]episodeMeta
	if err := readJSON(fs, filepath.Join(root, meta.Folder, MetaFile), &raw); err != nil {
		return Title{}, fmt.Errorf("title %d: %w", id, err)
	}

	seasons := make(Seasons, len(raw))
	for sKey, eps := range raw {
		season, err := parseNumber(sKey)
		if err != nil {
			return Title{}, fmt.Errorf("%w: title %d: season key %q: %v", ErrInvalidCatalog, id, sKey, err)
		}
		if _, dup := seasons[season]; dup {
			return Title{}, fmt.Errorf("%w: title %d: season %d listed more than once", ErrInvalidCatalog, id, season)
		}
		seasons[season] = make(map[uint]Episode, len(eps))
		for eKey, ep := range eps {
			episode, err := parseNumber(eKey)
			if err != nil {
				return Title{}, fmt.Errorf("%w: title %d: season %d episode key %q: %v", ErrInvalidCatalog, id, season, eKey, err)
			}
			if _, dup := seasons[season][episode]; dup {
				return Title{}, fmt.Errorf("%w: title %d: season %d episode %d listed more than once", ErrInvalidCatalog, id, season, episode)
			}
			src := ""
			if ep.File != "" {
				if !filepath.IsLocal(filepath.FromSlash(ep.File)) {
					return Title{}, fmt.Errorf("%w: title %d: season %d episode %d: file %q must be a relative path inside the title folder", ErrInvalidCatalog, id, season, episode, ep.File)
				}
				src = path.Join(filepath.ToSlash(meta.Folder), ep.File)
			}
			seasons[season][episode] = Episode{Title: ep.Title, Source: src}
		}
	}

	if t.Kind != KindMovie {
		t.Seasons = seasons
		return t, nil
	}

	// A movie's folder holds a single entry at the 1/1 sentinel.
	ep, ok := Title{Seasons: seasons}.Episode(1, 1)
	if !ok || len(seasons) != 1 || len(seasons[1]) != 1 {
		return Title{}, fmt.Errorf("%w: title %d: movie folder must contain exactly one entry at season 1 episode 1", ErrInvalidCatalog, id)
	}
	t.Source = ep.Source
	return t, nil
}

func readJSON(fs afero.Fs, name string, v any) error {
	b, err := afero.ReadFile(fs, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrInvalidCatalog, name, err)
	}
	return nil
}

func parseNumber(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(n), nil
}
