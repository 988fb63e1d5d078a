package catalog

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

const testImage = "https://img.example.com/poster.jpg"

func testSeries(id uint) Title {
	return Title{
		ID:    id,
		Name:  "Show",
		Kind:  KindSeries,
		Image: testImage,
		Seasons: Seasons{
			1: {1: {Title: "Pilot", Source: "show/s01e01.mkv"}},
		},
	}
}

func testMovie(id uint) Title {
	return Title{ID: id, Name: "Film", Kind: KindMovie, Image: testImage, Source: "film/film.mkv"}
}

// writeFile creates name under fs with the given contents.
func writeFile(t *testing.T, fs afero.Fs, name, contents string) {
	t.Helper()
	if err := fs.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", name, err)
	}
	if err := afero.WriteFile(fs, name, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

// writeLibrary lays out a catalog with one series (id 7) and one movie (id 3).
func writeLibrary(t *testing.T, fs afero.Fs, root string) {
	t.Helper()
	writeFile(t, fs, filepath.Join(root, "meta.json"), `{
		"7": {"type": "series", "name": "Show", "image": "https://img.example.com/show.jpg", "description": "a show", "folder": "show"},
		"3": {"type": "movie", "name": "Film", "image": "https://img.example.com/film.jpg", "description": "a film", "folder": "film"}
	}`)
	writeFile(t, fs, filepath.Join(root, "show", "meta.json"), `{
		"1": {"1": {"title": "Pilot", "file": "s01e01.mkv"}, "2": {"title": "Second", "file": "s01e02.mkv"}},
		"2": {"1": {"title": "Return", "file": "s02e01.mkv"}}
	}`)
	writeFile(t, fs, filepath.Join(root, "film", "meta.json"), `{"1": {"1": {"title": "Film", "file": "film.mkv"}}}`)
}
