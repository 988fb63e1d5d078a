package addon

import (
	"io"
	"log/slog"
	"testing"

	"msa-addon/internal/catalog"
)

const (
	testBase  = "http://media.local:8080/media/"
	showImage = "https://img.example.com/show.jpg"
	filmImage = "https://img.example.com/film.jpg"
)

// newTestStore returns a catalog with a series (id 7, seasons 1 and 2 with
// episodes 1 and 2 each) and a movie (id 3).
func newTestStore(t *testing.T) *catalog.Store {
	t.Helper()
	snap, err := catalog.NewSnapshot([]catalog.Title{
		{
			ID:          7,
			Name:        "Show",
			Description: "a show",
			Kind:        catalog.KindSeries,
			Image:       showImage,
			Seasons: catalog.Seasons{
				2: {
					2: {Title: "Finale", Source: "show/s02e02.mkv"},
					1: {Title: "Return", Source: "show/s02e01.mkv"},
				},
				1: {
					2: {Title: "Second", Source: "show/s01e02.mkv"},
					1: {Title: "Pilot", Source: "show/s01e01.mkv"},
				},
			},
		},
		{
			ID:          3,
			Name:        "Film",
			Description: "a film",
			Kind:        catalog.KindMovie,
			Image:       filmImage,
			Source:      "film/film.mkv",
		},
	})
	if err != nil {
		t.Fatalf("build snapshot: %v", err)
	}
	return catalog.NewStore(snap)
}

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	sources, err := NewURLSourceResolver(testBase)
	if err != nil {
		t.Fatalf("source resolver: %v", err)
	}
	return NewResolver(newTestStore(t), sources)
}

func mustEncode(t *testing.T, id ID) string {
	t.Helper()
	token, err := Encode(id)
	if err != nil {
		t.Fatalf("encode %+v: %v", id, err)
	}
	return token
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}
