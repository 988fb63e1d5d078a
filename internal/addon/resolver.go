package addon

import (
	"fmt"
	"slices"

	"msa-addon/internal/catalog"

	"github.com/samber/lo"
)

// CatalogSource hands out the catalog snapshot to resolve against.
// *catalog.Store implements it.
type CatalogSource interface {
	Snapshot() *catalog.Snapshot
}

// Resolver turns a resource kind and identifier into a protocol response.
// It holds no mutable state; every call reads a single catalog snapshot.
type Resolver struct {
	catalog CatalogSource
	sources SourceResolver
}

// NewResolver returns a Resolver reading from src and resolving playable
// sources with sources.
func NewResolver(src CatalogSource, sources SourceResolver) *Resolver {
	return &Resolver{catalog: src, sources: sources}
}

// Resolve dispatches on kind. token is ignored for catalog requests.
// The result is a CatalogResponse, MetaResponse or StreamResponse.
func (r *Resolver) Resolve(kind ResourceKind, token string) (any, error) {
	switch kind {
	case ResourceCatalog:
		metas, err := r.ResolveCatalog()
		if err != nil {
			return nil, err
		}
		return CatalogResponse{Metas: metas}, nil
	case ResourceMeta:
		meta, err := r.ResolveDetail(token)
		if err != nil {
			return nil, err
		}
		return MetaResponse{Meta: meta}, nil
	case ResourceStream:
		streams, err := r.ResolveStream(token)
		if err != nil {
			return nil, err
		}
		return StreamResponse{Streams: streams}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownResource, kind)
	}
}

// ResolveCatalog returns one preview per title, ordered by title id.
func (r *Resolver) ResolveCatalog() ([]MetaPreview, error) {
	titles := r.catalog.Snapshot().Titles()

	metas := make([]MetaPreview, 0, len(titles))
	for _, t := range titles {
		p, err := preview(t)
		if err != nil {
			return nil, err
		}
		metas = append(metas, p)
	}
	return metas, nil
}

// ResolveDetail returns the title addressed by token. Only the title field of
// the identifier is used. Series list every episode in season, then episode
// order; movies have no videos.
func (r *Resolver) ResolveDetail(token string) (*MetaDetail, error) {
	id, err := Decode(token)
	if err != nil {
		return nil, err
	}

	t, ok := r.catalog.Snapshot().Title(id.Title)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTitle, id.Title)
	}

	p, err := preview(t)
	if err != nil {
		return nil, err
	}
	detail := &MetaDetail{MetaPreview: p, Videos: []Video{}}
	if t.Kind != catalog.KindSeries {
		return detail, nil
	}

	for _, season := range sortedKeys(t.Seasons) {
		eps := t.Seasons[season]
		for _, episode := range sortedKeys(eps) {
			v, err := r.video(t, season, episode, eps[episode])
			if err != nil {
				return nil, err
			}
			detail.Videos = append(detail.Videos, v)
		}
	}
	return detail, nil
}

// ResolveStream returns the single playable stream addressed by token.
// Season and episode are ignored for movies.
func (r *Resolver) ResolveStream(token string) ([]Stream, error) {
	id, err := Decode(token)
	if err != nil {
		return nil, err
	}

	t, ok := r.catalog.Snapshot().Title(id.Title)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTitle, id.Title)
	}

	locator := t.Source
	if t.Kind == catalog.KindSeries {
		ep, ok := t.Episode(id.Season, id.Episode)
		if !ok {
			return nil, fmt.Errorf("%w: title %d season %d episode %d", ErrUnknownEpisode, id.Title, id.Season, id.Episode)
		}
		locator = ep.Source
	}

	s, err := r.stream(t, locator)
	if err != nil {
		return nil, err
	}
	return []Stream{s}, nil
}

func (r *Resolver) video(t catalog.Title, season, episode uint, ep catalog.Episode) (Video, error) {
	token, err := Encode(ID{Title: t.ID, Season: season, Episode: episode})
	if err != nil {
		return Video{}, err
	}
	s, err := r.stream(t, ep.Source)
	if err != nil {
		return Video{}, err
	}
	return Video{
		ID:         token,
		Title:      ep.Title,
		Thumbnail:  t.Image,
		Streams:    []Stream{s},
		SeriesInfo: SeriesInfo{Season: season, Episode: episode},
	}, nil
}

func (r *Resolver) stream(t catalog.Title, locator string) (Stream, error) {
	u, err := r.sources.Resolve(locator)
	if err != nil {
		return Stream{}, fmt.Errorf("title %d: %w", t.ID, err)
	}
	return Stream{URL: u, Thumbnail: t.Image}, nil
}

func preview(t catalog.Title) (MetaPreview, error) {
	token, err := Encode(MovieID(t.ID))
	if err != nil {
		return MetaPreview{}, err
	}
	return MetaPreview{
		ID:          token,
		Type:        string(t.Kind),
		Name:        t.Name,
		Poster:      t.Image,
		Background:  t.Image,
		Logo:        t.Image,
		Description: t.Description,
	}, nil
}

func sortedKeys[V any](m map[uint]V) []uint {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}
