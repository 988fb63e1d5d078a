package addon

// ResourceKind is one of the addon protocol's request categories.
type ResourceKind string

const (
	ResourceCatalog ResourceKind = "catalog"
	ResourceMeta    ResourceKind = "meta"
	ResourceStream  ResourceKind = "stream"
)

// MetaPreview is the summary shape used in catalog listings.
// The title image is used as poster, background and logo.
type MetaPreview struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Poster      string `json:"poster,omitempty"`
	Background  string `json:"background,omitempty"`
	Logo        string `json:"logo,omitempty"`
	Description string `json:"description,omitempty"`
}

// MetaDetail is a title with its nested videos.
type MetaDetail struct {
	MetaPreview
	Videos []Video `json:"videos"`
}

// Video is a single episode of a series.
type Video struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Thumbnail string   `json:"thumbnail,omitempty"`
	Streams   []Stream `json:"streams"`
	SeriesInfo
}

// SeriesInfo positions a Video inside its series.
type SeriesInfo struct {
	Season  uint `json:"season"`
	Episode uint `json:"episode"`
}

// Stream is a playable locator.
type Stream struct {
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// CatalogResponse is the body of a catalog request.
type CatalogResponse struct {
	Metas []MetaPreview `json:"metas"`
}

// MetaResponse is the body of a meta request.
type MetaResponse struct {
	Meta *MetaDetail `json:"meta"`
}

// StreamResponse is the body of a stream request.
type StreamResponse struct {
	Streams []Stream `json:"streams"`
}
