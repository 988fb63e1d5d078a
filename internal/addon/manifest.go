package addon

const (
	// CatalogID is the id of the single catalog the addon advertises.
	CatalogID = IDPrefix + "catalog"
	// CatalogType is the catalog's type as shown by clients.
	CatalogType = "MSA-Catalog"
	// DefaultManifestID is used when ManifestOptions.ID is empty. Clients
	// key installed addons by it, so changing it orphans existing installs.
	DefaultManifestID = "com.lukashassler.msa"
)

// Manifest describes the addon to clients.
type Manifest struct {
	ID           string            `json:"id"`
	Version      string            `json:"version"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	ContactEmail string            `json:"contactEmail,omitempty"`
	Logo         string            `json:"logo,omitempty"`
	Background   string            `json:"background,omitempty"`
	Types        []string          `json:"types"`
	Resources    []ResourceKind    `json:"resources"`
	IDPrefixes   []string          `json:"idPrefixes"`
	Catalogs     []ManifestCatalog `json:"catalogs"`
}

// ManifestCatalog is a catalog entry of the manifest.
type ManifestCatalog struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ManifestOptions carries the deployment-specific manifest fields.
type ManifestOptions struct {
	ID           string
	ContactEmail string
	Logo         string
}

// NewManifest builds the addon manifest.
func NewManifest(opts ManifestOptions) Manifest {
	id := opts.ID
	if id == "" {
		id = DefaultManifestID
	}
	return Manifest{
		ID:           id,
		Version:      "1.0.0",
		Name:         "MSA",
		Description:  "My Stremio Addon",
		ContactEmail: opts.ContactEmail,
		Logo:         opts.Logo,
		Background:   opts.Logo,
		Types:        []string{"movie", "series"},
		Resources:    []ResourceKind{ResourceCatalog, ResourceMeta, ResourceStream},
		IDPrefixes:   []string{IDPrefix},
		Catalogs: []ManifestCatalog{
			{Type: CatalogType, ID: CatalogID, Name: "Media"},
		},
	}
}
