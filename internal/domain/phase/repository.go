package phase

// CatalogProvider hands out the current catalog snapshot.
type CatalogProvider interface {
	Catalog() *Catalog
}

// StaticProvider serves a fixed catalog.
type StaticProvider struct {
	catalog *Catalog
}

func NewStaticProvider(catalog *Catalog) StaticProvider {
	return StaticProvider{catalog: catalog}
}

func (p StaticProvider) Catalog() *Catalog {
	return p.catalog
}
