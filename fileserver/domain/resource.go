package domain

// ResourceKind classifica o alvo resolvido.
type ResourceKind int

const (
	KindMissing ResourceKind = iota
	KindDirectory
	KindFile
)

// ListingEntry é uma linha da listagem de diretório.
type ListingEntry struct {
	Name  string
	Href  string
	IsDir bool
	Key   ResourceKey
	Hits  int
}

// Resource é o resultado de uma consulta ao catálogo, já contada no HitCounter.
type Resource struct {
	Kind ResourceKind
	Key  ResourceKey

	// Diretório
	Parent  string
	Entries []ListingEntry

	// Arquivo
	Body        []byte
	ContentType string
}
