package application

import (
	"context"
	"fmt"
	"io/fs"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"concurrent-fileserver/fileserver/domain"
)

// DefaultAllowedExts são as extensões servidas quando nada é configurado.
var DefaultAllowedExts = []string{".html", ".png", ".pdf"}

// Resolver confina um caminho de requisição dentro de root (ver infra.Resolve).
type Resolver func(root, requestPath string) (string, error)

// Catalog executa a parte do handler que não depende de HTTP:
// resolver → atraso artificial → classificar → contar → montar o recurso.
type Catalog struct {
	Root    string
	Resolve Resolver
	Hits    domain.HitCounter
	Stats   domain.StatsStore
	// Delay alarga a janela de intercalação entre handlers concorrentes.
	Delay       time.Duration
	AllowedExts []string
}

// Lookup devolve o recurso já contado, ou um erro que envolve um dos erros de domain.
func (c *Catalog) Lookup(ctx context.Context, requestPath string) (domain.Resource, error) {
	abs, err := c.Resolve(c.Root, requestPath)
	if err != nil {
		return domain.Resource{}, err
	}

	if c.Delay > 0 {
		time.Sleep(c.Delay)
	}

	info, statErr := os.Stat(abs)
	if statErr == nil && info.IsDir() {
		return c.directory(ctx, abs, DirKey(requestPath))
	}
	if statErr != nil || !info.Mode().IsRegular() || !c.allowed(abs) {
		return domain.Resource{}, fmt.Errorf("%q: %w", requestPath, domain.ErrNotFound)
	}

	key := FileKey(requestPath)
	c.count(ctx, key)

	body, err := os.ReadFile(abs)
	if err != nil {
		return domain.Resource{}, fmt.Errorf("read %q: %w: %w", requestPath, domain.ErrRead, err)
	}
	return domain.Resource{
		Kind:        domain.KindFile,
		Key:         key,
		Body:        body,
		ContentType: ContentTypeFor(abs),
	}, nil
}

func (c *Catalog) directory(ctx context.Context, abs string, key domain.ResourceKey) (domain.Resource, error) {
	c.count(ctx, key)

	dirents, err := os.ReadDir(abs)
	if err != nil {
		return domain.Resource{}, fmt.Errorf("list %q: %w: %w", key, domain.ErrRead, err)
	}

	// cópia nova a cada listagem; o render lê sem segurar lock
	hits := c.Hits.Snapshot()

	entries := make([]domain.ListingEntry, 0, len(dirents))
	for _, de := range dirents {
		name := de.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		isDir := de.IsDir()
		if de.Type()&fs.ModeSymlink != 0 {
			if st, err := os.Stat(filepath.Join(abs, name)); err == nil {
				isDir = st.IsDir()
			}
		}
		suffix := ""
		if isDir {
			suffix = "/"
		}
		entryKey := domain.ResourceKey(string(key) + name + suffix)
		entries = append(entries, domain.ListingEntry{
			Name:  name + suffix,
			Href:  url.PathEscape(name) + suffix,
			IsDir: isDir,
			Key:   entryKey,
			Hits:  hits[entryKey],
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := strings.ToLower(entries[i].Name), strings.ToLower(entries[j].Name)
		if a == b {
			return entries[i].Name < entries[j].Name
		}
		return a < b
	})

	return domain.Resource{
		Kind:    domain.KindDirectory,
		Key:     key,
		Parent:  ParentHref(key),
		Entries: entries,
	}, nil
}

func (c *Catalog) count(ctx context.Context, key domain.ResourceKey) {
	c.Hits.Increment(key)
	if c.Stats != nil {
		_ = c.Stats.Record(ctx, domain.StatsEvent{
			Kind:     domain.EventHit,
			Resource: key,
			Path:     string(key),
			At:       time.Now(),
		})
	}
}

func (c *Catalog) allowed(p string) bool {
	exts := c.AllowedExts
	if len(exts) == 0 {
		exts = DefaultAllowedExts
	}
	ext := strings.ToLower(filepath.Ext(p))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// FileKey normaliza o caminho de um arquivo: começa com "/" e sem segmentos redundantes.
func FileKey(requestPath string) domain.ResourceKey {
	return domain.ResourceKey(path.Clean("/" + requestPath))
}

// DirKey normaliza o caminho de um diretório: como FileKey, terminando com "/".
func DirKey(requestPath string) domain.ResourceKey {
	p := path.Clean("/" + requestPath)
	if p != "/" {
		p += "/"
	}
	return domain.ResourceKey(p)
}

// ParentHref devolve o link para o diretório pai, ou "" na raiz.
func ParentHref(dir domain.ResourceKey) string {
	p := strings.TrimSuffix(string(dir), "/")
	if p == "" {
		return ""
	}
	cut := strings.LastIndex(p, "/")
	if cut <= 0 {
		return "/"
	}
	return p[:cut] + "/"
}

// ContentTypeFor deriva o content type pela extensão.
func ContentTypeFor(p string) string {
	switch ext := strings.ToLower(filepath.Ext(p)); ext {
	case ".html", ".htm":
		return "text/html; charset=utf-8"
	case ".png":
		return "image/png"
	case ".pdf":
		return "application/pdf"
	default:
		if ct := mime.TypeByExtension(ext); ct != "" {
			return ct
		}
		return "application/octet-stream"
	}
}
