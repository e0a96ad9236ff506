package refset

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"gocv.io/x/gocv"
)

// ErrNoReferenceData marks a source the provider returned nothing for.
var ErrNoReferenceData = errors.New("refset: no reference data")

// Source selects which champion asset family references come from.
type Source string

const (
	SourceIcons          Source = "icons"
	SourceSplashArts     Source = "splash_arts"
	SourceLoadingScreens Source = "loading_screens"
)

// Sources lists every valid source.
var Sources = []Source{SourceIcons, SourceSplashArts, SourceLoadingScreens}

// ParseSource maps a config spelling onto its Source.
func ParseSource(name string) (Source, bool) {
	src := Source(strings.ToLower(strings.TrimSpace(name)))
	for _, s := range Sources {
		if s == src {
			return s, true
		}
	}
	return "", false
}

// Provider supplies raw reference images for a source, keyed by asset file
// name. Implementations own transport and caching of the raw bytes.
type Provider interface {
	ReferenceImages(ctx context.Context, source Source) (map[string][]byte, error)
}

// VersionResolver reports the newest game data version reference assets
// should be fetched for.
type VersionResolver interface {
	LatestVersion(ctx context.Context) (string, error)
}

// NormalizeLabel reduces an asset file name to its champion label: the
// extension goes, any skin variant suffix after the first underscore goes,
// and the remainder is lowercased. "Aatrox_0.jpg" becomes "aatrox".
func NormalizeLabel(name string) string {
	label := strings.TrimSuffix(name, path.Ext(name))
	if i := strings.Index(label, "_"); i >= 0 {
		label = label[:i]
	}
	return strings.ToLower(strings.TrimSpace(label))
}

// Set is a labeled collection of decoded reference images. Labels iterate in
// sorted order so matching results are reproducible across runs.
type Set struct {
	images map[string]gocv.Mat
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{images: make(map[string]gocv.Mat)}
}

// Add stores an image under the normalized form of name and takes ownership
// of the Mat; Close releases it alongside the set. A duplicate label keeps
// the first image; skin variants of one champion collapse to a single
// reference.
func (s *Set) Add(name string, img gocv.Mat) {
	label := NormalizeLabel(name)
	if label == "" {
		img.Close()
		return
	}
	if _, ok := s.images[label]; ok {
		img.Close()
		return
	}
	s.images[label] = img
}

// Labels returns every label in sorted order.
func (s *Set) Labels() []string {
	out := make([]string, 0, len(s.images))
	for label := range s.images {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

// Image returns the reference for a label. The set keeps ownership.
func (s *Set) Image(label string) (gocv.Mat, bool) {
	img, ok := s.images[label]
	return img, ok
}

// Len reports how many labels the set holds.
func (s *Set) Len() int { return len(s.images) }

// Close releases every held image.
func (s *Set) Close() {
	for label, img := range s.images {
		img.Close()
		delete(s.images, label)
	}
}

// decodeFunc turns raw asset bytes into a Mat. Split out so Cache tests can
// run without fixture image files.
type decodeFunc func([]byte) (gocv.Mat, error)

// Cache lazily loads one Set per source and hands out the same set on every
// later call. It is owned by the caller, not shared module state, and is not
// goroutine-safe: each matching session holds its own.
type Cache struct {
	provider Provider
	decode   decodeFunc
	sets     map[Source]*Set
}

// NewCache wraps a provider. decode converts provider bytes into matrices,
// typically frame.Decode.
func NewCache(provider Provider, decode func([]byte) (gocv.Mat, error)) *Cache {
	return &Cache{
		provider: provider,
		decode:   decode,
		sets:     make(map[Source]*Set),
	}
}

// Get returns the set for a source, fetching and decoding it on first use.
// Assets that fail to decode are skipped; an empty result is
// ErrNoReferenceData.
func (c *Cache) Get(ctx context.Context, source Source) (*Set, error) {
	if set, ok := c.sets[source]; ok {
		return set, nil
	}

	raw, err := c.provider.ReferenceImages(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("refset: fetch %s: %w", source, err)
	}

	set := NewSet()
	for name, data := range raw {
		img, err := c.decode(data)
		if err != nil {
			continue
		}
		set.Add(name, img)
	}
	if set.Len() == 0 {
		set.Close()
		return nil, fmt.Errorf("%w: source %s", ErrNoReferenceData, source)
	}

	c.sets[source] = set
	return set, nil
}

// Close releases every cached set.
func (c *Cache) Close() {
	for source, set := range c.sets {
		set.Close()
		delete(c.sets, source)
	}
}
