package iconlookup

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/jsvensson/iconlookup/internal/catalog"
)

const cacheSize = 512

type cacheKey struct {
	catalog  *catalog.Catalog
	theme    string
	name     string
	size     int
	scale    int
	scheme   SizeScheme
	forceSVG bool
}

// pathCache maps lookups to resolved paths. Misses are stored as "".
var pathCache = mustCache(cacheSize)

func mustCache(size int) *lru.Cache[cacheKey, string] {
	c, err := lru.New[cacheKey, string](size)
	if err != nil {
		panic(err)
	}
	return c
}

func (b *LookupBuilder) key(c *catalog.Catalog) cacheKey {
	return cacheKey{
		catalog:  c,
		theme:    b.theme,
		name:     b.name,
		size:     b.size,
		scale:    b.scale,
		scheme:   b.scheme,
		forceSVG: b.forceSVG,
	}
}
