package keywords

import (
	"time"

	"newsmon/internal/cache"
)

// CachedLoader serves the catalog from memory between loads so repeated runs
// in one process do not reread the file.
type CachedLoader struct {
	path  string
	ttl   time.Duration
	cache *cache.Cache
}

func NewCachedLoader(path string, ttl time.Duration) *CachedLoader {
	return &CachedLoader{
		path:  path,
		ttl:   ttl,
		cache: cache.New(),
	}
}

func (l *CachedLoader) Load() (Catalog, error) {
	if v, ok := l.cache.Get(l.path); ok {
		if catalog, ok := v.(Catalog); ok {
			return catalog, nil
		}
	}

	catalog, err := Load(l.path)
	if err != nil {
		return nil, err
	}

	l.cache.Set(l.path, catalog, l.ttl)
	return catalog, nil
}
