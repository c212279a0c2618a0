package memory

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// RenderCacheRepository memoizes rendered document exports. Entries are
// keyed by document, format and revision seq, so a bumped revision never
// serves a stale render.
type RenderCacheRepository struct {
	cache *cache.Cache
}

func NewRenderCacheRepository(ttl time.Duration) *RenderCacheRepository {
	// Purge expired renders at a tenth of the TTL.
	c := cache.New(ttl, ttl/10)
	return &RenderCacheRepository{
		cache: c,
	}
}

func renderKey(documentId uuid.UUID, format string, seq int) string {
	return fmt.Sprintf("%s/%s/%d", documentId, format, seq)
}

func (r *RenderCacheRepository) Save(documentId uuid.UUID, format string, seq int, rendered string) {
	r.cache.Set(renderKey(documentId, format, seq), rendered, cache.DefaultExpiration)
}

func (r *RenderCacheRepository) Get(documentId uuid.UUID, format string, seq int) (string, bool) {
	if x, found := r.cache.Get(renderKey(documentId, format, seq)); found {
		return x.(string), true
	}
	return "", false
}

// Invalidate drops every cached render for a document, all formats and seqs.
func (r *RenderCacheRepository) Invalidate(documentId uuid.UUID) {
	prefix := documentId.String() + "/"
	for key := range r.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			r.cache.Delete(key)
		}
	}
}
