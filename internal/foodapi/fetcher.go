package foodapi

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ingresure/ingresure-api/internal/logger"
)

const (
	cacheMaxEntries = 500
	cacheTTL        = time.Hour
)

// Source is one external connector behind the fetcher.
type Source interface {
	Fetch(ctx context.Context, query string) Result
}

type cacheEntry struct {
	result Result
	at     time.Time
}

// Fetcher tries USDA FDC (when a key is configured) then Open Food Facts
// (when enabled), returning the first result with confidence >= medium or
// the best available. Results are cached by a SHA-256 prefix of the
// normalized query with a 1 h TTL; a full cache evicts expired entries.
type Fetcher struct {
	usda Source
	off  Source

	mu    sync.Mutex
	cache map[string]cacheEntry
	now   func() time.Time
}

// NewFetcher builds a fetcher. Either source may be nil when not
// configured.
func NewFetcher(usda, off Source) *Fetcher {
	return &Fetcher{
		usda:  usda,
		off:   off,
		cache: make(map[string]cacheEntry),
		now:   time.Now,
	}
}

func cacheKey(normalizedQuery string) string {
	sum := sha256.Sum256([]byte(normalizedQuery))
	return hex.EncodeToString(sum[:])[:32]
}

func (f *Fetcher) cacheGet(key string) (Result, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.cache[key]
	if !ok {
		return Result{}, false
	}
	if f.now().Sub(e.at) >= cacheTTL {
		delete(f.cache, key)
		return Result{}, false
	}
	return e.result, true
}

func (f *Fetcher) cachePut(key string, r Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.cache) >= cacheMaxEntries {
		now := f.now()
		for k, e := range f.cache {
			if now.Sub(e.at) > cacheTTL {
				delete(f.cache, k)
			}
		}
	}
	if len(f.cache) < cacheMaxEntries {
		f.cache[key] = cacheEntry{result: r, at: f.now()}
	}
}

// Fetch resolves a normalized ingredient key through the configured
// external APIs.
func (f *Fetcher) Fetch(ctx context.Context, normalizedKey string) Result {
	return f.fetch(ctx, normalizedKey, true)
}

// FetchUncached bypasses the result cache, used by the enrichment job.
func (f *Fetcher) FetchUncached(ctx context.Context, normalizedKey string) Result {
	return f.fetch(ctx, normalizedKey, false)
}

func (f *Fetcher) fetch(ctx context.Context, normalizedKey string, useCache bool) Result {
	key := cacheKey(normalizedKey)
	if useCache {
		if cached, ok := f.cacheGet(key); ok {
			return cached
		}
	}

	query := strings.TrimSpace(strings.ReplaceAll(normalizedKey, "_", " "))
	var best *Result

	if f.usda != nil {
		res := f.usda.Fetch(ctx, query)
		if res.Ingredient != nil {
			best = &res
		}
	}

	if f.off != nil && (best == nil || best.Confidence == ConfidenceLow) {
		res := f.off.Fetch(ctx, query)
		if res.Ingredient != nil {
			if best == nil || (res.Confidence == ConfidenceHigh && best.Confidence != ConfidenceHigh) {
				best = &res
			}
		}
	}

	if best == nil {
		best = &Result{Confidence: ConfidenceLow, Source: "none", Summary: "no_result"}
		logger.Get().Info("external lookup failed",
			zap.String("key", normalizedKey))
	} else {
		logger.Get().Info("external lookup resolved",
			zap.String("key", normalizedKey),
			zap.String("name", best.Ingredient.CanonicalName),
			zap.String("source", best.Source),
			zap.String("confidence", string(best.Confidence)))
	}

	if useCache {
		f.cachePut(key, *best)
	}
	return *best
}
