package foodapi

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ingresure/ingresure-api/internal/models"
)

type fakeSource struct {
	result Result
	calls  int
	gotQ   string
}

func (s *fakeSource) Fetch(_ context.Context, query string) Result {
	s.calls++
	s.gotQ = query
	return s.result
}

func ingredientResult(name string, conf Confidence, source string) Result {
	return Result{
		Ingredient: &models.Ingredient{ID: "t_" + slugID(name), CanonicalName: name},
		Confidence: conf,
		Source:     source,
	}
}

func TestFetcherUSDAFirst(t *testing.T) {
	usda := &fakeSource{result: ingredientResult("Gelatin", ConfidenceHigh, "usda_fdc")}
	off := &fakeSource{result: ingredientResult("Gelatine sheets", ConfidenceHigh, "open_food_facts")}
	f := NewFetcher(usda, off)

	res := f.Fetch(context.Background(), "gelatin")
	if res.Source != "usda_fdc" {
		t.Fatalf("source = %s, want usda_fdc", res.Source)
	}
	if off.calls != 0 {
		t.Errorf("open food facts should not be consulted when usda is confident")
	}
}

func TestFetcherOFFUpgradesLowUSDA(t *testing.T) {
	usda := &fakeSource{result: ingredientResult("Unrelated snack", ConfidenceLow, "usda_fdc")}
	off := &fakeSource{result: ingredientResult("Isinglass", ConfidenceHigh, "open_food_facts")}
	f := NewFetcher(usda, off)

	res := f.Fetch(context.Background(), "isinglass")
	if res.Source != "open_food_facts" || res.Confidence != ConfidenceHigh {
		t.Fatalf("expected high-confidence off result, got %+v", res)
	}
}

func TestFetcherKeepsUSDAOverMediumOFF(t *testing.T) {
	usda := &fakeSource{result: ingredientResult("Something", ConfidenceLow, "usda_fdc")}
	off := &fakeSource{result: ingredientResult("Something else", ConfidenceMedium, "open_food_facts")}
	f := NewFetcher(usda, off)

	res := f.Fetch(context.Background(), "something")
	if res.Source != "usda_fdc" {
		t.Fatalf("source = %s, want usda_fdc (medium off does not displace a result)", res.Source)
	}
}

func TestFetcherNoResult(t *testing.T) {
	usda := &fakeSource{result: Result{Confidence: ConfidenceLow, Source: "usda_fdc", Summary: "no_results"}}
	off := &fakeSource{result: Result{Confidence: ConfidenceLow, Source: "open_food_facts", Summary: "no_results"}}
	f := NewFetcher(usda, off)

	res := f.Fetch(context.Background(), "xyzzy")
	if res.Ingredient != nil || res.Source != "none" || res.Summary != "no_result" {
		t.Fatalf("expected empty fallback result, got %+v", res)
	}
}

func TestFetcherQueryUnderscores(t *testing.T) {
	usda := &fakeSource{result: ingredientResult("Wheat flour", ConfidenceHigh, "usda_fdc")}
	f := NewFetcher(usda, nil)

	f.Fetch(context.Background(), "wheat_flour")
	if usda.gotQ != "wheat flour" {
		t.Fatalf("query = %q, want %q", usda.gotQ, "wheat flour")
	}
}

func TestFetcherCaching(t *testing.T) {
	usda := &fakeSource{result: ingredientResult("Honey", ConfidenceHigh, "usda_fdc")}
	f := NewFetcher(usda, nil)
	now := time.Now()
	f.now = func() time.Time { return now }

	f.Fetch(context.Background(), "honey")
	f.Fetch(context.Background(), "honey")
	if usda.calls != 1 {
		t.Fatalf("usda calls = %d, want 1 (second hit cached)", usda.calls)
	}

	now = now.Add(cacheTTL + time.Second)
	f.Fetch(context.Background(), "honey")
	if usda.calls != 2 {
		t.Fatalf("usda calls = %d, want 2 after ttl expiry", usda.calls)
	}
}

func TestFetcherUncachedBypass(t *testing.T) {
	usda := &fakeSource{result: ingredientResult("Honey", ConfidenceHigh, "usda_fdc")}
	f := NewFetcher(usda, nil)

	f.FetchUncached(context.Background(), "honey")
	f.FetchUncached(context.Background(), "honey")
	if usda.calls != 2 {
		t.Fatalf("usda calls = %d, want 2 (uncached path)", usda.calls)
	}
}

func TestFetcherCacheEviction(t *testing.T) {
	usda := &fakeSource{result: ingredientResult("Filler", ConfidenceHigh, "usda_fdc")}
	f := NewFetcher(usda, nil)
	now := time.Now()
	f.now = func() time.Time { return now }

	for i := 0; i < cacheMaxEntries; i++ {
		f.Fetch(context.Background(), fmt.Sprintf("item_%d", i))
	}
	if len(f.cache) != cacheMaxEntries {
		t.Fatalf("cache size = %d, want %d", len(f.cache), cacheMaxEntries)
	}

	// A full cache with nothing expired refuses new entries.
	f.Fetch(context.Background(), "overflow")
	if len(f.cache) != cacheMaxEntries {
		t.Fatalf("cache size = %d, want %d (no room, nothing expired)", len(f.cache), cacheMaxEntries)
	}

	// Expiry frees room for new entries.
	now = now.Add(cacheTTL + time.Minute)
	f.Fetch(context.Background(), "fresh")
	if len(f.cache) != 1 {
		t.Fatalf("cache size = %d, want 1 after eviction", len(f.cache))
	}
}
