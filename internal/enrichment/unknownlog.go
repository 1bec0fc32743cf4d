package enrichment

import (
	"errors"
	"os"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ingresure/ingresure-api/internal/logger"
	"github.com/ingresure/ingresure-api/internal/util"
)

const (
	maxRawInputs         = 20
	maxRestrictionSample = 10
)

// UnknownEntry is one unresolved ingredient key with the contexts it was
// seen in.
type UnknownEntry struct {
	NormalizedKey        string                 `json:"normalized_key"`
	RawInputs            []string               `json:"raw_inputs"`
	Frequency            int                    `json:"frequency"`
	FirstSeen            float64                `json:"first_seen"`
	LastSeen             float64                `json:"last_seen"`
	RestrictionIDsSample []string               `json:"restriction_ids_sample"`
	ProfileContextSample map[string]interface{} `json:"profile_context_sample"`
}

type unknownFile struct {
	Version            string                   `json:"version"`
	UnknownIngredients map[string]*UnknownEntry `json:"unknown_ingredients"`
}

// UnknownLog records ingredient keys the resolver could not identify, for
// later enrichment runs and traceability.
type UnknownLog struct {
	mu      sync.Mutex
	path    string
	entries map[string]*UnknownEntry
	now     func() time.Time
}

// NewUnknownLog loads the log from path; a missing or malformed file
// starts empty.
func NewUnknownLog(path string) *UnknownLog {
	l := &UnknownLog{
		path:    path,
		entries: make(map[string]*UnknownEntry),
		now:     time.Now,
	}
	var f unknownFile
	if err := util.ReadJSONFile(path, &f); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Get().Warn("unknown ingredients log load failed",
				zap.String("path", path), zap.Error(err))
		}
		return l
	}
	if f.UnknownIngredients != nil {
		l.entries = f.UnknownIngredients
	}
	return l
}

// Record adds or updates an entry. The raw input list is capped at 20
// distinct values and the restriction sample at 10 ids.
func (l *UnknownLog) Record(rawInput, normalizedKey string, restrictionIDs []string, profileContext map[string]interface{}) {
	if normalizedKey == "" {
		return
	}
	l.mu.Lock()
	now := float64(l.now().UnixNano()) / float64(time.Second)
	ent, ok := l.entries[normalizedKey]
	if !ok {
		ent = &UnknownEntry{
			NormalizedKey:        normalizedKey,
			RawInputs:            []string{},
			FirstSeen:            now,
			RestrictionIDsSample: []string{},
		}
		l.entries[normalizedKey] = ent
	}
	if rawInput != "" && !containsString(ent.RawInputs, rawInput) && len(ent.RawInputs) < maxRawInputs {
		ent.RawInputs = append(ent.RawInputs, rawInput)
	}
	ent.Frequency++
	ent.LastSeen = now
	if len(restrictionIDs) > 5 {
		restrictionIDs = restrictionIDs[:5]
	}
	for _, r := range restrictionIDs {
		if len(ent.RestrictionIDsSample) >= maxRestrictionSample {
			break
		}
		if !containsString(ent.RestrictionIDsSample, r) {
			ent.RestrictionIDsSample = append(ent.RestrictionIDsSample, r)
		}
	}
	if profileContext != nil && ent.ProfileContextSample == nil {
		ent.ProfileContextSample = profileContext
	}
	frequency := ent.Frequency
	l.mu.Unlock()

	if err := l.Save(); err != nil {
		logger.Get().Warn("unknown ingredients log save failed",
			zap.String("path", l.path), zap.Error(err))
	}
	logger.Get().Info("unknown ingredient logged",
		zap.String("raw", truncate(rawInput, 50)),
		zap.String("normalized_key", normalizedKey),
		zap.Int("frequency", frequency))
}

// Save persists the log atomically.
func (l *UnknownLog) Save() error {
	l.mu.Lock()
	f := unknownFile{Version: "1.0", UnknownIngredients: l.entries}
	err := util.WriteJSONFileAtomic(l.path, f)
	l.mu.Unlock()
	return err
}

// Entries returns a snapshot of all entries.
func (l *UnknownLog) Entries() map[string]UnknownEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]UnknownEntry, len(l.entries))
	for k, v := range l.entries {
		out[k] = *v
	}
	return out
}

// KeysForEnrichment returns normalized keys seen at least minFrequency
// times, sorted for stable job output.
func (l *UnknownLog) KeysForEnrichment(minFrequency int) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var keys []string
	for k, v := range l.entries {
		if v.Frequency >= minFrequency {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
