package service

import (
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sahilm "github.com/sahilm/fuzzy"

	"github.com/pixelfall/galleria/internal/domain"
)

// FilterEntry is one image in the local filter index.
type FilterEntry struct {
	Image domain.Image
	Title string // Searchable text: tags plus photographer
}

// FilterResult is a filter match with highlight metadata.
type FilterResult struct {
	FilterEntry
	MatchedIndexes []int
	Score          int
}

// filterIndex implements sahilm/fuzzy.Source for zero-allocation matching
type filterIndex struct {
	entries     []FilterEntry
	lowerTitles []string // Pre-computed lowercase titles
}

func (idx *filterIndex) String(i int) string { return idx.lowerTitles[i] }
func (idx *filterIndex) Len() int            { return len(idx.entries) }

// FilterService narrows the favorites and downloads views with fuzzy
// matching over image tags and photographer names, entirely locally.
type FilterService struct {
	logger *slog.Logger

	mu    sync.RWMutex
	index *filterIndex
}

// NewFilterService creates a new filter service
func NewFilterService(logger *slog.Logger) *FilterService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FilterService{logger: logger, index: &filterIndex{}}
}

// Reindex rebuilds the filter index from the given images,
// deduplicating by image ID.
func (s *FilterService) Reindex(images []domain.Image) {
	idx := &filterIndex{
		entries:     make([]FilterEntry, 0, len(images)),
		lowerTitles: make([]string, 0, len(images)),
	}

	seen := make(map[int]bool, len(images))
	for _, img := range images {
		if seen[img.ID] {
			continue
		}
		seen[img.ID] = true

		title := img.Tags
		if img.User != "" {
			title += " " + img.User
		}
		idx.entries = append(idx.entries, FilterEntry{Image: img, Title: title})
		idx.lowerTitles = append(idx.lowerTitles, strings.ToLower(title))
	}

	s.mu.Lock()
	s.index = idx
	s.mu.Unlock()

	s.logger.Debug("filter index rebuilt", "count", idx.Len())
}

// Filter returns index entries fuzzy-matching the query, best first,
// with matched character positions for highlighting.
func (s *FilterService) Filter(query string) []FilterResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || s.index.Len() == 0 {
		return nil
	}

	matches := sahilm.FindFrom(query, s.index)

	results := make([]FilterResult, len(matches))
	for i, match := range matches {
		results[i] = FilterResult{
			FilterEntry:    s.index.entries[match.Index],
			MatchedIndexes: match.MatchedIndexes,
			Score:          match.Score,
		}
	}
	return results
}

// SuggestTags ranks the distinct tags of the given images against a
// partial query for search-box completion. Best matches come first.
func SuggestTags(query string, images []domain.Image) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	seen := make(map[string]bool)
	tags := make([]string, 0, len(images)*3)
	for _, img := range images {
		for _, tag := range img.TagList() {
			lower := strings.ToLower(tag)
			if !seen[lower] {
				seen[lower] = true
				tags = append(tags, lower)
			}
		}
	}

	ranks := fuzzy.RankFindFold(query, tags)
	sort.Sort(ranks)

	suggestions := make([]string, 0, len(ranks))
	for _, r := range ranks {
		suggestions = append(suggestions, r.Target)
	}
	return suggestions
}
