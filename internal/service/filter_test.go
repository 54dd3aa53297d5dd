package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pixelfall/galleria/internal/domain"
	"github.com/pixelfall/galleria/internal/log"
)

func TestFilter_ReindexDeduplicatesByID(t *testing.T) {
	svc := NewFilterService(log.NullLogger())

	svc.Reindex([]domain.Image{
		{ID: 1, Tags: "cat", User: "ada"},
		{ID: 1, Tags: "cat duplicate", User: "ada"},
		{ID: 2, Tags: "dog", User: "bob"},
	})

	results := svc.Filter("cat")
	require.Len(t, results, 1)
	require.Equal(t, 1, results[0].Image.ID)
}

func TestFilter_MatchesTagsAndPhotographer(t *testing.T) {
	svc := NewFilterService(log.NullLogger())
	svc.Reindex([]domain.Image{
		{ID: 1, Tags: "sunset, beach", User: "ada"},
		{ID: 2, Tags: "mountain, snow", User: "bob"},
		{ID: 3, Tags: "city, night", User: "carol"},
	})

	results := svc.Filter("beach")
	require.Len(t, results, 1)
	require.Equal(t, 1, results[0].Image.ID)

	// Photographer names are part of the index.
	results = svc.Filter("bob")
	require.Len(t, results, 1)
	require.Equal(t, 2, results[0].Image.ID)
}

func TestFilter_CaseInsensitive(t *testing.T) {
	svc := NewFilterService(log.NullLogger())
	svc.Reindex([]domain.Image{{ID: 1, Tags: "Sunset, Beach", User: "Ada"}})

	require.Len(t, svc.Filter("SUNSET"), 1)
	require.Len(t, svc.Filter("sunset"), 1)
}

func TestFilter_EmptyQueryReturnsNothing(t *testing.T) {
	svc := NewFilterService(log.NullLogger())
	svc.Reindex([]domain.Image{{ID: 1, Tags: "cat"}})

	require.Nil(t, svc.Filter(""))
	require.Nil(t, svc.Filter("   "))
}

func TestFilter_NoIndexReturnsNothing(t *testing.T) {
	svc := NewFilterService(log.NullLogger())
	require.Nil(t, svc.Filter("cat"))
}

func TestSuggestTags_RanksDistinctTags(t *testing.T) {
	images := []domain.Image{
		{ID: 1, Tags: "cat, cats, caterpillar"},
		{ID: 2, Tags: "cat, dog"},
	}

	suggestions := SuggestTags("cat", images)
	require.NotEmpty(t, suggestions)
	require.Equal(t, "cat", suggestions[0], "exact match ranks first")
	require.Contains(t, suggestions, "cats")
	require.Contains(t, suggestions, "caterpillar")
	require.NotContains(t, suggestions, "dog")

	// Duplicates across images collapse to one suggestion.
	count := 0
	for _, s := range suggestions {
		if s == "cat" {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestSuggestTags_EmptyQuery(t *testing.T) {
	require.Nil(t, SuggestTags("", []domain.Image{{ID: 1, Tags: "cat"}}))
}
