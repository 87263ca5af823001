package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consumethetangible/music-2025/internal/model"
)

func TestLocateSection(t *testing.T) {
	doc := fixture()
	schema := testSchema()

	t.Run("content starts after heading", func(t *testing.T) {
		b, err := LocateSection(doc, mustSection(schema, "prog"))
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(doc[b.Marker:], "<!-- Prog Section -->"))
		assert.True(t, strings.HasPrefix(doc[b.Open:], `<div class="section">`))
		assert.True(t, strings.HasSuffix(doc[:b.ContentStart], "<h2>Prog</h2>"))
		assert.True(t, strings.HasPrefix(doc[b.ContentEnd:], "</div>"))
		assert.True(t, strings.HasPrefix(doc[b.BlockEnd:], "<!-- Alternative Section -->"))
		assert.Contains(t, doc[b.ContentStart:b.ContentEnd], "Gentle Giant")
		assert.NotContains(t, doc[b.ContentStart:b.ContentEnd], "Mastodon")
	})

	t.Run("last section block ends at script", func(t *testing.T) {
		b, err := LocateSection(doc, mustSection(schema, "live-albums"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(doc[b.BlockEnd:], "<script"))
	})

	t.Run("missing marker", func(t *testing.T) {
		_, err := LocateSection(doc, mustSection(schema, "jazz-fusion"))
		assert.ErrorIs(t, err, ErrSectionNotFound)
	})

	t.Run("marker without section container", func(t *testing.T) {
		broken := "<!-- Metal Section -->\n<p>nothing</p>\n<!-- Prog Section -->\n"
		_, err := LocateSection(broken, mustSection(schema, "metal"))
		assert.ErrorIs(t, err, ErrSectionNotFound)
	})

	t.Run("blank comments do not end the block", func(t *testing.T) {
		for _, comment := range []string{"<!-- -->", "<!-- \n  notes\n-->"} {
			doc := "<!-- Metal Section -->\n" + comment + "\n" +
				`<div class="section"><h2>Metal</h2></div>` + "\n<!-- Prog Section -->\n"
			b, err := LocateSection(doc, mustSection(schema, "metal"))
			require.NoError(t, err, comment)
			assert.True(t, strings.HasPrefix(doc[b.BlockEnd:], "<!-- Prog Section -->"))
		}
	})

	t.Run("unbalanced section", func(t *testing.T) {
		broken := "<!-- Metal Section -->\n<div class=\"section\"><h2>Metal</h2><div class=\"shelf\">\n"
		_, err := LocateSection(broken, mustSection(schema, "metal"))
		assert.ErrorIs(t, err, ErrUnbalancedMarkup)
	})
}

func TestFindContainers(t *testing.T) {
	doc := fixture()

	containers, err := FindContainers(doc, coverStyle(), "prog")
	require.NoError(t, err)
	require.Len(t, containers, 2)

	for _, c := range containers {
		assert.True(t, strings.HasPrefix(doc[c.Shelf.Start:], `<div class="shelf">`))
		assert.True(t, strings.HasSuffix(doc[:c.Shelf.End], "</div>"))
		assert.Less(t, c.Close, c.Shelf.End)
	}
	assert.Less(t, containers[0].Shelf.End, containers[1].Open)

	none, err := FindContainers(doc, coverStyle(), "alternative")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFindEntries_Vinyl(t *testing.T) {
	doc := fixture()

	containers, err := FindContainers(doc, vinylStyle(), "live-albums")
	require.NoError(t, err)
	require.Len(t, containers, 1)

	spans, err := FindEntries(doc, vinylStyle(), containers[0].Inner, containers[0].Close)
	require.NoError(t, err)
	require.Len(t, spans, 2)

	first := doc[spans[0].Start:spans[0].End]
	assert.True(t, strings.HasPrefix(first, `<div class="release"`))
	assert.True(t, strings.HasSuffix(first, "</div>"))
	assert.Contains(t, first, "Live at Leeds")
	assert.NotContains(t, first, "At Fillmore East")
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
		want   Placement
	}{
		{"no shelves", nil, Placement{Kind: FirstShelf, Container: -1}},
		{"empty shelf", []int{0}, Placement{Kind: AppendToShelf, Container: 0, Count: 0}},
		{"partial last shelf", []int{4, 2}, Placement{Kind: AppendToShelf, Container: 1, Count: 2}},
		{"full last shelf", []int{4, 4}, Placement{Kind: NewShelf, Container: 1, Count: 4}},
		{"earlier gap is ignored", []int{1, 4}, Placement{Kind: NewShelf, Container: 1, Count: 4}},
		{"overfull shelf", []int{6}, Placement{Kind: NewShelf, Container: 0, Count: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allocate(tt.counts, model.DefaultShelfCapacity))
		})
	}
}
