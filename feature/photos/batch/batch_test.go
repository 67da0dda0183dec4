package batch_test

import (
	"strings"
	"testing"
	"time"

	"photo-sync/core/source"
	"photo-sync/feature/photos/batch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(sec int) time.Time {
	return time.Date(2024, 5, 1, 12, 0, sec, 0, time.UTC)
}

func TestGroupCaptionBoundaries(t *testing.T) {
	photos := []source.Photo{
		{GUID: "p1", Caption: "A", TakenAt: at(1)},
		{GUID: "p2", TakenAt: at(2)},
		{GUID: "p3", Caption: "B", TakenAt: at(3)},
	}

	batches := batch.Group(photos)
	require.Len(t, batches, 2)

	assert.Equal(t, "A", batches[0].Title)
	assert.Equal(t, []string{"p1", "p2"}, batches[0].GUIDs)
	assert.Equal(t, at(1), batches[0].CreatedAt)

	assert.Equal(t, "B", batches[1].Title)
	assert.Equal(t, []string{"p3"}, batches[1].GUIDs)
}

func TestGroupDropsLeadingCaptionless(t *testing.T) {
	photos := []source.Photo{
		{GUID: "orphan", TakenAt: at(1)},
		{GUID: "p1", Caption: "A", TakenAt: at(2)},
		{GUID: "p2", TakenAt: at(3)},
	}

	batches := batch.Group(photos)
	require.Len(t, batches, 1)
	assert.Equal(t, []string{"p1", "p2"}, batches[0].GUIDs)
	assert.False(t, batches[0].Contains("orphan"))
}

func TestGroupSortsByTimestamp(t *testing.T) {
	// Delivered out of order; grouping must follow timestamps.
	photos := []source.Photo{
		{GUID: "p3", Caption: "B", TakenAt: at(30)},
		{GUID: "p2", TakenAt: at(20)},
		{GUID: "p1", Caption: "A", TakenAt: at(10)},
	}

	batches := batch.Group(photos)
	require.Len(t, batches, 2)
	assert.Equal(t, []string{"p1", "p2"}, batches[0].GUIDs)
	assert.Equal(t, []string{"p3"}, batches[1].GUIDs)
}

func TestGroupMissingTimestampsSortEarliest(t *testing.T) {
	photos := []source.Photo{
		{GUID: "p2", Caption: "Later", TakenAt: at(10)},
		{GUID: "p1", Caption: "First"}, // no timestamp
	}

	batches := batch.Group(photos)
	require.Len(t, batches, 2)
	assert.Equal(t, "First", batches[0].Title)
	// No member timestamp: grouping time is used.
	assert.False(t, batches[0].CreatedAt.IsZero())
}

func TestBatchKeyOrderIndependent(t *testing.T) {
	a := batch.Group([]source.Photo{
		{GUID: "p1", Caption: "A", TakenAt: at(1)},
		{GUID: "p2", TakenAt: at(2)},
	})
	b := batch.Group([]source.Photo{
		{GUID: "P2", Caption: "A", TakenAt: at(1)}, // same members, case flipped and swapped
		{GUID: "p1", TakenAt: at(2)},
	})

	require.Len(t, a, 1)
	require.Len(t, b, 1)
	assert.Equal(t, a[0].Key, b[0].Key)
	assert.NotEmpty(t, a[0].Key)
}

func TestBatchKeyDiffersOnMembership(t *testing.T) {
	a := batch.Group([]source.Photo{{GUID: "p1", Caption: "A", TakenAt: at(1)}})
	b := batch.Group([]source.Photo{{GUID: "p2", Caption: "A", TakenAt: at(1)}})
	assert.NotEqual(t, a[0].Key, b[0].Key)
}

func TestCaptionDerivedFields(t *testing.T) {
	caption := "Trip to the coast\nDay one at the beach.\nSunny all day."
	batches := batch.Group([]source.Photo{{GUID: "p1", Caption: caption, TakenAt: at(1)}})
	require.Len(t, batches, 1)

	got := batches[0]
	assert.Equal(t, "Trip to the coast", got.Title)
	assert.Equal(t, "Day one at the beach. Sunny all day.", got.Excerpt)
	assert.Equal(t, "Day one at the beach.\nSunny all day.", got.DetailText)
}

func TestCaptionSingleLineGetsPlaceholderDetail(t *testing.T) {
	batches := batch.Group([]source.Photo{{GUID: "p1", Caption: "Just a title", TakenAt: at(1)}})
	require.Len(t, batches, 1)
	assert.Equal(t, batch.DefaultDetailText, batches[0].DetailText)
	assert.Empty(t, batches[0].Excerpt)
}

func TestTitleTruncation(t *testing.T) {
	longTitle := strings.Repeat("x", 300)
	batches := batch.Group([]source.Photo{{GUID: "p1", Caption: longTitle, TakenAt: at(1)}})
	require.Len(t, batches, 1)

	title := []rune(batches[0].Title)
	assert.Len(t, title, batch.MaxTitleLength)
	assert.Equal(t, '…', title[len(title)-1])
}

func TestGroupEmptyInput(t *testing.T) {
	assert.Empty(t, batch.Group(nil))
	assert.Empty(t, batch.Group([]source.Photo{{GUID: "only-orphan"}}))
}
