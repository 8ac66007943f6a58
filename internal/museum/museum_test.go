package museum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeExhibitionIDs(t *testing.T) {
	t.Run("union of overlapping sets", func(t *testing.T) {
		got := MergeExhibitionIDs([]string{"1", "2"}, []string{"2", "3"})
		assert.ElementsMatch(t, []string{"1", "2", "3"}, got)
	})

	t.Run("existing IDs are never lost", func(t *testing.T) {
		existing := []string{"1", "2"}
		got := MergeExhibitionIDs(existing, nil)
		assert.Equal(t, existing, got)

		got = MergeExhibitionIDs(existing, []string{"1"})
		assert.Equal(t, existing, got)
	})

	t.Run("merge is idempotent", func(t *testing.T) {
		once := MergeExhibitionIDs([]string{"1"}, []string{"2", "3"})
		twice := MergeExhibitionIDs(once, []string{"2", "3"})
		assert.Equal(t, once, twice)
	})

	t.Run("argument order does not change the set", func(t *testing.T) {
		a := MergeExhibitionIDs([]string{"1", "2"}, []string{"2", "3"})
		b := MergeExhibitionIDs([]string{"2", "3"}, []string{"1", "2"})
		assert.ElementsMatch(t, a, b)
	})

	t.Run("blank IDs are ignored", func(t *testing.T) {
		got := MergeExhibitionIDs([]string{"", "1"}, []string{"", "2"})
		assert.Equal(t, []string{"1", "2"}, got)
	})

	t.Run("both empty", func(t *testing.T) {
		assert.Empty(t, MergeExhibitionIDs(nil, nil))
	})
}
