package mutation

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReorderBefore(t *testing.T) {
	ids := []string{"a", "b", "c", "d"}

	tests := []struct {
		name    string
		dragged string
		target  string
		want    []string
	}{
		{"forward", "a", "c", []string{"b", "a", "c", "d"}},
		{"backward", "d", "b", []string{"a", "d", "b", "c"}},
		{"to front", "c", "a", []string{"c", "a", "b", "d"}},
		{"to end", "b", "", []string{"a", "c", "d", "b"}},
		{"onto self", "b", "b", nil},
		{"already before", "a", "b", nil},
		{"already last", "d", "", nil},
		{"unknown dragged", "x", "a", nil},
		{"unknown target", "a", "x", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReorderBefore(ids, tt.dragged, tt.target)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, []string{"a", "b", "c", "d"}, ids, "input must not be modified")
		})
	}
}

func TestReorderBeforeIsPermutation(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}
	targets := append(slices.Clone(ids), "")

	for _, dragged := range ids {
		for _, target := range targets {
			got := ReorderBefore(ids, dragged, target)
			if got == nil {
				continue
			}
			sorted := slices.Clone(got)
			slices.Sort(sorted)
			assert.Equal(t, ids, sorted, "%s before %q", dragged, target)

			at := slices.Index(got, dragged)
			if target == "" {
				assert.Equal(t, len(got)-1, at)
			} else {
				assert.Equal(t, target, got[at+1])
			}
		}
	}
}

func TestMoveUpDown(t *testing.T) {
	ids := []string{"a", "b", "c"}

	assert.Equal(t, []string{"b", "a", "c"}, MoveUp(ids, "b"))
	assert.Nil(t, MoveUp(ids, "a"))
	assert.Nil(t, MoveUp(ids, "x"))

	assert.Equal(t, []string{"a", "c", "b"}, MoveDown(ids, "b"))
	assert.Equal(t, []string{"b", "a", "c"}, MoveDown(ids, "a"))
	assert.Nil(t, MoveDown(ids, "c"))
	assert.Nil(t, MoveDown(ids, "x"))
}
