package hydrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID        string
	Group     string
	Connected bool
	Source    string
}

func itemKey(i item) string     { return i.ID }
func itemGroup(i item) string   { return i.Group }
func itemConnected(i item) bool { return i.Connected }

func ids(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID + "/" + it.Source
	}
	return out
}

func TestKeyedMerge(t *testing.T) {
	cached := []item{{ID: "a", Source: "cache"}, {ID: "b", Source: "cache"}, {ID: "c", Source: "cache"}}
	live := []item{{ID: "c", Source: "live"}, {ID: "d", Source: "live"}}

	t.Run("CachedWins", func(t *testing.T) {
		got := KeyedMerge[item]{Key: itemKey}.Merge(live, cached)
		assert.Equal(t, []string{"c/cache", "d/live", "a/cache", "b/cache"}, ids(got))
	})

	t.Run("MergeItemAndTransform", func(t *testing.T) {
		k := KeyedMerge[item]{
			Key: itemKey,
			MergeItem: func(l, c item) item {
				l.Source = "merged"
				return l
			},
			TransformCachedOnly: func(c item) item {
				c.Source = "placeholder"
				return c
			},
		}
		got := k.Merge(live, cached)
		assert.Equal(t, []string{"c/merged", "d/live", "a/placeholder", "b/placeholder"}, ids(got))
	})

	t.Run("EmptyLive", func(t *testing.T) {
		got := KeyedMerge[item]{Key: itemKey}.Merge(nil, cached)
		assert.Equal(t, []string{"a/cache", "b/cache", "c/cache"}, ids(got))
	})
}

func TestConnectedConverged(t *testing.T) {
	converged := ConnectedConverged(itemKey, itemConnected)

	cached := []item{{ID: "a", Connected: true}, {ID: "b"}}
	assert.False(t, converged(nil, cached))
	assert.False(t, converged([]item{{ID: "a"}}, cached))
	assert.True(t, converged([]item{{ID: "a", Connected: true}}, cached))
	assert.True(t, converged(nil, []item{{ID: "b"}}), "nothing connected converges at once")
}

func TestGroupedMerge(t *testing.T) {
	var g GroupedMerge[item]
	cached := GroupBy([]item{
		{ID: "w1-a", Group: "w1", Source: "cache"},
		{ID: "w1-b", Group: "w1", Source: "cache"},
		{ID: "w2-a", Group: "w2", Source: "cache"},
	}, itemGroup)
	live := []Group[item]{{Key: "w1", Items: []item{{ID: "w1-c", Group: "w1", Source: "live"}}}}

	t.Run("ReplacesReportedGroups", func(t *testing.T) {
		got := Flatten(g.Merge(live, cached))
		assert.Equal(t, []string{"w1-c/live", "w2-a/cache"}, ids(got))
		assert.False(t, g.Converged(live, cached))
	})

	t.Run("EmptyReportReplaces", func(t *testing.T) {
		reported := append(live, Group[item]{Key: "w2"})
		got := Flatten(g.Merge(reported, cached))
		assert.Equal(t, []string{"w1-c/live"}, ids(got))
		assert.True(t, g.Converged(reported, cached))
	})

	t.Run("NothingCached", func(t *testing.T) {
		assert.True(t, g.Converged(nil, nil))
		assert.Empty(t, Flatten(g.Merge(nil, nil)))
	})
}

func TestGroupBy(t *testing.T) {
	groups := GroupBy([]item{
		{ID: "a", Group: "w2"},
		{ID: "b", Group: "w1"},
		{ID: "c", Group: "w2"},
	}, itemGroup)

	require.Len(t, groups, 2)
	assert.Equal(t, "w2", groups[0].Key)
	assert.Len(t, groups[0].Items, 2)
	assert.Equal(t, "w1", groups[1].Key)
	assert.NotNil(t, Flatten[item](nil))
}
