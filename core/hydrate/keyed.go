package hydrate

// KeyedMerge merges collections whose items carry a stable key.
//
// Live order is kept. A live item with a cached counterpart is replaced by the
// cached one, or by MergeItem(live, cached) when set. Cached items missing from
// live are appended in cache order, through TransformCachedOnly when set.
type KeyedMerge[T any] struct {
	Key                 func(T) string
	MergeItem           func(live, cached T) T
	TransformCachedOnly func(cached T) T
}

// Merge implements MergeFunc.
func (k KeyedMerge[T]) Merge(live, cached []T) []T {
	// Later duplicates win on lookup
	cachedByKey := make(map[string]T, len(cached))
	for _, item := range cached {
		cachedByKey[k.Key(item)] = item
	}

	liveKeys := make(map[string]struct{}, len(live))
	merged := make([]T, 0, len(live)+len(cached))
	for _, item := range live {
		key := k.Key(item)
		liveKeys[key] = struct{}{}

		c, ok := cachedByKey[key]
		switch {
		case !ok:
			merged = append(merged, item)
		case k.MergeItem != nil:
			merged = append(merged, k.MergeItem(item, c))
		default:
			merged = append(merged, c)
		}
	}

	for _, item := range cached {
		if _, ok := liveKeys[k.Key(item)]; ok {
			continue
		}
		if k.TransformCachedOnly != nil {
			item = k.TransformCachedOnly(item)
		}
		merged = append(merged, item)
	}

	return merged
}

// ConnectedConverged returns a ConvergedFunc that holds once every cached item
// reported as connected is present in live and connected there too. A cache with
// no connected items converges immediately.
func ConnectedConverged[T any](key func(T) string, connected func(T) bool) ConvergedFunc[T] {
	return func(live, cached []T) bool {
		liveConnected := make(map[string]bool, len(live))
		for _, item := range live {
			liveConnected[key(item)] = connected(item)
		}
		for _, item := range cached {
			if !connected(item) {
				continue
			}
			if !liveConnected[key(item)] {
				return false
			}
		}
		return true
	}
}
