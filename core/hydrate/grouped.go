package hydrate

// Group holds the items one source reported. A group without items still
// counts as reported.
type Group[T any] struct {
	Key   string
	Items []T
}

// GroupBy splits items into groups in first-seen key order.
func GroupBy[T any](items []T, key func(T) string) []Group[T] {
	index := make(map[string]int)
	var groups []Group[T]
	for _, item := range items {
		k := key(item)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[T]{Key: k})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// Flatten concatenates the items of groups in order. It never returns nil.
func Flatten[T any](groups []Group[T]) []T {
	n := 0
	for _, g := range groups {
		n += len(g.Items)
	}
	out := make([]T, 0, n)
	for _, g := range groups {
		out = append(out, g.Items...)
	}
	return out
}

// GroupedMerge replaces cached groups wholesale. Once live reports a group,
// even an empty one, none of the cached items with that key are kept.
type GroupedMerge[T any] struct{}

// Merge implements MergeFunc: every live group, then the cached groups live
// has not reported.
func (GroupedMerge[T]) Merge(live, cached []Group[T]) []Group[T] {
	reported := keys(live)

	merged := make([]Group[T], 0, len(live)+len(cached))
	merged = append(merged, live...)
	for _, g := range cached {
		if _, ok := reported[g.Key]; !ok {
			merged = append(merged, g)
		}
	}
	return merged
}

// Converged implements ConvergedFunc: every cached group has been reported.
func (GroupedMerge[T]) Converged(live, cached []Group[T]) bool {
	reported := keys(live)
	for _, g := range cached {
		if _, ok := reported[g.Key]; !ok {
			return false
		}
	}
	return true
}

func keys[T any](groups []Group[T]) map[string]struct{} {
	out := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		out[g.Key] = struct{}{}
	}
	return out
}
