package searcher

import "showdown/game"

// A cached result is only valid for the remaining depth it was computed at.
type cacheKey struct {
	depth int
	state game.StateKey
}

type cacheEntry struct {
	action game.Action
	value  float64
}

type transpositionCache map[cacheKey]cacheEntry

func (c transpositionCache) get(depth int, state game.StateKey) (cacheEntry, bool) {
	entry, ok := c[cacheKey{depth: depth, state: state}]
	return entry, ok
}

func (c transpositionCache) put(depth int, state game.StateKey, entry cacheEntry) {
	c[cacheKey{depth: depth, state: state}] = entry
}
