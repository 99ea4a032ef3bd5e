package searcher

import (
	"fmt"
	"io"
	"time"
)

type Option func(o *options)

type options struct {
	depth       int
	useCache    bool
	prune       bool
	duration    time.Duration
	episodes    int
	exploration float64
	seed        uint64
	seeded      bool
	timingLog   io.Writer
}

func defaultOptions() options {
	return options{
		depth:       2,
		useCache:    true,
		prune:       true,
		exploration: Exploration,
	}
}

// WithDepth sets the minimax lookahead in turns.
func WithDepth(depth int) Option {
	return func(o *options) {
		if depth < 0 {
			panic(fmt.Sprintf("depth cannot be negative: %d", depth))
		}
		o.depth = depth
	}
}

// WithCache toggles the transposition cache of minimax.
func WithCache(enabled bool) Option {
	return func(o *options) {
		o.useCache = enabled
	}
}

// WithPruning toggles the alpha-beta style cutoffs of minimax.
func WithPruning(enabled bool) Option {
	return func(o *options) {
		o.prune = enabled
	}
}

// WithTimingLog appends the elapsed seconds of every minimax search to w.
func WithTimingLog(w io.Writer) Option {
	return func(o *options) {
		o.timingLog = w
	}
}

// WithDuration sets the wall-clock budget of each MCTS decision.
func WithDuration(duration time.Duration) Option {
	return func(o *options) {
		if duration <= 0 {
			panic(fmt.Sprintf("duration must be positive: %s", duration))
		}
		o.duration = duration
	}
}

// WithEpisodes caps the number of MCTS cycles of each decision.
func WithEpisodes(episodes int) Option {
	return func(o *options) {
		if episodes <= 0 {
			panic(fmt.Sprintf("episodes must be positive: %d", episodes))
		}
		o.episodes = episodes
	}
}

func WithExploration(c float64) Option {
	return func(o *options) {
		if c <= 0 {
			panic(fmt.Sprintf("exploration must be positive: %v", c))
		}
		o.exploration = c
	}
}

// WithSeed makes MCTS rollouts reproducible.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}
