package searcher

import (
	"fmt"
	"math"

	"showdown/game"

	"github.com/rs/zerolog/log"
)

// Variant selects which pure-strategy bound minimax computes for the simultaneous game.
type Variant int

const (
	// Pessimistic assumes the opponent answers each of our actions after seeing it.
	Pessimistic Variant = iota
	// Optimistic assumes we answer after seeing the opponent's action.
	Optimistic
)

func (v Variant) String() string {
	if v == Optimistic {
		return "optimistic"
	}
	return "pessimistic"
}

// Result is the outcome of one top-level search.
type Result struct {
	Action   game.Action
	Value    float64
	Opponent game.Action // Predicted opponent action
	Metrics  SearchMetrics
}

// Minimax is a depth-bounded search over simultaneous turns.
type Minimax struct {
	variant   Variant
	simulator game.Simulator
	options   options
}

func NewMinimax(variant Variant, simulator game.Simulator, opts ...Option) *Minimax {
	if simulator == nil {
		panic("minimax needs a simulator")
	}
	m := &Minimax{
		variant:   variant,
		simulator: simulator,
		options:   defaultOptions(),
	}
	for _, option := range opts {
		option(&m.options)
	}
	return m
}

func (m *Minimax) Variant() Variant {
	return m.variant
}

func (m *Minimax) Depth() int {
	return m.options.depth
}

// Search returns the best action for player, its value and the predicted opponent action.
// The cache and counters live only for this call.
func (m *Minimax) Search(state game.State, player game.Player) Result {
	s := &session{
		variant:   m.variant,
		simulator: m.simulator,
		useCache:  m.options.useCache,
		prune:     m.options.prune,
		cache:     transpositionCache{},
		metrics:   NewMetricsCollector(),
	}

	s.metrics.Start()
	action, value, opponent := s.search(state, m.options.depth, player)
	metrics := s.metrics.Complete()

	if m.options.timingLog != nil {
		if _, err := fmt.Fprintln(m.options.timingLog, metrics.Duration.Seconds()); err != nil {
			log.Warn().Err(err).Msg("failed to append search time")
		}
	}
	log.Debug().
		Str("variant", m.variant.String()).
		Int("depth", m.options.depth).
		Int64("nodes", metrics.Nodes).
		Int64("cacheHits", metrics.CacheHits).
		Int64("prunes", metrics.Prunes).
		Dur("elapsed", metrics.Duration).
		Msg("minimax search complete")

	return Result{Action: action, Value: value, Opponent: opponent, Metrics: metrics}
}

type session struct {
	variant   Variant
	simulator game.Simulator
	useCache  bool
	prune     bool
	cache     transpositionCache
	metrics   MetricsCollector
}

func (s *session) search(state game.State, depth int, player game.Player) (game.Action, float64, game.Action) {
	s.metrics.AddNode()
	if depth == 0 || state.IsTerminal() {
		return game.NoAction, state.Evaluate(player), game.NoAction
	}

	mine := legalActions(state, player)
	theirs := legalActions(state, player.Opponent())
	if s.variant == Optimistic {
		return s.optimistic(state, depth, player, mine, theirs)
	}
	return s.pessimistic(state, depth, player, mine, theirs)
}

func (s *session) pessimistic(state game.State, depth int, player game.Player, mine, theirs []game.Action) (game.Action, float64, game.Action) {
	bestValue := math.Inf(-1)
	bestAction, bestReply := game.NoAction, game.NoAction

	for _, action := range mine {
		worstValue := math.Inf(1)
		reply := game.NoAction
		for _, opponent := range theirs {
			value := s.value(state, depth, player, action, opponent)
			if reply.IsNone() || value < worstValue {
				worstValue = value
				reply = opponent
			}
			// The opponent can already hold this action below our best alternative
			if s.prune && value < bestValue {
				s.metrics.AddPrune()
				break
			}
		}
		if bestAction.IsNone() || worstValue > bestValue {
			bestValue = worstValue
			bestAction = action
			bestReply = reply
		}
	}
	return bestAction, bestValue, bestReply
}

func (s *session) optimistic(state game.State, depth int, player game.Player, mine, theirs []game.Action) (game.Action, float64, game.Action) {
	bestValue := math.Inf(1)
	bestOpponent, bestReply := game.NoAction, game.NoAction

	for _, opponent := range theirs {
		bestResponse := math.Inf(-1)
		reply := game.NoAction
		for _, action := range mine {
			value := s.value(state, depth, player, action, opponent)
			if reply.IsNone() || value > bestResponse {
				bestResponse = value
				reply = action
			}
			// We can already beat the opponent's best alternative against this action
			if s.prune && value > bestValue {
				s.metrics.AddPrune()
				break
			}
		}
		if bestOpponent.IsNone() || bestResponse < bestValue {
			bestValue = bestResponse
			bestOpponent = opponent
			bestReply = reply
		}
	}
	return bestReply, bestValue, bestOpponent
}

// value resolves one action pair and searches the resulting state one turn shallower.
func (s *session) value(state game.State, depth int, player game.Player, action, opponent game.Action) float64 {
	var actions game.ActionPair
	actions[player] = action
	actions[player.Opponent()] = opponent

	next := s.simulator.Simulate(state.Clone(), actions, player)
	key := next.CanonicalForm()
	if s.useCache {
		if entry, ok := s.cache.get(depth-1, key); ok {
			s.metrics.AddCacheHit()
			return entry.value
		}
	}

	best, value, _ := s.search(next, depth-1, player)
	if s.useCache {
		s.cache.put(depth-1, key, cacheEntry{action: best, value: value})
	}
	return value
}
