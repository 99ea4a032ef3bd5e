package searcher

import (
	"time"

	"showdown/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// MCTS searches simultaneous turns with independent per-player UCT bandits. The tree is
// kept between decisions and re-rooted at the real state each time.
type MCTS struct {
	simulator game.Simulator
	duration  time.Duration
	episodes  int
	rng       *rand.Rand
	tree      *Tree
}

func NewMCTS(simulator game.Simulator, opts ...Option) *MCTS {
	if simulator == nil {
		panic("MCTS needs a simulator")
	}
	o := defaultOptions()
	for _, option := range opts {
		option(&o)
	}
	if o.episodes <= 0 && o.duration <= 0 {
		panic("Must specify search episodes or duration")
	}

	seed := o.seed
	if !o.seeded {
		seed = uint64(time.Now().UnixNano())
	}
	return &MCTS{
		simulator: simulator,
		duration:  o.duration,
		episodes:  o.episodes,
		rng:       rand.New(rand.NewSource(seed)),
		tree:      NewTree(o.exploration),
	}
}

// Tree exposes the search tree for inspection.
func (m *MCTS) Tree() *Tree {
	return m.tree
}

// Decide runs select/expand/rollout/backup cycles until the budget is spent and returns
// the root action with the best empirical win rate for player. An iteration in flight
// always completes before the clock is checked again.
func (m *MCTS) Decide(state game.State, player game.Player) Result {
	metrics := NewMetricsCollector()
	metrics.Start()

	if m.tree.Reroot(state) {
		metrics.ReusedTree()
	} else {
		log.Debug().Msg("search tree reset")
	}

	if !state.IsTerminal() {
		start := time.Now()
		for episode := 0; m.withinBudget(start, episode); episode++ {
			m.simulate(player, metrics)
			metrics.AddEpisode()
		}
	}
	metrics.SetTreeSize(m.tree.Size())

	action, rate := m.tree.BestAction(player)
	opponent, _ := m.tree.BestAction(player.Opponent())
	result := Result{Action: action, Value: rate, Opponent: opponent, Metrics: metrics.Complete()}

	log.Debug().
		Int64("episodes", result.Metrics.Episodes).
		Int64("playouts", result.Metrics.FullPlayouts).
		Int("treeSize", result.Metrics.TreeSize).
		Bool("reused", result.Metrics.IsTreeReused).
		Msgf("searched %d nodes", result.Metrics.Episodes)
	return result
}

func (m *MCTS) withinBudget(start time.Time, episode int) bool {
	if m.episodes > 0 && episode >= m.episodes {
		return false
	}
	return m.duration <= 0 || time.Since(start) < m.duration
}

func (m *MCTS) simulate(perspective game.Player, metrics MetricsCollector) {
	node, edge := m.tree.selectAndExpand()

	// A decided state needs no transition, its outcome is taken directly
	if edge == noPair {
		m.tree.backpropagate(node, outcome(m.tree.states[node].state.Winner()))
		return
	}

	leaf := m.tree.expand(edge, m.simulator, perspective)
	state := m.tree.states[leaf].state
	if !state.IsTerminal() {
		metrics.AddFullPlayout()
	}
	m.tree.backpropagate(leaf, rollout(state, m.simulator, m.rng))
}

// rollout plays uniformly random action pairs from player 0's frame until the battle is
// decided. It returns WIN when player 1 wins and LOSS otherwise, whoever is searching.
func rollout(state game.State, simulator game.Simulator, rng *rand.Rand) float64 {
	for !state.IsTerminal() {
		mine := legalActions(state, game.Player0)
		theirs := legalActions(state, game.Player1)
		actions := game.ActionPair{mine[rng.Intn(len(mine))], theirs[rng.Intn(len(theirs))]}
		state = simulator.Simulate(state.Clone(), actions, game.Player0)
	}
	return outcome(state.Winner())
}
