package engine

import (
	"showdown/experiments/metrics"
	"showdown/game"
	"showdown/meta"
	"showdown/searcher/agent"
	"showdown/utils"

	"github.com/rs/zerolog/log"
)

var players = [2]game.Player{game.Player0, game.Player1}

// LocalEngine plays a battle in process. Both agents see the same state every turn and
// their actions are resolved together.
type LocalEngine struct {
	state     game.State
	agents    [2]agent.Agent
	simulator game.Simulator
	maxTurns  int
}

// NewLocalEngine prepares a battle from initial. A non-positive maxTurns uses meta.MaxTurns.
func NewLocalEngine(agents [2]agent.Agent, simulator game.Simulator, initial game.State, maxTurns int) *LocalEngine {
	if agents[0] == nil || agents[1] == nil {
		panic("need two agents")
	}
	if simulator == nil || initial == nil {
		panic("need a simulator and an initial state")
	}
	if maxTurns <= 0 {
		maxTurns = meta.MaxTurns
	}
	return &LocalEngine{
		state:     initial.Clone(),
		agents:    agents,
		simulator: simulator,
		maxTurns:  maxTurns,
	}
}

// State returns the current battle state.
func (e *LocalEngine) State() game.State {
	return e.state
}

// Run executes the entire battle loop. The winner is game.None for a draw or when the
// turn limit stops the battle.
func (e *LocalEngine) Run() (game.Player, metrics.GameMetric, []metrics.MoveMetric) {
	collector := metrics.NewCollector()
	collector.Start()

	turn := 0
	for !e.state.IsTerminal() && turn < e.maxTurns {
		var actions game.ActionPair
		for _, p := range players {
			actions[p] = e.decide(p, turn, collector)
		}

		e.state = e.simulator.Simulate(e.state.Clone(), actions, game.Player0)
		log.Debug().
			Int("turn", turn).
			Str("player0", actions[game.Player0].String()).
			Str("player1", actions[game.Player1].String()).
			Msg("turn resolved")
		turn++
	}

	winner := game.None
	if e.state.IsTerminal() {
		winner = e.state.Winner()
	}
	gameMetric, moveMetrics := collector.Complete(winner, turn, !e.state.IsTerminal())
	log.Info().Msgf("battle over after %d turns with winner: %d", turn, winner)
	return winner, gameMetric, moveMetrics
}

// decide asks one agent for its action, replacing an illegal answer with the first legal
// action.
func (e *LocalEngine) decide(player game.Player, turn int, collector metrics.Collector) game.Action {
	a := e.agents[player]
	action := a.GetAction(e.state.Clone(), player)

	metric := metrics.MoveMetric{Turn: turn, Player: player, Action: action}
	if reporter, ok := a.(agent.MetricsReporter); ok {
		result := reporter.LastResult()
		metric.Predicted = result.Opponent
		metric.Value = result.Value
		metric.SearchMetrics = result.Metrics
	}

	legal := e.state.LegalActions(player)
	if !utils.Contains(legal, action) {
		if len(legal) == 0 {
			panic("No legal actions at all!")
		}
		log.Warn().Int("player", int(player)).Msgf("agent returned illegal action %s, playing %s instead", action, legal[0])
		action = legal[0]
		metric.Action = action
		metric.Replaced = true
	}

	collector.AddMove(metric)
	return action
}
