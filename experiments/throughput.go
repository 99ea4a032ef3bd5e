package experiments

import (
	"time"

	"showdown/game"
	"showdown/game/duel"
	"showdown/meta"
	"showdown/searcher/agent"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Throughput sums the search work of an agent over a number of decisions.
type Throughput struct {
	Decisions int
	Duration  time.Duration
	Episodes  int64
	Nodes     int64
}

func (t Throughput) EpisodesPerSecond() float64 {
	if t.Duration <= 0 {
		return 0
	}
	return float64(t.Episodes) / t.Duration.Seconds()
}

func (t Throughput) NodesPerSecond() float64 {
	if t.Duration <= 0 {
		return 0
	}
	return float64(t.Nodes) / t.Duration.Seconds()
}

// MeasureThroughput lets a searching agent play player 0 of a default battle against a
// random opponent for up to decisions turns and reports how much it searched.
func MeasureThroughput(cfg agent.Config, decisions int) (Throughput, error) {
	simulator := duel.NewSimulator()
	a, err := agent.New(cfg, simulator)
	if err != nil {
		return Throughput{}, err
	}
	reporter, ok := a.(agent.MetricsReporter)
	if !ok {
		return Throughput{}, errors.Errorf("%s agent does not search", cfg.Strategy)
	}
	opponent := agent.NewRandomAgent(cfg.Seed + 1)

	var throughput Throughput
	var state game.State = duel.NewDefaultState(meta.BattleTurns)
	for throughput.Decisions < decisions && !state.IsTerminal() {
		mine := a.GetAction(state.Clone(), game.Player0)
		result := reporter.LastResult()
		throughput.Decisions++
		throughput.Duration += result.Metrics.Duration
		throughput.Episodes += result.Metrics.Episodes
		throughput.Nodes += result.Metrics.Nodes

		if mine.IsNone() {
			mine = state.LegalActions(game.Player0)[0]
		}
		theirs := opponent.GetAction(state, game.Player1)
		state = simulator.Simulate(state.Clone(), game.ActionPair{mine, theirs}, game.Player0)
	}

	log.Info().
		Str("strategy", string(cfg.Strategy)).
		Int("decisions", throughput.Decisions).
		Float64("episodesPerSecond", throughput.EpisodesPerSecond()).
		Float64("nodesPerSecond", throughput.NodesPerSecond()).
		Msg("measured throughput")
	return throughput, nil
}
