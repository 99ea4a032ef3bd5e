package agent

import (
	"showdown/game"
	"showdown/searcher"

	"github.com/rs/zerolog/log"
)

type minimaxAgent struct {
	minimax       *searcher.Minimax
	logPrediction bool
	last          searcher.Result
}

// NewMinimaxAgent returns an agent that runs a fresh depth-bounded search every turn.
func NewMinimaxAgent(minimax *searcher.Minimax, logPrediction bool) Agent {
	return &minimaxAgent{minimax: minimax, logPrediction: logPrediction}
}

func (a *minimaxAgent) GetAction(state game.State, player game.Player) game.Action {
	a.last = a.minimax.Search(state, player)
	if a.logPrediction {
		logPrediction(state, player, a.last)
	}
	return a.last.Action
}

func (a *minimaxAgent) LastResult() searcher.Result {
	return a.last
}

type mctsAgent struct {
	mcts          *searcher.MCTS
	logPrediction bool
	last          searcher.Result
}

// NewMCTSAgent returns an agent that keeps one search tree for the whole battle.
func NewMCTSAgent(mcts *searcher.MCTS, logPrediction bool) Agent {
	return &mctsAgent{mcts: mcts, logPrediction: logPrediction}
}

func (a *mctsAgent) GetAction(state game.State, player game.Player) game.Action {
	a.last = a.mcts.Decide(state, player)
	if a.logPrediction {
		logPrediction(state, player, a.last)
	}
	return a.last.Action
}

func (a *mctsAgent) LastResult() searcher.Result {
	return a.last
}

func logPrediction(state game.State, player game.Player, result searcher.Result) {
	if result.Action.IsNone() {
		return
	}
	log.Info().
		Int("player", int(player)).
		Float64("value", result.Value).
		Msgf("I think you are going to use %s and I will use %s",
			game.Describe(state, player.Opponent(), result.Opponent),
			game.Describe(state, player, result.Action))
}
