package searcher

import "showdown/game"

// Hyperparameters for MCTS

const Exploration = 0.5 // Exploration constant C in mean + 2C*sqrt(2*ln(N)/n)

// Rollout outcomes are always reported relative to player 1
const WIN = 1.0
const LOSS = 0.0

var players = [2]game.Player{game.Player0, game.Player1}

// outcome converts a winner into the player-1-relative rollout outcome.
func outcome(winner game.Player) float64 {
	if winner == game.Player1 {
		return WIN
	}
	return LOSS
}

// winRate converts player-1-relative totals into the given player's win rate.
func winRate(player game.Player, wins, visits float64) float64 {
	if visits == 0 {
		panic("cannot compute win rate: 0 visits")
	}
	rate := wins / visits
	if player == game.Player0 {
		return 1 - rate
	}
	return rate
}

// legalActions returns the player's actions, panicking when a live state has none.
func legalActions(state game.State, player game.Player) []game.Action {
	actions := state.LegalActions(player)
	if len(actions) == 0 {
		panic("non-terminal state has no legal actions")
	}
	return actions
}
