// meta/meta.go
package meta

import "time"

// MaxTurns caps the number of turns the engine plays before calling the battle.
const MaxTurns = 300

// BattleTurns is the turn limit built into the default duel state.
const BattleTurns = 100

// DefaultDepth is the minimax lookahead in turns.
const DefaultDepth = 2

// DefaultBudget is the wall-clock budget of one MCTS decision.
const DefaultBudget = 500 * time.Millisecond

// NumGames is the number of games per match-up when a setup does not say.
const NumGames = 30

// OutputDir is where experiment results are written when a setup does not say.
const OutputDir = "experiments"
