package engine

import (
	"showdown/experiments/metrics"
	"showdown/game"
)

type Engine interface {
	// Run plays a battle till it is decided or the turn limit is reached
	Run() (winner game.Player, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
