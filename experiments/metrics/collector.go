package metrics

import (
	"time"

	"showdown/game"
	"showdown/searcher"
)

// MoveMetric records one agent decision.
type MoveMetric struct {
	Turn      int
	Player    game.Player
	Action    game.Action
	Predicted game.Action // Opponent action the agent expected, if it searched
	Value     float64
	Replaced  bool // The agent's action was illegal and the engine substituted one
	searcher.SearchMetrics
}

type GameMetric struct {
	Winner     game.Player
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	Turns      int
	TurnLimit  bool // Stopped by the engine's turn limit rather than by the battle ending
	TotalMoves int
}

type Collector interface {
	Start()
	AddMove(metric MoveMetric)
	Complete(winner game.Player, turns int, turnLimit bool) (GameMetric, []MoveMetric)
}

// A game runs on one goroutine, so the collector needs no synchronization.
type collector struct {
	startTime time.Time
	moves     []MoveMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start() {
	c.startTime = time.Now()
	c.moves = nil
}

func (c *collector) AddMove(metric MoveMetric) {
	c.moves = append(c.moves, metric)
}

func (c *collector) Complete(winner game.Player, turns int, turnLimit bool) (GameMetric, []MoveMetric) {
	end := time.Now()
	return GameMetric{
		Winner:     winner,
		StartTime:  c.startTime,
		EndTime:    end,
		Duration:   end.Sub(c.startTime),
		Turns:      turns,
		TurnLimit:  turnLimit,
		TotalMoves: len(c.moves),
	}, c.moves
}
