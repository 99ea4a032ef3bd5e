package agent

import (
	"time"

	"showdown/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns an agent that plays a uniformly random legal action. A zero
// seed picks one from the clock.
func NewRandomAgent(seed uint64) Agent {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) GetAction(state game.State, player game.Player) game.Action {
	legal := state.LegalActions(player)
	if len(legal) == 0 {
		return game.NoAction
	}
	return legal[a.rng.Intn(len(legal))]
}
