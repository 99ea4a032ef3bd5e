package game

// Player identifies one side of a two-player battle.
type Player int

const (
	None    Player = -1
	Player0 Player = 0
	Player1 Player = 1
)

// Opponent returns the other side.
func (p Player) Opponent() Player {
	return 1 - p
}

// StateKey is the canonical, comparable form of a state. Two states with equal keys are
// interchangeable for caching and tree reuse.
type StateKey string

// State is the battle state consumed by the searchers. Implementations must not be
// mutated through this interface; Clone returns an independent copy.
type State interface {
	LegalActions(player Player) []Action
	IsTerminal() bool
	// Winner returns None while the battle is undecided
	Winner() Player
	// Evaluate scores the state from the given player's point of view
	Evaluate(player Player) float64
	CanonicalForm() StateKey
	Clone() State
}

// Simulator resolves a committed action pair into the next state. It must not modify the
// input state.
type Simulator interface {
	Simulate(state State, actions ActionPair, perspective Player) State
}

// Describer is implemented by states that can render actions for humans.
type Describer interface {
	DescribeAction(player Player, action Action) string
}

// Describe renders an action with the state's Describer if it has one.
func Describe(state State, player Player, action Action) string {
	if d, ok := state.(Describer); ok {
		return d.DescribeAction(player, action)
	}
	return action.String()
}
