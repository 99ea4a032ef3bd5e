package searcher

import (
	"fmt"

	"showdown/game"
)

// mockState is a node of a hand-built game graph.
type mockState struct {
	key      game.StateKey
	actions  [2][]game.Action
	value    float64 // From player 0's point of view
	winner   game.Player
	terminal bool
}

func (m *mockState) LegalActions(player game.Player) []game.Action {
	if m.terminal {
		return nil
	}
	return m.actions[player]
}

func (m *mockState) IsTerminal() bool {
	return m.terminal
}

func (m *mockState) Winner() game.Player {
	return m.winner
}

func (m *mockState) Evaluate(player game.Player) float64 {
	if player == game.Player0 {
		return m.value
	}
	return -m.value
}

func (m *mockState) CanonicalForm() game.StateKey {
	return m.key
}

func (m *mockState) Clone() game.State {
	c := *m
	return &c
}

// mockSimulator looks transitions up by canonical form and counts calls.
type mockSimulator struct {
	transitions map[game.StateKey]map[game.ActionPair]*mockState
	calls       int
}

func newMockSimulator() *mockSimulator {
	return &mockSimulator{transitions: map[game.StateKey]map[game.ActionPair]*mockState{}}
}

func (m *mockSimulator) Simulate(state game.State, actions game.ActionPair, _ game.Player) game.State {
	m.calls++
	next, ok := m.transitions[state.CanonicalForm()][actions]
	if !ok {
		panic(fmt.Sprintf("no transition from %s with %v", state.CanonicalForm(), actions))
	}
	return next.Clone()
}

func (m *mockSimulator) edge(from *mockState, mine, theirs game.Action, to *mockState) {
	if m.transitions[from.key] == nil {
		m.transitions[from.key] = map[game.ActionPair]*mockState{}
	}
	m.transitions[from.key][game.ActionPair{mine, theirs}] = to
}

func decision(key string, mine, theirs []game.Action) *mockState {
	return &mockState{key: game.StateKey(key), actions: [2][]game.Action{mine, theirs}, winner: game.None}
}

func leaf(key string, value float64) *mockState {
	return &mockState{key: game.StateKey(key), value: value, winner: game.None}
}

func terminal(key string, winner game.Player) *mockState {
	value := 0.0
	switch winner {
	case game.Player0:
		value = 1
	case game.Player1:
		value = -1
	}
	return &mockState{key: game.StateKey(key), value: value, winner: winner, terminal: true}
}

var (
	a0 = game.NewMove(0)
	a1 = game.NewMove(1)
	a2 = game.NewSwitch(1)
	o0 = game.NewMove(0)
	o1 = game.NewMove(1)
	o2 = game.NewSwitch(1)
)

// matrixGame builds a one-turn game whose payoffs (for player 0) are indexed by mine then theirs.
func matrixGame(mine, theirs []game.Action, payoffs [][]float64) (*mockState, *mockSimulator) {
	sim := newMockSimulator()
	root := decision("root", mine, theirs)
	for i, a := range mine {
		for j, o := range theirs {
			sim.edge(root, a, o, leaf(fmt.Sprintf("leaf-%d-%d", i, j), payoffs[i][j]))
		}
	}
	return root, sim
}
