package searcher

import (
	"fmt"
	"math"

	"showdown/game"
)

// Nodes live in two arenas and refer to each other by index. Ownership always runs
// parent to child; parent links and the reachable table are plain indices.
type stateID int32
type pairID int32

const (
	noState stateID = -1
	noPair  pairID  = -1
)

// arm holds one player's bandit statistics for one action. Wins are player-1-relative.
type arm struct {
	wins   float64
	visits float64
	score  float64
}

// stateNode is a game state reached in the tree.
type stateNode struct {
	parent    pairID
	state     game.State
	key       game.StateKey
	wins      float64
	visits    float64
	actions   [2][]game.Action // Legal actions per player, in selection order
	arms      [2]map[game.Action]*arm
	pairs     map[game.ActionPair]pairID
	reachable map[game.StateKey]stateID // States one turn below, for re-rooting
}

// pairNode is one committed action pair below a state. The simulator is deterministic,
// so only children[0] is ever followed.
type pairNode struct {
	parent   stateID
	actions  game.ActionPair
	children []stateID
	wins     float64
	visits   float64
}

// Tree is the Monte Carlo statistics graph over simultaneous turns. Each player picks
// its action with its own UCB1 bandit.
type Tree struct {
	states      []stateNode
	pairs       []pairNode
	root        stateID
	exploration float64
}

func NewTree(exploration float64) *Tree {
	return &Tree{root: noState, exploration: exploration}
}

// ActionStats is a read-only view of one player's statistics for an action.
type ActionStats struct {
	Wins   float64 // Player-1-relative
	Visits float64
	Score  float64
}

// Size returns the number of state nodes in the tree.
func (t *Tree) Size() int {
	return len(t.states)
}

// RootVisits returns how often the root has been passed through during backpropagation.
func (t *Tree) RootVisits() (wins, visits float64) {
	if t.root == noState {
		return 0, 0
	}
	node := &t.states[t.root]
	return node.wins, node.visits
}

// Stats returns the root statistics of player's action.
func (t *Tree) Stats(player game.Player, action game.Action) (ActionStats, bool) {
	if t.root == noState {
		return ActionStats{}, false
	}
	a, ok := t.states[t.root].arms[player][action]
	if !ok {
		return ActionStats{}, false
	}
	return ActionStats{Wins: a.wins, Visits: a.visits, Score: a.score}, true
}

// MeanWinRate returns the raw player-1-relative mean outcome of player's action at the root.
func (t *Tree) MeanWinRate(player game.Player, action game.Action) float64 {
	stats, ok := t.Stats(player, action)
	if !ok || stats.Visits == 0 {
		return math.NaN()
	}
	return stats.Wins / stats.Visits
}

// Reroot moves the root to the known state matching the real state, keeping its
// statistics, or starts over. It reports whether statistics were kept.
func (t *Tree) Reroot(state game.State) bool {
	if t.root == noState {
		t.reset(state)
		return false
	}

	key := state.CanonicalForm()
	if t.states[t.root].key == key {
		return true
	}
	child, ok := t.states[t.root].reachable[key]
	if !ok {
		t.reset(state)
		return false
	}
	t.compact(child)
	return true
}

func (t *Tree) reset(state game.State) {
	t.states, t.pairs = nil, nil
	t.root = t.addState(noPair, state.Clone())
}

// compact copies the subtree under newRoot into fresh arenas and drops everything else.
func (t *Tree) compact(newRoot stateID) {
	stateMap := map[stateID]stateID{newRoot: 0}
	pairMap := map[pairID]pairID{}

	states := []stateNode{t.states[newRoot]}
	states[0].parent = noPair
	var pairs []pairNode

	queue := []stateID{newRoot}
	for i := 0; i < len(queue); i++ {
		old := &t.states[queue[i]]
		for _, pid := range old.pairs {
			newPair := pairID(len(pairs))
			pairMap[pid] = newPair
			pair := t.pairs[pid]
			pair.parent = stateMap[queue[i]]
			pairs = append(pairs, pair)

			for _, child := range pair.children {
				stateMap[child] = stateID(len(states))
				node := t.states[child]
				node.parent = newPair
				states = append(states, node)
				queue = append(queue, child)
			}
		}
	}

	for i := range states {
		node := &states[i]
		remapped := make(map[game.ActionPair]pairID, len(node.pairs))
		for actions, pid := range node.pairs {
			remapped[actions] = pairMap[pid]
		}
		node.pairs = remapped

		reachable := make(map[game.StateKey]stateID, len(node.reachable))
		for key, sid := range node.reachable {
			if mapped, ok := stateMap[sid]; ok {
				reachable[key] = mapped
			}
		}
		node.reachable = reachable
	}
	for i := range pairs {
		children := make([]stateID, len(pairs[i].children))
		for j, child := range pairs[i].children {
			children[j] = stateMap[child]
		}
		pairs[i].children = children
	}

	t.states = states
	t.pairs = pairs
	t.root = 0
}

// addState creates a state node below parent. Every legal action starts with an
// infinite score so it is tried before UCB1 ranks it.
func (t *Tree) addState(parent pairID, state game.State) stateID {
	id := stateID(len(t.states))
	node := stateNode{
		parent:    parent,
		state:     state,
		key:       state.CanonicalForm(),
		pairs:     map[game.ActionPair]pairID{},
		reachable: map[game.StateKey]stateID{},
	}
	for _, p := range players {
		actions := state.LegalActions(p)
		node.actions[p] = actions
		node.arms[p] = make(map[game.Action]*arm, len(actions))
		for _, action := range actions {
			node.arms[p][action] = &arm{score: math.Inf(1)}
		}
	}
	t.states = append(t.states, node)

	if parent != noPair {
		t.pairs[parent].children = append(t.pairs[parent].children, id)
		owner := &t.states[t.pairs[parent].parent]
		if _, ok := owner.reachable[node.key]; !ok {
			owner.reachable[node.key] = id
		}
	}
	return id
}

// pick returns player's action with the highest score; ties go to the earliest action.
func (n *stateNode) pick(player game.Player) game.Action {
	best := game.NoAction
	bestScore := math.Inf(-1)
	for _, action := range n.actions[player] {
		score := n.arms[player][action].score
		if best.IsNone() || score > bestScore {
			best = action
			bestScore = score
		}
	}
	return best
}

// selectAndExpand walks down from the root choosing each player's action independently
// and attaches a new action pair node at the first unexplored pair. A terminal state
// stops the walk and is returned with noPair.
func (t *Tree) selectAndExpand() (stateID, pairID) {
	if t.root == noState {
		panic("tree has no root")
	}

	current := t.root
	for {
		node := &t.states[current]
		if node.state.IsTerminal() {
			return current, noPair
		}
		if len(node.actions[game.Player0]) == 0 || len(node.actions[game.Player1]) == 0 {
			panic("non-terminal state has no legal actions")
		}

		actions := game.ActionPair{node.pick(game.Player0), node.pick(game.Player1)}
		pid, ok := node.pairs[actions]
		if !ok {
			pid = pairID(len(t.pairs))
			t.pairs = append(t.pairs, pairNode{parent: current, actions: actions})
			node.pairs[actions] = pid
			return current, pid
		}
		if len(t.pairs[pid].children) == 0 {
			return current, pid
		}
		current = t.pairs[pid].children[0]
	}
}

// expand simulates the action pair from a copy of its parent state and adds the result.
func (t *Tree) expand(pid pairID, simulator game.Simulator, perspective game.Player) stateID {
	pair := t.pairs[pid]
	state := t.states[pair.parent].state.Clone()
	next := simulator.Simulate(state, pair.actions, perspective)
	return t.addState(pid, next)
}

// backpropagate credits the player-1-relative outcome on every edge from leaf to root.
func (t *Tree) backpropagate(leaf stateID, outcome float64) {
	node := leaf
	for t.states[node].parent != noPair {
		pair := &t.pairs[t.states[node].parent]
		pair.visits++
		pair.wins += outcome

		owner := &t.states[pair.parent]
		owner.visits++
		owner.wins += outcome

		policy := newUCT(t.exploration, owner.visits)
		for _, p := range players {
			a, ok := owner.arms[p][pair.actions[p]]
			if !ok {
				panic(fmt.Sprintf("action %s is not tracked for player %d", pair.actions[p], p))
			}
			a.visits++
			a.wins += outcome
			a.score = policy.evaluate(playerWins(p, a.wins, a.visits), a.visits)
		}

		node = pair.parent
	}
}

// playerWins converts player-1-relative wins into the given player's wins.
func playerWins(player game.Player, wins, visits float64) float64 {
	if player == game.Player0 {
		return visits - wins
	}
	return wins
}

// BestAction returns player's root action with the highest empirical win rate, and that
// rate from player's point of view. Actions that were never tried are skipped.
func (t *Tree) BestAction(player game.Player) (game.Action, float64) {
	if t.root == noState {
		return game.NoAction, 0
	}

	node := &t.states[t.root]
	best := game.NoAction
	bestRate := math.Inf(-1)
	for _, action := range node.actions[player] {
		a := node.arms[player][action]
		if a.visits == 0 {
			continue
		}
		if rate := winRate(player, a.wins, a.visits); best.IsNone() || rate > bestRate {
			best = action
			bestRate = rate
		}
	}

	if best.IsNone() && len(node.actions[player]) > 0 {
		return node.actions[player][0], 0
	}
	if best.IsNone() {
		return game.NoAction, 0
	}
	return best, bestRate
}
