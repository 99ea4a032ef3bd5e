package searcher

import (
	"math"
	"testing"

	"showdown/game"

	"github.com/stretchr/testify/require"
)

func TestNewUCT(t *testing.T) {
	t.Run("panics with zero parent visits", func(t *testing.T) {
		require.Panics(t, func() {
			newUCT(Exploration, 0)
		}, "Should panic when N is 0")
	})
}

func TestUCTEvaluate(t *testing.T) {
	t.Run("computing UCT value", func(t *testing.T) {
		policy := newUCT(Exploration, 100)
		got := policy.evaluate(5.0, 10)

		expected := 5.0/10 + 2*Exploration*math.Sqrt(2*math.Log(100)/10.0)
		require.InDelta(t, expected, got, 0.0001,
			"Should compute q/n + 2C*sqrt(2*ln(N)/n)")
	})

	t.Run("no exploration bonus on the first visit", func(t *testing.T) {
		policy := newUCT(Exploration, 1)

		require.Equal(t, 1.0, policy.evaluate(1, 1), "ln(1) should zero the exploration term")
	})

	t.Run("panics with zero child visits", func(t *testing.T) {
		policy := newUCT(Exploration, 100)

		require.Panics(t, func() {
			policy.evaluate(5.0, 0)
		}, "Should panic when n is 0")
	})

	t.Run("backpropagation rescores only the chosen arms", func(t *testing.T) {
		root, sim := matrixGame([]game.Action{a0, a1}, []game.Action{o0}, [][]float64{{0}, {0}})
		tree := NewTree(Exploration)
		tree.Reroot(root)

		// N=1: player 0 wins through a0, so ln(N) leaves no exploration bonus
		_, first := tree.selectAndExpand()
		tree.backpropagate(tree.expand(first, sim, game.Player0), LOSS)
		// N=2: player 1 wins through a1
		_, second := tree.selectAndExpand()
		require.Equal(t, game.ActionPair{a1, o0}, tree.pairs[second].actions)
		tree.backpropagate(tree.expand(second, sim, game.Player0), WIN)

		bonus := func(N, n float64) float64 { return 2 * Exploration * math.Sqrt(2*math.Log(N)/n) }
		stale, _ := tree.Stats(game.Player0, a0)
		fresh, _ := tree.Stats(game.Player0, a1)
		shared, _ := tree.Stats(game.Player1, o0)
		require.Equal(t, 1.0, stale.Score, "a0 keeps the score it got at N=1")
		require.InDelta(t, 0+bonus(2, 1), fresh.Score, 1e-9, "a1 lost its only visit for player 0")
		require.InDelta(t, 0.5+bonus(2, 2), shared.Score, 1e-9, "o0 won one of two visits for player 1")

		require.Equal(t, a1, tree.states[tree.root].pick(game.Player0), "Exploration bonus should outrank a0's stale score")
	})
}
