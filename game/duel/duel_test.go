package duel

import (
	"testing"

	"showdown/game"

	"github.com/stretchr/testify/require"
)

func smallState() *State {
	team0 := []Creature{
		{Name: "A", HP: 50, MaxHP: 50, Speed: 10, CanMega: true, Moves: []Move{{Name: "Hit", Power: 20}, {Name: "Pivot", Power: 10, VoltTurn: true}}},
		{Name: "B", HP: 40, MaxHP: 40, Speed: 5, Moves: []Move{{Name: "Tap", Power: 5}}},
	}
	team1 := []Creature{
		{Name: "X", HP: 30, MaxHP: 30, Speed: 20, Moves: []Move{{Name: "Claw", Power: 15}}},
	}
	return NewState(team0, team1, 0)
}

func TestLegalActions(t *testing.T) {
	t.Run("moves, mega and volt variants, then switches", func(t *testing.T) {
		s := smallState()

		got := s.LegalActions(game.Player0)

		require.Equal(t, []game.Action{
			game.NewMove(0),
			game.NewMove(0).WithMega(),
			game.NewMove(1),
			game.NewMove(1).WithMega(),
			game.NewMove(1).WithVoltTurn(1),
			game.NewSwitch(1),
		}, got, "Should list every move variant then every switch")
	})

	t.Run("no switches without a bench", func(t *testing.T) {
		s := smallState()

		require.Equal(t, []game.Action{game.NewMove(0)}, s.LegalActions(game.Player1))
	})

	t.Run("no actions once terminal", func(t *testing.T) {
		s := smallState()
		s.Teams[1].Creatures[0].HP = 0

		require.Empty(t, s.LegalActions(game.Player0))
		require.True(t, s.IsTerminal())
	})
}

func TestSimulate(t *testing.T) {
	sim := NewSimulator()

	t.Run("faster creature attacks first and input is untouched", func(t *testing.T) {
		s := smallState()
		before := s.CanonicalForm()

		next := sim.Simulate(s, game.ActionPair{game.NewMove(0), game.NewMove(0)}, game.Player0).(*State)

		require.Equal(t, before, s.CanonicalForm(), "Input state should not change")
		require.Equal(t, 35, next.Teams[0].Creatures[0].HP, "Player 0 should take 15 damage")
		require.Equal(t, 10, next.Teams[1].Creatures[0].HP, "Player 1 should take 20 damage")
		require.Equal(t, 1, next.Turn)
	})

	t.Run("switch resolves before moves", func(t *testing.T) {
		s := smallState()

		next := sim.Simulate(s, game.ActionPair{game.NewSwitch(1), game.NewMove(0)}, game.Player0).(*State)

		require.Equal(t, 1, next.Teams[0].Active)
		require.Equal(t, 25, next.Teams[0].Creatures[1].HP, "Switched-in creature should take the hit")
		require.Equal(t, 50, next.Teams[0].Creatures[0].HP)
	})

	t.Run("mega boosts power once", func(t *testing.T) {
		s := smallState()

		next := sim.Simulate(s, game.ActionPair{game.NewMove(0).WithMega(), game.NewMove(0)}, game.Player0).(*State)

		require.Equal(t, 0, next.Teams[1].Creatures[0].HP, "30 damage should knock out X")
		require.True(t, next.Teams[0].MegaUsed)
		require.NotContains(t, next.LegalActions(game.Player0), game.NewMove(0).WithMega())
	})

	t.Run("volt turn switches the attacker out after hitting", func(t *testing.T) {
		s := smallState()

		next := sim.Simulate(s, game.ActionPair{game.NewMove(1).WithVoltTurn(1), game.NewMove(0)}, game.Player0).(*State)

		require.Equal(t, 1, next.Teams[0].Active, "Attacker should switch to its backup")
		require.Equal(t, 35, next.Teams[0].Creatures[0].HP, "Slower attacker should be hit before switching")
		require.Equal(t, 20, next.Teams[1].Creatures[0].HP)
	})

	t.Run("fainted actives are replaced", func(t *testing.T) {
		s := smallState()
		s.Teams[0].Creatures[0].HP = 10

		next := sim.Simulate(s, game.ActionPair{game.NewMove(0), game.NewMove(0)}, game.Player0).(*State)

		require.Equal(t, 0, next.Teams[0].Creatures[0].HP)
		require.Equal(t, 1, next.Teams[0].Active, "Next alive creature should be sent in")
		require.Equal(t, 30, next.Teams[1].Creatures[0].HP, "Fainted creature should not attack")
	})

	t.Run("illegal switch panics", func(t *testing.T) {
		s := smallState()

		require.Panics(t, func() {
			sim.Simulate(s, game.ActionPair{game.NewSwitch(0), game.NewMove(0)}, game.Player0)
		})
	})
}

func TestWinnerAndEvaluate(t *testing.T) {
	t.Run("wiped team loses", func(t *testing.T) {
		s := smallState()
		s.Teams[1].Creatures[0].HP = 0

		require.Equal(t, game.Player0, s.Winner())
		require.Equal(t, 1.0, s.Evaluate(game.Player0))
		require.Equal(t, -1.0, s.Evaluate(game.Player1))
	})

	t.Run("turn limit decided by remaining hp share", func(t *testing.T) {
		s := smallState()
		s.MaxTurns = 3
		s.Turn = 3
		s.Teams[0].Creatures[0].HP = 10

		require.True(t, s.IsTerminal())
		require.Equal(t, game.Player1, s.Winner())
	})

	t.Run("undecided battle evaluates hp share difference", func(t *testing.T) {
		s := smallState()
		s.Teams[1].Creatures[0].HP = 15

		require.Equal(t, game.None, s.Winner())
		require.InDelta(t, 0.5, s.Evaluate(game.Player0), 1e-9)
		require.InDelta(t, -0.5, s.Evaluate(game.Player1), 1e-9)
	})
}

func TestCanonicalFormAndClone(t *testing.T) {
	s := smallState()
	c := s.Clone().(*State)

	require.Equal(t, s.CanonicalForm(), c.CanonicalForm(), "Clones should share a canonical form")

	c.Teams[0].Creatures[0].HP = 1
	require.NotEqual(t, s.CanonicalForm(), c.CanonicalForm(), "Clone should be independent")
	require.Equal(t, 50, s.Teams[0].Creatures[0].HP)
}

func TestDescribeAction(t *testing.T) {
	s := smallState()

	require.Equal(t, "Hit(mega)", s.DescribeAction(game.Player0, game.NewMove(0).WithMega()))
	require.Equal(t, "Pivot(volt->B)", s.DescribeAction(game.Player0, game.NewMove(1).WithVoltTurn(1)))
	require.Equal(t, "Switch[B]", s.DescribeAction(game.Player0, game.NewSwitch(1)))

	t.Run("out of range slots fall back to the action string", func(t *testing.T) {
		volt := game.NewMove(1).WithVoltTurn(7)
		require.NotPanics(t, func() {
			require.Equal(t, volt.String(), s.DescribeAction(game.Player0, volt))
		})
		require.Equal(t, game.NewMove(9).String(), s.DescribeAction(game.Player0, game.NewMove(9)))
		require.Equal(t, game.NewSwitch(-1).String(), s.DescribeAction(game.Player0, game.NewSwitch(-1)))
	})
}
