package duel

import (
	"fmt"

	"showdown/game"
)

// MegaMultiplier scales the power of a move used while mega evolving.
const MegaMultiplier = 1.5

// Simulator resolves simultaneous turns: switches happen first, then moves in speed order.
type Simulator struct{}

func NewSimulator() Simulator {
	return Simulator{}
}

// Simulate returns the state after both actions resolve. Speed ties go to perspective.
// The input state is never modified.
func (Simulator) Simulate(s game.State, actions game.ActionPair, perspective game.Player) game.State {
	state, ok := s.(*State)
	if !ok {
		panic(fmt.Sprintf("unexpected state type %T", s))
	}

	next := state.clone()
	if next.IsTerminal() {
		return next
	}

	order := next.turnOrder(perspective)
	for _, p := range order {
		if actions[p].IsSwitch() {
			next.switchTo(p, actions[p].Index)
		}
	}
	for _, p := range order {
		if !actions[p].IsMove() {
			continue
		}
		if !next.team(p).active().Alive() {
			continue
		}
		next.attack(p, actions[p])
		if next.team(p.Opponent()).wiped() {
			break
		}
	}
	for _, p := range order {
		next.replaceFainted(p)
	}

	next.Turn++
	return next
}

func (s *State) turnOrder(perspective game.Player) [2]game.Player {
	other := perspective.Opponent()
	if s.team(other).active().Speed > s.team(perspective).active().Speed {
		return [2]game.Player{other, perspective}
	}
	return [2]game.Player{perspective, other}
}

func (s *State) switchTo(p game.Player, slot int) {
	team := s.team(p)
	if slot < 0 || slot >= len(team.Creatures) || slot == team.Active || !team.Creatures[slot].Alive() {
		panic(fmt.Sprintf("player %d cannot switch to slot %d", p, slot))
	}
	team.Active = slot
}

func (s *State) attack(p game.Player, action game.Action) {
	team := s.team(p)
	attacker := team.active()
	if action.Index < 0 || action.Index >= len(attacker.Moves) {
		panic(fmt.Sprintf("player %d has no move in slot %d", p, action.Index))
	}
	move := attacker.Moves[action.Index]

	power := move.Power
	if action.Mega {
		if !attacker.CanMega || team.MegaUsed {
			panic(fmt.Sprintf("player %d cannot mega evolve", p))
		}
		power = int(float64(power) * MegaMultiplier)
		team.MegaUsed = true
	}

	defender := s.team(p.Opponent()).active()
	defender.HP = max(defender.HP-power, 0)

	if action.VoltTurn && action.Backup.Valid && move.VoltTurn {
		backup := action.Backup.Index
		if backup != team.Active && backup >= 0 && backup < len(team.Creatures) && team.Creatures[backup].Alive() {
			team.Active = backup
		}
	}
}

// replaceFainted sends in the first alive benched creature.
func (s *State) replaceFainted(p game.Player) {
	team := s.team(p)
	if team.active().Alive() {
		return
	}
	if bench := team.bench(); len(bench) > 0 {
		team.Active = bench[0]
	}
}
