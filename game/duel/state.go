// Package duel is a small deterministic battle simulator used to drive the searchers
// end to end. Each side fields a team of creatures; one is active at a time.
package duel

import (
	"fmt"
	"strconv"
	"strings"

	"showdown/game"
)

// Move is an attack a creature knows.
type Move struct {
	Name     string `json:"name"`
	Power    int    `json:"power"`
	VoltTurn bool   `json:"voltTurn"` // Attacker may switch to a backup after hitting
}

type Creature struct {
	Name    string `json:"name"`
	HP      int    `json:"hp"`
	MaxHP   int    `json:"maxHp"`
	Speed   int    `json:"speed"`
	CanMega bool   `json:"canMega"`
	Moves   []Move `json:"moves"`
}

func (c Creature) Alive() bool {
	return c.HP > 0
}

type Team struct {
	Creatures []Creature `json:"creatures"`
	Active    int        `json:"active"`
	MegaUsed  bool       `json:"megaUsed"`
}

func (t *Team) active() *Creature {
	return &t.Creatures[t.Active]
}

func (t *Team) wiped() bool {
	for _, c := range t.Creatures {
		if c.Alive() {
			return false
		}
	}
	return true
}

// hpFraction returns the share of the team's total HP that remains.
func (t *Team) hpFraction() float64 {
	hp, maxHP := 0, 0
	for _, c := range t.Creatures {
		hp += c.HP
		maxHP += c.MaxHP
	}
	if maxHP == 0 {
		return 0
	}
	return float64(hp) / float64(maxHP)
}

// bench returns the slots of alive creatures other than the active one.
func (t *Team) bench() []int {
	var slots []int
	for i, c := range t.Creatures {
		if i != t.Active && c.Alive() {
			slots = append(slots, i)
		}
	}
	return slots
}

func (t Team) copy() Team {
	creatures := make([]Creature, len(t.Creatures))
	copy(creatures, t.Creatures) // Moves are never mutated and stay shared
	t.Creatures = creatures
	return t
}

// State is the battle state, indexed by game.Player.
type State struct {
	Teams    [2]Team `json:"teams"`
	Turn     int     `json:"turn"`
	MaxTurns int     `json:"maxTurns"` // 0 disables the turn limit
}

// NewState returns a battle between the given teams, with their first creatures active.
func NewState(team0, team1 []Creature, maxTurns int) *State {
	s := &State{MaxTurns: maxTurns}
	s.Teams[game.Player0] = Team{Creatures: team0}.copy()
	s.Teams[game.Player1] = Team{Creatures: team1}.copy()
	return s
}

func (s *State) team(p game.Player) *Team {
	return &s.Teams[p]
}

func (s *State) LegalActions(player game.Player) []game.Action {
	if s.IsTerminal() {
		return nil
	}

	team := s.team(player)
	active := team.active()
	bench := team.bench()

	var actions []game.Action
	if active.Alive() {
		for i, move := range active.Moves {
			actions = append(actions, game.NewMove(i))
			if active.CanMega && !team.MegaUsed {
				actions = append(actions, game.NewMove(i).WithMega())
			}
			if move.VoltTurn {
				for _, slot := range bench {
					actions = append(actions, game.NewMove(i).WithVoltTurn(slot))
				}
			}
		}
	}
	for _, slot := range bench {
		actions = append(actions, game.NewSwitch(slot))
	}
	return actions
}

func (s *State) IsTerminal() bool {
	return s.Teams[0].wiped() || s.Teams[1].wiped() || (s.MaxTurns > 0 && s.Turn >= s.MaxTurns)
}

// Winner is the side left standing, or the side with the larger remaining HP share once
// the turn limit is hit. Equal shares at the limit are a draw.
func (s *State) Winner() game.Player {
	wiped0, wiped1 := s.Teams[0].wiped(), s.Teams[1].wiped()
	switch {
	case wiped0 && !wiped1:
		return game.Player1
	case wiped1 && !wiped0:
		return game.Player0
	case wiped0 && wiped1:
		return game.None
	}

	if s.MaxTurns > 0 && s.Turn >= s.MaxTurns {
		f0, f1 := s.Teams[0].hpFraction(), s.Teams[1].hpFraction()
		if f0 > f1 {
			return game.Player0
		}
		if f1 > f0 {
			return game.Player1
		}
	}
	return game.None
}

// Evaluate returns the difference in remaining HP share, or +-1 once the battle is decided.
func (s *State) Evaluate(player game.Player) float64 {
	if s.IsTerminal() {
		switch s.Winner() {
		case player:
			return 1
		case player.Opponent():
			return -1
		default:
			return 0
		}
	}
	return s.team(player).hpFraction() - s.team(player.Opponent()).hpFraction()
}

func (s *State) CanonicalForm() game.StateKey {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(s.Turn))
	for _, t := range s.Teams {
		sb.WriteByte('|')
		sb.WriteString(strconv.Itoa(t.Active))
		if t.MegaUsed {
			sb.WriteByte('m')
		}
		for _, c := range t.Creatures {
			sb.WriteByte(',')
			sb.WriteString(strconv.Itoa(c.HP))
		}
	}
	return game.StateKey(sb.String())
}

func (s *State) Clone() game.State {
	return s.clone()
}

func (s *State) clone() *State {
	c := *s
	for i := range c.Teams {
		c.Teams[i] = s.Teams[i].copy()
	}
	return &c
}

// DescribeAction names the move or the creature switched in.
func (s *State) DescribeAction(player game.Player, action game.Action) string {
	team := s.team(player)
	switch action.Kind {
	case game.MoveKind:
		active := team.active()
		if action.Index < 0 || action.Index >= len(active.Moves) {
			return action.String()
		}
		desc := active.Moves[action.Index].Name
		if action.Mega {
			desc += "(mega)"
		}
		if action.VoltTurn && action.Backup.Valid {
			if action.Backup.Index < 0 || action.Backup.Index >= len(team.Creatures) {
				return action.String()
			}
			desc += fmt.Sprintf("(volt->%s)", team.Creatures[action.Backup.Index].Name)
		}
		return desc
	case game.SwitchKind:
		if action.Index < 0 || action.Index >= len(team.Creatures) {
			return action.String()
		}
		return fmt.Sprintf("Switch[%s]", team.Creatures[action.Index].Name)
	default:
		return action.String()
	}
}
