package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ActionKind represents the type of choice a player commits to.
type ActionKind int

const (
	NoKind ActionKind = iota
	MoveKind
	SwitchKind
)

func (k ActionKind) String() string {
	switch k {
	case MoveKind:
		return "move"
	case SwitchKind:
		return "switch"
	default:
		return "none"
	}
}

// Backup is the optional team slot a volt-turn move switches into.
type Backup struct {
	Index int
	Valid bool
}

// Action is an immutable committed choice. Actions are compared and hashed by value, so
// they can be used directly as map keys.
type Action struct {
	Kind     ActionKind
	Index    int // Move slot or team slot, depending on Kind
	Mega     bool
	VoltTurn bool
	Backup   Backup
}

// NoAction is returned by the searchers for terminal states.
var NoAction = Action{}

// ActionPair holds one action per player, indexed by Player.
type ActionPair [2]Action

func NewMove(index int) Action {
	return Action{Kind: MoveKind, Index: index}
}

func NewSwitch(index int) Action {
	return Action{Kind: SwitchKind, Index: index}
}

// WithMega returns a copy of the action that also mega evolves.
func (a Action) WithMega() Action {
	a.Mega = true
	return a
}

// WithVoltTurn returns a copy of the action that switches to backup after attacking.
func (a Action) WithVoltTurn(backup int) Action {
	a.VoltTurn = true
	a.Backup = Backup{Index: backup, Valid: true}
	return a
}

func (a Action) IsNone() bool {
	return a.Kind == NoKind
}

func (a Action) IsMove() bool {
	return a.Kind == MoveKind
}

func (a Action) IsSwitch() bool {
	return a.Kind == SwitchKind
}

// String renders the action in the format accepted by ParseAction.
func (a Action) String() string {
	if a.IsNone() {
		return "none"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %d", a.Kind, a.Index)
	if a.Mega {
		sb.WriteString(" mega")
	}
	if a.VoltTurn && a.Backup.Valid {
		fmt.Fprintf(&sb, " volt %d", a.Backup.Index)
	}
	return sb.String()
}

// ParseAction reads actions such as "move 2", "switch 1", "move 0 mega" or "move 3 volt 2".
func ParseAction(text string) (Action, error) {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) < 2 {
		return NoAction, errors.Errorf("cannot parse action %q: expected <move|switch> <index>", text)
	}

	index, err := strconv.Atoi(fields[1])
	if err != nil {
		return NoAction, errors.Wrapf(err, "cannot parse action %q: bad index", text)
	}
	if index < 0 {
		return NoAction, errors.Errorf("cannot parse action %q: negative index", text)
	}

	var action Action
	switch fields[0] {
	case "move", "m":
		action = NewMove(index)
	case "switch", "s":
		action = NewSwitch(index)
		if len(fields) > 2 {
			return NoAction, errors.Errorf("cannot parse action %q: switches take no modifiers", text)
		}
	default:
		return NoAction, errors.Errorf("cannot parse action %q: unknown kind %q", text, fields[0])
	}

	for i := 2; i < len(fields); i++ {
		switch fields[i] {
		case "mega":
			action = action.WithMega()
		case "volt":
			if i+1 >= len(fields) {
				return NoAction, errors.Errorf("cannot parse action %q: volt needs a backup slot", text)
			}
			backup, err := strconv.Atoi(fields[i+1])
			if err != nil {
				return NoAction, errors.Wrapf(err, "cannot parse action %q: bad backup slot", text)
			}
			action = action.WithVoltTurn(backup)
			i++
		default:
			return NoAction, errors.Errorf("cannot parse action %q: unknown modifier %q", text, fields[i])
		}
	}
	return action, nil
}
