package agent

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"showdown/game"
	"showdown/utils"

	"github.com/rs/zerolog/log"
)

type humanAgent struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewHumanAgent returns an agent that asks for actions on out and reads them from in,
// one per line, e.g. "move 0", "switch 2" or "move 1 mega".
func NewHumanAgent(in io.Reader, out io.Writer) Agent {
	return &humanAgent{scanner: bufio.NewScanner(in), out: out}
}

func (a *humanAgent) GetAction(state game.State, player game.Player) game.Action {
	legal := state.LegalActions(player)
	if len(legal) == 0 {
		return game.NoAction
	}

	fmt.Fprintf(a.out, "Player %d legal actions:\n", player)
	for _, action := range legal {
		fmt.Fprintf(a.out, "  %-22s %s\n", action, game.Describe(state, player, action))
	}

	for {
		fmt.Fprint(a.out, "> ")
		if !a.scanner.Scan() {
			log.Warn().Err(a.scanner.Err()).Msgf("input closed, playing %s", legal[0])
			return legal[0]
		}
		line := strings.TrimSpace(a.scanner.Text())
		if line == "" {
			continue
		}

		action, err := game.ParseAction(line)
		if err != nil {
			fmt.Fprintf(a.out, "Invalid action: %v\n", err)
			continue
		}
		if utils.FindIndex(legal, action) < 0 {
			fmt.Fprintf(a.out, "Illegal action %s\n", action)
			continue
		}
		return action
	}
}
