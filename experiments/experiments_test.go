package experiments

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"showdown/experiments/metrics"
	"showdown/meta"
	"showdown/searcher/agent"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/require"
)

const setupYAML = `
name: depth
num_games: 4
battle_turns: 30
agents:
  - id: 1
    strategy: pessimistic
    depth: 1
  - id: 2
    strategy: mcts
    budget: 250ms
    episodes: 40
    seed: 9
  - id: 3
    strategy: random
    seed: 4
matchups:
  - agent0: 1
    agent1: 3
`

func TestParseSetup(t *testing.T) {
	t.Run("decodes agents and fills defaults", func(t *testing.T) {
		setup, err := ParseSetup(strings.NewReader(setupYAML))

		require.NoError(t, err)
		require.Equal(t, "depth", setup.Name)
		require.Equal(t, 4, setup.NumGames)
		require.Equal(t, 30, setup.BattleTurns)
		require.Equal(t, meta.MaxTurns, setup.MaxTurns)
		require.Equal(t, meta.OutputDir, setup.OutputDir)
		require.Len(t, setup.Agents, 3)
		require.Equal(t, agent.Config{ID: 2, Strategy: agent.MCTS, Budget: 250 * time.Millisecond, Episodes: 40, Seed: 9}, setup.Agents[1])
		require.Equal(t, []MatchUp{{Agent0: 1, Agent1: 3}}, setup.MatchUps)
	})

	t.Run("round robin without match-ups", func(t *testing.T) {
		setup, err := ParseSetup(strings.NewReader(`
name: all
agents:
  - {id: 1, strategy: random}
  - {id: 2, strategy: random}
  - {id: 3, strategy: random}
`))

		require.NoError(t, err)
		require.Equal(t, []MatchUp{{1, 2}, {1, 3}, {2, 3}}, setup.MatchUps)
		require.Equal(t, meta.NumGames, setup.NumGames)
	})

	for name, text := range map[string]string{
		"missing name":     "agents: [{id: 1, strategy: random}, {id: 2, strategy: random}]",
		"duplicate id":     "name: x\nagents: [{id: 1, strategy: random}, {id: 1, strategy: random}]",
		"unknown agent":    "name: x\nagents: [{id: 1, strategy: random}]\nmatchups: [{agent0: 1, agent1: 2}]",
		"no match-ups":     "name: x\nagents: [{id: 1, strategy: random}]",
		"human agent":      "name: x\nagents: [{id: 1, strategy: human}, {id: 2, strategy: random}]",
		"unknown field":    "name: x\nplayers: 2",
		"malformed budget": "name: x\nagents: [{id: 1, strategy: mcts, budget: soon}]",
	} {
		t.Run("rejects "+name, func(t *testing.T) {
			_, err := ParseSetup(strings.NewReader(text))

			require.Error(t, err)
		})
	}
}

func TestLoadSetup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setup.yaml")
	require.NoError(t, os.WriteFile(path, []byte(setupYAML), 0644))

	setup, err := LoadSetup(path)
	require.NoError(t, err)
	require.Equal(t, "depth", setup.Name)

	_, err = LoadSetup(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestRun(t *testing.T) {
	setup, err := ParseSetup(strings.NewReader(setupYAML))
	require.NoError(t, err)
	setup.OutputDir = t.TempDir()

	summary, err := Run(setup)

	require.NoError(t, err)
	require.Equal(t, 4, summary.Games)
	wins := summary.Draws
	for _, n := range summary.Wins {
		wins += n
	}
	require.Equal(t, 4, wins, "Every game should end with a result")

	games, err := parquet.ReadFile[metrics.GameRecord](filepath.Join(summary.Dir, "game_records.parquet"))
	require.NoError(t, err)
	require.Len(t, games, 4)
	for i, record := range games {
		require.Equal(t, int64(i+1), record.ID)
		if i%2 == 0 {
			require.Equal(t, [2]int64{1, 3}, [2]int64{record.Agent0, record.Agent1})
		} else {
			require.Equal(t, [2]int64{3, 1}, [2]int64{record.Agent0, record.Agent1}, "Seats should alternate")
		}
		require.LessOrEqual(t, record.Turns, int32(30))
	}

	moves, err := parquet.ReadFile[metrics.MoveRecord](filepath.Join(summary.Dir, "move_records.parquet"))
	require.NoError(t, err)
	total := 0
	for _, record := range games {
		total += int(record.TotalMoves)
	}
	require.Len(t, moves, total)

	configs, err := parquet.ReadFile[metrics.AgentConfig](filepath.Join(summary.Dir, "agent_configs.parquet"))
	require.NoError(t, err)
	require.Len(t, configs, 3)
	require.Equal(t, "mcts", configs[1].Strategy)
	require.Equal(t, int64(250), configs[1].BudgetMs)
}

func TestMeasureThroughput(t *testing.T) {
	t.Run("search agent", func(t *testing.T) {
		got, err := MeasureThroughput(agent.Config{Strategy: agent.MCTS, Episodes: 50, Seed: 2}, 3)

		require.NoError(t, err)
		require.Equal(t, 3, got.Decisions)
		require.Equal(t, int64(150), got.Episodes)
		require.Greater(t, got.EpisodesPerSecond(), 0.0)
	})

	t.Run("random agent does not search", func(t *testing.T) {
		_, err := MeasureThroughput(agent.Config{Strategy: agent.Random}, 3)

		require.Error(t, err)
	})
}
