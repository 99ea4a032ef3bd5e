package experiments

import (
	"io"
	"os"

	"showdown/engine"
	"showdown/experiments/metrics"
	"showdown/game"
	"showdown/game/duel"
	"showdown/meta"
	"showdown/searcher/agent"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// MatchUp pairs two agents by config ID. Agent0 takes the first seat in odd-numbered games.
type MatchUp struct {
	Agent0 int `yaml:"agent0"`
	Agent1 int `yaml:"agent1"`
}

// Setup describes an experiment: the agents taking part and who plays whom.
type Setup struct {
	Name        string         `yaml:"name"`
	Agents      []agent.Config `yaml:"agents"`
	MatchUps    []MatchUp      `yaml:"matchups"` // Every pair of agents when empty
	NumGames    int            `yaml:"num_games"`
	MaxTurns    int            `yaml:"max_turns"`    // Engine turn cap
	BattleTurns int            `yaml:"battle_turns"` // Turn limit of the battle itself
	OutputDir   string         `yaml:"output_dir"`
}

// LoadSetup reads a YAML setup file.
func LoadSetup(path string) (Setup, error) {
	f, err := os.Open(path)
	if err != nil {
		return Setup{}, errors.Wrapf(err, "failed to open setup %s", path)
	}
	defer f.Close()

	setup, err := ParseSetup(f)
	if err != nil {
		return Setup{}, errors.Wrapf(err, "invalid setup %s", path)
	}
	return setup, nil
}

// ParseSetup decodes a YAML setup, fills in defaults and validates it.
func ParseSetup(r io.Reader) (Setup, error) {
	var setup Setup
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&setup); err != nil {
		return Setup{}, errors.Wrap(err, "failed to decode setup")
	}

	setup.applyDefaults()
	if err := setup.Validate(); err != nil {
		return Setup{}, err
	}
	return setup, nil
}

func (s *Setup) applyDefaults() {
	if s.NumGames <= 0 {
		s.NumGames = meta.NumGames
	}
	if s.MaxTurns <= 0 {
		s.MaxTurns = meta.MaxTurns
	}
	if s.BattleTurns <= 0 {
		s.BattleTurns = meta.BattleTurns
	}
	if s.OutputDir == "" {
		s.OutputDir = meta.OutputDir
	}
	if len(s.MatchUps) == 0 {
		for i := range s.Agents {
			for j := i + 1; j < len(s.Agents); j++ {
				s.MatchUps = append(s.MatchUps, MatchUp{Agent0: s.Agents[i].ID, Agent1: s.Agents[j].ID})
			}
		}
	}
}

func (s Setup) Validate() error {
	if s.Name == "" {
		return errors.New("setup needs a name")
	}
	seen := map[int]bool{}
	for _, cfg := range s.Agents {
		if seen[cfg.ID] {
			return errors.Errorf("duplicate agent id %d", cfg.ID)
		}
		seen[cfg.ID] = true
		if cfg.Strategy == agent.Human {
			return errors.Errorf("agent %d: human agents cannot take part in experiments", cfg.ID)
		}
	}
	if len(s.MatchUps) == 0 {
		return errors.New("setup needs at least one match-up")
	}
	for _, m := range s.MatchUps {
		if !seen[m.Agent0] || !seen[m.Agent1] {
			return errors.Errorf("match-up %d vs %d refers to an unknown agent", m.Agent0, m.Agent1)
		}
	}
	return nil
}

func (s Setup) config(id int) agent.Config {
	for _, cfg := range s.Agents {
		if cfg.ID == id {
			return cfg
		}
	}
	panic("unknown agent id")
}

// Summary counts the results of an experiment.
type Summary struct {
	Dir   string
	Games int
	Wins  map[int]int // By agent ID
	Draws int
}

// Run plays every match-up NumGames times, alternating seats, and stores agent configs,
// game records and move records under the setup's output directory.
func Run(setup Setup) (Summary, error) {
	writer, err := metrics.NewWriter(setup.OutputDir, setup.Name)
	if err != nil {
		return Summary{}, errors.Wrap(err, "failed to create experiment writer")
	}

	summary := Summary{Dir: writer.BaseDir(), Wins: map[int]int{}}
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", setup.Name)

	for mi, matchup := range setup.MatchUps {
		log.Info().Msgf("starting matchup %d of %d between agent %d and agent %d...", mi+1, len(setup.MatchUps), matchup.Agent0, matchup.Agent1)

		for i := 0; i < setup.NumGames; i++ {
			seats := [2]int{matchup.Agent0, matchup.Agent1}
			if i%2 == 1 {
				seats = [2]int{matchup.Agent1, matchup.Agent0}
			}
			summary.Games++
			id := summary.Games

			winner, gameMetric, moveMetrics, err := runGame(setup, seats, id)
			if err != nil {
				return summary, errors.Wrapf(err, "game %d", id)
			}
			if winner == game.None {
				summary.Draws++
			} else {
				summary.Wins[seats[winner]]++
			}

			gameRecords = append(gameRecords, metrics.NewGameRecord(id, seats[0], seats[1], gameMetric))
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.NewMoveRecord(id, mm))
			}

			log.Info().Msgf("completed matchup %d of %d game %d of %d with winner: %d", mi+1, len(setup.MatchUps), i+1, setup.NumGames, winner)
		}
	}

	log.Info().Msgf("completed %s experiment", setup.Name)

	configs := make([]metrics.AgentConfig, len(setup.Agents))
	for i, cfg := range setup.Agents {
		configs[i] = agentRecord(cfg)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return summary, errors.Wrap(err, "failed to store agent configs")
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return summary, errors.Wrap(err, "failed to write game records")
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return summary, errors.Wrap(err, "failed to write move records")
	}
	log.Info().Msg("stored move records")

	return summary, nil
}

// runGame plays one battle between the agents in seats. Seeded agents get a seed derived
// from the game ID so repeated games differ but stay reproducible.
func runGame(setup Setup, seats [2]int, id int) (game.Player, metrics.GameMetric, []metrics.MoveMetric, error) {
	simulator := duel.NewSimulator()
	var agents [2]agent.Agent
	for i, seat := range seats {
		cfg := setup.config(seat)
		if cfg.Seed != 0 {
			cfg.Seed += uint64(id)
		}
		a, err := agent.New(cfg, simulator)
		if err != nil {
			return game.None, metrics.GameMetric{}, nil, err
		}
		agents[i] = a
	}

	e := engine.NewLocalEngine(agents, simulator, duel.NewDefaultState(setup.BattleTurns), setup.MaxTurns)
	winner, gameMetric, moveMetrics := e.Run()
	return winner, gameMetric, moveMetrics, nil
}

func agentRecord(cfg agent.Config) metrics.AgentConfig {
	return metrics.AgentConfig{
		ID:       int64(cfg.ID),
		Strategy: string(cfg.Strategy),
		Depth:    int32(cfg.Depth),
		UseCache: !cfg.NoCache,
		Prune:    !cfg.NoPruning,
		BudgetMs: cfg.Budget.Milliseconds(),
		Episodes: int64(cfg.Episodes),
		Seed:     int64(cfg.Seed),
	}
}
