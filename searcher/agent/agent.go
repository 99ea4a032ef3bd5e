package agent

import (
	"io"
	"os"
	"time"

	"showdown/game"
	"showdown/meta"
	"showdown/searcher"

	"github.com/pkg/errors"
)

type Agent interface {
	// GetAction commits the player's action for the current turn
	GetAction(state game.State, player game.Player) game.Action
}

// MetricsReporter is implemented by agents that search. LastResult describes their most
// recent decision.
type MetricsReporter interface {
	LastResult() searcher.Result
}

type Strategy string

const (
	Pessimistic Strategy = "pessimistic"
	Optimistic  Strategy = "optimistic"
	MCTS        Strategy = "mcts"
	Human       Strategy = "human"
	Random      Strategy = "random"
)

// Config describes one agent of a game or an experiment.
type Config struct {
	ID            int           `yaml:"id"`
	Strategy      Strategy      `yaml:"strategy"`
	Depth         int           `yaml:"depth"`
	NoCache       bool          `yaml:"no_cache"`
	NoPruning     bool          `yaml:"no_pruning"`
	Budget        time.Duration `yaml:"budget"`
	Episodes      int           `yaml:"episodes"`
	Seed          uint64        `yaml:"seed"`
	LogPrediction bool          `yaml:"log_prediction"`
}

// SearchOptions translates the config into searcher options. A zero depth means
// meta.DefaultDepth.
func (c Config) SearchOptions() []searcher.Option {
	depth := c.Depth
	if depth <= 0 {
		depth = meta.DefaultDepth
	}
	options := []searcher.Option{
		searcher.WithDepth(depth),
		searcher.WithCache(!c.NoCache),
		searcher.WithPruning(!c.NoPruning),
	}
	if c.Budget > 0 {
		options = append(options, searcher.WithDuration(c.Budget))
	}
	if c.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(c.Episodes))
	}
	if c.Seed != 0 {
		options = append(options, searcher.WithSeed(c.Seed))
	}
	return options
}

type Option func(o *options)

type options struct {
	in        io.Reader
	out       io.Writer
	timingLog io.Writer
}

// WithIO sets where the human agent reads actions from and writes prompts to.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(o *options) {
		o.in = in
		o.out = out
	}
}

// WithTimingLog appends the duration of every minimax search to w.
func WithTimingLog(w io.Writer) Option {
	return func(o *options) {
		o.timingLog = w
	}
}

// New builds the agent named by cfg.Strategy.
func New(cfg Config, simulator game.Simulator, opts ...Option) (Agent, error) {
	o := options{in: os.Stdin, out: os.Stdout}
	for _, option := range opts {
		option(&o)
	}

	switch cfg.Strategy {
	case Pessimistic, Optimistic:
		if simulator == nil {
			return nil, errors.Errorf("%s agent needs a simulator", cfg.Strategy)
		}
		variant := searcher.Pessimistic
		if cfg.Strategy == Optimistic {
			variant = searcher.Optimistic
		}
		searchOptions := cfg.SearchOptions()
		if o.timingLog != nil {
			searchOptions = append(searchOptions, searcher.WithTimingLog(o.timingLog))
		}
		return NewMinimaxAgent(searcher.NewMinimax(variant, simulator, searchOptions...), cfg.LogPrediction), nil
	case MCTS:
		if simulator == nil {
			return nil, errors.Errorf("%s agent needs a simulator", cfg.Strategy)
		}
		if cfg.Budget <= 0 && cfg.Episodes <= 0 {
			return nil, errors.Errorf("%s agent needs a budget or an episode count", cfg.Strategy)
		}
		return NewMCTSAgent(searcher.NewMCTS(simulator, cfg.SearchOptions()...), cfg.LogPrediction), nil
	case Human:
		return NewHumanAgent(o.in, o.out), nil
	case Random:
		return NewRandomAgent(cfg.Seed), nil
	default:
		return nil, errors.Errorf("unknown strategy %q", cfg.Strategy)
	}
}
