package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"showdown/engine"
	"showdown/experiments"
	"showdown/game/duel"
	"showdown/meta"
	"showdown/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	setupPath := flag.String("setup", "", "Experiment setup file (YAML); plays a single battle when empty")
	p0 := flag.String("p0", string(agent.Pessimistic), "Strategy of player 0: pessimistic, optimistic, mcts, human or random")
	p1 := flag.String("p1", string(agent.MCTS), "Strategy of player 1")
	depth := flag.Int("depth", meta.DefaultDepth, "Minimax lookahead in turns")
	budget := flag.Duration("budget", meta.DefaultBudget, "Wall-clock budget of each MCTS decision")
	episodes := flag.Int("episodes", 0, "Cap on MCTS episodes per decision")
	seed := flag.Uint64("seed", 0, "Seed for MCTS rollouts and random agents (0 uses the clock)")
	turns := flag.Int("turns", meta.BattleTurns, "Turn limit of the battle")
	predict := flag.Bool("predict", false, "Log each search agent's prediction of both actions")
	throughput := flag.Int("throughput", 0, "Measure the search throughput of -p0 over this many decisions")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *setupPath != "" {
		runExperiment(*setupPath)
		return
	}

	configs := [2]agent.Config{}
	for i, strategy := range []string{*p0, *p1} {
		configs[i] = agent.Config{
			ID:            i,
			Strategy:      agent.Strategy(strategy),
			Depth:         *depth,
			Budget:        *budget,
			Episodes:      *episodes,
			LogPrediction: *predict,
		}
		if *seed != 0 {
			configs[i].Seed = *seed + uint64(i)
		}
	}

	if *throughput > 0 {
		result, err := experiments.MeasureThroughput(configs[0], *throughput)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to measure throughput")
		}
		fmt.Printf("%d decisions: %.0f episodes/s, %.0f nodes/s\n", result.Decisions, result.EpisodesPerSecond(), result.NodesPerSecond())
		return
	}

	simulator := duel.NewSimulator()
	var agents [2]agent.Agent
	for i, cfg := range configs {
		a, err := agent.New(cfg, simulator)
		if err != nil {
			log.Fatal().Err(err).Msgf("failed to create agent for player %d", i)
		}
		agents[i] = a
	}

	e := engine.NewLocalEngine(agents, simulator, duel.NewDefaultState(*turns), meta.MaxTurns)
	winner, gameMetric, _ := e.Run()
	fmt.Printf("Battle over after %d turns (%s). Winner: %d\n", gameMetric.Turns, gameMetric.Duration.Round(time.Millisecond), winner)
}

func runExperiment(path string) {
	setup, err := experiments.LoadSetup(path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load setup")
	}
	summary, err := experiments.Run(setup)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
	fmt.Printf("Played %d games (%d draws), wins by agent: %v\nResults in %s\n", summary.Games, summary.Draws, summary.Wins, summary.Dir)
}
