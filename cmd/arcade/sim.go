package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gameroom/internal/core"
	"github.com/vovakirdan/gameroom/internal/engine"
	"github.com/vovakirdan/gameroom/internal/registry"
	"github.com/vovakirdan/gameroom/internal/storage"
)

var (
	flagSimTicks      uint64
	flagSimInputs     string
	flagSimSave       bool
	flagSimRealtime   bool
	flagSimConfig     string
	flagSimDifficulty string
)

var simCmd = &cobra.Command{
	Use:   "sim <game>",
	Short: "Run a game headless with scripted input",
	Long: `Run a game without a terminal UI and print the outcome.

Inputs are a comma separated list of tick:action pairs. An action given
for tick N is applied at the start of tick N. Action names: left, right,
left-start, left-stop, right-start, right-stop, jump, up, down.

The same game, seed, config and inputs always produce the same result.

Examples:
  arcade sim snake --seed 1 --ticks 600
  arcade sim platformer --seed 7 --inputs "1:right,40:jump,90:right-stop"
  arcade sim racer --seed 3 --ticks 3000 --inputs "100:left,400:right" --save`,
	Args: cobra.ExactArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().Uint64Var(&flagSimTicks, "ticks", 3600, "Stop after this many ticks (0 = until game over)")
	simCmd.Flags().StringVar(&flagSimInputs, "inputs", "", "Scripted input, e.g. \"10:jump,30:left\"")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the score and run in the database")
	simCmd.Flags().BoolVar(&flagSimRealtime, "realtime", false, "Tick at --fps instead of as fast as possible")
	simCmd.Flags().StringVar(&flagSimConfig, "config", "", "Path to custom game config YAML")
	simCmd.Flags().StringVar(&flagSimDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// scriptedInput is one action fed to the controller before a given tick.
type scriptedInput struct {
	Tick   uint64
	Action core.Action
}

// parseInputs parses "tick:action,..." into inputs ordered by tick.
// Inputs for the same tick keep their written order.
func parseInputs(s string) ([]scriptedInput, error) {
	var out []scriptedInput
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tickStr, name, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("input %q: expected tick:action", part)
		}
		tick, err := strconv.ParseUint(strings.TrimSpace(tickStr), 10, 64)
		if err != nil || tick == 0 {
			return nil, fmt.Errorf("input %q: tick must be a positive integer", part)
		}
		a, err := core.ParseAction(name)
		if err != nil {
			return nil, fmt.Errorf("input %q: %w", part, err)
		}
		if !a.IsGameplay() {
			return nil, fmt.Errorf("input %q: %s is not a gameplay action", part, a)
		}
		out = append(out, scriptedInput{Tick: tick, Action: a})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Tick < out[j].Tick })
	return out, nil
}

// simulate runs one scripted game and returns the finished controller.
func simulate(ctx context.Context, gameID string, cfg core.RuntimeConfig, inputs []scriptedInput, maxTicks uint64, realtime bool) (*engine.Controller, error) {
	ctrl, err := registry.NewController(gameID, cfg, engine.WithLogger(newLogger("arcade-sim")))
	if err != nil {
		return nil, err
	}

	rate := 0
	if realtime {
		rate = cfg.TickRate
	}
	loop := engine.NewLoop(ctrl, rate)
	loop.MaxTicks = maxTicks

	next := 0
	loop.BeforeTick = func(c *engine.Controller, n uint64) {
		for next < len(inputs) && inputs[next].Tick <= n {
			c.Input(inputs[next].Action)
			next++
		}
	}

	return ctrl, loop.Run(ctx)
}

func runSim(cmd *cobra.Command, args []string) {
	gameID := args[0]

	inputs, err := parseInputs(flagSimInputs)
	if err != nil {
		fail("%v", err)
	}

	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.ConfigPath = flagSimConfig
	cfg.Difficulty = flagSimDifficulty

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	started := time.Now()
	ctrl, err := simulate(ctx, gameID, cfg, inputs, flagSimTicks, flagSimRealtime)
	if ctrl == nil {
		fail("%v", err)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if runErr := ctrl.Err(); runErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: run failed: %v\n", runErr)
	}

	fmt.Printf("game:   %s\n", gameID)
	fmt.Printf("run:    %s\n", ctrl.RunID())
	fmt.Printf("seed:   %d\n", ctrl.Seed())
	fmt.Printf("ticks:  %d\n", ctrl.Ticks())
	fmt.Printf("reason: %s\n", ctrl.EndReason())
	fmt.Printf("score:  %d\n", ctrl.CurrentScore())

	if !flagSimSave {
		return
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	err = store.RecordRun(storage.RunRecord{
		RunID:     ctrl.RunID(),
		GameID:    gameID,
		Score:     ctrl.CurrentScore(),
		Ticks:     ctrl.Ticks(),
		EndReason: string(ctrl.EndReason()),
		Seed:      ctrl.Seed(),
		Duration:  time.Since(started),
	})
	if err != nil {
		fail("%v", err)
	}
}
