package main

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/gameroom/internal/core"
	"github.com/vovakirdan/gameroom/internal/engine"
)

// isolate keeps user and local config files out of the run.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestParseInputs(t *testing.T) {
	got, err := parseInputs(" 30:left-stop, 10:jump,10:right ,")
	if err != nil {
		t.Fatalf("parseInputs() error = %v", err)
	}
	want := []scriptedInput{
		{Tick: 10, Action: core.ActionJump},
		{Tick: 10, Action: core.ActionRightStart},
		{Tick: 30, Action: core.ActionLeftStop},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseInputs() = %v, expected %v", got, want)
	}

	if got, err := parseInputs(""); err != nil || len(got) != 0 {
		t.Errorf("empty input = %v, %v", got, err)
	}
}

func TestParseInputsErrors(t *testing.T) {
	for _, s := range []string{"jump", "0:jump", "x:jump", "5:fly", "5:quit"} {
		if _, err := parseInputs(s); err == nil {
			t.Errorf("parseInputs(%q) should fail", s)
		}
	}
}

func TestSimulateRunsUntilGameOver(t *testing.T) {
	isolate(t)
	cfg := core.DefaultConfig()
	cfg.Seed = 1

	// Snake moves right every 6 ticks from (10,10) and leaves a 20 wide grid.
	ctrl, err := simulate(context.Background(), "snake", cfg, nil, 0, false)
	if err != nil {
		t.Fatalf("simulate() error = %v", err)
	}
	if ctrl.EndReason() != engine.ReasonOutOfBounds || ctrl.Ticks() != 60 {
		t.Errorf("reason=%v ticks=%d, expected out-of-bounds at 60", ctrl.EndReason(), ctrl.Ticks())
	}
}

func TestSimulateAppliesInputsOnTheirTick(t *testing.T) {
	isolate(t)
	cfg := core.DefaultConfig()
	cfg.Seed = 1

	inputs, err := parseInputs("12:down")
	if err != nil {
		t.Fatal(err)
	}
	ctrl, err := simulate(context.Background(), "snake", cfg, inputs, 0, false)
	if err != nil {
		t.Fatalf("simulate() error = %v", err)
	}
	// One move right, then ten moves down to y=20.
	if ctrl.Ticks() != 66 {
		t.Errorf("ticks = %d, expected 66", ctrl.Ticks())
	}
	p, ok := ctrl.Snapshot().Player()
	if !ok || p.Head() != (core.Point{X: 11, Y: 20}) {
		t.Errorf("head = %v, expected (11,20)", p.Head())
	}
}

func TestSimulateMaxTicks(t *testing.T) {
	isolate(t)
	cfg := core.DefaultConfig()
	cfg.Seed = 1

	ctrl, err := simulate(context.Background(), "snake", cfg, nil, 30, false)
	if err != nil {
		t.Fatalf("simulate() error = %v", err)
	}
	if ctrl.Ticks() != 30 || ctrl.EndReason() != engine.ReasonStopped {
		t.Errorf("ticks=%d reason=%v, expected a stop at 30", ctrl.Ticks(), ctrl.EndReason())
	}
}

func TestSimulateIsDeterministic(t *testing.T) {
	isolate(t)
	cfg := core.DefaultConfig()
	cfg.Seed = 99
	inputs, err := parseInputs("50:left,200:right,201:right,400:right")
	if err != nil {
		t.Fatal(err)
	}

	run := func() (int, uint64, engine.EndReason) {
		ctrl, err := simulate(context.Background(), "racer", cfg, inputs, 2000, false)
		if err != nil {
			t.Fatalf("simulate() error = %v", err)
		}
		return ctrl.CurrentScore(), ctrl.Ticks(), ctrl.EndReason()
	}

	s1, t1, r1 := run()
	s2, t2, r2 := run()
	if s1 != s2 || t1 != t2 || r1 != r2 {
		t.Errorf("same seed gave (%d,%d,%s) and (%d,%d,%s)", s1, t1, r1, s2, t2, r2)
	}
}

func TestSimulateUnknownGame(t *testing.T) {
	ctrl, err := simulate(context.Background(), "pong", core.DefaultConfig(), nil, 10, false)
	if err == nil || ctrl != nil {
		t.Errorf("unknown game: ctrl=%v err=%v", ctrl, err)
	}
}

func TestSimulateCancelled(t *testing.T) {
	isolate(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ctrl, err := simulate(ctx, "snake", core.DefaultConfig(), nil, 0, false)
	if err == nil || ctrl == nil {
		t.Fatalf("cancelled sim: ctrl=%v err=%v", ctrl, err)
	}
	if ctrl.EndReason() != engine.ReasonStopped {
		t.Errorf("reason = %v, expected stopped", ctrl.EndReason())
	}
}

func TestSeedFlagUsageDescribesSim(t *testing.T) {
	f := rootCmd.PersistentFlags().Lookup("seed")
	if f == nil {
		t.Fatal("--seed flag not registered")
	}
	if !strings.Contains(f.Usage, "sim uses the value as given") {
		t.Errorf("--seed usage = %q, expected it to describe sim seeding", f.Usage)
	}
}
