package snake

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/gameroom/internal/core"
	"github.com/vovakirdan/gameroom/internal/engine"
	"github.com/vovakirdan/gameroom/internal/registry"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func newController(t *testing.T, rc core.RuntimeConfig) *engine.Controller {
	t.Helper()
	c, err := registry.NewController("snake", rc)
	if err != nil {
		t.Fatalf("NewController() error = %v", err)
	}
	c.Start()
	return c
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snake.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEatFoodInFiveMoves(t *testing.T) {
	isolate(t)
	rc := core.DefaultConfig()
	rc.ConfigPath = writeConfig(t, "food:\n  first: { x: 15, y: 10 }\nspeed:\n  move_every_ticks: 1\n")
	c := newController(t, rc)

	for i := 0; i < 5; i++ {
		c.Tick()
	}
	snake := c.World().Player()
	if head := snake.Head(); head != (core.Point{X: 15, Y: 10}) {
		t.Errorf("head = %v, expected (15, 10)", head)
	}
	if c.CurrentScore() != 10 {
		t.Errorf("score = %d, expected 10", c.CurrentScore())
	}
	if len(snake.Segments) != 4 {
		t.Errorf("length = %d, expected 4", len(snake.Segments))
	}

	food := c.World().Entities.ByRole(engine.RoleCollectible)
	if len(food) != 1 {
		t.Fatalf("expected fresh food after eating, got %d items", len(food))
	}
	if snake.Occupies(food[0].Cell) {
		t.Errorf("new food spawned on the snake at %v", food[0].Cell)
	}
}

func TestDefaultMovesEverySixTicks(t *testing.T) {
	isolate(t)
	c := newController(t, core.DefaultConfig())
	snake := c.World().Player()

	for i := 0; i < 5; i++ {
		c.Tick()
	}
	if head := snake.Head(); head != (core.Point{X: 10, Y: 10}) {
		t.Errorf("head moved to %v before the sixth tick", head)
	}
	c.Tick()
	if head := snake.Head(); head != (core.Point{X: 11, Y: 10}) {
		t.Errorf("head = %v after six ticks, expected (11, 10)", head)
	}
}

func TestSteerToDefaultFood(t *testing.T) {
	isolate(t)
	rc := core.DefaultConfig()
	rc.ConfigPath = writeConfig(t, "speed:\n  move_every_ticks: 1\n")
	c := newController(t, rc)

	// Five moves right, then five down reaches (15, 15).
	for i := 0; i < 5; i++ {
		c.Tick()
	}
	c.Input(core.ActionDown)
	for i := 0; i < 5; i++ {
		c.Tick()
	}
	if c.CurrentScore() != 10 {
		t.Errorf("score = %d, expected the first food eaten", c.CurrentScore())
	}
}

func TestWallEndsRun(t *testing.T) {
	isolate(t)
	rc := core.DefaultConfig()
	rc.ConfigPath = writeConfig(t, "speed:\n  move_every_ticks: 1\n")
	c := newController(t, rc)
	c.Input(core.ActionUp)

	for i := 0; i < 30 && c.CurrentState() == engine.Running; i++ {
		c.Tick()
	}
	if c.EndReason() != engine.ReasonOutOfBounds {
		t.Errorf("reason = %v, expected out-of-bounds", c.EndReason())
	}
	if c.Ticks() != 11 {
		t.Errorf("hit the wall on tick %d, expected 11", c.Ticks())
	}
}

func TestDeterminism(t *testing.T) {
	isolate(t)
	run := func() (int, []engine.Entity) {
		rc := core.DefaultConfig()
		rc.Seed = 12345
		rc.ConfigPath = writeConfig(t, "speed:\n  move_every_ticks: 1\n")
		c := newController(t, rc)
		turns := []core.Action{core.ActionDown, core.ActionLeftStart, core.ActionUp, core.ActionRightStart}
		for i := 0; i < 100 && c.CurrentState() == engine.Running; i++ {
			if i%5 == 0 {
				c.Input(turns[(i/5)%len(turns)])
			}
			c.Tick()
		}
		return c.CurrentScore(), c.Snapshot().Entities
	}

	s1, e1 := run()
	s2, e2 := run()
	if s1 != s2 {
		t.Errorf("score mismatch: %d vs %d", s1, s2)
	}
	if !reflect.DeepEqual(e1, e2) {
		t.Errorf("entity mismatch between identical runs")
	}
}

func TestEasyPresetSlowsSnake(t *testing.T) {
	isolate(t)
	rc := core.DefaultConfig()
	rc.Difficulty = "easy"
	m, err := New().NewMode(rc)
	if err != nil {
		t.Fatal(err)
	}
	c := engine.New(m)
	c.Start()
	for i := 0; i < 7; i++ {
		c.Tick()
	}
	if head := c.World().Player().Head(); head != (core.Point{X: 10, Y: 10}) {
		t.Errorf("easy snake moved to %v before tick 8", head)
	}
	c.Tick()
	if head := c.World().Player().Head(); head != (core.Point{X: 11, Y: 10}) {
		t.Errorf("easy snake at %v after tick 8, expected (11, 10)", head)
	}
}
