package platformer

import (
	"testing"

	"github.com/vovakirdan/gameroom/internal/config"
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
	isolate(t)
	c, err := registry.NewController("platformer", rc)
	if err != nil {
		t.Fatalf("NewController() error = %v", err)
	}
	c.Start()
	return c
}

func settle(t *testing.T, c *engine.Controller) *engine.Entity {
	t.Helper()
	for i := 0; i < 120; i++ {
		c.Tick()
		if p := c.World().Player(); p.Grounded && p.Vel.Y == 0 {
			return p
		}
	}
	t.Fatalf("player never came to rest")
	return nil
}

func TestRegistered(t *testing.T) {
	if !registry.Exists("platformer") {
		t.Fatalf("platformer is not registered")
	}
	g, err := registry.Create("platformer")
	if err != nil {
		t.Fatal(err)
	}
	if g.Title() == "" || g.Controls() == "" {
		t.Errorf("missing title or controls")
	}
}

func TestPlayerLandsOnGround(t *testing.T) {
	c := newController(t, core.DefaultConfig())
	p := settle(t, c)

	if p.Rect().Bottom() != 350 {
		t.Errorf("player bottom = %g, expected to rest on the ground at 350", p.Rect().Bottom())
	}
}

func TestJumpFromRest(t *testing.T) {
	c := newController(t, core.DefaultConfig())
	p := settle(t, c)

	c.Mode().Apply(c.World(), core.ActionJump)
	if p.Vel.Y != -12 || p.Grounded {
		t.Errorf("after jump vy=%g grounded=%v, expected -12 and false", p.Vel.Y, p.Grounded)
	}

	// A second jump in mid-air does nothing.
	c.Tick()
	vy := p.Vel.Y
	c.Input(core.ActionJump)
	c.Tick()
	if p.Vel.Y <= vy {
		t.Errorf("mid-air jump changed velocity from %g to %g", vy, p.Vel.Y)
	}
}

func TestWalkingIntoSnakeEndsRun(t *testing.T) {
	c := newController(t, core.DefaultConfig())
	settle(t, c)

	c.Input(core.ActionRightStart)
	for i := 0; i < 600 && c.CurrentState() == engine.Running; i++ {
		c.Tick()
	}
	if c.CurrentState() != engine.Over || c.EndReason() != engine.ReasonCollision {
		t.Errorf("state=%v reason=%v, expected a collision with the snake", c.CurrentState(), c.EndReason())
	}
}

func TestModeConfigFromDefaults(t *testing.T) {
	mc := ModeConfig(config.DefaultPlatformerConfig())

	if len(mc.Platforms) != 4 || len(mc.Items) != 4 || len(mc.Hazards) != 2 {
		t.Fatalf("level has %d platforms, %d items, %d hazards", len(mc.Platforms), len(mc.Items), len(mc.Hazards))
	}
	for _, it := range mc.Items {
		if it.Points != 100 || it.Box.W != 15 || it.Box.H != 15 {
			t.Errorf("item %+v, expected 15x15 worth 100", it)
		}
	}
	if mc.RespawnDelayTicks != 120 {
		t.Errorf("respawn delay = %d, expected 120", mc.RespawnDelayTicks)
	}
}

func TestHardPresetSpeedsUpSnakes(t *testing.T) {
	isolate(t)
	rc := core.DefaultConfig()
	rc.Difficulty = "hard"

	m, err := New().NewMode(rc)
	if err != nil {
		t.Fatalf("NewMode() error = %v", err)
	}
	ff := m.(*engine.FreeFall)
	if got := ff.Config().Hazards[0].Speed; got != 3 {
		t.Errorf("hard snake speed = %g, expected 3", got)
	}
}

func TestUnknownPresetFails(t *testing.T) {
	isolate(t)
	rc := core.DefaultConfig()
	rc.Difficulty = "impossible"
	if _, err := New().NewMode(rc); err == nil {
		t.Errorf("unknown preset should fail")
	}
}
