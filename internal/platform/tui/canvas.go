package tui

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/gameroom/internal/core"
	"github.com/vovakirdan/gameroom/internal/engine"
)

// laneDashPeriod is the world-unit length of one dash plus gap in the lane
// markings. It matches the racer's default scroll_wrap so the road scrolls
// without a visible seam.
const laneDashPeriod = 40.0

// HUD holds the text drawn around the play field.
type HUD struct {
	Title    string
	Controls string
	Keys     string // full key help, shown while paused
	High     int
	Paused   bool
}

// Canvas is an engine.Renderer that keeps the latest frame and draws it,
// scaled to fit, into a character screen.
type Canvas struct {
	snap   engine.Snapshot
	score  int
	tick   uint64
	frames int
}

// NewCanvas creates an empty canvas.
func NewCanvas() *Canvas {
	return &Canvas{}
}

// Render implements engine.Renderer. It only records the frame; Draw
// rasterizes it when the terminal asks for a view.
func (c *Canvas) Render(snap engine.Snapshot, score int, tick uint64) {
	c.snap = snap
	c.score = score
	c.tick = tick
	c.frames++
}

// Frames returns how many frames the controller has delivered.
func (c *Canvas) Frames() int {
	return c.frames
}

// viewport maps world coordinates onto a screen rectangle.
type viewport struct {
	x, y, w, h int // inner play area on screen
	sx, sy     float64
	ox, oy     float64 // world origin
}

func (v viewport) fill(r core.Rect, ch rune, color core.Color, s *core.Screen) {
	x0 := v.x + int(math.Floor((r.X-v.ox)*v.sx))
	y0 := v.y + int(math.Floor((r.Y-v.oy)*v.sy))
	w := max(1, int(math.Round(r.W*v.sx)))
	h := max(1, int(math.Round(r.H*v.sy)))
	for row := max(y0, v.y); row < min(y0+h, v.y+v.h); row++ {
		for col := max(x0, v.x); col < min(x0+w, v.x+v.w); col++ {
			s.SetColored(col, row, ch, color)
		}
	}
}

// Draw rasterizes the latest frame into dst with a HUD line on top and a
// border around the play field.
func (c *Canvas) Draw(dst *core.Screen, hud HUD) {
	dst.Clear()
	width, height := dst.Width(), dst.Height()
	if width < 10 || height < 5 {
		dst.DrawText(0, 0, "Terminal too small")
		return
	}

	c.drawHUD(dst, hud)
	dst.DrawBox(0, 1, width, height-1)
	v := viewport{x: 1, y: 2, w: width - 2, h: height - 3}

	switch {
	case c.snap.Cols > 0 && c.snap.Rows > 0:
		c.drawGrid(dst, v)
	case c.snap.Bounds.W > 0 && c.snap.Bounds.H > 0:
		v.sx = float64(v.w) / c.snap.Bounds.W
		v.sy = float64(v.h) / c.snap.Bounds.H
		v.ox, v.oy = c.snap.Bounds.X, c.snap.Bounds.Y
		c.drawLanes(dst, v)
		for _, p := range c.snap.Platforms {
			v.fill(p, '▀', core.ColorOrange, dst)
		}
		c.drawEntities(dst, v)
	}

	c.drawOverlay(dst, hud)
}

func (c *Canvas) drawHUD(dst *core.Screen, hud HUD) {
	dst.DrawTextColored(1, 0, hud.Title, core.ColorBrightCyan)
	right := fmt.Sprintf("Score %s  Best %s", humanize.Comma(int64(c.score)), humanize.Comma(int64(max(hud.High, c.score))))
	dst.DrawText(dst.Width()-len(right)-1, 0, right)
}

func (c *Canvas) drawLanes(dst *core.Screen, v viewport) {
	lanes := c.snap.Lanes
	if len(lanes) < 2 {
		return
	}
	carW := 0.0
	if p, ok := c.snap.Player(); ok {
		carW = p.Size.X
	}
	for i := 0; i+1 < len(lanes); i++ {
		divider := (lanes[i]+lanes[i+1])/2 + carW/2
		col := v.x + int(math.Floor((divider-v.ox)*v.sx))
		for row := 0; row < v.h; row++ {
			wy := float64(row)/v.sy - c.snap.Scroll
			phase := math.Mod(wy, laneDashPeriod)
			if phase < 0 {
				phase += laneDashPeriod
			}
			if phase < laneDashPeriod/2 {
				dst.SetColored(col, v.y+row, '┊', core.ColorGray)
			}
		}
	}
}

func (c *Canvas) drawEntities(dst *core.Screen, v viewport) {
	// Player last so it stays visible on top of everything else.
	var player *engine.Entity
	for i := range c.snap.Entities {
		e := &c.snap.Entities[i]
		if e.Role == engine.RolePlayer {
			player = e
			continue
		}
		v.fill(e.Rect(), glyph(e.Role), e.Color, dst)
	}
	if player != nil {
		v.fill(player.Rect(), glyph(player.Role), player.Color, dst)
	}
}

func (c *Canvas) drawGrid(dst *core.Screen, v viewport) {
	cols, rows := c.snap.Cols, c.snap.Rows
	cw := max(1, v.w/cols)
	ch := max(1, v.h/rows)
	// Center the board inside the border.
	ox := v.x + (v.w-cw*cols)/2
	oy := v.y + (v.h-ch*rows)/2

	cell := func(p core.Point, r rune, col core.Color) {
		if p.X < 0 || p.X >= cols || p.Y < 0 || p.Y >= rows {
			return
		}
		dst.DrawRect(ox+p.X*cw, oy+p.Y*ch, cw, ch, r, col)
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			cell(core.Point{X: x, Y: y}, '·', core.ColorGray)
		}
	}
	for _, e := range c.snap.Entities {
		if len(e.Segments) == 0 {
			cell(e.Cell, glyph(e.Role), e.Color)
			continue
		}
		for i, seg := range e.Segments {
			r, col := '▒', e.Color
			if i == 0 {
				r, col = '█', core.ColorBrightGreen
			}
			cell(seg, r, col)
		}
	}
}

func (c *Canvas) drawOverlay(dst *core.Screen, hud HUD) {
	mid := dst.Height() / 2
	switch {
	case c.snap.State == engine.Over:
		dst.DrawTextCentered(mid-1, "GAME OVER")
		dst.DrawTextCentered(mid, fmt.Sprintf("%s - score %s", reasonText(c.snap.Reason), humanize.Comma(int64(c.score))))
		dst.DrawTextCentered(mid+1, "r: restart  q: quit")
	case hud.Paused:
		dst.DrawTextCentered(mid, "PAUSED - p to resume")
		if hud.Keys != "" {
			dst.DrawTextCentered(mid+2, hud.Keys)
		}
	case c.frames == 0:
		dst.DrawTextCentered(mid, hud.Controls)
	}
}

func glyph(r engine.Role) rune {
	switch r {
	case engine.RolePlayer:
		return '█'
	case engine.RoleCollectible:
		return '●'
	case engine.RoleHazard:
		return '▓'
	default:
		return '#'
	}
}

func reasonText(r engine.EndReason) string {
	switch r {
	case engine.ReasonCollision:
		return "crashed"
	case engine.ReasonOutOfBounds:
		return "fell out"
	case engine.ReasonStopped:
		return "stopped"
	case engine.ReasonSpawnFailed:
		return "board full"
	default:
		return string(r)
	}
}
