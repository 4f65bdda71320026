package core

import (
	"strings"
	"testing"
)

// rows renders the screen as a slice of row strings.
func rows(s *Screen) []string {
	return strings.Split(s.String(), "\n")
}

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 6x3", s.Width(), s.Height())
	}
	if got := s.String(); got != "      \n      \n      " {
		t.Errorf("String() = %q", got)
	}

	neg := NewScreen(-4, -1)
	if neg.Width() != 0 || neg.Height() != 0 || neg.String() != "" {
		t.Errorf("negative size should clamp to an empty screen")
	}
}

func TestScreenClipsOutOfBounds(t *testing.T) {
	s := NewScreen(4, 2)
	for _, p := range [][2]int{{-1, 0}, {4, 0}, {0, -1}, {0, 2}} {
		s.Set(p[0], p[1], 'X')
		if got := s.GetCell(p[0], p[1]); got != blank {
			t.Errorf("GetCell(%d, %d) = %+v, expected blank", p[0], p[1], got)
		}
	}
	if strings.ContainsRune(s.String(), 'X') {
		t.Errorf("out-of-bounds write reached the buffer: %q", s.String())
	}
}

func TestScreenDrawing(t *testing.T) {
	tests := []struct {
		name string
		draw func(*Screen)
		want []string
	}{
		{
			name: "text clipped at right edge",
			draw: func(s *Screen) { s.DrawText(3, 0, "Hello") },
			want: []string{"   He", "     ", "     "},
		},
		{
			name: "text centered",
			draw: func(s *Screen) { s.DrawTextCentered(1, "Hi") },
			want: []string{"     ", " Hi  ", "     "},
		},
		{
			name: "rect partly off screen",
			draw: func(s *Screen) { s.DrawRect(3, 1, 4, 4, '#', ColorRed) },
			want: []string{"     ", "   ##", "   ##"},
		},
		{
			name: "box",
			draw: func(s *Screen) { s.DrawBox(0, 0, 5, 3) },
			want: []string{"┌───┐", "│   │", "└───┘"},
		},
		{
			name: "clear",
			draw: func(s *Screen) { s.DrawBox(0, 0, 5, 3); s.Clear() },
			want: []string{"     ", "     ", "     "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(5, 3)
			tt.draw(s)
			got := rows(s)
			for y, want := range tt.want {
				if got[y] != want {
					t.Errorf("row %d = %q, expected %q", y, got[y], want)
				}
				if s.Row(y) != want {
					t.Errorf("Row(%d) = %q, expected %q", y, s.Row(y), want)
				}
			}
		})
	}
}

func TestScreenRowOutOfRange(t *testing.T) {
	s := NewScreen(3, 1)
	if got := s.Row(5); got != "   " {
		t.Errorf("Row(5) = %q, expected blank row", got)
	}
}

func TestScreenResizeKeepsOverlap(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "abcd")
	s.DrawText(0, 1, "efgh")

	s.Resize(2, 3)
	if got := rows(s); strings.Join(got, "|") != "ab|ef|  " {
		t.Errorf("after shrink/grow rows = %q", got)
	}

	s.Resize(2, 3)
	if s.Get(1, 1) != 'f' {
		t.Errorf("same-size Resize should be a no-op")
	}
}

func TestScreenColoredCells(t *testing.T) {
	s := NewScreen(6, 2)
	s.DrawTextColored(1, 0, "ok", ColorGreen)
	s.Set(0, 1, 'x')
	s.DrawRect(4, 1, 2, 1, '=', ColorCyan)

	tests := []struct {
		x, y int
		want Cell
	}{
		{1, 0, Cell{Rune: 'o', Color: ColorGreen}},
		{2, 0, Cell{Rune: 'k', Color: ColorGreen}},
		{0, 1, Cell{Rune: 'x', Color: ColorDefault}},
		{5, 1, Cell{Rune: '=', Color: ColorCyan}},
		{3, 1, blank},
	}
	for _, tt := range tests {
		if got := s.GetCell(tt.x, tt.y); got != tt.want {
			t.Errorf("GetCell(%d, %d) = %+v, expected %+v", tt.x, tt.y, got, tt.want)
		}
	}
}
