package viz

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 2)

	c.Set(0, 0)
	c.Set(3, 7)
	if c.Grid[0][0] != brailleBlank+0x1 {
		t.Errorf("expected dot 1 set, got %U", c.Grid[0][0])
	}
	if c.Grid[1][1] != brailleBlank+0x80 {
		t.Errorf("expected dot 8 set, got %U", c.Grid[1][1])
	}
	if !c.IsSet(3, 7) {
		t.Error("expected (3, 7) to be set")
	}

	c.Unset(3, 7)
	if c.Grid[1][1] != brailleBlank {
		t.Errorf("expected blank cell, got %U", c.Grid[1][1])
	}
}

func TestCanvasIgnoresOutOfRange(t *testing.T) {
	c := NewCanvas(2, 2)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 8}} {
		c.Set(p[0], p[1])
	}
	for _, row := range c.Grid {
		for _, r := range row {
			if r != brailleBlank {
				t.Fatalf("expected untouched canvas, got %U", r)
			}
		}
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0, "")
	for x := 0; x < 8; x++ {
		if !c.IsSet(x, 0) {
			t.Errorf("expected dot (%d, 0) set", x)
		}
	}
}

func TestCanvasDrawCircle(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawCircle(10, 10, 5, "")

	for _, p := range [][2]int{{15, 10}, {5, 10}, {10, 15}, {10, 5}} {
		if !c.IsSet(p[0], p[1]) {
			t.Errorf("expected rim dot %v set", p)
		}
	}
	if c.IsSet(10, 10) {
		t.Error("expected centre to stay empty")
	}
}

func TestCanvasStringColors(t *testing.T) {
	c := NewCanvas(3, 1)
	c.SetColor(0, 0, lipgloss.Color("#ff0000"))

	out := c.String()
	if !strings.HasSuffix(out, "\n") {
		t.Error("expected trailing newline")
	}
	if c.Colors[0][0] != "#ff0000" {
		t.Errorf("expected cell colour #ff0000, got %s", c.Colors[0][0])
	}

	c.Clear()
	if c.Colors[0][0] != "" {
		t.Error("expected colour cleared")
	}
	if got := c.String(); got != strings.Repeat(string(rune(brailleBlank)), 3)+"\n" {
		t.Errorf("expected blank row, got %q", got)
	}
}
