package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/physplay/internal/storage"
)

func TestPadPow2(t *testing.T) {
	p := PadPow2([]float64{1, 2, 3, 4, 5})
	if len(p) != 8 {
		t.Errorf("expected 8, got %d", len(p))
	}
	if p[4] != 5 || p[7] != 0 {
		t.Errorf("unexpected padding %v", p)
	}
}

func TestAnalyzeSine(t *testing.T) {
	dt := 0.01
	data := make([]float64, 1024)
	for i := range data {
		data[i] = 3 + math.Sin(2*math.Pi*2*float64(i)*dt)
	}

	s, err := Analyze(data, dt)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(s.Dominant-2) > 2*s.BinWidth {
		t.Errorf("expected ~2hz, got %.3f", s.Dominant)
	}
	if math.Abs(s.Period-0.5) > 0.05 {
		t.Errorf("expected period ~0.5, got %.3f", s.Period)
	}
}

func TestAnalyzeTooShort(t *testing.T) {
	if _, err := Analyze([]float64{1, 2}, 0.01); err != ErrTooShort {
		t.Errorf("expected ErrTooShort, got %v", err)
	}
}

func TestPortrait(t *testing.T) {
	series := storage.NewSeries([]string{"a", "b"})
	for i := 0; i < 20; i++ {
		x := float64(i) - 10
		series.Append(float64(i), map[string]float64{"a": x, "b": x * x})
	}

	p, err := NewPortrait(series, "a", "b")
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Points) != 20 {
		t.Errorf("expected 20 points, got %d", len(p.Points))
	}

	out := p.ASCII(40, 10)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 10 {
		t.Errorf("expected 10 rows, got %d", len(lines))
	}
	if !strings.Contains(out, "•") {
		t.Error("expected plotted points")
	}

	if _, err := NewPortrait(series, "a", "missing"); err == nil {
		t.Error("expected error for unknown metric")
	}
}
