package dynamo

import (
	"errors"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		v, lo, hi int
		expected  int
	}{
		{"inside", 5, 1, 10, 5},
		{"below", -3, 1, 10, 1},
		{"above", 200, 1, 128, 128},
		{"degenerate range", 7, 4, 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Clamp(tt.v, tt.lo, tt.hi)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestClampRejectsInvertedRange(t *testing.T) {
	_, err := Clamp(0.5, 1.0, 0.0)
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}

	if err := CheckRange(3, 2); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange from CheckRange, got %v", err)
	}
	if err := CheckRange(2, 3); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestSimulationError(t *testing.T) {
	err := &SimulationError{Step: 150, Time: 1.5, Wrapped: ErrInvariantViolation}
	expected := "step 150 (t=1.5000): dynamo: invariant violation"
	if err.Error() != expected {
		t.Errorf("SimulationError.Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, ErrInvariantViolation) {
		t.Error("expected SimulationError to unwrap to ErrInvariantViolation")
	}
}
