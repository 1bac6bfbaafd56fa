package floatutils_test

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r1"

	"github.com/gorlkit/gorl/utils/floatutils"
)

func TestClip(t *testing.T) {
	tests := []struct {
		value, min, max, want float64
	}{
		{0.5, -1, 1, 0.5},
		{-2, -1, 1, -1},
		{2, -1, 1, 1},
		{-1, -1, 1, -1},
		{1, -1, 1, 1},
	}
	for _, test := range tests {
		got := floatutils.Clip(test.value, test.min, test.max)
		if got != test.want {
			t.Errorf("clip(%v, %v, %v) = %v, want %v", test.value, test.min,
				test.max, got, test.want)
		}

		interval := r1.Interval{Min: test.min, Max: test.max}
		if got := floatutils.ClipInterval(test.value, interval); got != test.want {
			t.Errorf("clipInterval(%v, %v) = %v, want %v", test.value,
				interval, got, test.want)
		}
	}
}

func TestMinMax(t *testing.T) {
	if got := floatutils.Min(3, -1, 2); got != -1 {
		t.Errorf("min = %v, want -1", got)
	}
	if got := floatutils.Max(3, -1, 2); got != 3 {
		t.Errorf("max = %v, want 3", got)
	}
}

func TestOnes(t *testing.T) {
	ones := floatutils.Ones(3)
	if len(ones) != 3 {
		t.Fatalf("got %v values, want 3", len(ones))
	}
	for i, v := range ones {
		if v != 1 {
			t.Errorf("value %v is %v, want 1", i, v)
		}
	}
}
