package utils

import (
	"math"
	"testing"
)

func TestLerp(t *testing.T) {
	if got := Lerp(10, 20, 0.5); got != 15 {
		t.Errorf("Lerp(10, 20, 0.5) = %f, expected 15", got)
	}
	if got := Lerp(10, 20, 0); got != 10 {
		t.Errorf("Lerp(10, 20, 0) = %f, expected 10", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{-20, -10, 0, -10},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

// TestFrameDecayIsFrameRateIndependent 多个小步与一个大步的衰减结果一致
func TestFrameDecayIsFrameRateIndependent(t *testing.T) {
	const fps = 60.0
	factor := 0.12

	oneStep := FrameDecay(factor, 0.1, fps)

	manySteps := 1.0
	for i := 0; i < 10; i++ {
		manySteps *= FrameDecay(factor, 0.01, fps)
	}

	if math.Abs(oneStep-manySteps) > 1e-12 {
		t.Errorf("decay differs: one step %g, ten steps %g", oneStep, manySteps)
	}
}

func TestSmoothConvergesIndependentOfStepSize(t *testing.T) {
	const fps = 60.0
	target := 100.0

	coarse := 0.0
	for i := 0; i < 30; i++ { // 30Hz 一秒
		coarse = Smooth(coarse, target, 0.98, 1.0/30, fps)
	}

	fine := 0.0
	for i := 0; i < 144; i++ { // 144Hz 一秒
		fine = Smooth(fine, target, 0.98, 1.0/144, fps)
	}

	if math.Abs(coarse-fine) > 1e-6 {
		t.Errorf("smoothing depends on frame rate: 30Hz=%f 144Hz=%f", coarse, fine)
	}
}

func TestSmoothZeroDeltaKeepsValue(t *testing.T) {
	if got := Smooth(3, 10, 0.5, 0, 60); got != 3 {
		t.Errorf("Smooth with dt=0 should not move, got %f", got)
	}
}
