package vecmath

import (
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func approxVec(a, b Vec3) bool {
	return approx(a.X(), b.X()) && approx(a.Y(), b.Y()) && approx(a.Z(), b.Z())
}

func TestIdentityFacesNegativeZ(t *testing.T) {
	tr := NewTransform(Vec3{})
	if !approxVec(tr.Forward(), Vec3{0, 0, -1}) {
		t.Fatalf("forward = %v", tr.Forward())
	}
	if !approxVec(tr.Right(), Vec3{1, 0, 0}) {
		t.Fatalf("right = %v", tr.Right())
	}
}

func TestLookRotationPointsForwardAtTarget(t *testing.T) {
	cases := []Vec3{{1, 0, 0}, {0, 0, 1}, {-3, 2, 5}, {0, 1, 0}, {0, -1, 0}}
	for _, dir := range cases {
		tr := Transform{Rotation: LookRotation(dir, Up)}
		if !approxVec(tr.Forward(), Normalize(dir)) {
			t.Errorf("LookRotation(%v) forward = %v", dir, tr.Forward())
		}
	}
}

func TestLookingAt(t *testing.T) {
	tr := NewTransform(Vec3{10, 0, 0}).LookingAt(Vec3{10, 0, 20}, Up)
	if !approxVec(tr.Forward(), Vec3{0, 0, 1}) {
		t.Fatalf("forward = %v", tr.Forward())
	}
}

func TestSlerpTowardsFullAmountReachesTarget(t *testing.T) {
	tr := NewTransform(Vec3{})
	target := LookRotation(Vec3{1, 0, 0}, Up)
	tr.SlerpTowards(target, 5)
	if !approxVec(tr.Forward(), Vec3{1, 0, 0}) {
		t.Fatalf("forward = %v", tr.Forward())
	}
}

func TestSlerpTowardsZeroAmountIsNoop(t *testing.T) {
	tr := NewTransform(Vec3{})
	tr.SlerpTowards(LookRotation(Vec3{1, 0, 0}, Up), 0)
	if !approxVec(tr.Forward(), Vec3{0, 0, -1}) {
		t.Fatalf("forward = %v", tr.Forward())
	}
}

func TestRotateY(t *testing.T) {
	tr := NewTransform(Vec3{})
	tr.RotateY(math.Pi / 2)
	// yawing left by 90 degrees turns -Z into -X
	if !approxVec(tr.Forward(), Vec3{-1, 0, 0}) {
		t.Fatalf("forward = %v", tr.Forward())
	}
}

func TestRotateLocalXPitchesUp(t *testing.T) {
	tr := NewTransform(Vec3{})
	tr.RotateLocalX(math.Pi / 2)
	if !approxVec(tr.Forward(), Vec3{0, 1, 0}) {
		t.Fatalf("forward = %v", tr.Forward())
	}
}

func TestRotateLocalZKeepsForward(t *testing.T) {
	tr := NewTransform(Vec3{})
	tr.RotateLocalZ(1.2)
	if !approxVec(tr.Forward(), Vec3{0, 0, -1}) {
		t.Fatalf("roll changed forward: %v", tr.Forward())
	}
}

func TestNormalizeZero(t *testing.T) {
	if n := Normalize(Vec3{}); n != (Vec3{}) {
		t.Fatalf("expected zero vector, got %v", n)
	}
}

func TestClampAndLerp(t *testing.T) {
	if Clamp(500, 10, 300) != 300 || Clamp(-1, 10, 300) != 10 || Clamp(50, 10, 300) != 50 {
		t.Fatalf("clamp bounds wrong")
	}
	if Lerp(0, 10, 0.25) != 2.5 {
		t.Fatalf("lerp wrong")
	}
}
