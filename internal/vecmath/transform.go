// Kinematic helpers shared by the AI, combat and player packages.
package vecmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a world-space vector. Y is up.
type Vec3 = mgl64.Vec3

// Quat is an orientation.
type Quat = mgl64.Quat

var (
	Up      = Vec3{0, 1, 0}
	forward = Vec3{0, 0, -1}
	right   = Vec3{1, 0, 0}
)

const epsilon = 1e-9

// Transform is a position plus orientation. The local forward axis is -Z.
type Transform struct {
	Position Vec3
	Rotation Quat
}

// NewTransform returns an identity-oriented transform at pos.
func NewTransform(pos Vec3) Transform {
	return Transform{Position: pos, Rotation: mgl64.QuatIdent()}
}

// Forward returns the unit vector the transform is facing.
func (t Transform) Forward() Vec3 {
	return t.Rotation.Rotate(forward)
}

// Right returns the transform's local +X axis.
func (t Transform) Right() Vec3 {
	return t.Rotation.Rotate(right)
}

// LookingAt returns a copy of t rotated to face target.
func (t Transform) LookingAt(target, up Vec3) Transform {
	t.Rotation = LookRotation(target.Sub(t.Position), up)
	return t
}

// SlerpTowards rotates t toward q by amount, clamped to [0,1].
func (t *Transform) SlerpTowards(q Quat, amount float64) {
	if amount <= 0 {
		return
	}
	if amount > 1 {
		amount = 1
	}
	from := t.Rotation.Normalize()
	to := q.Normalize()
	if from.Dot(to) < 0 {
		to = to.Scale(-1)
	}
	t.Rotation = mgl64.QuatSlerp(from, to, amount).Normalize()
}

// RotateLocalX pitches around the transform's own X axis.
func (t *Transform) RotateLocalX(angle float64) {
	t.Rotation = t.Rotation.Mul(mgl64.QuatRotate(angle, right)).Normalize()
}

// RotateLocalZ rolls around the transform's own Z axis.
func (t *Transform) RotateLocalZ(angle float64) {
	t.Rotation = t.Rotation.Mul(mgl64.QuatRotate(angle, Vec3{0, 0, 1})).Normalize()
}

// RotateY yaws around the world up axis.
func (t *Transform) RotateY(angle float64) {
	t.Rotation = mgl64.QuatRotate(angle, Up).Mul(t.Rotation).Normalize()
}

// Translate moves the transform by d.
func (t *Transform) Translate(d Vec3) {
	t.Position = t.Position.Add(d)
}

// LookRotation builds the orientation whose forward axis points along dir.
// A zero dir yields the identity rotation.
func LookRotation(dir, up Vec3) Quat {
	if dir.Len() < epsilon {
		return mgl64.QuatIdent()
	}
	back := dir.Normalize().Mul(-1)
	r := up.Cross(back)
	if r.Len() < epsilon {
		// dir is parallel to up; any perpendicular axis will do
		r = Vec3{1, 0, 0}
		if math.Abs(back.X()) > 0.9 {
			r = Vec3{0, 0, 1}
		}
		r = r.Sub(back.Mul(r.Dot(back)))
	}
	r = r.Normalize()
	u := back.Cross(r)
	m := mgl64.Mat3FromCols(r, u, back)
	return mgl64.Mat4ToQuat(m.Mat4()).Normalize()
}

// Normalize returns v scaled to unit length, or the zero vector.
func Normalize(v Vec3) Vec3 {
	l := v.Len()
	if l < epsilon {
		return Vec3{}
	}
	return v.Mul(1 / l)
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Distance returns |a-b|.
func Distance(a, b Vec3) float64 {
	return a.Sub(b).Len()
}
