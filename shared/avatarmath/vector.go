// Package avatarmath provides the pure pose math used by both the plaza
// server and the client-side avatar reconciler. It has no engine dependencies.
package avatarmath

import "github.com/go-gl/mathgl/mgl64"

// Forward returns the direction an avatar faces: its rotation applied to +Z.
func Forward(rot mgl64.Quat) mgl64.Vec3 {
	return rot.Rotate(mgl64.Vec3{0, 0, 1})
}

// MoveToward advances from toward to by at most maxDelta, without overshooting.
func MoveToward(from, to mgl64.Vec3, maxDelta float64) mgl64.Vec3 {
	delta := to.Sub(from)
	dist := delta.Len()
	if dist <= maxDelta || dist == 0 {
		return to
	}
	return from.Add(delta.Mul(maxDelta / dist))
}
