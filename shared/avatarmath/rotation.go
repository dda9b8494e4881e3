package avatarmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AngleBetween returns the rotation angle in radians separating two
// orientations, in [0, pi].
func AngleBetween(a, b mgl64.Quat) float64 {
	d := math.Abs(a.Normalize().Dot(b.Normalize()))
	if d > 1 {
		d = 1
	}
	return 2 * math.Acos(d)
}

// RotateToward rotates from toward to, capped at maxRadians. Once the
// remaining angle fits inside the cap it returns to exactly.
func RotateToward(from, to mgl64.Quat, maxRadians float64) mgl64.Quat {
	angle := AngleBetween(from, to)
	if angle <= maxRadians {
		return to
	}
	return mgl64.QuatSlerp(from, to, maxRadians/angle)
}

// FaceDirection returns a yaw-only rotation facing dir on the ground plane.
// The vertical component of dir is ignored; a direction with no horizontal
// component yields the identity rotation.
func FaceDirection(dir mgl64.Vec3) mgl64.Quat {
	if dir.X() == 0 && dir.Z() == 0 {
		return mgl64.QuatIdent()
	}
	yaw := math.Atan2(dir.X(), dir.Z())
	return Yaw(yaw)
}

// Yaw returns a rotation of angle radians about the world up axis.
func Yaw(angle float64) mgl64.Quat {
	return mgl64.QuatRotate(angle, mgl64.Vec3{0, 1, 0})
}
