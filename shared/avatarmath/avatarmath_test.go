package avatarmath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func TestForwardIdentityIsPlusZ(t *testing.T) {
	f := Forward(mgl64.QuatIdent())
	assert.InDelta(t, 0, f.X(), eps)
	assert.InDelta(t, 0, f.Y(), eps)
	assert.InDelta(t, 1, f.Z(), eps)
}

func TestForwardQuarterYaw(t *testing.T) {
	f := Forward(Yaw(math.Pi / 2))
	assert.InDelta(t, 1, f.X(), eps)
	assert.InDelta(t, 0, f.Z(), eps)
}

func TestMoveTowardReachesTargetWithinRange(t *testing.T) {
	from := mgl64.Vec3{0, 0, 0}
	to := mgl64.Vec3{0.5, 0, 0}
	assert.Equal(t, to, MoveToward(from, to, 1.0))
}

func TestMoveTowardCapsStep(t *testing.T) {
	from := mgl64.Vec3{0, 0, 0}
	to := mgl64.Vec3{10, 0, 0}
	got := MoveToward(from, to, 1.5)
	assert.InDelta(t, 1.5, got.X(), eps)
	assert.InDelta(t, 0, got.Y(), eps)
	assert.InDelta(t, 0, got.Z(), eps)
}

func TestMoveTowardZeroDistance(t *testing.T) {
	p := mgl64.Vec3{3, 4, 5}
	assert.Equal(t, p, MoveToward(p, p, 0.25))
}

func TestAngleBetween(t *testing.T) {
	assert.InDelta(t, 0, AngleBetween(mgl64.QuatIdent(), mgl64.QuatIdent()), eps)
	assert.InDelta(t, math.Pi/2, AngleBetween(mgl64.QuatIdent(), Yaw(math.Pi/2)), 1e-6)
}

func TestRotateTowardSnapsInsideCap(t *testing.T) {
	target := Yaw(0.1)
	got := RotateToward(mgl64.QuatIdent(), target, 0.2)
	assert.InDelta(t, 0, AngleBetween(got, target), 1e-6)
}

func TestRotateTowardCapsAngularStep(t *testing.T) {
	target := Yaw(math.Pi / 2)
	got := RotateToward(mgl64.QuatIdent(), target, 0.1)
	assert.InDelta(t, 0.1, AngleBetween(mgl64.QuatIdent(), got), 1e-6)
	// Rotation moved along the arc toward the target.
	assert.Less(t, AngleBetween(got, target), math.Pi/2)
}

func TestFaceDirectionMatchesForward(t *testing.T) {
	dir := mgl64.Vec3{1, 0, 1}.Normalize()
	f := Forward(FaceDirection(dir))
	assert.InDelta(t, dir.X(), f.X(), 1e-6)
	assert.InDelta(t, dir.Z(), f.Z(), 1e-6)
}

func TestFaceDirectionVerticalIsIdentity(t *testing.T) {
	got := FaceDirection(mgl64.Vec3{0, 1, 0})
	assert.InDelta(t, 0, AngleBetween(got, mgl64.QuatIdent()), eps)
}
