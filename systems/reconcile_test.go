package systems

import (
	"testing"

	"github.com/automoto/plaza-mp/components"
	cfg "github.com/automoto/plaza-mp/config"
	"github.com/automoto/plaza-mp/shared/avatarmath"
	"github.com/automoto/plaza-mp/shared/netconfig"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	fired []netconfig.TriggerID
}

func (r *recordingSink) FireTrigger(id netconfig.TriggerID) {
	r.fired = append(r.fired, id)
}

func newTestAvatar(mode netconfig.ReconcileMode) (*components.AvatarPoseData, *components.AvatarTargetData, *components.ReconcileData, *recordingSink) {
	pose := components.NewAvatarPose(mgl64.Vec3{})
	return &pose, &components.AvatarTargetData{}, &components.ReconcileData{Mode: mode}, &recordingSink{}
}

func TestNoneSnapsToTarget(t *testing.T) {
	pose, target, rec, sink := newTestAvatar(netconfig.ReconcileNone)
	target.SetPosition(mgl64.Vec3{5, 0, -2})
	target.SetRotation(avatarmath.Yaw(1.2))

	ReconcileAvatar(pose, target, rec, sink, 1.0/60)

	assert.Equal(t, mgl64.Vec3{5, 0, -2}, pose.Position)
	assert.Equal(t, avatarmath.Yaw(1.2), pose.Rotation)
}

func TestNoneWithoutTargetLeavesPoseUnchanged(t *testing.T) {
	pose, target, rec, sink := newTestAvatar(netconfig.ReconcileNone)
	pose.Position = mgl64.Vec3{1, 2, 3}

	ReconcileAvatar(pose, target, rec, sink, 1.0/60)

	assert.Equal(t, mgl64.Vec3{1, 2, 3}, pose.Position)
}

func TestDeadReckoningWalkingIgnoresTargetPosition(t *testing.T) {
	pose, target, rec, sink := newTestAvatar(netconfig.ReconcileDeadReckoning)
	target.SetPosition(mgl64.Vec3{100, 0, 100})
	target.SetMovement(netconfig.MoveWalking)

	dt := 0.1
	ReconcileAvatar(pose, target, rec, sink, dt)

	// Facing +Z with identity rotation, so the step is straight ahead.
	assert.InDelta(t, 0, pose.Position.X(), 1e-9)
	assert.InDelta(t, cfg.Avatar.WalkSpeed*dt, pose.Position.Z(), 1e-9)
}

func TestDeadReckoningIdleSnapsToTarget(t *testing.T) {
	pose, target, rec, sink := newTestAvatar(netconfig.ReconcileDeadReckoning)
	target.SetPosition(mgl64.Vec3{4, 0, 4})
	target.SetMovement(netconfig.MoveIdle)
	rec.Movement = netconfig.MoveWalking // coming out of a walk

	ReconcileAvatar(pose, target, rec, sink, 0.1)

	assert.Equal(t, mgl64.Vec3{4, 0, 4}, pose.Position)
}

func TestDeadReckoningWalkingTurnStatesBothExtrapolate(t *testing.T) {
	for _, m := range []netconfig.MovementState{netconfig.MoveWalkingTurningLeft, netconfig.MoveWalkingTurningRight} {
		pose, target, rec, sink := newTestAvatar(netconfig.ReconcileDeadReckoning)
		target.SetPosition(mgl64.Vec3{100, 0, 100})
		rec.Movement = m

		ReconcileAvatar(pose, target, rec, sink, 0.1)

		assert.InDeltaf(t, cfg.Avatar.WalkSpeed*0.1, pose.Position.Z(), 1e-9,
			"state %v should advance along the heading", m)
	}
}

func TestDeadReckoningRotationIsCapped(t *testing.T) {
	pose, target, rec, sink := newTestAvatar(netconfig.ReconcileDeadReckoning)
	target.SetRotation(avatarmath.Yaw(3.0))

	dt := 0.05
	ReconcileAvatar(pose, target, rec, sink, dt)

	turned := avatarmath.AngleBetween(mgl64.QuatIdent(), pose.Rotation)
	assert.InDelta(t, cfg.Avatar.TurnSpeed*dt, turned, 1e-6)
}

func TestSmoothCorrectionsLargeErrorWalksOffAtDoubleSpeed(t *testing.T) {
	pose, target, rec, sink := newTestAvatar(netconfig.ReconcileSmoothCorrections)
	target.SetPosition(mgl64.Vec3{3, 0, 4}) // error magnitude 5

	dt := 0.5
	ReconcileAvatar(pose, target, rec, sink, dt)

	dir := mgl64.Vec3{3, 0, 4}.Normalize()
	want := dir.Mul(cfg.Avatar.FastWalkSpeed * dt)
	assert.InDelta(t, want.X(), pose.Position.X(), 1e-9)
	assert.InDelta(t, want.Z(), pose.Position.Z(), 1e-9)

	// Orientation faces the target while correcting.
	fwd := avatarmath.Forward(pose.Rotation)
	assert.InDelta(t, dir.X(), fwd.X(), 1e-6)
	assert.InDelta(t, dir.Z(), fwd.Z(), 1e-6)
}

func TestSmoothCorrectionsSmallErrorSnaps(t *testing.T) {
	pose, target, rec, sink := newTestAvatar(netconfig.ReconcileSmoothCorrections)
	target.SetPosition(mgl64.Vec3{0.5, 0, 0.5}) // error below threshold

	ReconcileAvatar(pose, target, rec, sink, 1.0/60)

	assert.Equal(t, mgl64.Vec3{0.5, 0, 0.5}, pose.Position)
}

func TestSmoothCorrectionsWalkingMatchesDeadReckoning(t *testing.T) {
	pose, target, rec, sink := newTestAvatar(netconfig.ReconcileSmoothCorrections)
	target.SetPosition(mgl64.Vec3{50, 0, 50})
	rec.Movement = netconfig.MoveWalking

	ReconcileAvatar(pose, target, rec, sink, 0.1)

	assert.InDelta(t, cfg.Avatar.WalkSpeed*0.1, pose.Position.Z(), 1e-9)
}

func TestTickIsDeterministicWithoutNewUpdates(t *testing.T) {
	pose, target, rec, sink := newTestAvatar(netconfig.ReconcileDeadReckoning)
	target.SetMovement(netconfig.MoveWalking)

	dt := 1.0 / 60
	ReconcileAvatar(pose, target, rec, sink, dt)
	first := pose.Position.Z()
	ReconcileAvatar(pose, target, rec, sink, dt)
	second := pose.Position.Z() - first

	require.Greater(t, first, 0.0)
	assert.InDelta(t, first, second, 1e-12)
}

func TestStickyTargetFlagsPersistAcrossTicks(t *testing.T) {
	pose, target, rec, sink := newTestAvatar(netconfig.ReconcileNone)
	target.SetPosition(mgl64.Vec3{2, 0, 2})

	ReconcileAvatar(pose, target, rec, sink, 1.0/60)
	pose.Position = mgl64.Vec3{} // something else moves the pose
	ReconcileAvatar(pose, target, rec, sink, 1.0/60)

	// The last known good target persists and is reapplied.
	assert.True(t, target.HasPosition)
	assert.Equal(t, mgl64.Vec3{2, 0, 2}, pose.Position)
}
