package systems

import (
	"github.com/automoto/plaza-mp/components"
	cfg "github.com/automoto/plaza-mp/config"
	"github.com/automoto/plaza-mp/shared/avatarmath"
	"github.com/automoto/plaza-mp/shared/netconfig"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// ReconcileAvatar runs one frame of remote-avatar reconciliation: the
// animation transition first, then the pose update for the active mode.
// dt is the elapsed frame time in seconds.
func ReconcileAvatar(pose *components.AvatarPoseData, target *components.AvatarTargetData, rec *components.ReconcileData, sink components.AnimationTriggerSink, dt float64) {
	ApplyMovementTransition(rec, target, sink)

	switch rec.Mode {
	case netconfig.ReconcileNone:
		snapPose(pose, target)
	case netconfig.ReconcileDeadReckoning:
		deadReckon(pose, target, rec, dt)
	case netconfig.ReconcileSmoothCorrections:
		smoothCorrect(pose, target, rec, dt)
	}
}

// snapPose applies the target directly, no interpolation.
func snapPose(pose *components.AvatarPoseData, target *components.AvatarTargetData) {
	if target.HasPosition {
		pose.Position = target.Position
	}
	if target.HasRotation {
		pose.Rotation = target.Rotation
	}
}

// deadReckon extrapolates along the avatar's own heading while it walks,
// ignoring the target position entirely; otherwise it snaps. Rotation always
// turns toward the target at the capped angular speed.
func deadReckon(pose *components.AvatarPoseData, target *components.AvatarTargetData, rec *components.ReconcileData, dt float64) {
	if rec.Movement.Walking() {
		step := avatarmath.Forward(pose.Rotation).Mul(cfg.Avatar.WalkSpeed * dt)
		pose.Position = pose.Position.Add(step)
	} else if target.HasPosition {
		pose.Position = target.Position
	}

	if target.HasRotation {
		pose.Rotation = avatarmath.RotateToward(pose.Rotation, target.Rotation, cfg.Avatar.TurnSpeed*dt)
	}
}

// smoothCorrect behaves like deadReckon while walking. When stationary, a
// positional error beyond the correction threshold is walked off at double
// speed while facing the movement direction, so the avatar visibly hurries
// back instead of teleporting; smaller errors snap.
func smoothCorrect(pose *components.AvatarPoseData, target *components.AvatarTargetData, rec *components.ReconcileData, dt float64) {
	if rec.Movement.Walking() {
		step := avatarmath.Forward(pose.Rotation).Mul(cfg.Avatar.WalkSpeed * dt)
		pose.Position = pose.Position.Add(step)
		if target.HasRotation {
			pose.Rotation = avatarmath.RotateToward(pose.Rotation, target.Rotation, cfg.Avatar.TurnSpeed*dt)
		}
		return
	}

	if target.HasPosition {
		err := target.Position.Sub(pose.Position)
		if err.Len() > cfg.Avatar.CorrectionThreshold {
			pose.Position = avatarmath.MoveToward(pose.Position, target.Position, cfg.Avatar.FastWalkSpeed*dt)
			pose.Rotation = avatarmath.FaceDirection(err)
			return
		}
		pose.Position = target.Position
	}

	if target.HasRotation {
		pose.Rotation = avatarmath.RotateToward(pose.Rotation, target.Rotation, cfg.Avatar.TurnSpeed*dt)
	}
}

// NewAvatarReconcileSystem returns the per-frame system that reconciles every
// remote avatar. dt reports the elapsed seconds for the current tick; it is
// injected so the system never reads global time.
func NewAvatarReconcileSystem(dt func() float64) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		elapsed := dt()
		components.Reconcile.Each(e.World, func(entry *donburi.Entry) {
			pose := components.AvatarPose.Get(entry)
			target := components.AvatarTarget.Get(entry)
			rec := components.Reconcile.Get(entry)
			anim := components.AvatarAnimation.Get(entry)
			ReconcileAvatar(pose, target, rec, anim, elapsed)
		})
	}
}

// SetReconcileMode switches the active mode on every reconciled avatar. The
// mode is read fresh each frame, so this takes effect immediately.
func SetReconcileMode(world donburi.World, mode netconfig.ReconcileMode) {
	components.Reconcile.Each(world, func(entry *donburi.Entry) {
		components.Reconcile.Get(entry).Mode = mode
	})
}
