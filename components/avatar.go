package components

import (
	"github.com/automoto/plaza-mp/shared/netconfig"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// AvatarPoseData is the visual transform of an avatar, mutated every frame by
// the reconciler. For the local avatar it is driven by input instead.
type AvatarPoseData struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

var AvatarPose = donburi.NewComponentType[AvatarPoseData]()

// NewAvatarPose returns a pose at the given position with identity rotation.
func NewAvatarPose(pos mgl64.Vec3) AvatarPoseData {
	return AvatarPoseData{Position: pos, Rotation: mgl64.QuatIdent()}
}

// AvatarTargetData holds the last server-reported state for a remote avatar.
// Position and rotation flags are sticky: once a value arrives, the last
// known good target persists until overwritten. The movement flag is one-shot
// and cleared when the animation transition consumes it.
type AvatarTargetData struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Movement netconfig.MovementState

	HasPosition bool
	HasRotation bool
	HasMovement bool
}

var AvatarTarget = donburi.NewComponentType[AvatarTargetData]()

// SetPosition records a new target position.
func (t *AvatarTargetData) SetPosition(v mgl64.Vec3) {
	t.Position = v
	t.HasPosition = true
}

// SetRotation records a new target rotation.
func (t *AvatarTargetData) SetRotation(q mgl64.Quat) {
	t.Rotation = q
	t.HasRotation = true
}

// SetMovement records a new target movement state for the animation machine
// to consume.
func (t *AvatarTargetData) SetMovement(m netconfig.MovementState) {
	t.Movement = m
	t.HasMovement = true
}

// ReconcileData tracks the reconciliation mode and the movement state most
// recently applied by the animation transition step.
type ReconcileData struct {
	Mode     netconfig.ReconcileMode
	Movement netconfig.MovementState
}

var Reconcile = donburi.NewComponentType[ReconcileData]()
