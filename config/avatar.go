package config

import (
	"math"

	"github.com/automoto/plaza-mp/shared/netconfig"
)

// AvatarConfig contains the locomotion constants shared by the reconciler and
// the local input system. Speeds are world units (or radians) per second.
type AvatarConfig struct {
	WalkSpeed     float64 // forward speed while walking
	FastWalkSpeed float64 // speed while smoothing a large correction
	TurnSpeed     float64 // max angular speed toward the target rotation

	// A positional error beyond this is corrected by moving, not snapping.
	CorrectionThreshold float64

	// Send suppression: the client only transmits a pose update once the
	// avatar moved or turned at least this much since the last send.
	PositionSendThreshold float64
	RotationSendThreshold float64
}

var Avatar AvatarConfig

// ClipDef describes one looping animation clip, keyed by the trigger that
// starts it.
type ClipDef struct {
	First int
	Last  int
	Step  int
	Speed float64
}

// AvatarClips maps each animation trigger to its clip definition.
var AvatarClips = map[netconfig.TriggerID]ClipDef{
	netconfig.TriggerIdle:      {First: 0, Last: 6, Step: 1, Speed: 5},
	netconfig.TriggerWalk:      {First: 0, Last: 7, Step: 1, Speed: 5},
	netconfig.TriggerTurnLeft:  {First: 0, Last: 3, Step: 1, Speed: 6},
	netconfig.TriggerTurnRight: {First: 0, Last: 3, Step: 1, Speed: 6},
}

func init() {
	Avatar = AvatarConfig{
		WalkSpeed:     1.4,
		FastWalkSpeed: 2.8,
		TurnSpeed:     math.Pi, // half a revolution per second

		CorrectionThreshold: 1.0,

		PositionSendThreshold: 0.1,
		RotationSendThreshold: 1.0 * math.Pi / 180,
	}
}
