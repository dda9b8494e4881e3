// Package netconfig defines lightweight types shared between client and server
// for network serialization. It must have zero dependencies on ebiten or any
// graphics library so the dedicated server binary stays headless.
package netconfig

// MovementState identifies an avatar's discrete locomotion state. It drives
// both pose extrapolation and animation trigger selection.
type MovementState uint8

const (
	MoveIdle MovementState = iota
	MoveWalking
	MoveTurningLeft
	MoveTurningRight
	MoveWalkingTurningLeft
	MoveWalkingTurningRight
)

// Walking reports whether the state carries forward locomotion. Both
// walking-turning states count.
func (m MovementState) Walking() bool {
	return m == MoveWalking || m == MoveWalkingTurningLeft || m == MoveWalkingTurningRight
}

var movementStateNames = map[MovementState]string{
	MoveIdle:                "idle",
	MoveWalking:             "walking",
	MoveTurningLeft:         "turning-left",
	MoveTurningRight:        "turning-right",
	MoveWalkingTurningLeft:  "walking-turning-left",
	MoveWalkingTurningRight: "walking-turning-right",
}

func (m MovementState) String() string {
	if name, ok := movementStateNames[m]; ok {
		return name
	}
	return "unknown"
}

// ReconcileMode selects how a remote avatar's pose follows sparse server
// updates between frames.
type ReconcileMode uint8

const (
	ReconcileNone ReconcileMode = iota
	ReconcileDeadReckoning
	ReconcileSmoothCorrections
)

var reconcileModeNames = map[ReconcileMode]string{
	ReconcileNone:              "none",
	ReconcileDeadReckoning:     "dead-reckoning",
	ReconcileSmoothCorrections: "smooth-corrections",
}

func (r ReconcileMode) String() string {
	if name, ok := reconcileModeNames[r]; ok {
		return name
	}
	return "unknown"
}

// TriggerID identifies an animation trigger dispatched to the playback layer.
type TriggerID int

const (
	TriggerNone TriggerID = iota
	TriggerIdle
	TriggerWalk
	TriggerTurnLeft
	TriggerTurnRight
)

// TriggerToName maps TriggerID to the animation clip name it starts.
var TriggerToName = map[TriggerID]string{
	TriggerIdle:      "idle",
	TriggerWalk:      "walk",
	TriggerTurnLeft:  "turn-left",
	TriggerTurnRight: "turn-right",
}

func (t TriggerID) String() string {
	if name, ok := TriggerToName[t]; ok {
		return name
	}
	return "unknown"
}

// Plaza ground-plane bounds in world units, centered on the origin. The
// server builds its collision space from these; the viewer uses them to frame
// the top-down view.
const (
	PlazaWidth = 64.0
	PlazaDepth = 48.0
)

// ProtocolVersion is checked during the join handshake. Bump on any wire
// format change.
const ProtocolVersion = "0.2"
