package messages

import "github.com/automoto/plaza-mp/shared/netconfig"

// AvatarUpdate is sent from client to server when the local avatar's pose or
// movement state changed enough to be worth transmitting. The server validates
// the position against the plaza geometry before broadcasting it.
type AvatarUpdate struct {
	X, Y, Z        float64
	QW, QX, QY, QZ float64
	Movement       netconfig.MovementState
	Timestamp      int64 // Client timestamp (Unix ms)
}
