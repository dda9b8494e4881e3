package protocol

import (
	"github.com/automoto/plaza-mp/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetAvatarPose  uint = 10
	SyncIDNetAvatarState uint = 11
)

// RegisterComponents registers all network components with necs for
// serialization. This must be called by both server and client before any
// network operations.
//
// Neither component registers a transport-level interpolation function: pose
// smoothing is owned by the client-side reconciler, which needs the raw
// server samples.
func RegisterComponents() error {
	if err := esync.RegisterComponent(
		SyncIDNetAvatarPose,
		netcomponents.NetAvatarPoseData{},
		netcomponents.NetAvatarPose,
	); err != nil {
		return err
	}

	return esync.RegisterComponent(
		SyncIDNetAvatarState,
		netcomponents.NetAvatarStateData{},
		netcomponents.NetAvatarState,
	)
}
