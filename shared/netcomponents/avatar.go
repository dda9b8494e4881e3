package netcomponents

import (
	"github.com/automoto/plaza-mp/shared/netconfig"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// NetAvatarPoseData is the authoritative pose of an avatar as broadcast by
// the server. Position and rotation are flattened to plain floats for
// msgpack serialization.
type NetAvatarPoseData struct {
	X, Y, Z        float64
	QW, QX, QY, QZ float64
}

var NetAvatarPose = donburi.NewComponentType[NetAvatarPoseData]()

// Position returns the pose position as a vector.
func (p *NetAvatarPoseData) Position() mgl64.Vec3 {
	return mgl64.Vec3{p.X, p.Y, p.Z}
}

// Rotation returns the pose orientation as a quaternion.
func (p *NetAvatarPoseData) Rotation() mgl64.Quat {
	return mgl64.Quat{W: p.QW, V: mgl64.Vec3{p.QX, p.QY, p.QZ}}
}

// SetPosition stores a vector into the flattened wire fields.
func (p *NetAvatarPoseData) SetPosition(v mgl64.Vec3) {
	p.X, p.Y, p.Z = v.X(), v.Y(), v.Z()
}

// SetRotation stores a quaternion into the flattened wire fields.
func (p *NetAvatarPoseData) SetRotation(q mgl64.Quat) {
	p.QW = q.W
	p.QX, p.QY, p.QZ = q.V.X(), q.V.Y(), q.V.Z()
}

// NetAvatarStateData carries the discrete avatar state alongside the pose.
type NetAvatarStateData struct {
	Movement    netconfig.MovementState
	DisplayName string
	IsLocal     bool // Client-side only, not synced
}

var NetAvatarState = donburi.NewComponentType[NetAvatarStateData]()
