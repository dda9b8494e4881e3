package core

import (
	"github.com/automoto/plaza-mp/shared/netconfig"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

const (
	wallThickness = 1.0
	avatarSize    = 0.6
	cellSize      = 4

	tagSolid = "solid"
)

// Fountain is the central obstacle, in world units around the origin.
const (
	FountainWidth = 6.0
	FountainDepth = 6.0
)

// Plaza owns the ground-plane collision space. resolv is two-dimensional, so
// world X maps to space X and world Z to space Y, offset so the plaza's
// center sits in the middle of the space.
type Plaza struct {
	space   *resolv.Space
	avatars map[donburi.Entity]*resolv.Object
}

func NewPlaza() *Plaza {
	w := netconfig.PlazaWidth + 2*wallThickness
	d := netconfig.PlazaDepth + 2*wallThickness
	space := resolv.NewSpace(int(w), int(d), cellSize, cellSize)

	addSolid := func(x, y, sw, sh float64) {
		obj := resolv.NewObject(x, y, sw, sh, tagSolid)
		obj.SetShape(resolv.NewRectangle(0, 0, sw, sh))
		space.Add(obj)
	}

	// Perimeter walls
	addSolid(0, 0, w, wallThickness)
	addSolid(0, d-wallThickness, w, wallThickness)
	addSolid(0, 0, wallThickness, d)
	addSolid(w-wallThickness, 0, wallThickness, d)

	// Central fountain
	fx, fy := toSpace(-FountainWidth/2, -FountainDepth/2)
	addSolid(fx, fy, FountainWidth, FountainDepth)

	return &Plaza{
		space:   space,
		avatars: make(map[donburi.Entity]*resolv.Object),
	}
}

// toSpace converts a world ground-plane point to space coordinates.
func toSpace(x, z float64) (float64, float64) {
	return x + netconfig.PlazaWidth/2 + wallThickness,
		z + netconfig.PlazaDepth/2 + wallThickness
}

// AddAvatar registers a collision object for a newly spawned avatar.
func (p *Plaza) AddAvatar(e donburi.Entity, pos mgl64.Vec3) {
	sx, sy := toSpace(pos.X(), pos.Z())
	obj := resolv.NewObject(sx-avatarSize/2, sy-avatarSize/2, avatarSize, avatarSize, "avatar")
	obj.SetShape(resolv.NewRectangle(0, 0, avatarSize, avatarSize))
	p.space.Add(obj)
	p.avatars[e] = obj
}

// RemoveAvatar drops the collision object for a despawned avatar.
func (p *Plaza) RemoveAvatar(e donburi.Entity) {
	if obj, ok := p.avatars[e]; ok {
		p.space.Remove(obj)
		delete(p.avatars, e)
	}
}

// TryMove validates a client-reported position against the plaza geometry.
// A move that would cross into a solid is rejected wholesale; the avatar
// keeps its last valid position.
func (p *Plaza) TryMove(e donburi.Entity, to mgl64.Vec3) bool {
	obj, ok := p.avatars[e]
	if !ok {
		return false
	}

	sx, sy := toSpace(to.X()-avatarSize/2, to.Z()-avatarSize/2)
	dx := sx - obj.X
	dy := sy - obj.Y

	if check := obj.Check(dx, dy, tagSolid); check != nil {
		if len(check.ObjectsByTags(tagSolid)) > 0 {
			return false
		}
	}

	obj.X = sx
	obj.Y = sy
	obj.Update()
	return true
}

// InsideWalkable reports whether a world point is inside the plaza bounds and
// clear of the fountain, with enough margin for an avatar. Used when sampling
// bot waypoints.
func InsideWalkable(x, z float64) bool {
	margin := avatarSize/2 + wallThickness
	if x < -netconfig.PlazaWidth/2+margin || x > netconfig.PlazaWidth/2-margin {
		return false
	}
	if z < -netconfig.PlazaDepth/2+margin || z > netconfig.PlazaDepth/2-margin {
		return false
	}
	if x > -FountainWidth/2-margin && x < FountainWidth/2+margin &&
		z > -FountainDepth/2-margin && z < FountainDepth/2+margin {
		return false
	}
	return true
}
