package systems

import (
	"fmt"

	"github.com/automoto/plaza-mp/components"
	cfg "github.com/automoto/plaza-mp/config"
	"github.com/automoto/plaza-mp/shared/avatarmath"
	"github.com/automoto/plaza-mp/shared/netcomponents"
	"github.com/automoto/plaza-mp/shared/netconfig"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const (
	avatarRadius  = 6.0
	headingLength = 12.0
	plazaMargin   = 24.0
)

// worldToScreen maps a plaza-plane point (x, z) to viewer pixels, top-down.
func worldToScreen(x, z float64) (float32, float32) {
	scaleX := (float64(cfg.C.Width) - 2*plazaMargin) / netconfig.PlazaWidth
	scaleZ := (float64(cfg.C.Height) - 2*plazaMargin) / netconfig.PlazaDepth
	scale := scaleX
	if scaleZ < scale {
		scale = scaleZ
	}
	sx := float64(cfg.C.Width)/2 + x*scale
	sy := float64(cfg.C.Height)/2 + z*scale
	return float32(sx), float32(sy)
}

// DrawPlaza renders the ground bounds and every avatar, with a heading marker
// derived from the avatar's forward vector.
func DrawPlaza(e *ecs.ECS, screen *ebiten.Image) {
	screen.Fill(cfg.DarkGray)

	if cfg.Debug.DrawPlazaBounds {
		x0, y0 := worldToScreen(-netconfig.PlazaWidth/2, -netconfig.PlazaDepth/2)
		x1, y1 := worldToScreen(netconfig.PlazaWidth/2, netconfig.PlazaDepth/2)
		vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 1, cfg.LightGreen, false)
	}

	colorIndex := 0
	esync.NetworkEntityQuery.Each(e.World, func(entry *donburi.Entry) {
		if !entry.HasComponent(components.AvatarPose) {
			return
		}
		pose := components.AvatarPose.Get(entry)

		var state *netcomponents.NetAvatarStateData
		if entry.HasComponent(netcomponents.NetAvatarState) {
			state = netcomponents.NetAvatarState.Get(entry)
		}

		rectColor := cfg.AvatarColors[colorIndex%len(cfg.AvatarColors)]
		colorIndex++
		if state != nil && state.IsLocal {
			rectColor = cfg.BrightGreen
		}

		sx, sy := worldToScreen(pose.Position.X(), pose.Position.Z())
		vector.DrawFilledCircle(screen, sx, sy, avatarRadius, rectColor, false)

		if cfg.Debug.DrawHeading {
			fwd := avatarmath.Forward(pose.Rotation)
			hx := sx + float32(fwd.X()*headingLength)
			hy := sy + float32(fwd.Z()*headingLength)
			vector.StrokeLine(screen, sx, sy, hx, hy, 2, cfg.White, false)
		}

		label := ""
		if nid := esync.GetNetworkId(entry); nid != nil {
			label = fmt.Sprintf("ID:%d", *nid)
		}
		if state != nil && state.DisplayName != "" {
			label = state.DisplayName
		}
		if entry.HasComponent(components.AvatarAnimation) {
			anim := components.AvatarAnimation.Get(entry)
			if anim.CurrentClip != nil {
				label += fmt.Sprintf(" %s[%d]", anim.Current, anim.CurrentClip.Frame())
			}
		}
		if label != "" {
			ebitenutil.DebugPrintAt(screen, label, int(sx)-len(label)*3, int(sy)-int(avatarRadius)-16)
		}
	})
}

// NewDrawHUD returns the HUD renderer showing the connection summary and the
// active reconciliation mode.
func NewDrawHUD(mode func() netconfig.ReconcileMode, serverName func() string) func(*ecs.ECS, *ebiten.Image) {
	return func(e *ecs.ECS, screen *ebiten.Image) {
		entityCount := 0
		esync.NetworkEntityQuery.Each(e.World, func(_ *donburi.Entry) {
			entityCount++
		})

		info := fmt.Sprintf("%s - avatars: %d  mode: %s (1/2/3 to switch)",
			serverName(), entityCount, mode())
		ebitenutil.DebugPrintAt(screen, info, 4, 4)
	}
}
