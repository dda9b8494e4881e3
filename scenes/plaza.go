package scenes

import (
	"log"
	"sync"
	"time"

	"github.com/automoto/plaza-mp/components"
	cfg "github.com/automoto/plaza-mp/config"
	"github.com/automoto/plaza-mp/network"
	"github.com/automoto/plaza-mp/shared/netcomponents"
	"github.com/automoto/plaza-mp/shared/netconfig"
	"github.com/automoto/plaza-mp/systems"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// PlazaScene owns the client-side world: it applies server snapshots to the
// ECS, runs the reconciliation systems, and draws the top-down debug view.
type PlazaScene struct {
	ecsWorld   *ecs.ECS
	netClient  *network.Client
	gate       *network.SendGate
	once       sync.Once
	presentIDs map[esync.NetworkId]bool

	mode       netconfig.ReconcileMode
	onModeSave func(netconfig.ReconcileMode)

	lastUpdate time.Time
	frameDt    float64
}

func NewPlazaScene(client *network.Client, initialMode netconfig.ReconcileMode, onModeSave func(netconfig.ReconcileMode)) *PlazaScene {
	return &PlazaScene{
		netClient: client,
		gate: network.NewSendGate(
			cfg.Avatar.PositionSendThreshold,
			cfg.Avatar.RotationSendThreshold,
			time.Duration(cfg.Network.ResendMillis)*time.Millisecond,
		),
		presentIDs: make(map[esync.NetworkId]bool),
		mode:       initialMode,
		onModeSave: onModeSave,
	}
}

func (ps *PlazaScene) Update() {
	ps.once.Do(ps.configure)

	// Elapsed frame time, passed explicitly to the reconciler. Clamped so a
	// stalled window does not produce one giant extrapolation step.
	now := time.Now()
	ps.frameDt = now.Sub(ps.lastUpdate).Seconds()
	ps.lastUpdate = now
	if ps.frameDt > 0.25 {
		ps.frameDt = 0.25
	}

	if snap := ps.netClient.LatestSnapshot(); snap != nil {
		ps.applySnapshot(*snap)
	}

	ps.ecsWorld.Update()
}

func (ps *PlazaScene) Draw(screen *ebiten.Image) {
	if ps.ecsWorld == nil {
		return
	}
	ps.ecsWorld.Draw(screen)
}

func (ps *PlazaScene) configure() {
	ps.lastUpdate = time.Now()
	ps.ecsWorld = ecs.NewECS(donburi.NewWorld())

	dt := func() float64 { return ps.frameDt }
	sendFn := func(msg any) error {
		if ps.netClient.State() != network.StateJoinedPlaza {
			return nil
		}
		return ps.netClient.SendMessage(msg)
	}
	localNetID := func() esync.NetworkId {
		return ps.netClient.NetworkID()
	}

	ps.ecsWorld.AddSystem(systems.NewLocalAvatarSystem(sendFn, ps.gate, localNetID, dt))
	ps.ecsWorld.AddSystem(systems.NewAvatarReconcileSystem(dt))
	ps.ecsWorld.AddSystem(systems.UpdateAvatarAnimations)
	ps.ecsWorld.AddSystem(systems.NewModeSelectSystem(func(mode netconfig.ReconcileMode) {
		ps.mode = mode
		log.Printf("[plaza] reconcile mode: %s", mode)
		if ps.onModeSave != nil {
			ps.onModeSave(mode)
		}
	}))

	ps.ecsWorld.AddRenderer(ecs.LayerDefault, systems.DrawPlaza)
	ps.ecsWorld.AddRenderer(ecs.LayerDefault, systems.NewDrawHUD(
		func() netconfig.ReconcileMode { return ps.mode },
		ps.netClient.ServerName,
	))
}

func (ps *PlazaScene) applySnapshot(snapshot esync.WorldSnapshot) {
	world := ps.ecsWorld.World
	myNetID := ps.netClient.NetworkID()

	clear(ps.presentIDs)

	for _, ent := range snapshot {
		ps.presentIDs[ent.Id] = true

		var compData []any
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				continue
			}
			compData = append(compData, instance)
		}

		entity := esync.FindByNetworkId(world, ent.Id)
		if !world.Valid(entity) {
			entity = ps.spawnAvatar(ent.Id, ent.Id == myNetID, compData)
		}

		entry := world.Entry(entity)
		if ent.Id == myNetID {
			ps.applyLocal(entry, compData)
		} else {
			ps.applyRemote(entry, compData)
		}
	}

	esync.NetworkEntityQuery.Each(world, func(entry *donburi.Entry) {
		id := esync.GetNetworkId(entry)
		if id == nil {
			return
		}
		if !ps.presentIDs[*id] {
			entry.Remove()
		}
	})
}

// spawnAvatar creates the client-side entity for a newly seen network id.
// Remote avatars get the reconciliation components; the local avatar's pose
// is owned by the input system instead.
func (ps *PlazaScene) spawnAvatar(id esync.NetworkId, isLocal bool, compData []any) donburi.Entity {
	world := ps.ecsWorld.World

	ctypes := []donburi.IComponentType{
		netcomponents.NetAvatarState,
		components.AvatarPose,
	}
	if !isLocal {
		ctypes = append(ctypes, components.AvatarTarget, components.Reconcile, components.AvatarAnimation)
	}

	entity := world.Create(ctypes...)
	entry := world.Entry(entity)
	entry.AddComponent(esync.NetworkIdComponent)
	esync.NetworkIdComponent.SetValue(entry, id)

	// Seed the visual pose from the first server sample so new avatars do
	// not glide in from the origin.
	pose := components.AvatarPose.Get(entry)
	*pose = components.NewAvatarPose(mgl64.Vec3{})
	for _, data := range compData {
		if v, ok := data.(netcomponents.NetAvatarPoseData); ok {
			pose.Position = v.Position()
			pose.Rotation = v.Rotation()
		}
	}

	if !isLocal {
		components.Reconcile.SetValue(entry, components.ReconcileData{Mode: ps.mode})
		components.AvatarAnimation.SetValue(entry, components.NewAvatarAnimation())
	}

	return entity
}

// applyRemote writes the server sample into the avatar's sticky target state;
// the reconciler moves the visual pose toward it on subsequent frames.
func (ps *PlazaScene) applyRemote(entry *donburi.Entry, compData []any) {
	for _, data := range compData {
		switch v := data.(type) {
		case netcomponents.NetAvatarPoseData:
			if entry.HasComponent(components.AvatarTarget) {
				target := components.AvatarTarget.Get(entry)
				target.SetPosition(v.Position())
				target.SetRotation(v.Rotation())
			}
		case netcomponents.NetAvatarStateData:
			state := netcomponents.NetAvatarState.Get(entry)
			state.DisplayName = v.DisplayName
			state.Movement = v.Movement
			if entry.HasComponent(components.AvatarTarget) {
				components.AvatarTarget.Get(entry).SetMovement(v.Movement)
			}
		}
	}
}

// applyLocal keeps the local entity's metadata in sync without touching its
// pose, which the input system owns.
func (ps *PlazaScene) applyLocal(entry *donburi.Entry, compData []any) {
	for _, data := range compData {
		if v, ok := data.(netcomponents.NetAvatarStateData); ok {
			state := netcomponents.NetAvatarState.Get(entry)
			state.DisplayName = v.DisplayName
			state.IsLocal = true
		}
	}
}
