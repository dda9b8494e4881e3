package core

import (
	"fmt"
	"log"
	"math/rand"
	"sync"

	"github.com/automoto/plaza-mp/shared/messages"
	"github.com/automoto/plaza-mp/shared/netcomponents"
	"github.com/automoto/plaza-mp/shared/netconfig"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"
)

// Server hosts the plaza: it owns the world, validates client avatar updates
// against the plaza geometry, and runs the ambient bots.
type Server struct {
	world     donburi.World
	loop      *Loop
	transport *transports.WsServerTransport
	plaza     *Plaza
	bots      []*Bot

	name    string
	version string

	// Track which network client owns which avatar entity
	clientEntities map[*router.NetworkClient]donburi.Entity
	mu             sync.RWMutex
}

// NewServer creates a plaza server with the given number of ambient bots.
func NewServer(tickRate int, name, version string, botCount int) *Server {
	world := donburi.NewWorld()

	s := &Server{
		world:          world,
		plaza:          NewPlaza(),
		name:           name,
		version:        version,
		clientEntities: make(map[*router.NetworkClient]donburi.Entity),
	}
	s.loop = NewLoop(s, tickRate)

	// Set up the world for esync
	srvsync.UseEsync(world)

	rng := rand.New(rand.NewSource(int64(botCount) + 1))
	for i := 0; i < botCount; i++ {
		bot, err := NewBot(world, i, rng)
		if err != nil {
			log.Printf("[server] failed to spawn bot %d: %v", i, err)
			continue
		}
		entity := bot.entity
		if err := srvsync.NetworkSync(world, &entity,
			netcomponents.NetAvatarPose,
			netcomponents.NetAvatarState,
		); err != nil {
			log.Printf("[server] failed to sync bot %d: %v", i, err)
			continue
		}
		s.bots = append(s.bots, bot)
	}

	s.setupRouterCallbacks()
	return s
}

// Start begins the server on the given port
func (s *Server) Start(port uint) error {
	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	s.loop.Stop()
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		log.Printf("[server] client connected: %s", client.Id())
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		s.onDisconnect(client, err)
	})

	router.On(func(client *router.NetworkClient, msg messages.JoinRequest) {
		s.onJoinRequest(client, msg)
	})

	router.On(func(client *router.NetworkClient, msg messages.AvatarUpdate) {
		s.onAvatarUpdate(client, msg)
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("[server] client error: %v", err)
	})
}

func (s *Server) onJoinRequest(client *router.NetworkClient, msg messages.JoinRequest) {
	if s.version != "" && msg.Version != s.version {
		s.sendTo(client, messages.JoinRejected{
			Reason: fmt.Sprintf("version mismatch: server=%s client=%s", s.version, msg.Version),
		})
		return
	}

	spawn := s.spawnPosition()

	entity := s.world.Create(
		netcomponents.NetAvatarPose,
		netcomponents.NetAvatarState,
	)
	entry := s.world.Entry(entity)

	pose := netcomponents.NetAvatarPose.Get(entry)
	pose.SetPosition(spawn)
	pose.SetRotation(mgl64.QuatIdent())

	name := msg.DisplayName
	if name == "" {
		name = "wanderer"
	}
	netcomponents.NetAvatarState.Set(entry, &netcomponents.NetAvatarStateData{
		Movement:    netconfig.MoveIdle,
		DisplayName: name,
	})

	if err := srvsync.NetworkSync(s.world, &entity,
		netcomponents.NetAvatarPose,
		netcomponents.NetAvatarState,
	); err != nil {
		log.Printf("[server] failed to set up sync for %s: %v", client.Id(), err)
		s.sendTo(client, messages.JoinRejected{Reason: "internal error"})
		s.world.Remove(entity)
		return
	}

	s.plaza.AddAvatar(entity, spawn)

	s.mu.Lock()
	s.clientEntities[client] = entity
	s.mu.Unlock()

	var netID esync.NetworkId
	if nid := esync.GetNetworkId(entry); nid != nil {
		netID = *nid
	}
	s.sendTo(client, messages.JoinAccepted{
		NetworkID:  netID,
		ServerName: s.name,
		TickRate:   s.loop.tickRate,
	})

	log.Printf("[server] avatar %q spawned for client %s (netID=%d)", name, client.Id(), netID)
}

func (s *Server) onDisconnect(client *router.NetworkClient, err error) {
	if err != nil {
		log.Printf("[server] client %s disconnected with error: %v", client.Id(), err)
	} else {
		log.Printf("[server] client %s disconnected", client.Id())
	}

	s.mu.Lock()
	entity, exists := s.clientEntities[client]
	if exists {
		delete(s.clientEntities, client)
	}
	s.mu.Unlock()

	if exists && s.world.Valid(entity) {
		s.plaza.RemoveAvatar(entity)
		s.world.Remove(entity)
	}
}

// onAvatarUpdate applies a client-reported pose after validating it against
// the plaza geometry. Rejected positions keep the last valid one; rotation
// and movement state are always applied.
func (s *Server) onAvatarUpdate(client *router.NetworkClient, msg messages.AvatarUpdate) {
	s.mu.RLock()
	entity, exists := s.clientEntities[client]
	s.mu.RUnlock()

	if !exists || !s.world.Valid(entity) {
		return
	}

	entry := s.world.Entry(entity)
	pose := netcomponents.NetAvatarPose.Get(entry)

	to := mgl64.Vec3{msg.X, msg.Y, msg.Z}
	if s.plaza.TryMove(entity, to) {
		pose.SetPosition(to)
	}

	rot := mgl64.Quat{W: msg.QW, V: mgl64.Vec3{msg.QX, msg.QY, msg.QZ}}
	pose.SetRotation(rot.Normalize())

	netcomponents.NetAvatarState.Get(entry).Movement = msg.Movement
}

// spawnPosition scatters new avatars around the plaza edge so they do not
// stack on top of each other.
func (s *Server) spawnPosition() mgl64.Vec3 {
	s.mu.RLock()
	n := len(s.clientEntities)
	s.mu.RUnlock()

	x := -netconfig.PlazaWidth/4 + float64(n%8)*2
	z := netconfig.PlazaDepth / 4
	return mgl64.Vec3{x, 0, z}
}

func (s *Server) sendTo(client *router.NetworkClient, msg any) {
	payload, err := router.Serialize(msg)
	if err != nil {
		log.Printf("[server] serialize: %v", err)
		return
	}
	if err := client.SendMessage(payload); err != nil {
		log.Printf("[server] send to %s: %v", client.Id(), err)
	}
}

// stepBots advances every ambient bot by dt seconds.
func (s *Server) stepBots(dt float64) {
	for _, bot := range s.bots {
		bot.Step(dt)
	}
}

// World returns the ECS world
func (s *Server) World() donburi.World {
	return s.world
}

// PlayerCount returns the number of connected players
func (s *Server) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clientEntities)
}
