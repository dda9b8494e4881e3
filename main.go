package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/automoto/plaza-mp/config"
	"github.com/automoto/plaza-mp/network"
	"github.com/automoto/plaza-mp/scenes"
	"github.com/automoto/plaza-mp/shared/netconfig"
	"github.com/automoto/plaza-mp/shared/protocol"
	"github.com/automoto/plaza-mp/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	scene Scene
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	return config.C.Width, config.C.Height
}

func main() {
	addr := flag.String("addr", "", "Server address (host:port); overrides the saved value")
	nameFlag := flag.String("name", "", "Display name shown above the avatar; overrides the saved value")
	flag.Parse()

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}

	if err := systems.InitPersistence(); err != nil {
		log.Printf("[viewer] continuing without persisted settings")
	}
	saved, _ := systems.LoadSettings()

	address := fmt.Sprintf("%s:%d", config.Network.DefaultAddress, config.Network.DefaultPort)
	name := "wanderer"
	mode := netconfig.ReconcileSmoothCorrections
	if saved != nil {
		if saved.ServerAddress != "" {
			address = saved.ServerAddress
		}
		if saved.DisplayName != "" {
			name = saved.DisplayName
		}
		mode = netconfig.ReconcileMode(saved.ReconcileMode)
	}
	if *addr != "" {
		address = *addr
	}
	if *nameFlag != "" {
		name = *nameFlag
	}

	client := network.NewClient()
	client.Connect(address, netconfig.ProtocolVersion, name)

	onModeSave := func(m netconfig.ReconcileMode) {
		_ = systems.SaveSettings(&systems.SavedSettings{
			ServerAddress: address,
			DisplayName:   name,
			ReconcileMode: int(m),
		})
	}

	game := &Game{scene: scenes.NewPlazaScene(client, mode, onModeSave)}

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle(config.C.Title)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
