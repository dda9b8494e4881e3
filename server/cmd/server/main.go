package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/plaza-mp/server/core"
	"github.com/automoto/plaza-mp/shared/netconfig"
	"github.com/automoto/plaza-mp/shared/protocol"
)

func main() {
	port := flag.Uint("port", 7474, "Server port")
	tickRate := flag.Int("tickrate", 10, "Server tick rate (updates per second)")
	name := flag.String("name", "Plaza Server", "Server display name")
	version := flag.String("version", netconfig.ProtocolVersion, "Required client version (empty = accept any)")
	bots := flag.Int("bots", 3, "Number of ambient bot avatars")
	flag.Parse()

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}

	server := core.NewServer(*tickRate, *name, *version, *bots)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		server.Stop()
		os.Exit(0)
	}()

	log.Printf("Starting plaza server %q on port %d (tick rate: %d/s, bots: %d)",
		*name, *port, *tickRate, *bots)
	if err := server.Start(*port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
