package core

import (
	"log"
	"time"

	"github.com/leap-fish/necs/esync/srvsync"
)

// Loop drives the fixed-rate server tick: bot simulation, then entity sync.
type Loop struct {
	server   *Server
	tickRate int
	running  bool
	stopChan chan struct{}
}

func NewLoop(server *Server, tickRate int) *Loop {
	return &Loop{
		server:   server,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
	}
}

func (l *Loop) Run() {
	l.running = true
	ticker := time.NewTicker(time.Second / time.Duration(l.tickRate))
	defer ticker.Stop()

	dt := 1.0 / float64(l.tickRate)
	log.Printf("[server] loop started at %d ticks/second", l.tickRate)

	for {
		select {
		case <-l.stopChan:
			l.running = false
			log.Println("[server] loop stopped")
			return
		case <-ticker.C:
			l.tick(dt)
		}
	}
}

func (l *Loop) Stop() {
	close(l.stopChan)
}

func (l *Loop) tick(dt float64) {
	l.server.stepBots(dt)

	if err := srvsync.DoSync(); err != nil {
		log.Printf("[server] sync error: %v", err)
	}
}
