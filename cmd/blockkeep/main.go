// Command blockkeep is a Minecraft Java Edition protocol 755 server core:
// a framed packet codec, a Handshake -> Status | Login -> Play state
// machine, and a chunked voxel world backed by a single SNG file.
package main

import (
	"fmt"
	"net"
	"os"

	"github.com/sirupsen/logrus"

	"blockkeep/internal/config"
	"blockkeep/internal/conn"
	"blockkeep/internal/packets"
	"blockkeep/internal/world"
)

const serverVersion = "1.0.0"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "-v", "--version":
			fmt.Printf("blockkeep v%s (protocol %d)\n", serverVersion, packets.MinecraftProtocolVersion)
			return
		}
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	entry := logrus.NewEntry(log)

	cfg, err := config.Load("config.yaml")
	if err != nil {
		entry.WithError(err).Fatal("failed to load config.yaml")
	}

	store, err := world.NewStore("world.sng", entry.WithField("component", "world"))
	if err != nil {
		entry.WithError(err).Fatal("failed to open world.sng")
	}
	defer store.Close()

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.ServerPort)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		entry.WithError(err).Fatal("failed to bind listener")
	}
	entry.WithField("addr", addr).Info("blockkeep listening")

	for {
		socket, err := listener.Accept()
		if err != nil {
			entry.WithError(err).Warn("accept failed")
			continue
		}
		go serveConnection(socket, cfg, entry, store)
	}
}

func serveConnection(socket net.Conn, cfg config.Snapshot, log *logrus.Entry, store *world.Store) {
	remote := log.WithField("remote", socket.RemoteAddr())
	c := conn.New(socket, cfg, remote, store)
	if err := packets.Bootstrap(c); err != nil {
		remote.WithError(err).Fatal("packet registry bootstrap failed")
	}
	conn.Serve(c)
}
