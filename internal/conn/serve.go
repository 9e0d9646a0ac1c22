package conn

import (
	"errors"

	"github.com/sirupsen/logrus"

	"blockkeep/internal/proto"
)

// Serve runs the read loop for one connection: read a frame, run the
// decoded packet's Act effect, repeat, until a fatal error or a clean
// disconnect. It owns the transport for the loop's duration and closes
// it on exit, matching the worker lifecycle in spec.md §5.
func Serve(c *Connection) {
	defer c.Transport.Close()

	for {
		packet, err := c.ReadPacket()
		if err != nil {
			if !classify(c.Log, err) {
				return
			}
			continue
		}

		if err := packet.Act(c); err != nil {
			if !classify(c.Log, err) {
				return
			}
		}
	}
}

// classify logs err at the level spec.md §7 assigns its kind and reports
// whether the connection should keep running.
func classify(log *logrus.Entry, err error) (keepRunning bool) {
	var refusal proto.Refusal
	var disconnected proto.Disconnected
	switch {
	case errors.As(err, &refusal):
		log.WithError(err).Warn("packet refused; check registry wiring")
		return true
	case errors.As(err, &disconnected):
		log.Info("client disconnected")
		return false
	default:
		log.WithError(err).Error("connection terminated")
		return false
	}
}
