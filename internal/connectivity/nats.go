package connectivity

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/podstock/stocksync/internal/adapter"
	"github.com/podstock/stocksync/internal/logger"
)

// Config holds the configuration for the NATS-backed connectivity link
type Config struct {
	URL            string
	ConnectionName string
	MaxReconnects  int
	ReconnectWait  time.Duration
}

// NatsLink is a Signal that derives connectivity from the device's NATS
// connection: a broker disconnect marks the device offline, a reconnect
// marks it online again. The underlying connection is shared with the
// notification publisher.
type NatsLink struct {
	notifier
	nc adapter.NatsConn
}

// Connect establishes the NATS connection and wires its reconnect callbacks
// into the connectivity signal. The initial state mirrors the connection
// outcome at startup.
func Connect(cfg Config, connector adapter.NatsConnector) (*NatsLink, error) {
	link := &NatsLink{}

	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.RetryOnFailedConnect(true),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
			link.transition(false)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
			link.transition(true)
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
			link.transition(false)
		}),
	}

	nc, err := connector.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	link.nc = nc
	link.online = nc.IsConnected()

	return link, nil
}

// Conn returns the underlying NATS connection for publishing
func (l *NatsLink) Conn() adapter.NatsConn {
	return l.nc
}

// Close drains and closes the NATS connection
func (l *NatsLink) Close() {
	if l.nc == nil {
		return
	}
	if err := l.nc.Drain(); err != nil {
		l.nc.Close()
	}
}
