package notify

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/podstock/stocksync/internal/adapter"
	"github.com/podstock/stocksync/internal/logger"
)

// NatsSink publishes notifications to a NATS subject for an external UI to
// consume. Publish failures are logged and swallowed; a down broker must
// never fail the operation that produced the message.
type NatsSink struct {
	nc            adapter.NatsConn
	subjectPrefix string
	json          adapter.JSON
	fallback      Sink
}

// NewNatsSink creates a NATS-backed sink publishing to
// <subjectPrefix>.<severity>. Messages that cannot be published are routed
// to the fallback sink instead.
func NewNatsSink(nc adapter.NatsConn, subjectPrefix string, jsonAdapter adapter.JSON, fallback Sink) *NatsSink {
	return &NatsSink{
		nc:            nc,
		subjectPrefix: subjectPrefix,
		json:          jsonAdapter,
		fallback:      fallback,
	}
}

// Notify publishes the notification, falling back to the local sink when the
// broker is unreachable
func (s *NatsSink) Notify(title, description string, severity Severity) {
	data, err := s.json.Marshal(Notification{
		Title:       title,
		Description: description,
		Severity:    severity,
	})
	if err != nil {
		logger.Error(err, zap.String("title", title))
		return
	}

	subject := fmt.Sprintf("%s.%s", s.subjectPrefix, severity)
	if err := s.nc.Publish(subject, data); err != nil {
		logger.Debug("notification publish failed, using fallback", zap.Error(err))
		if s.fallback != nil {
			s.fallback.Notify(title, description, severity)
		}
	}
}
