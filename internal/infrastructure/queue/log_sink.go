package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/threekst/storefront-gateway/internal/core/domain"
)

// LogSink writes every notification to the structured log. It is always
// registered so notifications remain observable without a broker.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Deliver(_ context.Context, n domain.Notification) error {
	s.log.Info().
		Str("session_id", n.SessionID).
		Str("level", string(n.Level)).
		Str("title", n.Title).
		Str("message", n.Message).
		Msg("notification")
	return nil
}
