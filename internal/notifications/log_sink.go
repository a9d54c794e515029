package notifications

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogSink writes every event to the global zerolog logger.
type LogSink struct{}

func (LogSink) Name() string { return "log" }

func (LogSink) Deliver(_ context.Context, event Event) error {
	var entry *zerolog.Event
	switch event.Severity {
	case SeverityError:
		entry = log.Error()
	case SeverityWarning:
		entry = log.Warn()
	default:
		entry = log.Info()
	}
	entry.Str("event_id", event.ID).
		Str("kind", string(event.Kind)).
		Str("severity", string(event.Severity)).
		Fields(event.Payload).
		Msg(event.Message)
	return nil
}

func (LogSink) Close() error { return nil }
