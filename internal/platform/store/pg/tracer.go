package pg

import (
	"context"
	"strings"

	"fadet/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent describes one executed statement
type QueryEvent struct {
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives one event per statement
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

type zlTracer struct{ log logger.Logger }

// Tracer returns a tracer that prints SQL whenever LogSQL is on,
// regardless of the process-wide root level
func Tracer(root logger.Logger) QueryTracer {
	return &zlTracer{
		log: root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger(),
	}
}

func (z *zlTracer) OnQuery(_ context.Context, ev QueryEvent) {
	evt := z.log.Info()
	if ev.Slow {
		evt = z.log.Warn()
	}
	evt.Str("sql", compact(ev.SQL)).
		Interface("args", ev.Args).
		Float64("elapsed_ms", float64(ev.ElapsedUS)/1000.0).
		Bool("slow", ev.Slow).
		Err(ev.Err).
		Msg("pg query")
}

// compact folds runs of whitespace so multiline SQL logs on one line
func compact(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inRun := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
			if !inRun {
				b.WriteByte(' ')
				inRun = true
			}
		default:
			b.WriteRune(r)
			inRun = false
		}
	}
	return b.String()
}
