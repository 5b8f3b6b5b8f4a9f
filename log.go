package future

import (
	"sync/atomic"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// LogSink receives diagnostics the completion driver cannot otherwise
// surface to a caller: a rejected listener-executor submission, a panic
// inside a listener or AfterDone hook, or a fallback failure installed
// because a delegation listener could not be resolved cleanly. These are
// logged and swallowed, never returned from any public method.
type LogSink interface {
	Warn(msg string, err error)
}

// stumpyLogSink is the default LogSink, built from logiface's generic
// structured logger over a stumpy JSON event backend.
type stumpyLogSink struct {
	logger *logiface.Logger[*stumpy.Event]
}

func (s stumpyLogSink) Warn(msg string, err error) {
	s.logger.Warning().Err(err).Log(msg)
}

var globalLogSink atomic.Pointer[LogSink]

func init() {
	var sink LogSink = stumpyLogSink{logger: stumpy.L.New()}
	globalLogSink.Store(&sink)
}

// SetLogSink replaces the process-wide sink used to report swallowed
// listener/executor failures. Passing nil restores the default
// logiface+stumpy sink.
func SetLogSink(sink LogSink) {
	if sink == nil {
		var def LogSink = stumpyLogSink{logger: stumpy.L.New()}
		globalLogSink.Store(&def)
		return
	}
	globalLogSink.Store(&sink)
}

func logRejection(err error) {
	sink := globalLogSink.Load()
	(*sink).Warn("future: listener notification failed", err)
}
