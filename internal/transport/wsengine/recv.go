// If you are AI: This file implements Recv and the record splitter it
// drives. Split out of engine.go to keep the connection-lifecycle code
// and the per-tick dispatch loop in separate files.
package wsengine

import (
	"time"

	"wsmedia/internal/core/errctx"
	"wsmedia/internal/core/record"
	"wsmedia/internal/transport"
)

// Recv pumps one tick of the event loop: it runs OnTick, then waits up
// to TickBudget for either a new payload or a read-pump error, dispatching
// records to handler as a side effect of a new payload.
func (e *Engine[R]) Recv(handler transport.HandlerFunc, userdata any, ectx *errctx.Context) bool {
	if e.conn == nil {
		ectx.Save(errctx.InvalidArgument, "wsengine/recv.go", 0)
		return false
	}

	e.handler = handler
	e.userdata = userdata

	if e.hooks.OnTick != nil {
		if err := e.hooks.OnTick(e); err != nil {
			ectx.Save(errctx.NotConnected, "wsengine/recv.go", 0)
			e.errored = true
			return false
		}
	}

	timer := time.NewTimer(TickBudget)
	defer timer.Stop()

	select {
	case payload := <-e.payloads:
		if !e.dispatch(payload, ectx) {
			e.errored = true
			return false
		}
	case <-e.readErrs:
		e.errored = true
		ectx.Save(errctx.NotConnected, "wsengine/recv.go", 0)
		return false
	case <-timer.C:
		// Tick elapsed with nothing to deliver. Not an error.
	}

	if e.errored {
		ectx.Save(errctx.NotConnected, "wsengine/recv.go", 0)
		return false
	}
	return true
}

// dispatch implements the record splitter for one received payload.
func (e *Engine[R]) dispatch(payload []byte, ectx *errctx.Context) bool {
	defer func() { e.responseCount++ }()

	if len(payload) > 0 && payload[0] == '{' && len(payload) < ControlMessageMaxLength {
		// In-band JSON control frame: ignored at the container level.
		return true
	}

	offset := 0
	end := len(payload)
	if e.skipper != nil && e.responseCount == 0 {
		offset = e.skipper.SkipHeader(payload)
	}

	for offset < end {
		rec, next, err := e.stepper.Parse(payload, offset, end)
		if err != nil {
			ectx.Save(errctx.BadMessage, "wsengine/recv.go", 0)
			return false
		}

		ok := e.handler(rec, e.userdata, ectx)
		if releasable, can := any(rec).(record.Releasable); can {
			releasable.Release()
		}
		if !ok {
			return false
		}

		offset = next
	}

	return true
}
