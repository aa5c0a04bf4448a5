// If you are AI: This file drives one session to completion, narrowing
// the generic session.Session[R] to the concrete record type matching
// whichever transport the registry selected for the URL.
package cmd

import (
	"context"
	"fmt"
	"time"

	"wsmedia/internal/config"
	"wsmedia/internal/core/errctx"
	"wsmedia/internal/core/flvrecord"
	"wsmedia/internal/core/fmp4record"
	"wsmedia/internal/session"
	"wsmedia/internal/transport"
	"wsmedia/internal/xlog"
)

// dumpLoop selects a transport for url and drives the matching session
// loop (FLV or fMP4) to completion or cancellation.
func dumpLoop(ctx context.Context, sess *xlog.Session, registry *transport.Registry, url string, maxRecords int, sessCfg config.SessionConfig) error {
	descriptor, ok := registry.Select(url)
	if !ok {
		return fmt.Errorf("no transport matches %q", url)
	}
	sess.Printf("selected transport %q", descriptor.Name)

	if descriptor.Name == "websocket-flv" {
		return runFLV(ctx, sess, registry, url, maxRecords, sessCfg)
	}
	return runFMP4(ctx, sess, registry, url, maxRecords, sessCfg)
}

// connectWithRetry retries Connect up to sessCfg.ReconnectAttempts times,
// sleeping sessCfg.ReconnectDelayMS between attempts, before giving up.
func connectWithRetry(ctx context.Context, sess *xlog.Session, connect func(*errctx.Context) bool, sessCfg config.SessionConfig) error {
	var lastErr string
	for attempt := 0; attempt <= sessCfg.ReconnectAttempts; attempt++ {
		var ectx errctx.Context
		if connect(&ectx) {
			return nil
		}
		lastErr = ectx.Error()
		if attempt < sessCfg.ReconnectAttempts {
			sess.Printf("connect attempt %d/%d failed: %s, retrying", attempt+1, sessCfg.ReconnectAttempts+1, lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(sessCfg.ReconnectDelayMS) * time.Millisecond):
			}
		}
	}
	return fmt.Errorf("connect: %s (after %d attempts)", lastErr, sessCfg.ReconnectAttempts+1)
}

// runFLV connects an FLV session and logs each tag until ctx is
// cancelled, maxRecords tags are seen, or MaxTicksPerRecv ticks elapse.
func runFLV(ctx context.Context, sess *xlog.Session, registry *transport.Registry, url string, maxRecords int, sessCfg config.SessionConfig) error {
	var ectx errctx.Context
	flvSess, ok := session.CreateFLVSession(registry, url, &ectx)
	if !ok {
		return fmt.Errorf("create session: %v", ectx.Error())
	}
	defer flvSess.Destroy()

	if err := connectWithRetry(ctx, sess, flvSess.Connect, sessCfg); err != nil {
		return err
	}
	sess.Printf("connected")

	count := 0
	ticks := 0
	for ctx.Err() == nil {
		var recvCtx errctx.Context
		ok := flvSess.Recv(func(tag *flvrecord.Tag, userdata any, ectx *errctx.Context) bool {
			count++
			sess.Debugf("flv tag type=%d length=%d timestamp=%dms", tag.Type, tag.Length, tag.Timestamp)
			return true
		}, nil, &recvCtx)
		if !ok {
			return fmt.Errorf("recv: %v", recvCtx.Error())
		}
		if maxRecords > 0 && count >= maxRecords {
			break
		}
		ticks++
		if sessCfg.MaxTicksPerRecv > 0 && ticks >= sessCfg.MaxTicksPerRecv {
			break
		}
	}
	sess.Printf("stopped after %d records", count)
	return nil
}

// runFMP4 connects an fMP4 session and logs each box until ctx is
// cancelled, maxRecords boxes are seen, or MaxTicksPerRecv ticks elapse.
func runFMP4(ctx context.Context, sess *xlog.Session, registry *transport.Registry, url string, maxRecords int, sessCfg config.SessionConfig) error {
	var ectx errctx.Context
	fmp4Sess, ok := session.CreateFMP4Session(registry, url, &ectx)
	if !ok {
		return fmt.Errorf("create session: %v", ectx.Error())
	}
	defer fmp4Sess.Destroy()

	if err := connectWithRetry(ctx, sess, fmp4Sess.Connect, sessCfg); err != nil {
		return err
	}
	sess.Printf("connected")

	count := 0
	ticks := 0
	for ctx.Err() == nil {
		var recvCtx errctx.Context
		ok := fmp4Sess.Recv(func(box *fmp4record.Box, userdata any, ectx *errctx.Context) bool {
			count++
			sess.Debugf("fmp4 box type=%s size=%d", box.TypeString(), box.Size)
			return true
		}, nil, &recvCtx)
		if !ok {
			return fmt.Errorf("recv: %v", recvCtx.Error())
		}
		if maxRecords > 0 && count >= maxRecords {
			break
		}
		ticks++
		if sessCfg.MaxTicksPerRecv > 0 && ticks >= sessCfg.MaxTicksPerRecv {
			break
		}
	}
	sess.Printf("stopped after %d records", count)
	return nil
}
