package signal

import (
	"context"
	"time"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) writePump(ctx context.Context, c *WsSignalConn) {
	ticker := time.NewTicker(ctl.Opts.PingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "signal").Msg("writePump ctx done")
			return
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(ctl.Opts.WriteWait)); err != nil {
				log.Warn().Err(err).Str("module", "signal").Msg("writePump ping")
				c.Close()
				return
			}
		case data, ok := <-c.send:
			if !ok {
				log.Debug().Str("module", "signal").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.Opts.WriteWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				c.Close()
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				c.Close()
				return
			}
		}
	}
}

// readPump owns the connection lifetime: when it returns the connection is
// detached, closed and reported as disconnected exactly once.
func (ctl *SignalWSController) readPump(ctx context.Context, cancel context.CancelFunc, sess core.Session, c *WsSignalConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("sid", string(sess.ID)).Msg("readPump closing")
		ctl.Hub.Detach(sess.ID)
		c.Close()
		cancel()
		// The parent context may be shutting down; the disconnect must still land.
		if err := ctl.Disp.Disconnect(context.WithoutCancel(ctx), sess); err != nil {
			log.Warn().Err(err).Str("module", "signal").Str("sid", string(sess.ID)).Msg("disconnect not dispatched")
		}
	}()

	c.conn.SetReadLimit(ctl.Opts.ReadLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(ctl.Opts.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(ctl.Opts.PongWait))
	})

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("sid", string(sess.ID)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Error().Err(err).Str("module", "signal").Str("sid", string(sess.ID)).Msg("readPump read error")
				}
				return
			}
			ctl.handleSignal(ctx, sess, c, data)
		}
	}
}

func (ctl *SignalWSController) handleSignal(ctx context.Context, sess core.Session, c *WsSignalConn, data []byte) {
	in, err := DecodeInbound(data)
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sess.ID)).Msg("bad frame")
		return
	}
	if in.Name == core.EventPing {
		ctl.handlePing(c)
		return
	}
	if err := ctl.Disp.Submit(ctx, sess, in); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sess.ID)).Str("event", in.Name).Msg("submit")
	}
}
