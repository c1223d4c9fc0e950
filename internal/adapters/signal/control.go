package signal

import (
	"github.com/dkeye/Huddle/internal/core"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handlePing(conn *WsSignalConn) {
	ctl.sendEvent(conn, core.Outbound{Name: core.EventPong})
}

func (ctl *SignalWSController) sendEvent(conn *WsSignalConn, ev core.Outbound) {
	frame, err := EncodeOutbound(ev)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendEvent encode")
		return
	}
	_ = conn.TrySend(frame)
}
