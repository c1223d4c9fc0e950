package app

import (
	"encoding/json"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
)

// Messenger routes direct messages and typing state between two connections.
// Delivery is best effort: an offline receiver means the message is gone.
type Messenger struct {
	Dir core.Directory
	IDs *MessageIDs
}

func (m *Messenger) Route(sender, receiver domain.ConnID, text string, at json.RawMessage) core.Result {
	from, ok := m.Dir.Lookup(sender)
	if !ok {
		return core.Dropped(core.OutcomeSenderAbsent)
	}
	if _, ok := m.Dir.Lookup(receiver); !ok {
		return core.Dropped(core.OutcomeRecipientAbsent)
	}

	msg := domain.Message{
		ID:         m.IDs.Next(),
		SenderID:   from.ID,
		ReceiverID: receiver,
		SenderName: from.Username,
		Text:       text,
		Time:       at,
	}
	record := core.Outbound{Name: core.EventReceiveMessage, Payload: core.NewReceiveMessage(msg)}
	notice := core.Outbound{
		Name: core.EventNewMessageNotification,
		Payload: core.MessageNotification{
			From:   msg.SenderName,
			FromID: msg.SenderID,
			Text:   msg.Text,
			Time:   msg.Time,
		},
	}
	return core.Delivered(
		core.Delivery{To: receiver, Event: record},
		core.Delivery{To: receiver, Event: notice},
		core.Delivery{To: sender, Event: record},
	)
}

// SetTyping is not echoed. Each event replaces the previous state on the
// receiver side.
func (m *Messenger) SetTyping(sender, receiver domain.ConnID, typing bool) core.Result {
	from, ok := m.Dir.Lookup(sender)
	if !ok {
		return core.Dropped(core.OutcomeSenderAbsent)
	}
	if _, ok := m.Dir.Lookup(receiver); !ok {
		return core.Dropped(core.OutcomeRecipientAbsent)
	}
	return core.Delivered(core.Delivery{
		To: receiver,
		Event: core.Outbound{
			Name:    core.EventUserTyping,
			Payload: core.UserTyping{UserID: from.ID, Username: from.Username, IsTyping: typing},
		},
	})
}
