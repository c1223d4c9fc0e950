package core

import (
	"encoding/json"

	"github.com/dkeye/Huddle/internal/domain"
)

// Inbound event names.
const (
	EventJoin        = "join"
	EventSendMessage = "send_message"
	EventTyping      = "typing"
	EventCallUser    = "call_user"
	EventAnswerCall  = "answer_call"
	EventRejectCall  = "reject_call"
	EventEndCall     = "end_call"
	EventPing        = "ping"
)

// Outbound event names.
const (
	EventUserList               = "user_list"
	EventUserJoined             = "user_joined"
	EventUserLeft               = "user_left"
	EventReceiveMessage         = "receive_message"
	EventNewMessageNotification = "new_message_notification"
	EventUserTyping             = "user_typing"
	EventIncomingCall           = "incoming_call"
	EventCallNotification       = "call_notification"
	EventCallAccepted           = "call_accepted"
	EventCallRejected           = "call_rejected"
	EventCallEnded              = "call_ended"
	EventPong                   = "pong"
)

// Outbound is a named event with its payload. A nil Payload is sent
// without a data field.
type Outbound struct {
	Name    string
	Payload any
}

// Session is the identity of the connection an inbound event came from.
// The transport fills it in; handlers never look it up globally.
type Session struct {
	ID     domain.ConnID
	Client string
}

type JoinPayload struct {
	Username string `json:"username"`
	RoomID   string `json:"roomID"`
}

type SendMessagePayload struct {
	ReceiverID domain.ConnID   `json:"receiverId"`
	Text       string          `json:"text"`
	Time       json.RawMessage `json:"time,omitempty"`
}

type TypingPayload struct {
	ReceiverID domain.ConnID `json:"receiverId"`
	IsTyping   bool          `json:"isTyping"`
}

type CallUserPayload struct {
	UserToCall domain.ConnID   `json:"userToCall"`
	SignalData json.RawMessage `json:"signalData,omitempty"`
	From       domain.ConnID   `json:"from,omitempty"`
	Name       string          `json:"name,omitempty"`
	CallType   string          `json:"callType,omitempty"`
}

type AnswerCallPayload struct {
	To     domain.ConnID   `json:"to"`
	Signal json.RawMessage `json:"signal,omitempty"`
}

// TargetPayload is shared by reject_call and end_call.
type TargetPayload struct {
	To domain.ConnID `json:"to"`
}

type UserPresence struct {
	Username string        `json:"username"`
	UserID   domain.ConnID `json:"userId"`
}

type ReceiveMessage struct {
	ReceiverID domain.ConnID    `json:"receiverId"`
	Text       string           `json:"text"`
	Time       json.RawMessage  `json:"time,omitempty"`
	ID         domain.MessageID `json:"id"`
	Sender     string           `json:"sender"`
	SenderID   domain.ConnID    `json:"senderId"`
}

type MessageNotification struct {
	From   string          `json:"from"`
	FromID domain.ConnID   `json:"fromId"`
	Text   string          `json:"text"`
	Time   json.RawMessage `json:"time,omitempty"`
}

type UserTyping struct {
	UserID   domain.ConnID `json:"userId"`
	Username string        `json:"username"`
	IsTyping bool          `json:"isTyping"`
}

type IncomingCall struct {
	Signal   json.RawMessage `json:"signal,omitempty"`
	From     domain.ConnID   `json:"from"`
	Name     string          `json:"name"`
	CallType domain.CallKind `json:"callType"`
}

type CallNotification struct {
	From     string          `json:"from"`
	FromID   domain.ConnID   `json:"fromId"`
	CallType domain.CallKind `json:"callType"`
}

func NewReceiveMessage(m domain.Message) ReceiveMessage {
	return ReceiveMessage{
		ReceiverID: m.ReceiverID,
		Text:       m.Text,
		Time:       m.Time,
		ID:         m.ID,
		Sender:     m.SenderName,
		SenderID:   m.SenderID,
	}
}

// Inbound is a decoded event. Payload holds one of the *Payload types
// above, or nil for events without data.
type Inbound struct {
	Name    string
	Payload any
}
