package domain

import "encoding/json"

type MessageID int64

// Message is constructed at routing time and never stored.
// Time is whatever the client sent; the server does not read it.
type Message struct {
	ID         MessageID
	SenderID   ConnID
	ReceiverID ConnID
	SenderName string
	Text       string
	Time       json.RawMessage
}
