// Package domain contains entity without logic, just meta-data
package domain

// ConnID identifies one live transport session for its entire lifetime.
type ConnID string

// Connection is the registry record of a joined connection. Username is
// whatever the client sent with join; it is neither checked nor unique.
type Connection struct {
	ID       ConnID `json:"id"`
	Username string `json:"username"`
	RoomID   RoomID `json:"roomID"`
}
