package domain

// RoomID is taken verbatim from join. The empty string is a room like any
// other.
type RoomID string

// RoomInfo is a read-only summary of a room derived from the registry.
type RoomInfo struct {
	ID          RoomID `json:"roomID"`
	MemberCount int    `json:"memberCount"`
}
