package app

import (
	"testing"

	"github.com/dkeye/Huddle/internal/core"
	"github.com/dkeye/Huddle/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresence_Joined(t *testing.T) {
	reg := NewRegistry()
	p := &Presence{Dir: reg}

	reg.Register("a", "alice", "lobby")
	reg.Register("x", "xavier", "elsewhere")
	bob := reg.Register("b", "bob", "lobby")

	got := byRecipient(p.Joined(bob))
	require.Len(t, got, 2, "only lobby members hear about the join")

	assert.Equal(t, []string{core.EventUserList, core.EventUserJoined}, names(got["a"]))
	assert.Equal(t, []string{core.EventUserList}, names(got["b"]), "joiner gets the roster but no notice")

	roster := got["b"][0].Payload.([]domain.Connection)
	assert.Equal(t, []domain.Connection{
		{ID: "a", Username: "alice", RoomID: "lobby"},
		{ID: "b", Username: "bob", RoomID: "lobby"},
	}, roster)
	assert.Equal(t, roster, got["a"][0].Payload)
	assert.Equal(t, core.UserPresence{Username: "bob", UserID: "b"}, got["a"][1].Payload)
}

func TestPresence_Left(t *testing.T) {
	reg := NewRegistry()
	p := &Presence{Dir: reg}

	reg.Register("a", "alice", "lobby")
	reg.Register("b", "bob", "lobby")
	reg.Register("c", "carol", "lobby")
	bob, _ := reg.Unregister("b")

	ds := p.Left(bob)
	got := byRecipient(ds)
	assert.NotContains(t, got, domain.ConnID("b"))
	for _, id := range []domain.ConnID{"a", "c"} {
		require.Equal(t, []string{core.EventUserList, core.EventUserLeft}, names(got[id]))
		roster := got[id][0].Payload.([]domain.Connection)
		assert.Equal(t, []domain.ConnID{"a", "c"}, connIDs(roster))
		assert.Equal(t, core.UserPresence{Username: "bob", UserID: "b"}, got[id][1].Payload)
	}
}

func TestPresence_LastLeaverNotifiesNobody(t *testing.T) {
	reg := NewRegistry()
	p := &Presence{Dir: reg}
	reg.Register("a", "alice", "lobby")
	alice, _ := reg.Unregister("a")
	assert.Empty(t, p.Left(alice))
}

func TestPresence_Refreshed(t *testing.T) {
	reg := NewRegistry()
	p := &Presence{Dir: reg}
	reg.Register("a", "alice", "lobby")
	reg.Register("b", "bob", "lobby")

	got := byRecipient(p.Refreshed("lobby"))
	assert.Equal(t, []string{core.EventUserList}, names(got["a"]))
	assert.Equal(t, []string{core.EventUserList}, names(got["b"]))
}
