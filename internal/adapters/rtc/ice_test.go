package rtc

import (
	"testing"

	"github.com/dkeye/Huddle/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildConfig_DefaultsToPublicSTUN(t *testing.T) {
	cfg, err := BuildConfig(nil)
	require.NoError(t, err)
	require.Len(t, cfg.ICEServers, 1)
	assert.Equal(t, []string{DefaultSTUN}, cfg.ICEServers[0].URLs)
}

func TestBuildConfig(t *testing.T) {
	tests := []struct {
		name    string
		servers []config.ICEServer
		wantErr bool
	}{
		{
			name:    "stun only",
			servers: []config.ICEServer{{URLs: []string{"stun:stun.example.org:3478"}}},
		},
		{
			name: "turn with credentials",
			servers: []config.ICEServer{{
				URLs:       []string{"turn:turn.example.org:3478?transport=udp", "turns:turn.example.org:5349"},
				Username:   "user",
				Credential: "secret",
			}},
		},
		{
			name:    "turn without credentials",
			servers: []config.ICEServer{{URLs: []string{"turn:turn.example.org:3478"}}},
			wantErr: true,
		},
		{
			name:    "bad scheme",
			servers: []config.ICEServer{{URLs: []string{"http://example.org"}}},
			wantErr: true,
		},
		{
			name:    "no urls",
			servers: []config.ICEServer{{Username: "user"}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := BuildConfig(tt.servers)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, cfg.ICEServers, len(tt.servers))
			assert.Equal(t, tt.servers[0].URLs, cfg.ICEServers[0].URLs)
			assert.Equal(t, tt.servers[0].Username, cfg.ICEServers[0].Username)
		})
	}
}
