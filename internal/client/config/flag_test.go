package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected *Config
		name     string
		args     []string
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "https://auth.example.org", "-d", "/tmp/x.db", "-t", "3s", "-l", "debug", "-log-dev=true"},
			expected: &Config{
				ServerURL: "https://auth.example.org", DatabasePath: "/tmp/x.db",
				RequestTimeout: 3 * time.Second, LogLevel: "debug", LogDev: true,
			},
		},
		{
			name:     "foreign flags are ignored",
			args:     []string{"-c", "cfg.json", "-x", "1", "-a", "http://127.0.0.1:9090"},
			expected: &Config{ServerURL: "http://127.0.0.1:9090"},
		},
		{
			name:     "incorrect timeout",
			args:     []string{"-t", "abc"},
			wantErr:  true,
			expected: &Config{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}
			err := parseFlags(config, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
