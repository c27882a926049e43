package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name        string
		args        []string
		expected    *Config
		expectPanic bool
	}{
		{
			name: "overrides all fields",
			args: []string{"cmd", "-a", "http://api.local:9090", "-t", "5", "-d", "x.db", "-k", "k.db", "-p", "on-success"},
			expected: &Config{
				APIBaseURL:          "http://api.local:9090",
				RequestTimeout:      5 * time.Second,
				DatabasePath:        "x.db",
				CredentialsPath:     "k.db",
				CheckoutClearPolicy: "on-success",
			},
		},
		{
			name:        "invalid timeout panics",
			args:        []string{"cmd", "-t", "abc"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			cfg := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg) })
				return
			}

			require.NotPanics(t, func() { parseFlags(cfg) })
			assert.Equal(t, tt.expected, cfg)
		})
	}
}
